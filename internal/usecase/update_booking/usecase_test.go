package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	storage "github.com/lensbook/PhotoBookingService/internal/infra/storage/booking"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
	"github.com/lensbook/PhotoBookingService/pkg/ptr"
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

type mockRepo struct {
	booking  *domain.Booking
	getErr   error
	existing []*domain.Booking

	updated        *domain.Booking
	storedEventIDs []domain.CalendarEventIDs
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	copied := *m.booking
	return &copied, nil
}

func (m *mockRepo) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return m.existing, nil
}

func (m *mockRepo) Update(ctx context.Context, booking *domain.Booking) error {
	m.updated = booking
	return nil
}

func (m *mockRepo) UpdateEventIDs(ctx context.Context, id int64, eventIDs domain.CalendarEventIDs) error {
	m.storedEventIDs = append(m.storedEventIDs, eventIDs)
	return nil
}

type mockAllocator struct {
	slots []domain.Slot
	err   error
}

func (m *mockAllocator) ListSlots(ctx context.Context, req allocator.Request) ([]domain.Slot, error) {
	return m.slots, m.err
}

type mockPolicy struct {
	quote domain.DurationQuote
}

func (m *mockPolicy) Quote(ctx context.Context, inputs duration.QuoteInputs) domain.DurationQuote {
	return m.quote
}

type mockPublisher struct {
	ids domain.CalendarEventIDs

	published []*domain.Booking
	removed   []domain.CalendarEventIDs
}

func (m *mockPublisher) Publish(ctx context.Context, booking *domain.Booking, travelMinutes int) (domain.CalendarEventIDs, error) {
	copied := *booking
	m.published = append(m.published, &copied)
	return m.ids, nil
}

func (m *mockPublisher) Remove(ctx context.Context, resourceID string, ids domain.CalendarEventIDs) {
	m.removed = append(m.removed, ids)
}

type mockTravel struct{}

func (mockTravel) BufferMinutes(ctx context.Context, address string, arrival *time.Time) int {
	return 30
}

type mockCalendar struct {
	loc *time.Location
}

func (m *mockCalendar) ParseLocalDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, s, m.loc)
}

func (m *mockCalendar) Location() *time.Location {
	return m.loc
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	repo      *mockRepo
	alloc     *mockAllocator
	publisher *mockPublisher
	uc        *UseCase
}

func newFixture(t *testing.T, booking *domain.Booking) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	f := &fixture{
		repo: &mockRepo{booking: booking},
		alloc: &mockAllocator{slots: []domain.Slot{
			{StartTime: "14:00", EndTime: "15:00", ResourceID: "lead@studio.test", IsPrimaryResource: true},
		}},
		publisher: &mockPublisher{ids: domain.CalendarEventIDs{
			Appointment: ptr.Ptr("new-appt"),
			TravelTo:    ptr.Ptr("new-to"),
			TravelFrom:  ptr.Ptr("new-from"),
		}},
	}
	f.uc = NewUseCase(
		f.repo,
		f.alloc,
		&mockPolicy{quote: domain.DurationQuote{BaseMinutes: 60, TravelBufferMinutes: 30, TotalMinutes: 120}},
		f.publisher,
		mockTravel{},
		&mockCalendar{loc: loc},
		inlineTxManager{},
		[]domain.Resource{{ID: "lead@studio.test", IsPrimary: true}},
		nopLogger{},
	)
	return f
}

func storedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          7,
		BookingDate: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Customer:    domain.Customer{Name: "Jane Smith", Email: "jane@example.com"},
		PropertyAddress: "123 Main St",
		Status:          domain.StatusConfirmed,
		ResourceID:      "lead@studio.test",
		EventIDs: domain.CalendarEventIDs{
			Appointment: ptr.Ptr("old-appt"),
			TravelTo:    ptr.Ptr("old-to"),
			TravelFrom:  ptr.Ptr("old-from"),
		},
	}
}

func moveRequest() *Request {
	return &Request{
		ID:        7,
		Date:      "2026-09-18",
		StartTime: "14:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t, storedBooking())

	resp, err := f.uc.Execute(context.Background(), moveRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("15:00"), resp.EndTime)

	// Старые события сняты до проверки доступности
	require.Len(t, f.publisher.removed, 1)
	assert.Equal(t, "old-appt", *f.publisher.removed[0].Appointment)

	// Строка обновлена и новые события опубликованы
	require.NotNil(t, f.repo.updated)
	assert.Equal(t, types.TimeString("14:00"), f.repo.updated.StartTime)
	require.Len(t, f.publisher.published, 1)
	require.Len(t, f.repo.storedEventIDs, 1)
	assert.Equal(t, "new-appt", *f.repo.storedEventIDs[0].Appointment)
}

func TestUseCase_Execute_KeepsAddressWhenNotProvided(t *testing.T) {
	f := newFixture(t, storedBooking())

	_, err := f.uc.Execute(context.Background(), moveRequest())
	require.NoError(t, err)

	assert.Equal(t, "123 Main St", f.repo.updated.PropertyAddress)
}

func TestUseCase_Execute_ReplacesAddressWhenProvided(t *testing.T) {
	f := newFixture(t, storedBooking())

	req := moveRequest()
	req.PropertyAddress = ptr.Ptr("789 Oak St")
	req.PropertyCity = ptr.Ptr("Shelbyville")

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "789 Oak St", f.repo.updated.PropertyAddress)
	assert.Equal(t, "Shelbyville", f.repo.updated.PropertyCity)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	f := newFixture(t, storedBooking())
	f.repo.getErr = storage.ErrBookingNotFound

	_, err := f.uc.Execute(context.Background(), moveRequest())

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, f.publisher.removed)
}

func TestUseCase_Execute_CancelledCannotBeMoved(t *testing.T) {
	booking := storedBooking()
	booking.Status = domain.StatusCancelled
	f := newFixture(t, booking)

	_, err := f.uc.Execute(context.Background(), moveRequest())

	assert.ErrorIs(t, err, ErrCannotModify)
	assert.Empty(t, f.publisher.removed)
}

func TestUseCase_Execute_SlotRejectedRestoresEvents(t *testing.T) {
	f := newFixture(t, storedBooking())
	f.alloc.slots = nil // новый слот не предлагается

	_, err := f.uc.Execute(context.Background(), moveRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.repo.updated)

	// Старые события сняты и восстановлены заново
	require.Len(t, f.publisher.removed, 1)
	require.Len(t, f.publisher.published, 1)
	restored := f.publisher.published[0]
	assert.Equal(t, types.TimeString("10:00"), restored.StartTime)
	assert.Equal(t, "123 Main St", restored.PropertyAddress)
}

func TestUseCase_Execute_OwnRowIgnoredInConflictCheck(t *testing.T) {
	f := newFixture(t, storedBooking())

	// Собственная строка переносимого бронирования лежит на новой дате
	self := storedBooking()
	self.BookingDate = time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	self.StartTime = "14:00"
	self.EndTime = "15:00"
	f.repo.existing = []*domain.Booking{self}

	_, err := f.uc.Execute(context.Background(), moveRequest())

	require.NoError(t, err)
	assert.NotNil(t, f.repo.updated)
}

func TestUseCase_Execute_ConflictWithOtherBooking(t *testing.T) {
	f := newFixture(t, storedBooking())

	other := storedBooking()
	other.ID = 8
	other.StartTime = "14:30"
	other.EndTime = "15:30"
	other.PropertyAddress = ""
	f.repo.existing = []*domain.Booking{other}

	_, err := f.uc.Execute(context.Background(), moveRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.repo.updated)
	// После отказа события восстановлены
	require.Len(t, f.publisher.published, 1)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing id", mutate: func(r *Request) { r.ID = 0 }},
		{name: "missing date", mutate: func(r *Request) { r.Date = "" }},
		{name: "missing start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "2pm" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, storedBooking())
			req := moveRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
