package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
	"github.com/lensbook/PhotoBookingService/internal/service/schedule"
	"github.com/lensbook/PhotoBookingService/pkg/ptr"
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

type mockRepo struct {
	existing  []*domain.Booking
	createErr error

	created       *domain.Booking
	storedEventID *domain.CalendarEventIDs
}

func (m *mockRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	booking.ID = 101
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	m.created = booking
	return booking, nil
}

func (m *mockRepo) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return m.existing, nil
}

func (m *mockRepo) UpdateEventIDs(ctx context.Context, id int64, eventIDs domain.CalendarEventIDs) error {
	m.storedEventID = &eventIDs
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
	err error

	published *domain.Booking
}

func (m *mockPublisher) Publish(ctx context.Context, booking *domain.Booking, travelMinutes int) (domain.CalendarEventIDs, error) {
	m.published = booking
	return m.ids, m.err
}

type mockTravel struct {
	buffer int
}

func (m *mockTravel) BufferMinutes(ctx context.Context, address string, arrival *time.Time) int {
	return m.buffer
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

// inlineTxManager выполняет колбэк без настоящей транзакции
type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	repo      *mockRepo
	alloc     *mockAllocator
	policy    *mockPolicy
	publisher *mockPublisher
	tx        *inlineTxManager
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	f := &fixture{
		repo: &mockRepo{},
		alloc: &mockAllocator{slots: []domain.Slot{
			{StartTime: "10:00", EndTime: "11:00", ResourceID: "lead@studio.test", IsPrimaryResource: true},
			{StartTime: "10:30", EndTime: "11:30", ResourceID: "lead@studio.test", IsPrimaryResource: true},
		}},
		policy: &mockPolicy{quote: domain.DurationQuote{
			BaseMinutes:         60,
			TravelBufferMinutes: 30,
			TotalMinutes:        120,
		}},
		publisher: &mockPublisher{ids: domain.CalendarEventIDs{
			Appointment: ptr.Ptr("appt-1"),
			TravelTo:    ptr.Ptr("to-1"),
			TravelFrom:  ptr.Ptr("from-1"),
		}},
		tx: &inlineTxManager{},
	}
	f.uc = NewUseCase(
		f.repo,
		f.alloc,
		f.policy,
		f.publisher,
		&mockTravel{buffer: 30},
		&mockCalendar{loc: loc},
		f.tx,
		[]domain.Resource{{ID: "lead@studio.test", IsPrimary: true}},
		nopLogger{},
	)
	return f
}

func validRequest() *Request {
	return &Request{
		Date:            "2026-09-16",
		StartTime:       "10:00",
		CustomerName:    "Jane Smith",
		CustomerEmail:   "jane@example.com",
		PropertyAddress: "123 Main St",
		PropertyCity:    "Springfield",
		SquareFootage:   ptr.Ptr(2500),
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, "lead@studio.test", resp.ResourceID)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 30, resp.TravelMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	assert.Equal(t, 1, f.tx.calls)
	require.NotNil(t, f.repo.created)
	assert.Equal(t, domain.StatusConfirmed, f.repo.created.Status)

	// События публикуются после коммита и их ID дописываются в строку
	require.NotNil(t, f.publisher.published)
	require.NotNil(t, f.repo.storedEventID)
	assert.Equal(t, "appt-1", *f.repo.storedEventID.Appointment)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing date", mutate: func(r *Request) { r.Date = "" }},
		{name: "missing start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "25:99" }},
		{name: "missing customer name", mutate: func(r *Request) { r.CustomerName = "  " }},
		{name: "missing customer email", mutate: func(r *Request) { r.CustomerEmail = "" }},
		{name: "negative square footage", mutate: func(r *Request) { r.SquareFootage = ptr.Ptr(-1) }},
		{name: "negative price", mutate: func(r *Request) { r.PropertyPrice = ptr.Ptr(-5.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, f.repo.created)
		})
	}
}

func TestUseCase_Execute_DateNotBookable(t *testing.T) {
	f := newFixture(t)
	f.alloc.err = schedule.ErrAfterCutoff

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDateNotBookable)
	assert.Nil(t, f.repo.created)
}

func TestUseCase_Execute_SlotNotOffered(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.StartTime = "12:00" // нет в перечислении

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.repo.created)
}

func TestUseCase_Execute_DBConflict(t *testing.T) {
	newBooking := func(resource, start, end, address string) *domain.Booking {
		return &domain.Booking{
			StartTime:       types.TimeString(start),
			EndTime:         types.TimeString(end),
			ResourceID:      resource,
			PropertyAddress: address,
			Status:          domain.StatusConfirmed,
		}
	}

	tests := []struct {
		name     string
		existing []*domain.Booking
		wantErr  bool
	}{
		{
			name:     "same resource overlapping booking conflicts",
			existing: []*domain.Booking{newBooking("lead@studio.test", "10:30", "11:30", "")},
			wantErr:  true,
		},
		{
			name: "travel buffers inflate both spans",
			// Съёмка 08:30-09:30 с выездом: её обратная дорога (30 мин)
			// налезает на дорогу туда нового бронирования, стартующую в 09:30
			existing: []*domain.Booking{newBooking("lead@studio.test", "08:30", "09:30", "456 Far Ave")},
			wantErr:  true,
		},
		{
			name:     "office booking in the same span does not need the gap",
			existing: []*domain.Booking{newBooking("lead@studio.test", "08:30", "09:30", "")},
			wantErr:  false,
		},
		{
			name:     "adjacent spans touching exactly do not conflict",
			existing: []*domain.Booking{newBooking("lead@studio.test", "08:00", "09:00", "456 Far Ave")},
			wantErr:  false,
		},
		{
			name:     "other resource does not conflict",
			existing: []*domain.Booking{newBooking("second@studio.test", "10:00", "11:00", "")},
			wantErr:  false,
		},
		{
			name: "cancelled booking does not conflict",
			existing: func() []*domain.Booking {
				b := newBooking("lead@studio.test", "10:00", "11:00", "")
				b.Status = domain.StatusCancelled
				return []*domain.Booking{b}
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.existing = tt.existing

			_, err := f.uc.Execute(context.Background(), validRequest())

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSlotNotAvailable)
				assert.Nil(t, f.repo.created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, f.repo.created)
			}
		})
	}
}

func TestUseCase_Execute_PublishFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.publisher.ids = domain.CalendarEventIDs{}
	f.publisher.err = errors.New("calendar down")

	resp, err := f.uc.Execute(context.Background(), validRequest())

	// Бронирование сохранено, несмотря на сбой календаря
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Nil(t, f.repo.storedEventID)
}

func TestUseCase_Execute_CreateFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.createErr = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, f.publisher.published)
}
