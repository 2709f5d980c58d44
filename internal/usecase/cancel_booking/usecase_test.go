package cancel_booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	storage "github.com/lensbook/PhotoBookingService/internal/infra/storage/booking"
	"github.com/lensbook/PhotoBookingService/pkg/ptr"
)

type mockRepo struct {
	booking   *domain.Booking
	getErr    error
	cancelErr error

	cancelledID     int64
	cancelledReason string
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.booking, nil
}

func (m *mockRepo) Cancel(ctx context.Context, id int64, reason string) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.cancelledID = id
	m.cancelledReason = reason
	return nil
}

type mockPublisher struct {
	removed []domain.CalendarEventIDs
}

func (m *mockPublisher) Remove(ctx context.Context, resourceID string, ids domain.CalendarEventIDs) {
	m.removed = append(m.removed, ids)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:         7,
		Status:     domain.StatusConfirmed,
		ResourceID: "lead@studio.test",
		EventIDs: domain.CalendarEventIDs{
			Appointment: ptr.Ptr("appt-1"),
			TravelTo:    ptr.Ptr("to-1"),
			TravelFrom:  ptr.Ptr("from-1"),
		},
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &mockRepo{booking: confirmedBooking()}
	publisher := &mockPublisher{}
	uc := NewUseCase(repo, publisher, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ID: 7, Reason: "customer request"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, int64(7), repo.cancelledID)
	assert.Equal(t, "customer request", repo.cancelledReason)

	// Все три события удалены
	require.Len(t, publisher.removed, 1)
	assert.Equal(t, "appt-1", *publisher.removed[0].Appointment)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	repo := &mockRepo{getErr: storage.ErrBookingNotFound}
	publisher := &mockPublisher{}
	uc := NewUseCase(repo, publisher, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ID: 7})

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, publisher.removed)
}

func TestUseCase_Execute_AlreadyCancelled(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	repo := &mockRepo{booking: booking}
	publisher := &mockPublisher{}
	uc := NewUseCase(repo, publisher, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ID: 7})

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Zero(t, repo.cancelledID)
	assert.Empty(t, publisher.removed)
}

func TestUseCase_Execute_CancelFailureSkipsEvents(t *testing.T) {
	repo := &mockRepo{booking: confirmedBooking(), cancelErr: errors.New("db down")}
	publisher := &mockPublisher{}
	uc := NewUseCase(repo, publisher, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ID: 7})

	assert.ErrorIs(t, err, ErrInternal)
	// События не трогаем, пока строка не отменена
	assert.Empty(t, publisher.removed)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := NewUseCase(&mockRepo{}, &mockPublisher{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		ID:     7,
		Reason: strings.Repeat("x", domain.MaxCancellationReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
