package get_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	storage "github.com/lensbook/PhotoBookingService/internal/infra/storage/booking"
	"github.com/lensbook/PhotoBookingService/pkg/ptr"
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

type mockRepo struct {
	booking *domain.Booking
	err     error
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.booking, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestUseCase_Execute(t *testing.T) {
	repo := &mockRepo{booking: &domain.Booking{
		ID:          7,
		BookingDate: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:30",
		Status:      domain.StatusConfirmed,
		ResourceID:  "lead@studio.test",
		Customer: domain.Customer{
			Name:  "Jane Smith",
			Email: "jane@example.com",
		},
		PropertyAddress: "123 Main St",
		Notes:           ptr.Ptr("gate code 4411"),
	}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Jane Smith", resp.CustomerName)
	assert.Equal(t, "123 Main St", resp.PropertyAddress)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "gate code 4411", *resp.Notes)
	assert.Nil(t, resp.CancelledAt)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	repo := &mockRepo{err: storage.ErrBookingNotFound}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ID: 7})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUseCase_Execute_InvalidID(t *testing.T) {
	uc := NewUseCase(&mockRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_RepoError(t *testing.T) {
	repo := &mockRepo{err: errors.New("db down")}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ID: 7})

	assert.ErrorIs(t, err, ErrInternal)
}
