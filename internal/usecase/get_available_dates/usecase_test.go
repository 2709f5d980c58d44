package get_available_dates

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
)

// mockAllocator решает по дате: доступна, недоступна для записи или сбой
type mockAllocator struct {
	hasSlot     map[string]bool
	notBookable map[string]error
	err         error

	checked []string
}

func (m *mockAllocator) HasAnySlot(ctx context.Context, req allocator.Request) (bool, error) {
	key := req.Date.Format(domain.DateFormat)
	m.checked = append(m.checked, key)
	if m.err != nil {
		return false, m.err
	}
	if err, ok := m.notBookable[key]; ok {
		return false, err
	}
	return m.hasSlot[key], nil
}

type mockPolicy struct{}

func (mockPolicy) Quote(ctx context.Context, inputs duration.QuoteInputs) domain.DurationQuote {
	return domain.DurationQuote{BaseMinutes: 60, TotalMinutes: 60}
}

type utcParser struct{}

func (utcParser) ParseLocalDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, s, time.UTC)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newUseCase(alloc *mockAllocator) *UseCase {
	return NewUseCase(
		alloc,
		mockPolicy{},
		utcParser{},
		[]domain.Resource{{ID: "lead@studio.test", IsPrimary: true}},
		nopLogger{},
	)
}

func TestUseCase_Execute(t *testing.T) {
	alloc := &mockAllocator{
		hasSlot: map[string]bool{
			"2026-09-16": true,
			"2026-09-18": true,
		},
		notBookable: map[string]error{
			"2026-09-19": schedule.ErrClosed, // суббота без рабочих часов
		},
	}
	uc := newUseCase(alloc)

	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: "2026-09-15",
		EndDate:   "2026-09-20",
	})
	require.NoError(t, err)

	// Недоступные для записи даты молча пропускаются
	assert.Equal(t, []string{"2026-09-16", "2026-09-18"}, resp.Dates)
	assert.Len(t, alloc.checked, 6)
}

func TestUseCase_Execute_SingleDayRange(t *testing.T) {
	alloc := &mockAllocator{hasSlot: map[string]bool{"2026-09-16": true}}
	uc := newUseCase(alloc)

	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: "2026-09-16",
		EndDate:   "2026-09-16",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-09-16"}, resp.Dates)
}

func TestUseCase_Execute_EmptyResult(t *testing.T) {
	alloc := &mockAllocator{notBookable: map[string]error{
		"2026-09-16": schedule.ErrHoliday,
	}}
	uc := newUseCase(alloc)

	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: "2026-09-16",
		EndDate:   "2026-09-16",
	})
	require.NoError(t, err)

	// Пустой список, а не nil
	assert.NotNil(t, resp.Dates)
	assert.Empty(t, resp.Dates)
}

func TestUseCase_Execute_RangeValidation(t *testing.T) {
	uc := newUseCase(&mockAllocator{})

	t.Run("end before start", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			StartDate: "2026-09-20",
			EndDate:   "2026-09-15",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("range too wide", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			StartDate: "2026-09-01",
			EndDate:   "2026-12-01",
		})
		assert.ErrorIs(t, err, ErrRangeTooWide)
	})

	t.Run("missing dates", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{StartDate: "2026-09-01"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("garbage date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			StartDate: "15.09.2026",
			EndDate:   "2026-09-20",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUseCase_Execute_InternalError(t *testing.T) {
	alloc := &mockAllocator{err: errors.New("calendar api down")}
	uc := newUseCase(alloc)

	_, err := uc.Execute(context.Background(), &Request{
		StartDate: "2026-09-16",
		EndDate:   "2026-09-17",
	})

	assert.ErrorIs(t, err, ErrInternal)
}
