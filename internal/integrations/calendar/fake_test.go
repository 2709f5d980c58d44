package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestFakeClient_EventLifecycle(t *testing.T) {
	client := NewFakeClient(nopLogger{})
	ctx := context.Background()

	payload := &EventPayload{
		Subject:  "Photo Session - 123 Main St",
		Start:    time.Date(2026, 9, 16, 14, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 9, 16, 15, 0, 0, 0, time.UTC),
		Location: "123 Main St",
		ShowAs:   domain.BusyStatusBusy,
	}

	id, err := client.CreateEvent(ctx, "lead@studio.test", payload)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	event, err := client.GetEvent(ctx, "lead@studio.test", id)
	require.NoError(t, err)
	assert.Equal(t, payload.Subject, event.Subject)
	assert.Equal(t, payload.Start, event.Start)

	err = client.UpdateEvent(ctx, "lead@studio.test", id, &EventPayload{
		Subject: "Photo Session - 789 Oak St",
		Start:   payload.Start,
		End:     payload.End,
		ShowAs:  domain.BusyStatusBusy,
	})
	require.NoError(t, err)

	event, err = client.GetEvent(ctx, "lead@studio.test", id)
	require.NoError(t, err)
	assert.Equal(t, "Photo Session - 789 Oak St", event.Subject)

	require.NoError(t, client.DeleteEvent(ctx, "lead@studio.test", id))
	_, err = client.GetEvent(ctx, "lead@studio.test", id)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, client.DeleteEvent(ctx, "lead@studio.test", id), ErrEventNotFound)
}

func TestFakeClient_GetBusyIntervals(t *testing.T) {
	client := NewFakeClient(nopLogger{})
	ctx := context.Background()

	dayStart := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	_, err := client.CreateEvent(ctx, "lead@studio.test", &EventPayload{
		Subject: "inside window",
		Start:   dayStart.Add(10 * time.Hour),
		End:     dayStart.Add(11 * time.Hour),
		ShowAs:  domain.BusyStatusBusy,
	})
	require.NoError(t, err)

	_, err = client.CreateEvent(ctx, "lead@studio.test", &EventPayload{
		Subject: "previous day",
		Start:   dayStart.Add(-3 * time.Hour),
		End:     dayStart.Add(-2 * time.Hour),
		ShowAs:  domain.BusyStatusBusy,
	})
	require.NoError(t, err)

	_, err = client.CreateEvent(ctx, "lead@studio.test", &EventPayload{
		Subject: "free event",
		Start:   dayStart.Add(12 * time.Hour),
		End:     dayStart.Add(13 * time.Hour),
		ShowAs:  domain.BusyStatusFree,
	})
	require.NoError(t, err)

	result, err := client.GetBusyIntervals(ctx, []string{"lead@studio.test", "second@studio.test"}, dayStart, dayEnd)
	require.NoError(t, err)

	lead := result["lead@studio.test"]
	assert.False(t, lead.Failed)
	require.Len(t, lead.Intervals, 1)
	assert.Equal(t, "inside window", lead.Intervals[0].Subject)

	// Ресурс без событий присутствует в ответе с пустым списком
	second, ok := result["second@studio.test"]
	require.True(t, ok)
	assert.Empty(t, second.Intervals)
	assert.False(t, second.Failed)
}
