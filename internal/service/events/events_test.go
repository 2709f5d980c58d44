package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/internal/integrations/calendar"
	"github.com/lensbook/PhotoBookingService/pkg/ptr"
)

type createdEvent struct {
	resourceID string
	payload    *calendar.EventPayload
}

type stubClient struct {
	created []createdEvent
	deleted []string

	failSubjects map[string]error
	deleteErr    error
	nextID       int
}

func (s *stubClient) CreateEvent(ctx context.Context, resourceID string, event *calendar.EventPayload) (string, error) {
	for prefix, err := range s.failSubjects {
		if len(event.Subject) >= len(prefix) && event.Subject[:len(prefix)] == prefix {
			return "", err
		}
	}
	s.created = append(s.created, createdEvent{resourceID: resourceID, payload: event})
	s.nextID++
	return fmt.Sprintf("event-%d", s.nextID), nil
}

func (s *stubClient) DeleteEvent(ctx context.Context, resourceID, eventID string) error {
	s.deleted = append(s.deleted, eventID)
	return s.deleteErr
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testBooking(loc *time.Location) *domain.Booking {
	return &domain.Booking{
		ID:          42,
		BookingDate: time.Date(2026, 9, 16, 0, 0, 0, 0, loc),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Customer: domain.Customer{
			Name:  "Jane Smith",
			Email: "jane@example.com",
			Phone: "+1-555-0100",
		},
		PropertyAddress: "123 Main St",
		PropertyCity:    "Springfield",
		Status:          domain.StatusConfirmed,
		ResourceID:      "lead@studio.test",
	}
}

func TestPublisher_Publish_ThreeEvents(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	client := &stubClient{}
	publisher := NewPublisher(client, loc, nopLogger{})

	ids, err := publisher.Publish(context.Background(), testBooking(loc), 30)
	require.NoError(t, err)

	require.Len(t, client.created, 3)
	require.NotNil(t, ids.Appointment)
	require.NotNil(t, ids.TravelTo)
	require.NotNil(t, ids.TravelFrom)

	appt := client.created[0].payload
	travelTo := client.created[1].payload
	travelFrom := client.created[2].payload

	assert.Equal(t, "Photo Session - 123 Main St", appt.Subject)
	assert.Contains(t, appt.Body, "Customer: Jane Smith")
	assert.Contains(t, appt.Body, "Email: jane@example.com")
	assert.Equal(t, domain.BusyStatusBusy, appt.ShowAs)

	// 10:00 New York = 14:00 UTC (EDT)
	assert.Equal(t, time.Date(2026, 9, 16, 14, 0, 0, 0, time.UTC), appt.Start)
	assert.Equal(t, time.Date(2026, 9, 16, 15, 0, 0, 0, time.UTC), appt.End)

	// Travel-события примыкают к съёмке и несут адрес объекта в Location
	assert.Equal(t, appt.Start, travelTo.End)
	assert.Equal(t, appt.Start.Add(-30*time.Minute), travelTo.Start)
	assert.Equal(t, appt.End, travelFrom.Start)
	assert.Equal(t, appt.End.Add(30*time.Minute), travelFrom.End)
	assert.Equal(t, "123 Main St", travelTo.Location)
	assert.Equal(t, "123 Main St", travelFrom.Location)
}

func TestPublisher_Publish_NoTravel(t *testing.T) {
	loc := time.UTC
	client := &stubClient{}
	publisher := NewPublisher(client, loc, nopLogger{})

	booking := testBooking(loc)
	booking.PropertyAddress = ""

	ids, err := publisher.Publish(context.Background(), booking, 30)
	require.NoError(t, err)

	assert.Len(t, client.created, 1)
	assert.NotNil(t, ids.Appointment)
	assert.Nil(t, ids.TravelTo)
	assert.Nil(t, ids.TravelFrom)
	assert.Equal(t, "Photo Session", client.created[0].payload.Subject)
}

func TestPublisher_Publish_ZeroTravelMinutes(t *testing.T) {
	client := &stubClient{}
	publisher := NewPublisher(client, time.UTC, nopLogger{})

	ids, err := publisher.Publish(context.Background(), testBooking(time.UTC), 0)
	require.NoError(t, err)

	assert.Len(t, client.created, 1)
	assert.Nil(t, ids.TravelTo)
	assert.Nil(t, ids.TravelFrom)
}

func TestPublisher_Publish_AppointmentFailureIsFatal(t *testing.T) {
	client := &stubClient{failSubjects: map[string]error{
		domain.SubjectAppointment: errors.New("calendar down"),
	}}
	publisher := NewPublisher(client, time.UTC, nopLogger{})

	ids, err := publisher.Publish(context.Background(), testBooking(time.UTC), 30)

	assert.Error(t, err)
	assert.Nil(t, ids.Appointment)
	assert.Empty(t, client.created)
}

func TestPublisher_Publish_TravelFailureIsBestEffort(t *testing.T) {
	client := &stubClient{failSubjects: map[string]error{
		domain.SubjectTravelTo: errors.New("calendar flake"),
	}}
	publisher := NewPublisher(client, time.UTC, nopLogger{})

	ids, err := publisher.Publish(context.Background(), testBooking(time.UTC), 30)
	require.NoError(t, err)

	assert.NotNil(t, ids.Appointment)
	assert.Nil(t, ids.TravelTo)
	assert.NotNil(t, ids.TravelFrom)
}

func TestPublisher_Remove(t *testing.T) {
	t.Run("deletes every present event", func(t *testing.T) {
		client := &stubClient{}
		publisher := NewPublisher(client, time.UTC, nopLogger{})

		publisher.Remove(context.Background(), "lead@studio.test", domain.CalendarEventIDs{
			Appointment: ptr.Ptr("appt-1"),
			TravelTo:    ptr.Ptr("to-1"),
			TravelFrom:  ptr.Ptr("from-1"),
		})

		assert.Equal(t, []string{"to-1", "appt-1", "from-1"}, client.deleted)
	})

	t.Run("skips missing ids", func(t *testing.T) {
		client := &stubClient{}
		publisher := NewPublisher(client, time.UTC, nopLogger{})

		publisher.Remove(context.Background(), "lead@studio.test", domain.CalendarEventIDs{
			Appointment: ptr.Ptr("appt-1"),
		})

		assert.Equal(t, []string{"appt-1"}, client.deleted)
	})

	t.Run("tolerates already deleted events", func(t *testing.T) {
		client := &stubClient{deleteErr: calendar.ErrEventNotFound}
		publisher := NewPublisher(client, time.UTC, nopLogger{})

		publisher.Remove(context.Background(), "lead@studio.test", domain.CalendarEventIDs{
			Appointment: ptr.Ptr("appt-1"),
			TravelTo:    ptr.Ptr("to-1"),
		})

		assert.Len(t, client.deleted, 2)
	})
}
