package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/internal/integrations/calendar"
)

// Client подмножество клиента календаря, нужное для публикации событий
type Client interface {
	CreateEvent(ctx context.Context, resourceID string, event *calendar.EventPayload) (string, error)
	DeleteEvent(ctx context.Context, resourceID, eventID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher создает и удаляет календарные события бронирования.
// Одно бронирование публикуется тремя событиями: дорога туда, съёмка,
// дорога обратно. Событие съёмки обязательное; travel-события
// добиваются best-effort - их отсутствие не отменяет бронирование.
type Publisher struct {
	client Client
	loc    *time.Location
	log    Logger
}

// NewPublisher создает новый публикатор событий
func NewPublisher(client Client, loc *time.Location, log Logger) *Publisher {
	return &Publisher{
		client: client,
		loc:    loc,
		log:    log,
	}
}

// Publish создает до трёх событий бронирования в календаре фотографа.
// Возвращает ошибку только если не удалось создать событие съёмки.
func (p *Publisher) Publish(ctx context.Context, booking *domain.Booking, travelMinutes int) (domain.CalendarEventIDs, error) {
	var ids domain.CalendarEventIDs

	apptStart, err := booking.StartTime.At(booking.BookingDate, p.loc)
	if err != nil {
		return ids, fmt.Errorf("events: appointment start: %w", err)
	}
	apptEnd, err := booking.EndTime.At(booking.BookingDate, p.loc)
	if err != nil {
		return ids, fmt.Errorf("events: appointment end: %w", err)
	}

	// 1. Событие съёмки - обязательное
	apptID, err := p.client.CreateEvent(ctx, booking.ResourceID, appointmentPayload(booking, apptStart, apptEnd))
	if err != nil {
		return ids, fmt.Errorf("events: create appointment event: %w", err)
	}
	ids.Appointment = &apptID

	if travelMinutes <= 0 || booking.PropertyAddress == "" {
		return ids, nil
	}

	travel := time.Duration(travelMinutes) * time.Minute

	// 2. Дорога туда - best-effort
	toID, err := p.client.CreateEvent(ctx, booking.ResourceID, travelPayload(
		domain.SubjectTravelTo, booking, apptStart.Add(-travel), apptStart))
	if err != nil {
		p.log.Warn("Events: booking id=%d: travel-to event failed: %v", booking.ID, err)
	} else {
		ids.TravelTo = &toID
	}

	// 3. Дорога обратно - best-effort
	fromID, err := p.client.CreateEvent(ctx, booking.ResourceID, travelPayload(
		domain.SubjectTravelFrom, booking, apptEnd, apptEnd.Add(travel)))
	if err != nil {
		p.log.Warn("Events: booking id=%d: travel-from event failed: %v", booking.ID, err)
	} else {
		ids.TravelFrom = &fromID
	}

	return ids, nil
}

// Remove удаляет события бронирования из календаря.
// Уже отсутствующие события не считаются ошибкой; прочие сбои
// логируются, но не прерывают удаление остальных.
func (p *Publisher) Remove(ctx context.Context, resourceID string, ids domain.CalendarEventIDs) {
	for _, eventID := range []*string{ids.TravelTo, ids.Appointment, ids.TravelFrom} {
		if eventID == nil {
			continue
		}
		err := p.client.DeleteEvent(ctx, resourceID, *eventID)
		if err != nil && !errors.Is(err, calendar.ErrEventNotFound) {
			p.log.Warn("Events: delete event %s for resource %s failed: %v", *eventID, resourceID, err)
		}
	}
}

// appointmentPayload событие съёмки с контактами клиента в теле
func appointmentPayload(b *domain.Booking, start, end time.Time) *calendar.EventPayload {
	subject := domain.SubjectAppointment
	if b.PropertyAddress != "" {
		subject = fmt.Sprintf("%s - %s", domain.SubjectAppointment, b.PropertyAddress)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Customer: %s\n", b.Customer.Name)
	if b.Customer.Email != "" {
		fmt.Fprintf(&body, "Email: %s\n", b.Customer.Email)
	}
	if b.Customer.Phone != "" {
		fmt.Fprintf(&body, "Phone: %s\n", b.Customer.Phone)
	}
	if b.Notes != nil && *b.Notes != "" {
		fmt.Fprintf(&body, "Notes: %s\n", *b.Notes)
	}

	return &calendar.EventPayload{
		Subject:  subject,
		Body:     body.String(),
		Start:    start.UTC(),
		End:      end.UTC(),
		Location: b.PropertyAddress,
		ShowAs:   domain.BusyStatusBusy,
	}
}

// travelPayload travel-событие; Location указывает адрес объекта, чтобы
// проверка зазоров у соседних бронирований видела, откуда ехать
func travelPayload(subject string, b *domain.Booking, start, end time.Time) *calendar.EventPayload {
	return &calendar.EventPayload{
		Subject:  fmt.Sprintf("%s - %s", subject, b.PropertyAddress),
		Start:    start.UTC(),
		End:      end.UTC(),
		Location: b.PropertyAddress,
		ShowAs:   domain.BusyStatusBusy,
	}
}
