package domain

import (
	"time"

	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Customer contact details captured with a booking
type Customer struct {
	Name  string
	Email string
	Phone string
}

// CalendarEventIDs identifiers of the three calendar events created for a
// booking: the drive to the property, the shoot itself and the drive back.
// Travel IDs may be empty for legacy bookings created before the
// three-event model, or when a travel-event write failed (best-effort).
type CalendarEventIDs struct {
	Appointment *string
	TravelTo    *string
	TravelFrom  *string
}

// Booking represents a confirmed photography session
type Booking struct {
	ID          int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Customer    Customer

	PropertyAddress string
	PropertyCity    string
	Notes           *string

	Status     BookingStatus
	ResourceID string // контактный адрес фотографа в календаре

	EventIDs CalendarEventIDs

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking can be rescheduled
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusConfirmed
}

// IsLegacySingleEvent returns true if the booking predates the three-event
// model: it has an appointment event but no travel events
func (b *Booking) IsLegacySingleEvent() bool {
	return b.EventIDs.Appointment != nil && b.EventIDs.TravelTo == nil && b.EventIDs.TravelFrom == nil
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	ResourceID       *string        // Фильтр по фотографу (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
