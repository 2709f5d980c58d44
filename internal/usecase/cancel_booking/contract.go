package cancel_booking

import (
	"context"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// EventPublisher удаление календарных событий бронирования
type EventPublisher interface {
	Remove(ctx context.Context, resourceID string, ids domain.CalendarEventIDs)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
