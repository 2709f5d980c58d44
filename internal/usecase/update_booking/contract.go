package update_booking

import (
	"context"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateEventIDs(ctx context.Context, id int64, eventIDs domain.CalendarEventIDs) error
}

// SlotAllocator интерфейс аллокатора слотов
type SlotAllocator interface {
	ListSlots(ctx context.Context, req allocator.Request) ([]domain.Slot, error)
}

// DurationPolicy интерфейс политики длительности
type DurationPolicy interface {
	Quote(ctx context.Context, inputs duration.QuoteInputs) domain.DurationQuote
}

// EventPublisher публикация и удаление календарных событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, booking *domain.Booking, travelMinutes int) (domain.CalendarEventIDs, error)
	Remove(ctx context.Context, resourceID string, ids domain.CalendarEventIDs)
}

// TravelEstimator оценка travel-буфера для адреса
type TravelEstimator interface {
	BufferMinutes(ctx context.Context, address string, arrival *time.Time) int
}

// BusinessCalendar локальная таймзона и разбор дат бизнеса
type BusinessCalendar interface {
	ParseLocalDate(s string) (time.Time, error)
	Location() *time.Location
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
