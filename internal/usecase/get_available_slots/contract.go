package get_available_slots

import (
	"context"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
)

// SlotAllocator интерфейс аллокатора слотов
type SlotAllocator interface {
	ListSlots(ctx context.Context, req allocator.Request) ([]domain.Slot, error)
}

// DurationPolicy интерфейс политики длительности
type DurationPolicy interface {
	Quote(ctx context.Context, inputs duration.QuoteInputs) domain.DurationQuote
}

// DateParser парсит дату в локальной таймзоне бизнеса
type DateParser interface {
	ParseLocalDate(s string) (time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
