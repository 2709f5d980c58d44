package travel

import (
	"context"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

// RouteSource источник времени в пути (клиент карт)
type RouteSource interface {
	RouteDurationSeconds(ctx context.Context, destination string, arrival *time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Estimator оценивает travel-буфер для выездных съёмок.
// Буфер - это время в пути в одну сторону, округлённое вверх до
// кратного 30 минутам, минимум 30 минут.
type Estimator struct {
	routes RouteSource
	log    Logger
}

// NewEstimator создает новый эстиматор
func NewEstimator(routes RouteSource, log Logger) *Estimator {
	return &Estimator{
		routes: routes,
		log:    log,
	}
}

// OneWayMinutes возвращает время в пути в одну сторону в минутах.
// arrival, если задан, используется как основа для расчёта трафика.
func (e *Estimator) OneWayMinutes(ctx context.Context, address string, arrival *time.Time) (int, error) {
	seconds, err := e.routes.RouteDurationSeconds(ctx, address, arrival)
	if err != nil {
		return 0, err
	}
	// Округляем секунды вверх до целой минуты
	return (seconds + 59) / 60, nil
}

// BufferMinutes возвращает travel-буфер: время в пути в одну сторону,
// округлённое вверх до кратного 30 минутам, минимум 30 минут.
// Никогда не падает: при сбое карт возвращает буфер по умолчанию.
func (e *Estimator) BufferMinutes(ctx context.Context, address string, arrival *time.Time) int {
	minutes, err := e.OneWayMinutes(ctx, address, arrival)
	if err != nil {
		e.log.Warn("Travel: estimate failed for %q, using default buffer: %v", address, err)
		return domain.DefaultTravelBufferMinutes
	}
	return RoundUpToBuffer(minutes)
}

// RoundUpToBuffer округляет минуты вверх до кратного гранулярности
// буфера, минимум одна гранула
func RoundUpToBuffer(minutes int) int {
	granularity := domain.TravelBufferGranularityMinutes
	if minutes <= granularity {
		return granularity
	}
	return ((minutes + granularity - 1) / granularity) * granularity
}
