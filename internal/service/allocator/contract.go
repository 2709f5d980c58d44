package allocator

import (
	"context"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

// BusySource источник занятых интервалов календарей фотографов
type BusySource interface {
	GetBusyIntervals(ctx context.Context, resourceIDs []string, start, end time.Time) (map[string]domain.ResourceBusy, error)
}

// OperatingCalendar источник рабочих часов и правил записи на дату
type OperatingCalendar interface {
	WindowFor(ctx context.Context, date time.Time) (*domain.OperatingWindow, error)
	Location() *time.Location
}

// TravelEstimator оценка travel-буфера для адреса
type TravelEstimator interface {
	BufferMinutes(ctx context.Context, address string, arrival *time.Time) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// GapBasis определяет, какой момент времени передаётся в оценку
// трафика при проверке зазора с соседним событием
type GapBasis string

const (
	// GapBasisSlot арривал берётся от границы кандидата
	GapBasisSlot GapBasis = "slot"
	// GapBasisAdjacentEvent арривал берётся от границы соседнего события
	GapBasisAdjacentEvent GapBasis = "adjacent_event"
)

// Options параметры аллокатора
type Options struct {
	// StepMinutes шаг сетки кандидатов; 0 = значение по умолчанию
	StepMinutes int
	// TrafficAwareRecalc пересчитывать travel-буфер по времени прибытия
	// кандидата; пересчёт применяется только при отклонении не меньше
	// гранулярности буфера
	TrafficAwareRecalc bool
	// GapBufferBasis основа времени прибытия для проверки зазоров
	GapBufferBasis GapBasis
}

// Request запрос слотов на одну дату
type Request struct {
	Date      time.Time
	Quote     domain.DurationQuote
	Address   string
	Resources []domain.Resource
}
