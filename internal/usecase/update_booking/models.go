package update_booking

import (
	"time"

	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ID        int64            // ID бронирования
	Date      string           // Новая дата съёмки в формате YYYY-MM-DD
	StartTime types.TimeString // Новое время начала съёмки

	PropertyAddress *string // Новый адрес; nil = оставить прежний
	PropertyCity    *string // Новый город; nil = оставить прежний

	SquareFootage *int     // Площадь объекта (опционально)
	PropertyPrice *float64 // Цена объекта (опционально)
	ServiceType   string   // Тип услуги (опционально)

	Notes *string // Новые заметки; nil = оставить прежние
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID          int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string
	ResourceID  string

	DurationMinutes int // Длительность съёмки без дороги
	TravelMinutes   int // Travel-буфер в одну сторону

	UpdatedAt time.Time
}
