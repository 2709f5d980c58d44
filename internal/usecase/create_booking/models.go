package create_booking

import (
	"time"

	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date      string           // Дата съёмки в формате YYYY-MM-DD
	StartTime types.TimeString // Время начала съёмки (например, "10:00")

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	PropertyAddress string // Адрес объекта; пусто = съёмка без выезда
	PropertyCity    string

	SquareFootage *int     // Площадь объекта (опционально)
	PropertyPrice *float64 // Цена объекта (опционально)
	ServiceType   string   // Тип услуги (опционально)

	Notes *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string
	ResourceID  string // Фотограф, на которого назначена съёмка

	DurationMinutes int // Длительность съёмки без дороги
	TravelMinutes   int // Travel-буфер в одну сторону

	CreatedAt time.Time
}
