package get_available_slots_range

import (
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// Request модель запроса слотов за период
type Request struct {
	StartDate     string   // Начало периода в формате YYYY-MM-DD
	EndDate       string   // Конец периода в формате YYYY-MM-DD (включительно)
	SquareFootage *int     // Площадь объекта (опционально)
	PropertyPrice *float64 // Цена объекта (опционально)
	ServiceType   string   // Тип услуги (опционально)
	Address       string   // Адрес объекта; пусто = съёмка без выезда
}

// DateSlot дата, на которую доступно время начала
type DateSlot struct {
	Date              string // Дата в формате YYYY-MM-DD
	EndTime           types.TimeString
	ResourceID        string
	IsPrimaryResource bool
}

// TimeSlots даты одного времени начала
type TimeSlots struct {
	StartTime types.TimeString
	Dates     []DateSlot
}

// Response модель ответа со слотами, сгруппированными по времени начала.
// Времена, не доступные ни на одну дату, в ответ не попадают.
type Response struct {
	DurationMinutes int // Длительность съёмки без дороги
	TravelMinutes   int // Travel-буфер в одну сторону
	Times           []TimeSlots
}
