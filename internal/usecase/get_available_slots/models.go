package get_available_slots

import (
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// Request модель запроса доступных слотов на дату
type Request struct {
	Date          string   // Дата в формате YYYY-MM-DD
	SquareFootage *int     // Площадь объекта (опционально)
	PropertyPrice *float64 // Цена объекта (опционально)
	ServiceType   string   // Тип услуги (опционально)
	Address       string   // Адрес объекта; пусто = съёмка без выезда
}

// Slot доступный слот в ответе
type Slot struct {
	StartTime         types.TimeString // Время начала съёмки
	EndTime           types.TimeString // Время окончания съёмки
	ResourceID        string           // Фотограф
	IsPrimaryResource bool
}

// Response модель ответа со слотами на дату
type Response struct {
	Date            string // Дата в формате YYYY-MM-DD
	DurationMinutes int    // Длительность съёмки без дороги
	TravelMinutes   int    // Travel-буфер в одну сторону
	Slots           []Slot
}
