package get_bookings

import (
	"time"

	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// Request модель запроса списка бронирований
type Request struct {
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	ResourceID       *string    // Фильтр по фотографу (опционально)
	Status           *string    // Фильтр по статусу (опционально)
	IncludeCancelled bool       // Включать ли отменённые
}

// Booking бронирование в ответе
type Booking struct {
	ID          int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string
	ResourceID  string

	CustomerName    string
	PropertyAddress string
	PropertyCity    string
}

// Response модель ответа со списком бронирований
type Response struct {
	Bookings []Booking
}
