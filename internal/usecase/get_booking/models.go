package get_booking

import (
	"time"

	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// Request модель запроса бронирования по ID
type Request struct {
	ID int64
}

// Response модель ответа с бронированием
type Response struct {
	ID          int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string
	ResourceID  string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	PropertyAddress string
	PropertyCity    string
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
