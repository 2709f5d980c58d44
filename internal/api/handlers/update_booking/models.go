package update_booking

import (
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	updateBooking "github.com/lensbook/PhotoBookingService/internal/usecase/update_booking"
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "10:00"

	PropertyAddress *string `json:"propertyAddress,omitempty"`
	PropertyCity    *string `json:"propertyCity,omitempty"`

	SquareFootage *int     `json:"squareFootage,omitempty"`
	PropertyPrice *float64 `json:"propertyPrice,omitempty"`
	ServiceType   string   `json:"serviceType,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Status          string `json:"status"`
	ResourceID      string `json:"resourceId"`
	DurationMinutes int    `json:"durationMinutes"`
	TravelMinutes   int    `json:"travelMinutes"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(id int64) (*updateBooking.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &updateBooking.Request{
		ID:              id,
		Date:            r.Date,
		StartTime:       startTime,
		PropertyAddress: r.PropertyAddress,
		PropertyCity:    r.PropertyCity,
		SquareFootage:   r.SquareFootage,
		PropertyPrice:   r.PropertyPrice,
		ServiceType:     r.ServiceType,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Date:            resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Status:          resp.Status,
		ResourceID:      resp.ResourceID,
		DurationMinutes: resp.DurationMinutes,
		TravelMinutes:   resp.TravelMinutes,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
