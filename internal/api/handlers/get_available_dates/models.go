package get_available_dates

import (
	getAvailableDates "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	Dates []string `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	return &AvailableDatesResponse{Dates: resp.Dates}
}
