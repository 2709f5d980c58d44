package cancel_booking

import (
	cancelBooking "github.com/lensbook/PhotoBookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model (тело опционально)
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:     resp.ID,
		Status: resp.Status,
	}
}
