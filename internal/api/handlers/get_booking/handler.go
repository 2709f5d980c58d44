package get_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lensbook/PhotoBookingService/internal/api/handlers"
	"github.com/lensbook/PhotoBookingService/internal/domain"
	getBooking "github.com/lensbook/PhotoBookingService/internal/usecase/get_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
	ResourceID string `json:"resourceId"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	PropertyAddress string  `json:"propertyAddress,omitempty"`
	PropertyCity    string  `json:"propertyCity,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Handler struct {
	useCase GetBookingUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getBooking.Request{ID: id})
	if err != nil {
		switch {
		case errors.Is(err, getBooking.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, getBooking.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &BookingResponse{
		ID:                 result.ID,
		Date:               result.BookingDate.Format(domain.DateFormat),
		StartTime:          result.StartTime.String(),
		EndTime:            result.EndTime.String(),
		Status:             result.Status,
		ResourceID:         result.ResourceID,
		CustomerName:       result.CustomerName,
		CustomerEmail:      result.CustomerEmail,
		CustomerPhone:      result.CustomerPhone,
		PropertyAddress:    result.PropertyAddress,
		PropertyCity:       result.PropertyCity,
		Notes:              result.Notes,
		CancellationReason: result.CancellationReason,
		CreatedAt:          result.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          result.UpdatedAt.Format(time.RFC3339),
	}
	if result.CancelledAt != nil {
		cancelledAt := result.CancelledAt.Format(time.RFC3339)
		response.CancelledAt = &cancelledAt
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
