package get_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/api/handlers"
	"github.com/lensbook/PhotoBookingService/internal/domain"
	getBookings "github.com/lensbook/PhotoBookingService/internal/usecase/get_bookings"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams = "некорректные параметры запроса"
)

// BookingResponse одно бронирование в списке
type BookingResponse struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Status          string `json:"status"`
	ResourceID      string `json:"resourceId"`
	CustomerName    string `json:"customerName"`
	PropertyAddress string `json:"propertyAddress,omitempty"`
	PropertyCity    string `json:"propertyCity,omitempty"`
}

// BookingsResponse HTTP response model
type BookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type Handler struct {
	useCase GetBookingsUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: startDate, endDate (YYYY-MM-DD), resourceId, status,
// includeCancelled - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &getBookings.Request{
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &date
	}
	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &date
	}
	if raw := query.Get("resourceId"); raw != "" {
		req.ResourceID = &raw
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getBookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := BookingsResponse{
		Bookings: make([]BookingResponse, 0, len(result.Bookings)),
	}
	for _, b := range result.Bookings {
		response.Bookings = append(response.Bookings, BookingResponse{
			ID:              b.ID,
			Date:            b.BookingDate.Format(domain.DateFormat),
			StartTime:       b.StartTime.String(),
			EndTime:         b.EndTime.String(),
			Status:          b.Status,
			ResourceID:      b.ResourceID,
			CustomerName:    b.CustomerName,
			PropertyAddress: b.PropertyAddress,
			PropertyCity:    b.PropertyCity,
		})
	}

	h.logger.Info("GET /bookings - %d bookings", len(response.Bookings))
	handlers.RespondJSON(w, http.StatusOK, response)
}
