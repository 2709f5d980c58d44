package get_available_slots_range

import (
	"errors"
	"net/http"

	"github.com/lensbook/PhotoBookingService/internal/api/handlers"
	getAvailableSlotsRange "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_slots_range"
)

const (
	msgMissingPeriod  = "параметры startDate и endDate обязательны"
	msgInvalidParams  = "некорректные параметры запроса"
	msgRangeTooWide   = "слишком широкий период дат"
	msgInvalidNumbers = "некорректный формат squareFootage или propertyPrice"
)

type Handler struct {
	useCase GetAvailableSlotsRangeUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsRangeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots-range
// Query params: startDate, endDate (required, YYYY-MM-DD),
// squareFootage, propertyPrice, serviceType, address (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startDate := query.Get("startDate")
	endDate := query.Get("endDate")
	if startDate == "" || endDate == "" {
		h.logger.Warn("GET /availability/slots-range - Missing period")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	squareFootage, err := handlers.OptionalIntQuery(r, "squareFootage")
	if err != nil {
		h.logger.Warn("GET /availability/slots-range - Invalid squareFootage: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumbers)
		return
	}
	propertyPrice, err := handlers.OptionalFloatQuery(r, "propertyPrice")
	if err != nil {
		h.logger.Warn("GET /availability/slots-range - Invalid propertyPrice: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumbers)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlotsRange.Request{
		StartDate:     startDate,
		EndDate:       endDate,
		SquareFootage: squareFootage,
		PropertyPrice: propertyPrice,
		ServiceType:   query.Get("serviceType"),
		Address:       query.Get("address"),
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlotsRange.ErrRangeTooWide):
			h.logger.Warn("GET /availability/slots-range - Range too wide: %s..%s", startDate, endDate)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailableSlotsRange.ErrInvalidInput):
			h.logger.Warn("GET /availability/slots-range - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability/slots-range - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/slots-range - %s..%s, %d start times", startDate, endDate, len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
