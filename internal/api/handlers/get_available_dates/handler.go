package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/lensbook/PhotoBookingService/internal/api/handlers"
	getAvailableDates "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_dates"
)

const (
	msgMissingPeriod  = "параметры startDate и endDate обязательны"
	msgInvalidParams  = "некорректные параметры запроса"
	msgRangeTooWide   = "слишком широкий период дат"
	msgInvalidNumbers = "некорректный формат squareFootage или propertyPrice"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/dates
// Query params: startDate, endDate (required, YYYY-MM-DD),
// squareFootage, propertyPrice, serviceType, address (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startDate := query.Get("startDate")
	endDate := query.Get("endDate")
	if startDate == "" || endDate == "" {
		h.logger.Warn("GET /availability/dates - Missing period")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	squareFootage, err := handlers.OptionalIntQuery(r, "squareFootage")
	if err != nil {
		h.logger.Warn("GET /availability/dates - Invalid squareFootage: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumbers)
		return
	}
	propertyPrice, err := handlers.OptionalFloatQuery(r, "propertyPrice")
	if err != nil {
		h.logger.Warn("GET /availability/dates - Invalid propertyPrice: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumbers)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		StartDate:     startDate,
		EndDate:       endDate,
		SquareFootage: squareFootage,
		PropertyPrice: propertyPrice,
		ServiceType:   query.Get("serviceType"),
		Address:       query.Get("address"),
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrRangeTooWide):
			h.logger.Warn("GET /availability/dates - Range too wide: %s..%s", startDate, endDate)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /availability/dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability/dates - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/dates - %d dates available in %s..%s", len(result.Dates), startDate, endDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
