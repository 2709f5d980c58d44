package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/lensbook/PhotoBookingService/internal/api/handlers"
	getAvailableSlots "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate    = "параметр date обязателен"
	msgInvalidParams  = "некорректные параметры запроса"
	msgInvalidNumbers = "некорректный формат squareFootage или propertyPrice"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots
// Query params: date (required, YYYY-MM-DD),
// squareFootage, propertyPrice, serviceType, address (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /availability/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	squareFootage, err := handlers.OptionalIntQuery(r, "squareFootage")
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid squareFootage: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumbers)
		return
	}
	propertyPrice, err := handlers.OptionalFloatQuery(r, "propertyPrice")
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid propertyPrice: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumbers)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:          date,
		SquareFootage: squareFootage,
		PropertyPrice: propertyPrice,
		ServiceType:   query.Get("serviceType"),
		Address:       query.Get("address"),
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability/slots - Failed: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/slots - date=%s, %d slots", date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
