package get_calendar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	getCalendar "github.com/m04kA/rental-guide-service/internal/usecase/get_calendar"
)

const (
	msgInvalidDate      = "formato de data inválido, use AAAA-MM-DD"
	msgInvalidMonth     = "formato de mês inválido, use AAAA-MM"
	msgInvalidSelection = "seleção de datas inválida"
	msgPropertyNotFound = "imóvel não encontrado"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/calendar
// Query params: month (YYYY-MM), start, end (YYYY-MM-DD, текущий выбор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(propertyID, query.Get("month"), query.Get("start"), query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /properties/{id}/calendar - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidMonth):
			h.logger.Warn("GET /properties/{id}/calendar - Invalid month: property_id=%s, month=%q", propertyID, useCaseReq.Month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, getCalendar.ErrInvalidSelection):
			h.logger.Warn("GET /properties/{id}/calendar - Invalid selection: property_id=%s, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, getCalendar.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/calendar - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		default:
			h.logger.Error("GET /properties/{id}/calendar - Failed to build calendar: property_id=%s, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/calendar - Calendar built: property_id=%s, month=%s, uncertain=%t",
		propertyID, result.Month, result.Uncertain)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
