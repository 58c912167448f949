package export_calendar

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	exportCalendar "github.com/m04kA/rental-guide-service/internal/usecase/export_calendar"
)

const msgPropertyNotFound = "imóvel não encontrado"

type Handler struct {
	useCase ExportCalendarUseCase
	logger  Logger
}

func NewHandler(useCase ExportCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/calendar.ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	result, err := h.useCase.Execute(r.Context(), &exportCalendar.Request{PropertyID: propertyID})
	if err != nil {
		switch {
		case errors.Is(err, exportCalendar.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/calendar.ics - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		default:
			h.logger.Error("GET /properties/{id}/calendar.ics - Failed to export: property_id=%s, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, result.Body); err != nil {
		h.logger.Warn("GET /properties/{id}/calendar.ics - Failed to write body: property_id=%s, error=%v", propertyID, err)
		return
	}

	h.logger.Info("GET /properties/{id}/calendar.ics - Exported: property_id=%s, events=%d", propertyID, result.Events)
}
