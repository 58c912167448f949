package load_history

import (
	"net/http"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/api/middleware"
)

const (
	msgMissingOperatorID  = "identificação do operador ausente"
	msgHistoryUnavailable = "não foi possível carregar o histórico, tente novamente"
)

type Handler struct {
	sessions SessionProvider
	logger   Logger
}

func NewHandler(sessions SessionProvider, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/v1/reservations/history/next
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/history/next - Missing operator ID")
		handlers.RespondUnauthorized(w, msgMissingOperatorID)
		return
	}

	result, err := h.sessions.Session(operatorID).LoadMore(r.Context())
	if err != nil {
		// Загруженная история не меняется, повтор запросит ту же страницу
		h.logger.Warn("POST /reservations/history/next - Failed to load page: operator=%s, error=%v", operatorID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgHistoryUnavailable)
		return
	}

	h.logger.Info("POST /reservations/history/next - Page loaded: operator=%s, added=%d, has_more=%t, skipped=%t",
		operatorID, result.Added, result.HasMore, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, FromLoadResult(result))
}
