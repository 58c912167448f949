package list_reservations

import (
	"net/http"
	"strings"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
	"github.com/m04kA/rental-guide-service/internal/api/middleware"
	"github.com/m04kA/rental-guide-service/internal/service/feed"
)

const (
	msgMissingOperatorID  = "identificação do operador ausente"
	msgHistoryUnavailable = "não foi possível carregar o histórico"
)

type Handler struct {
	sessions SessionProvider
	clock    Clock
	logger   Logger
}

func NewHandler(sessions SessionProvider, clock Clock, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		clock:    clock,
		logger:   logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: q (поиск по имени гостя и заметке), propertyId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing operator ID")
		handlers.RespondUnauthorized(w, msgMissingOperatorID)
		return
	}

	filter := feed.Filter{
		Query:      r.URL.Query().Get("q"),
		PropertyID: strings.TrimSpace(r.URL.Query().Get("propertyId")),
	}

	session := h.sessions.Session(operatorID)
	today := h.clock.Today()
	view := session.View(today, filter)

	h.logger.Info("GET /reservations - Feed built: operator=%s, total=%d, has_more=%t",
		operatorID, view.Total(), view.HasMore)
	handlers.RespondJSON(w, http.StatusOK, FromView(today, view, session.LastError()))
}
