package audithandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"folha/internal/domain/audit"
	"folha/internal/transport/http/api"
)

type Handler struct {
	Audit *audit.Service
}

func NewHandler(auditor *audit.Service) *Handler {
	return &Handler{Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		ActorID:    r.URL.Query().Get("actorId"),
	}

	events, err := h.Audit.List(r.Context(), filter, limit, offset)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "AUDIT_LIST_FAILED", "failed to list audit events")
		return
	}
	api.Success(w, r, events)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
