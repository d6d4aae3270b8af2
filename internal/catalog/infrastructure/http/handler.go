package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/cafe-amigas/storefront/internal/catalog/application"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("catalog-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/menu", h.listMenu)
	r.Get("/menu/search", h.searchMenu)

	return r
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "ListMenu")
	defer span.End()

	writeJSON(w, http.StatusOK, h.service.Items())
}

func (h *Handler) searchMenu(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "SearchMenu")
	defer span.End()

	writeJSON(w, http.StatusOK, h.service.Search(r.URL.Query().Get("q")))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
