package summary

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Tkay6677/lunchpay/internal/auth"
	"github.com/Tkay6677/lunchpay/internal/httpx"
	"github.com/Tkay6677/lunchpay/internal/metrics"
)

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: m,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.GetSummary)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := auth.GetAccountID(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	s, err := h.service.Summarize(r.Context(), guardianID, time.Now().UTC())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build summary", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.RecordSummaryViewed(r.Context())
	httpx.JSON(w, http.StatusOK, s)
}
