package checkout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Tkay6677/lunchpay/internal/auth"
	"github.com/Tkay6677/lunchpay/internal/httpx"
	"github.com/Tkay6677/lunchpay/internal/metrics"
	"github.com/Tkay6677/lunchpay/internal/plan"
	"github.com/Tkay6677/lunchpay/internal/student"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  m,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/payments/checkout", h.QuickPay)
}

// QuickPay initiates a one-off payment for a student on one of the fixed
// plans and returns the hosted checkout redirect.
func (h *Handler) QuickPay(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := auth.GetAccountID(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req QuickPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, ErrMissingSelection.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "initiating quick payment", "studentId", req.StudentID, "plan", req.PlanID)
	resp, err := h.service.QuickPay(r.Context(), guardianID, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordPaymentInitiated(r.Context())
	httpx.JSON(w, http.StatusAccepted, resp)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrMissingSelection), errors.Is(err, plan.ErrUnknownType):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, student.ErrStudentNotFound):
		httpx.Error(w, http.StatusNotFound, "student not found")
	case errors.Is(err, ErrStudentInactive):
		httpx.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInitiationTimeout):
		h.metrics.RecordPaymentFailed(r.Context())
		httpx.Error(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, ErrInitiationFailed):
		h.metrics.RecordPaymentFailed(r.Context())
		httpx.Error(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "quick payment failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
