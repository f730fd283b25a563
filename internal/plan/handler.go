package plan

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Tkay6677/lunchpay/internal/auth"
	"github.com/Tkay6677/lunchpay/internal/httpx"
	"github.com/Tkay6677/lunchpay/internal/student"
)

var ErrPlanNotFound = errors.New("plan not found")

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/payments/upcoming", h.Upcoming)
	r.Post("/plans", h.Subscribe)
	r.Delete("/plans/{id}", h.Cancel)
}

// SubscribeRequest starts a recurring plan for a student.
type SubscribeRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	PlanID    string `json:"planId" validate:"required"`
}

func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := auth.GetAccountID(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	upcoming, err := h.service.UpcomingPayments(r.Context(), guardianID, time.Now().UTC())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to project upcoming payments", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSON(w, http.StatusOK, upcoming)
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := auth.GetAccountID(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	planType, err := ParseType(req.PlanID)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "subscribing student to plan", "studentId", req.StudentID, "plan", planType)
	p, err := h.service.Subscribe(r.Context(), guardianID, req.StudentID, planType, time.Now().UTC())
	if err != nil {
		if errors.Is(err, student.ErrStudentNotFound) {
			httpx.Error(w, http.StatusNotFound, "student not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to subscribe", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := auth.GetAccountID(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.Cancel(r.Context(), guardianID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			httpx.Error(w, http.StatusNotFound, "plan not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to cancel plan", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
