package student

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
	r.Get("/students", h.ListStudents)
	r.Post("/students", h.LinkStudent)
	r.Get("/students/{id}", h.GetStudent)
	r.Put("/students/{id}", h.UpdateStudent)
}

// ListStudents returns the guardian's roster, optionally narrowed by ?q=.
func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := auth.GetAccountID(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	query := r.URL.Query().Get("q")
	students, err := h.service.ListStudents(r.Context(), guardianID, query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordStudentsListViewed(r.Context())
	httpx.JSON(w, http.StatusOK, students)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := auth.GetAccountID(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stu, err := h.service.GetStudent(r.Context(), guardianID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordStudentViewed(r.Context())
	httpx.JSON(w, http.StatusOK, stu)
}

func (h *Handler) LinkStudent(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := auth.GetAccountID(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var stu Student
	if err := json.NewDecoder(r.Body).Decode(&stu); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&stu); err != nil {
		h.logger.Warn("student validation failed", "error", err)
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "linking student", "studentId", stu.StudentID)
	created, err := h.service.LinkStudent(r.Context(), guardianID, &stu)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := auth.GetAccountID(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var stu Student
	if err := json.NewDecoder(r.Body).Decode(&stu); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	stu.ID = chi.URLParam(r, "id")
	if err := h.validate.Struct(&stu); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "updating student", "id", stu.ID)
	if err := h.service.UpdateStudent(r.Context(), guardianID, &stu); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, stu)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrStudentNotFound):
		httpx.Error(w, http.StatusNotFound, "student not found")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNegativeBalance):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "student request failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
