package shiftshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"skiftlonn/internal/domain/audit"
	"skiftlonn/internal/domain/shifts"
	"skiftlonn/internal/domain/wage"
	"skiftlonn/internal/transport/http/api"
	"skiftlonn/internal/transport/http/middleware"
	"skiftlonn/internal/transport/http/shared"
)

type Handler struct {
	Service *shifts.Service
	Audit   *audit.Service
}

func NewHandler(service *shifts.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/shifts", h.handleList)
	r.Post("/shifts", h.handleCreate)
	r.Post("/shifts/demo", h.handleSeedDemo)
	r.Get("/shifts/{shiftID}", h.handleGet)
	r.Put("/shifts/{shiftID}", h.handleUpdate)
	r.Delete("/shifts/{shiftID}", h.handleDelete)
	r.Get("/shifts/{shiftID}/calculation", h.handleCalculate)
	r.Get("/stats/{month}", h.handleMonthStats)
}

type shiftPayload struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	DayType    string `json:"dayType"`
}

func (p shiftPayload) toShift(v *shared.Validator) shifts.Shift {
	date, _ := v.Date("date", p.Date)
	v.Time("startTime", p.StartTime)
	v.Time("endTime", p.EndTime)
	return shifts.Shift{
		EmployeeID: strings.TrimSpace(p.EmployeeID),
		Date:       date,
		StartTime:  strings.TrimSpace(p.StartTime),
		EndTime:    strings.TrimSpace(p.EndTime),
		Day:        wage.DayType(strings.TrimSpace(p.DayType)),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var (
		list []shifts.Shift
		err  error
	)
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, convErr := strconv.Atoi(raw)
		if convErr != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be a number between 1 and 12", middleware.GetRequestID(r.Context()))
			return
		}
		list, err = h.Service.ListMonth(r.Context(), user.UserID, month)
	} else {
		list, err = h.Service.List(r.Context(), user.UserID)
	}
	if errors.Is(err, shifts.ErrBadMonth) {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be a number between 1 and 12", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list shifts", middleware.GetRequestID(r.Context()))
		return
	}
	if list == nil {
		list = []shifts.Shift{}
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	shift, err := h.Service.Get(r.Context(), user.UserID, chi.URLParam(r, "shiftID"))
	if errors.Is(err, shifts.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "shift not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load shift", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, shift, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload shiftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	shift := payload.toShift(validator)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.Create(r.Context(), user.UserID, shift)
	if errors.Is(err, shifts.ErrShiftLimit) {
		api.Fail(w, http.StatusPaymentRequired, "premium_required", shifts.ErrShiftLimit.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, wage.ErrInvalidTimeFormat) || errors.Is(err, wage.ErrUnknownDayType) {
		api.Fail(w, http.StatusBadRequest, "invalid_shift", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create shift", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "shift.create", "shift", id,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), payload)

	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	shiftID := chi.URLParam(r, "shiftID")

	var payload shiftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	shift := payload.toShift(validator)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	err := h.Service.Update(r.Context(), user.UserID, shiftID, shift)
	if errors.Is(err, shifts.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "shift not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, wage.ErrInvalidTimeFormat) || errors.Is(err, wage.ErrUnknownDayType) {
		api.Fail(w, http.StatusBadRequest, "invalid_shift", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update shift", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "shift.update", "shift", shiftID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), payload)

	api.Success(w, map[string]string{"id": shiftID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	shiftID := chi.URLParam(r, "shiftID")

	err := h.Service.Delete(r.Context(), user.UserID, shiftID)
	if errors.Is(err, shifts.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "shift not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete shift", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "shift.delete", "shift", shiftID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil)

	api.Success(w, map[string]string{"id": shiftID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.CalculateOne(r.Context(), user.UserID, chi.URLParam(r, "shiftID"))
	if errors.Is(err, shifts.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "shift not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		// A stored shift that the engine rejects surfaces as a client
		// error so the frontend can point at the bad field.
		api.Fail(w, http.StatusUnprocessableEntity, "calculation_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMonthStats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be a number between 1 and 12", middleware.GetRequestID(r.Context()))
		return
	}

	stats, err := h.Service.MonthStats(r.Context(), user.UserID, month)
	if errors.Is(err, shifts.ErrBadMonth) {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be a number between 1 and 12", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "stats_failed", "failed to calculate month stats", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

type demoPayload struct {
	Month int `json:"month"`
	Count int `json:"count"`
}

func (h *Handler) handleSeedDemo(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload demoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Count <= 0 || payload.Count > 50 {
		payload.Count = 10
	}

	created, err := h.Service.SeedDemo(r.Context(), user.UserID, payload.Month, payload.Count)
	if errors.Is(err, shifts.ErrBadMonth) {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be a number between 1 and 12", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "demo_failed", "failed to seed demo shifts", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "shift.seed_demo", "shift", "",
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), map[string]int{"created": created})

	api.Created(w, map[string]int{"created": created}, middleware.GetRequestID(r.Context()))
}
