package employeeshandler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"skiftlonn/internal/domain/audit"
	"skiftlonn/internal/domain/employees"
	"skiftlonn/internal/domain/subscription"
	"skiftlonn/internal/domain/wage"
	"skiftlonn/internal/transport/http/api"
	"skiftlonn/internal/transport/http/middleware"
	"skiftlonn/internal/transport/http/shared"
)

type Handler struct {
	Store *employees.Store
	Subs  *subscription.Service
	Audit *audit.Service
}

func NewHandler(store *employees.Store, subs *subscription.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Subs: subs, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleList)
	r.Post("/employees", h.handleCreate)
	r.Get("/employees/{employeeID}", h.handleGet)
	r.Put("/employees/{employeeID}", h.handleUpdate)
	r.Delete("/employees/{employeeID}", h.handleDelete)
}

type employeePayload struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	TariffLevel int      `json:"tariffLevel"`
	CustomWage  *float64 `json:"customWage"`
	Active      *bool    `json:"active"`
}

func (p employeePayload) toEmployee(v *shared.Validator) employees.Employee {
	name := strings.TrimSpace(p.Name)
	v.Required("name", name, employees.ErrNameRequired.Error())
	if p.CustomWage != nil {
		if math.IsNaN(*p.CustomWage) || math.IsInf(*p.CustomWage, 0) || *p.CustomWage < 0 {
			v.Add("customWage", employees.ErrNegativeWage.Error())
		}
	} else if _, ok := wage.PresetWageRates[p.TariffLevel]; !ok {
		v.Add("tariffLevel", employees.ErrInvalidTariff.Error())
	}
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return employees.Employee{
		Name:        name,
		Email:       strings.ToLower(strings.TrimSpace(p.Email)),
		TariffLevel: p.TariffLevel,
		CustomWage:  p.CustomWage,
		Active:      active,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	list, err := h.Store.List(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	if list == nil {
		list = []employees.Employee{}
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Store.Get(r.Context(), user.UserID, chi.URLParam(r, "employeeID"))
	if errors.Is(err, employees.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	emp := payload.toEmployee(validator)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	limits, err := h.Subs.LimitsFor(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	count, err := h.Store.Count(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	if !limits.AllowsEmployees(count) {
		api.Fail(w, http.StatusPaymentRequired, "premium_required", employees.ErrEmployeeLimit.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.Create(r.Context(), user.UserID, emp)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "employee.create", "employee", id,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), map[string]string{"name": emp.Name})

	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	emp := payload.toEmployee(validator)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	err := h.Store.Update(r.Context(), user.UserID, employeeID, emp)
	if errors.Is(err, employees.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "employee.update", "employee", employeeID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), map[string]string{"name": emp.Name})

	api.Success(w, map[string]string{"id": employeeID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	inUse, err := h.Store.HasShifts(r.Context(), user.UserID, employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	if inUse {
		api.Fail(w, http.StatusConflict, "employee_in_use", employees.ErrEmployeeInUse.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	err = h.Store.Delete(r.Context(), user.UserID, employeeID)
	if errors.Is(err, employees.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "employee.delete", "employee", employeeID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil)

	api.Success(w, map[string]string{"id": employeeID}, middleware.GetRequestID(r.Context()))
}
