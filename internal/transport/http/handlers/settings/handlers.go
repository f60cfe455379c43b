package settingshandler

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skiftlonn/internal/domain/audit"
	"skiftlonn/internal/domain/settings"
	"skiftlonn/internal/domain/wage"
	"skiftlonn/internal/transport/http/api"
	"skiftlonn/internal/transport/http/middleware"
	"skiftlonn/internal/transport/http/shared"
)

type Handler struct {
	Store *settings.Store
	Audit *audit.Service
}

func NewHandler(store *settings.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.handleGet)
	r.Put("/settings", h.handleSave)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	cfg, err := h.Store.Get(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load settings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cfg, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var cfg settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	if cfg.UsePreset {
		if _, ok := wage.PresetWageRates[cfg.TariffLevel]; !ok {
			validator.Add("tariffLevel", wage.ErrUnknownTariffLevel.Error())
		}
	} else if math.IsNaN(cfg.CustomWage) || math.IsInf(cfg.CustomWage, 0) || cfg.CustomWage < 0 {
		validator.Add("customWage", wage.ErrInvalidWageRate.Error())
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	// Custom bonus tables are filtered, not rejected; the user sees what
	// survived in the response.
	cfg.CustomBonuses = wage.ValidateBonuses(cfg.CustomBonuses)

	if err := h.Store.Save(r.Context(), user.UserID, cfg); err != nil {
		api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save settings", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "settings.save", "settings", user.UserID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), cfg)

	api.Success(w, cfg, middleware.GetRequestID(r.Context()))
}
