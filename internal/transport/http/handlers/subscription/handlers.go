package subscriptionhandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skiftlonn/internal/domain/audit"
	"skiftlonn/internal/domain/subscription"
	"skiftlonn/internal/transport/http/api"
	"skiftlonn/internal/transport/http/middleware"
	"skiftlonn/internal/transport/http/shared"
)

const defaultPeriod = 31 * 24 * time.Hour

type Handler struct {
	Service *subscription.Service
	Audit   *audit.Service
}

func NewHandler(service *subscription.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/subscription", h.handleGet)
	r.Get("/subscription/checkout", h.handleCheckout)
	r.Post("/subscription/activate", h.handleActivate)
	r.Post("/subscription/cancel", h.handleCancel)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	sub, err := h.Service.Store.Get(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load subscription", middleware.GetRequestID(r.Context()))
		return
	}
	limits := h.Service.FreeLimits
	if sub.Tier == subscription.TierPremium && sub.Status == subscription.StatusActive {
		limits = subscription.Limits{}
	}
	api.Success(w, map[string]any{
		"subscription": sub,
		"limits":       limits,
		"unlimited":    limits.Unlimited(),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	link, err := h.Service.CheckoutLink(user.UserID)
	if errors.Is(err, subscription.ErrCheckoutUnavailable) {
		api.Fail(w, http.StatusServiceUnavailable, "checkout_unavailable", "checkout is not configured", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "checkout_failed", "failed to build checkout link", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"url": link}, middleware.GetRequestID(r.Context()))
}

type activatePayload struct {
	PeriodEnd string `json:"periodEnd"`
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload activatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	periodEnd := time.Now().Add(defaultPeriod)
	if payload.PeriodEnd != "" {
		parsed, err := shared.ParseDate(payload.PeriodEnd)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "periodEnd must be a valid date", middleware.GetRequestID(r.Context()))
			return
		}
		periodEnd = parsed
	}

	if err := h.Service.Store.Activate(r.Context(), user.UserID, periodEnd); err != nil {
		api.Fail(w, http.StatusInternalServerError, "activate_failed", "failed to activate subscription", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "subscription.activate", "subscription", user.UserID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), map[string]string{"periodEnd": periodEnd.Format(time.RFC3339)})

	api.Success(w, map[string]string{"tier": subscription.TierPremium}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.Store.Cancel(r.Context(), user.UserID)
	if errors.Is(err, subscription.ErrNoPremium) {
		api.Fail(w, http.StatusConflict, "no_premium", subscription.ErrNoPremium.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cancel_failed", "failed to cancel subscription", middleware.GetRequestID(r.Context()))
		return
	}

	_ = h.Audit.Record(r.Context(), user.UserID, "subscription.cancel", "subscription", user.UserID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil)

	api.Success(w, map[string]string{"status": subscription.StatusCanceled}, middleware.GetRequestID(r.Context()))
}
