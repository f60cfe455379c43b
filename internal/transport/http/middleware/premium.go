package middleware

import (
	"context"
	"net/http"

	"skiftlonn/internal/transport/http/api"
)

// PremiumChecker reports whether a user has an active premium plan.
type PremiumChecker interface {
	IsPremium(ctx context.Context, userID string) (bool, error)
}

// RequirePremium gates an endpoint behind the paywall. Non-premium users
// get a 402 with a code the client uses to open the upgrade flow.
func RequirePremium(checker PremiumChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}

			premium, err := checker.IsPremium(r.Context(), user.UserID)
			if err != nil {
				api.Fail(w, http.StatusInternalServerError, "subscription_error", "subscription check failed", GetRequestID(r.Context()))
				return
			}
			if !premium {
				api.Fail(w, http.StatusPaymentRequired, "premium_required", "this feature requires a premium subscription", GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
