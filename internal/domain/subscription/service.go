package subscription

import (
	"context"
	"errors"
	"net/url"
)

var (
	ErrNoPremium           = errors.New("no premium subscription to cancel")
	ErrCheckoutUnavailable = errors.New("checkout is not configured")
)

// Service resolves plan limits and builds the hosted-checkout handoff.
// Payment itself happens on the external billing page; this side only
// hands out the link and records tier changes.
type Service struct {
	Store       *Store
	FreeLimits  Limits
	CheckoutURL string
}

func NewService(store *Store, freeLimits Limits, checkoutURL string) *Service {
	return &Service{Store: store, FreeLimits: freeLimits, CheckoutURL: checkoutURL}
}

// LimitsFor returns the caps for a user's current plan.
func (s *Service) LimitsFor(ctx context.Context, userID string) (Limits, error) {
	sub, err := s.Store.Get(ctx, userID)
	if err != nil {
		return Limits{}, err
	}
	return s.limitsForTier(sub.Tier, sub.Status), nil
}

func (s *Service) limitsForTier(tier, status string) Limits {
	if tier == TierPremium && status == StatusActive {
		return Limits{}
	}
	return s.FreeLimits
}

// CheckoutLink returns the hosted checkout URL with the user's reference
// attached so the billing page can report back who paid.
func (s *Service) CheckoutLink(userID string) (string, error) {
	if s.CheckoutURL == "" {
		return "", ErrCheckoutUnavailable
	}
	parsed, err := url.Parse(s.CheckoutURL)
	if err != nil {
		return "", ErrCheckoutUnavailable
	}
	query := parsed.Query()
	query.Set("client_reference_id", userID)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// IsPremium reports whether the user currently has an active premium plan.
func (s *Service) IsPremium(ctx context.Context, userID string) (bool, error) {
	sub, err := s.Store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.Tier == TierPremium && sub.Status == StatusActive, nil
}
