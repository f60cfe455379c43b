package subscription

import (
	"strings"
	"testing"
)

func TestLimitsAllowShifts(t *testing.T) {
	free := Limits{MaxShifts: 20, MaxEmployees: 3}
	if !free.AllowsShifts(19) {
		t.Fatal("expected the 20th shift to be allowed")
	}
	if free.AllowsShifts(20) {
		t.Fatal("expected the 21st shift to be blocked")
	}

	premium := Limits{}
	if !premium.AllowsShifts(100000) {
		t.Fatal("expected premium to be unlimited")
	}
	if !premium.Unlimited() {
		t.Fatal("expected zero limits to report unlimited")
	}
}

func TestLimitsAllowEmployees(t *testing.T) {
	free := Limits{MaxShifts: 20, MaxEmployees: 3}
	if !free.AllowsEmployees(2) {
		t.Fatal("expected the 3rd employee to be allowed")
	}
	if free.AllowsEmployees(3) {
		t.Fatal("expected the 4th employee to be blocked")
	}
}

func TestLimitsForTier(t *testing.T) {
	svc := &Service{FreeLimits: Limits{MaxShifts: 20, MaxEmployees: 3}}

	if got := svc.limitsForTier(TierPremium, StatusActive); !got.Unlimited() {
		t.Fatalf("expected active premium to be unlimited, got %+v", got)
	}
	if got := svc.limitsForTier(TierPremium, StatusCanceled); got.MaxShifts != 20 {
		t.Fatalf("expected canceled premium to fall back to free limits, got %+v", got)
	}
	if got := svc.limitsForTier(TierFree, StatusActive); got.MaxEmployees != 3 {
		t.Fatalf("expected free limits, got %+v", got)
	}
}

func TestCheckoutLink(t *testing.T) {
	svc := &Service{CheckoutURL: "https://pay.example.com/session?plan=premium"}

	link, err := svc.CheckoutLink("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(link, "client_reference_id=user-123") {
		t.Fatalf("expected user reference in link, got %s", link)
	}
	if !strings.Contains(link, "plan=premium") {
		t.Fatalf("expected original query to survive, got %s", link)
	}
}

func TestCheckoutLinkUnconfigured(t *testing.T) {
	svc := &Service{}
	if _, err := svc.CheckoutLink("user-123"); err != ErrCheckoutUnavailable {
		t.Fatalf("expected ErrCheckoutUnavailable, got %v", err)
	}
}
