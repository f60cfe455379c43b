package subscription

import "time"

const (
	TierFree    = "free"
	TierPremium = "premium"

	StatusActive   = "active"
	StatusCanceled = "canceled"
	StatusLapsed   = "lapsed"
)

type Subscription struct {
	UserID           string     `json:"userId"`
	Tier             string     `json:"tier"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"currentPeriodEnd,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Limits caps what a plan may hold. Zero means unlimited.
type Limits struct {
	MaxShifts    int `json:"maxShifts"`
	MaxEmployees int `json:"maxEmployees"`
}

// Unlimited reports whether the limit set places no caps.
func (l Limits) Unlimited() bool {
	return l.MaxShifts == 0 && l.MaxEmployees == 0
}

// AllowsShifts reports whether a plan with these limits can hold count
// shifts plus one more.
func (l Limits) AllowsShifts(count int) bool {
	return l.MaxShifts == 0 || count < l.MaxShifts
}

// AllowsEmployees reports whether a plan with these limits can hold count
// employees plus one more.
func (l Limits) AllowsEmployees(count int) bool {
	return l.MaxEmployees == 0 || count < l.MaxEmployees
}
