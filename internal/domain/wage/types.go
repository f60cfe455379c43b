package wage

import "time"

// DayType selects which bonus-segment list applies to a shift.
type DayType string

const (
	Weekday  DayType = "weekday"
	Saturday DayType = "saturday"
	Sunday   DayType = "sunday"
)

// DayTypeOf derives the day type from a calendar date.
func DayTypeOf(date time.Time) DayType {
	switch date.Weekday() {
	case time.Saturday:
		return Saturday
	case time.Sunday:
		return Sunday
	default:
		return Weekday
	}
}

// ParseDayType accepts the canonical string form of a day type.
func ParseDayType(raw string) (DayType, error) {
	switch DayType(raw) {
	case Weekday, Saturday, Sunday:
		return DayType(raw), nil
	}
	return "", ErrUnknownDayType
}

// BonusSegment is a time-of-day window that pays an extra amount per hour
// worked inside it. A window whose end is numerically at or before its
// start wraps past midnight.
type BonusSegment struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

// BonusTable maps a day type to its supplement windows. Segments are
// additive: overlapping segments each contribute independently.
type BonusTable map[DayType][]BonusSegment

// Tables carries the wage-rate and bonus configuration for a calculation.
// The engine treats both as opaque input; callers choose the preset tables
// or a user-supplied set.
type Tables struct {
	WageRates map[int]float64
	Bonuses   BonusTable
}

// RateSource selects between the preset tariff table and a flat custom wage.
type RateSource struct {
	UsePreset   bool
	TariffLevel int
	CustomWage  float64
}

// Policy holds the break-deduction rule and the reference year used when
// bucketing shifts into months.
type Policy struct {
	PauseThreshold float64
	PauseDeduction float64
	Year           int
}

// ShiftInput is the engine's view of one work period. EndTime may be a
// wall-clock time earlier than StartTime, meaning the shift crosses
// midnight; the engine normalizes that itself.
type ShiftInput struct {
	Date      time.Time
	StartTime string
	EndTime   string
	Day       DayType
}

// ShiftResult is the per-shift breakdown. Hours is PaidHours rounded to
// two decimals for display; Total keeps full precision.
type ShiftResult struct {
	Hours         float64 `json:"hours"`
	TotalHours    float64 `json:"totalHours"`
	PaidHours     float64 `json:"paidHours"`
	PauseDeducted bool    `json:"pauseDeducted"`
	BaseWage      float64 `json:"baseWage"`
	Bonus         float64 `json:"bonus"`
	Total         float64 `json:"total"`
}

// MonthStats aggregates shift results for one calendar month. Skipped
// counts shifts that failed to calculate and were left out of the sums.
type MonthStats struct {
	TotalHours  float64 `json:"totalHours"`
	TotalBase   float64 `json:"totalBase"`
	TotalBonus  float64 `json:"totalBonus"`
	TotalAmount float64 `json:"totalAmount"`
	ShiftCount  int     `json:"shiftCount"`
	Skipped     int     `json:"skipped"`
}
