package wage

import (
	"errors"
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTimeToMinutes(t *testing.T) {
	minutes, err := TimeToMinutes("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 570 {
		t.Fatalf("expected 570 minutes, got %d", minutes)
	}

	minutes, err = TimeToMinutes("00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 0 {
		t.Fatalf("expected 0 minutes, got %d", minutes)
	}
}

func TestTimeToMinutesRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "9", "24:00", "12:60", "ab:cd", "12.30"} {
		if _, err := TimeToMinutes(raw); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Fatalf("expected ErrInvalidTimeFormat for %q, got %v", raw, err)
		}
	}
}

func TestOverlap(t *testing.T) {
	if got := Overlap(0, 100, 50, 150); got != 50 {
		t.Fatalf("expected overlap 50, got %d", got)
	}
	if got := Overlap(0, 10, 20, 30); got != 0 {
		t.Fatalf("expected overlap 0, got %d", got)
	}
	if got := Overlap(50, 150, 0, 100); got != 50 {
		t.Fatalf("expected overlap 50 regardless of order, got %d", got)
	}
}

func TestRatePresetVsCustom(t *testing.T) {
	rate, err := Rate(RateSource{UsePreset: true, TariffLevel: 3, CustomWage: 999}, PresetWageRates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 187.46 {
		t.Fatalf("expected preset rate 187.46, got %v", rate)
	}

	rate, err = Rate(RateSource{UsePreset: false, TariffLevel: 3, CustomWage: 999}, PresetWageRates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 999 {
		t.Fatalf("expected custom rate 999, got %v", rate)
	}
}

func TestRateUnknownTariffLevel(t *testing.T) {
	_, err := Rate(RateSource{UsePreset: true, TariffLevel: 42}, PresetWageRates)
	if !errors.Is(err, ErrUnknownTariffLevel) {
		t.Fatalf("expected ErrUnknownTariffLevel, got %v", err)
	}
}

func TestRateRejectsInvalidCustomWage(t *testing.T) {
	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := Rate(RateSource{CustomWage: bad}, nil)
		if !errors.Is(err, ErrInvalidWageRate) {
			t.Fatalf("expected ErrInvalidWageRate for %v, got %v", bad, err)
		}
	}
}

func TestBonusSegmentMidnightWrap(t *testing.T) {
	segments := []BonusSegment{{From: "23:00", To: "02:00", Rate: 50}}
	start, _ := TimeToMinutes("20:00")
	end, _ := TimeToMinutes("23:59")

	bonus, err := Bonus(start, end, segments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only the 23:00-23:59 portion overlaps; the shift never reaches the
	// wrapped region.
	if !approx(bonus, 59.0/60*50) {
		t.Fatalf("expected bonus for 59 minutes, got %v", bonus)
	}
}

func TestBonusAccumulatesAcrossSegments(t *testing.T) {
	segments := []BonusSegment{
		{From: "18:00", To: "21:00", Rate: 22},
		{From: "21:00", To: "23:59", Rate: 45},
	}
	start, _ := TimeToMinutes("17:00")
	end, _ := TimeToMinutes("22:00")

	bonus, err := Bonus(start, end, segments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(bonus, 3*22+1*45) {
		t.Fatalf("expected 111, got %v", bonus)
	}
}

func TestCalculateShiftPauseDeducted(t *testing.T) {
	shift := ShiftInput{StartTime: "09:00", EndTime: "15:00", Day: Weekday}
	src := RateSource{CustomWage: 200}

	result, err := CalculateShift(shift, src, Tables{}, DefaultPolicy, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PaidHours != 5.5 {
		t.Fatalf("expected paid hours 5.5, got %v", result.PaidHours)
	}
	if !result.PauseDeducted {
		t.Fatal("expected pause to be deducted for a 6 hour shift")
	}
	if result.TotalHours != 6 {
		t.Fatalf("expected total hours 6, got %v", result.TotalHours)
	}
	if result.BaseWage != 5.5*200 {
		t.Fatalf("expected base wage 1100, got %v", result.BaseWage)
	}
}

func TestCalculateShiftExactThresholdNotDeducted(t *testing.T) {
	shift := ShiftInput{StartTime: "09:00", EndTime: "14:30", Day: Weekday}
	src := RateSource{CustomWage: 200}

	result, err := CalculateShift(shift, src, Tables{}, DefaultPolicy, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PaidHours != 5.5 {
		t.Fatalf("expected paid hours 5.5, got %v", result.PaidHours)
	}
	if result.PauseDeducted {
		t.Fatal("a shift of exactly 5.5 hours must not be deducted")
	}
}

func TestCalculateShiftPauseDisabled(t *testing.T) {
	shift := ShiftInput{StartTime: "09:00", EndTime: "17:00", Day: Weekday}
	src := RateSource{CustomWage: 100}

	result, err := CalculateShift(shift, src, Tables{}, DefaultPolicy, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PaidHours != 8 {
		t.Fatalf("expected paid hours 8, got %v", result.PaidHours)
	}
	if result.PauseDeducted {
		t.Fatal("expected no deduction when the policy flag is off")
	}
}

func TestCalculateShiftCrossesMidnight(t *testing.T) {
	shift := ShiftInput{StartTime: "22:00", EndTime: "02:00", Day: Weekday}
	src := RateSource{UsePreset: true, TariffLevel: 3}

	result, err := CalculateShift(shift, src, PresetTables, DefaultPolicy, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalHours != 4 {
		t.Fatalf("expected 4 hours across midnight, got %v", result.TotalHours)
	}
	if result.PaidHours <= 0 || result.BaseWage <= 0 {
		t.Fatalf("expected positive pay for a midnight-crossing shift, got %+v", result)
	}
}

func TestCalculateShiftDeductionShrinksBonusWindow(t *testing.T) {
	// 15:00-22:00 weekday at 100 kr/h flat. Deduction takes the tail from
	// 22:00 back to 21:30, so the 21:00-23:59 window only earns 30 minutes.
	tables := Tables{Bonuses: BonusTable{
		Weekday: {{From: "21:00", To: "23:59", Rate: 60}},
	}}
	shift := ShiftInput{StartTime: "15:00", EndTime: "22:00", Day: Weekday}

	result, err := CalculateShift(shift, RateSource{CustomWage: 100}, tables, DefaultPolicy, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.PauseDeducted {
		t.Fatal("expected deduction for a 7 hour shift")
	}
	if !approx(result.Bonus, 0.5*60) {
		t.Fatalf("expected 30 bonus minutes at rate 60, got %v", result.Bonus)
	}
}

func TestCalculateShiftDerivesDayTypeFromDate(t *testing.T) {
	tables := Tables{Bonuses: BonusTable{
		Sunday: {{From: "00:00", To: "23:59", Rate: 96}},
	}}
	// 2025-01-05 is a Sunday.
	shift := ShiftInput{
		Date:      time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "14:00",
	}

	result, err := CalculateShift(shift, RateSource{CustomWage: 100}, tables, DefaultPolicy, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(result.Bonus, 4*96) {
		t.Fatalf("expected sunday supplement for 4 hours, got %v", result.Bonus)
	}
}

func TestCalculateShiftRejectsMalformedTimes(t *testing.T) {
	shift := ShiftInput{StartTime: "9am", EndTime: "17:00", Day: Weekday}
	_, err := CalculateShift(shift, RateSource{CustomWage: 100}, Tables{}, DefaultPolicy, false)
	if !errors.Is(err, ErrInvalidTimeFormat) {
		t.Fatalf("expected ErrInvalidTimeFormat, got %v", err)
	}
}

func TestCalculateShiftIdempotent(t *testing.T) {
	shift := ShiftInput{StartTime: "16:00", EndTime: "23:00", Day: Saturday}
	src := RateSource{UsePreset: true, TariffLevel: 3}

	first, err := CalculateShift(shift, src, PresetTables, DefaultPolicy, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CalculateShift(shift, src, PresetTables, DefaultPolicy, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestCalculateMonthStatsFiltersByMonth(t *testing.T) {
	january := time.Date(DefaultPolicy.Year, 1, 10, 0, 0, 0, 0, time.UTC)
	february := time.Date(DefaultPolicy.Year, 2, 10, 0, 0, 0, 0, time.UTC)
	shifts := []ShiftInput{
		{Date: january, StartTime: "08:00", EndTime: "12:00", Day: Weekday},
		{Date: january, StartTime: "12:00", EndTime: "16:00", Day: Weekday},
		{Date: february, StartTime: "08:00", EndTime: "16:00", Day: Weekday},
	}

	stats := CalculateMonthStats(shifts, 1, RateSource{CustomWage: 100}, Tables{}, DefaultPolicy, false)
	if stats.ShiftCount != 2 {
		t.Fatalf("expected 2 january shifts, got %d", stats.ShiftCount)
	}
	if stats.TotalHours != 8 {
		t.Fatalf("expected 8 total hours, got %v", stats.TotalHours)
	}
	if stats.TotalAmount != 800 {
		t.Fatalf("expected total amount 800, got %v", stats.TotalAmount)
	}
}

func TestCalculateMonthStatsIgnoresOtherYears(t *testing.T) {
	shifts := []ShiftInput{
		{Date: time.Date(DefaultPolicy.Year-1, 3, 1, 0, 0, 0, 0, time.UTC), StartTime: "08:00", EndTime: "12:00", Day: Weekday},
	}
	stats := CalculateMonthStats(shifts, 3, RateSource{CustomWage: 100}, Tables{}, DefaultPolicy, false)
	if stats.ShiftCount != 0 {
		t.Fatalf("expected shifts outside the reference year to be excluded, got %d", stats.ShiftCount)
	}
}

func TestCalculateMonthStatsSkipsMalformedShifts(t *testing.T) {
	date := time.Date(DefaultPolicy.Year, 6, 2, 0, 0, 0, 0, time.UTC)
	shifts := []ShiftInput{
		{Date: date, StartTime: "08:00", EndTime: "12:00", Day: Weekday},
		{Date: date, StartTime: "broken", EndTime: "12:00", Day: Weekday},
	}

	stats := CalculateMonthStats(shifts, 6, RateSource{CustomWage: 100}, Tables{}, DefaultPolicy, false)
	if stats.ShiftCount != 1 {
		t.Fatalf("expected 1 good shift, got %d", stats.ShiftCount)
	}
	if stats.Skipped != 1 {
		t.Fatalf("expected 1 skipped shift, got %d", stats.Skipped)
	}
	if stats.TotalAmount != 400 {
		t.Fatalf("expected totals from the good shift only, got %v", stats.TotalAmount)
	}
}

func TestCalculateShiftNonNegative(t *testing.T) {
	shifts := []ShiftInput{
		{StartTime: "00:00", EndTime: "00:30", Day: Sunday},
		{StartTime: "23:00", EndTime: "23:30", Day: Weekday},
		{StartTime: "06:00", EndTime: "06:00", Day: Saturday}, // normalized to 24h
	}
	for _, shift := range shifts {
		result, err := CalculateShift(shift, RateSource{UsePreset: true, TariffLevel: 1}, PresetTables, DefaultPolicy, true)
		if err != nil {
			t.Fatalf("unexpected error for %+v: %v", shift, err)
		}
		if result.PaidHours < 0 || result.BaseWage < 0 || result.Bonus < 0 {
			t.Fatalf("expected non-negative results, got %+v", result)
		}
	}
}
