package wage

import "testing"

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency(187.46); got != "187,46 kr" {
		t.Fatalf("expected \"187,46 kr\", got %q", got)
	}
	if got := FormatCurrency(200); got != "200,00 kr" {
		t.Fatalf("expected \"200,00 kr\", got %q", got)
	}
}

func TestFormatCurrencyMatchesShiftTotal(t *testing.T) {
	shift := ShiftInput{StartTime: "10:00", EndTime: "14:00", Day: Weekday}
	result, err := CalculateShift(shift, RateSource{CustomWage: 100}, Tables{}, DefaultPolicy, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatCurrency(result.Total); got != "400,00 kr" {
		t.Fatalf("expected formatted total \"400,00 kr\", got %q", got)
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(5.5); got != "5,5 t" {
		t.Fatalf("expected \"5,5 t\", got %q", got)
	}
	if got := FormatHours(8); got != "8 t" {
		t.Fatalf("expected \"8 t\", got %q", got)
	}
}
