package wage

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// TimeToMinutes parses a 24-hour "HH:MM" string to minutes since midnight.
func TimeToMinutes(raw string) (int, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}
	return hour*60 + minute, nil
}

// Overlap returns the overlap in minutes of two half-open intervals on a
// shared minute axis, clamped to zero.
func Overlap(aStart, aEnd, bStart, bEnd int) int {
	low := aStart
	if bStart > low {
		low = bStart
	}
	high := aEnd
	if bEnd < high {
		high = bEnd
	}
	if high <= low {
		return 0
	}
	return high - low
}

// Bonus accumulates supplement pay for a shift spanning [startMin, endMin)
// on the minute axis. A segment whose end is at or before its start wraps
// past midnight. Segments are independent and additive.
func Bonus(startMin, endMin int, segments []BonusSegment) (float64, error) {
	var total float64
	for _, seg := range segments {
		from, err := TimeToMinutes(seg.From)
		if err != nil {
			return 0, fmt.Errorf("bonus segment from: %w", err)
		}
		to, err := TimeToMinutes(seg.To)
		if err != nil {
			return 0, fmt.Errorf("bonus segment to: %w", err)
		}
		if to <= from {
			to += minutesPerDay
		}
		minutes := Overlap(startMin, endMin, from, to)
		total += float64(minutes) / 60 * seg.Rate
	}
	return total, nil
}

// Rate resolves the effective hourly wage from the active source.
func Rate(src RateSource, rates map[int]float64) (float64, error) {
	if src.UsePreset {
		rate, ok := rates[src.TariffLevel]
		if !ok {
			return 0, fmt.Errorf("%w: %d", ErrUnknownTariffLevel, src.TariffLevel)
		}
		return rate, nil
	}
	if math.IsNaN(src.CustomWage) || math.IsInf(src.CustomWage, 0) || src.CustomWage < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWageRate, src.CustomWage)
	}
	return src.CustomWage, nil
}

// CalculateShift computes the hours and pay breakdown for one shift.
// An end time at or before the start time is treated as crossing midnight
// and normalized by adding 24 hours. When pauseDeduction is on and the raw
// duration exceeds the policy threshold, half an hour of paid time is
// removed and the bonus window shrinks by the same 30 minutes so the
// unpaid break does not earn supplement in the tail of the shift.
func CalculateShift(shift ShiftInput, src RateSource, tables Tables, policy Policy, pauseDeduction bool) (ShiftResult, error) {
	startMin, err := TimeToMinutes(shift.StartTime)
	if err != nil {
		return ShiftResult{}, fmt.Errorf("start time: %w", err)
	}
	endMin, err := TimeToMinutes(shift.EndTime)
	if err != nil {
		return ShiftResult{}, fmt.Errorf("end time: %w", err)
	}
	if endMin <= startMin {
		endMin += minutesPerDay
	}

	totalHours := float64(endMin-startMin) / 60
	paidHours := totalHours
	bonusEnd := endMin
	deducted := false
	if pauseDeduction && totalHours > policy.PauseThreshold {
		paidHours -= policy.PauseDeduction
		bonusEnd -= int(policy.PauseDeduction * 60)
		deducted = true
	}

	rate, err := Rate(src, tables.WageRates)
	if err != nil {
		return ShiftResult{}, err
	}
	baseWage := paidHours * rate

	day := shift.Day
	if day == "" {
		day = DayTypeOf(shift.Date)
	}
	bonus, err := Bonus(startMin, bonusEnd, tables.Bonuses[day])
	if err != nil {
		return ShiftResult{}, err
	}

	return ShiftResult{
		Hours:         round2(paidHours),
		TotalHours:    totalHours,
		PaidHours:     paidHours,
		PauseDeducted: deducted,
		BaseWage:      baseWage,
		Bonus:         bonus,
		Total:         baseWage + bonus,
	}, nil
}

// CalculateMonthStats folds CalculateShift over the shifts falling in the
// given month of the policy's reference year. A shift that fails to
// calculate is skipped and counted rather than poisoning the totals.
func CalculateMonthStats(shifts []ShiftInput, month int, src RateSource, tables Tables, policy Policy, pauseDeduction bool) MonthStats {
	var stats MonthStats
	for _, shift := range shifts {
		if shift.Date.Year() != policy.Year || int(shift.Date.Month()) != month {
			continue
		}
		result, err := CalculateShift(shift, src, tables, policy, pauseDeduction)
		if err != nil {
			stats.Skipped++
			continue
		}
		stats.TotalHours += result.Hours
		stats.TotalBase += result.BaseWage
		stats.TotalBonus += result.Bonus
		stats.ShiftCount++
	}
	stats.TotalAmount = stats.TotalBase + stats.TotalBonus
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
