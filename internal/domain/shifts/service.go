package shifts

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"skiftlonn/internal/domain/settings"
	"skiftlonn/internal/domain/subscription"
	"skiftlonn/internal/domain/wage"
)

type Service struct {
	Store    *Store
	Settings *settings.Store
	Subs     *subscription.Service
	Policy   wage.Policy
}

func NewService(store *Store, settingsStore *settings.Store, subs *subscription.Service, policy wage.Policy) *Service {
	return &Service{Store: store, Settings: settingsStore, Subs: subs, Policy: policy}
}

// normalizeShift fills the derived day type and checks the time fields
// before a shift is persisted. Storage only accepts what the engine can
// later calculate.
func normalizeShift(shift *Shift) error {
	if _, err := wage.TimeToMinutes(shift.StartTime); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if _, err := wage.TimeToMinutes(shift.EndTime); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if shift.Day == "" {
		shift.Day = wage.DayTypeOf(shift.Date)
		return nil
	}
	day, err := wage.ParseDayType(string(shift.Day))
	if err != nil {
		return err
	}
	shift.Day = day
	return nil
}

func (s *Service) Create(ctx context.Context, userID string, shift Shift) (string, error) {
	if err := normalizeShift(&shift); err != nil {
		return "", err
	}

	limits, err := s.Subs.LimitsFor(ctx, userID)
	if err != nil {
		return "", err
	}
	count, err := s.Store.Count(ctx, userID)
	if err != nil {
		return "", err
	}
	if !limits.AllowsShifts(count) {
		return "", ErrShiftLimit
	}

	return s.Store.Create(ctx, userID, shift)
}

func (s *Service) Update(ctx context.Context, userID, shiftID string, shift Shift) error {
	if err := normalizeShift(&shift); err != nil {
		return err
	}
	return s.Store.Update(ctx, userID, shiftID, shift)
}

func (s *Service) Delete(ctx context.Context, userID, shiftID string) error {
	return s.Store.Delete(ctx, userID, shiftID)
}

func (s *Service) Get(ctx context.Context, userID, shiftID string) (*Shift, error) {
	return s.Store.Get(ctx, userID, shiftID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Shift, error) {
	return s.Store.List(ctx, userID)
}

func (s *Service) ListMonth(ctx context.Context, userID string, month int) ([]Shift, error) {
	if month < 1 || month > 12 {
		return nil, ErrBadMonth
	}
	return s.Store.ListMonth(ctx, userID, s.Policy.Year, month)
}

// CalculateOne runs the wage engine for a stored shift using the owner's
// saved settings.
func (s *Service) CalculateOne(ctx context.Context, userID, shiftID string) (wage.ShiftResult, error) {
	shift, err := s.Store.Get(ctx, userID, shiftID)
	if err != nil {
		return wage.ShiftResult{}, err
	}
	cfg, err := s.Settings.Get(ctx, userID)
	if err != nil {
		return wage.ShiftResult{}, err
	}
	return wage.CalculateShift(shift.Input(), cfg.RateSource(), cfg.Tables(), s.Policy, cfg.PauseDeduction)
}

// MonthStats aggregates the user's shifts for one month of the reference
// year.
func (s *Service) MonthStats(ctx context.Context, userID string, month int) (wage.MonthStats, error) {
	if month < 1 || month > 12 {
		return wage.MonthStats{}, ErrBadMonth
	}
	rows, err := s.Store.ListMonth(ctx, userID, s.Policy.Year, month)
	if err != nil {
		return wage.MonthStats{}, err
	}
	cfg, err := s.Settings.Get(ctx, userID)
	if err != nil {
		return wage.MonthStats{}, err
	}

	inputs := make([]wage.ShiftInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, row.Input())
	}
	return wage.CalculateMonthStats(inputs, month, cfg.RateSource(), cfg.Tables(), s.Policy, cfg.PauseDeduction), nil
}

var demoPatterns = []struct {
	start, end string
}{
	{"08:00", "15:30"},
	{"10:00", "18:00"},
	{"15:00", "21:00"},
	{"16:00", "23:00"},
}

// SeedDemo inserts a spread of plausible shifts across the given month so
// a new user has something to look at. Respects the plan limits the same
// way manual entry does.
func (s *Service) SeedDemo(ctx context.Context, userID string, month, count int) (int, error) {
	if month < 1 || month > 12 {
		return 0, ErrBadMonth
	}
	created := 0
	for i := 0; i < count; i++ {
		day := rand.Intn(28) + 1
		pattern := demoPatterns[rand.Intn(len(demoPatterns))]
		shift := Shift{
			Date:      time.Date(s.Policy.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
			StartTime: pattern.start,
			EndTime:   pattern.end,
		}
		if _, err := s.Create(ctx, userID, shift); err != nil {
			if err == ErrShiftLimit {
				break
			}
			return created, err
		}
		created++
	}
	return created, nil
}
