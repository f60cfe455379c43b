package reports

import (
	"testing"
	"time"

	"skiftlonn/internal/domain/settings"
	"skiftlonn/internal/domain/shifts"
	"skiftlonn/internal/domain/wage"
)

func TestBuildRegister(t *testing.T) {
	policy := wage.DefaultPolicy
	cfg := settings.Settings{UsePreset: false, CustomWage: 100, PauseDeduction: false}
	names := map[string]string{"e-1": "Kari"}
	stored := []shifts.Shift{
		{
			ID:         "s-1",
			EmployeeID: "e-1",
			Date:       time.Date(policy.Year, 3, 3, 0, 0, 0, 0, time.UTC),
			StartTime:  "08:00",
			EndTime:    "12:00",
			Day:        wage.Weekday,
		},
		{
			ID:        "s-2",
			Date:      time.Date(policy.Year, 4, 1, 0, 0, 0, 0, time.UTC),
			StartTime: "08:00",
			EndTime:   "12:00",
			Day:       wage.Weekday,
		},
	}

	register := BuildRegister(stored, names, cfg, policy, 3)
	if len(register.Rows) != 1 {
		t.Fatalf("expected 1 march row, got %d", len(register.Rows))
	}
	if register.Rows[0].Total != 400 {
		t.Fatalf("expected row total 400, got %v", register.Rows[0].Total)
	}
	if register.Stats.ShiftCount != 1 {
		t.Fatalf("expected stats over march only, got %d", register.Stats.ShiftCount)
	}
	if register.Stats.TotalAmount != register.Rows[0].Total {
		t.Fatalf("expected stats and rows to agree, got %v vs %v", register.Stats.TotalAmount, register.Rows[0].Total)
	}
	if len(register.Employees) != 1 {
		t.Fatalf("expected 1 employee summary, got %d", len(register.Employees))
	}
	if register.Employees[0].Name != "Kari" || register.Employees[0].Total != 400 {
		t.Fatalf("unexpected employee summary: %+v", register.Employees[0])
	}
}

func TestBuildRegisterGroupsUnassignedShifts(t *testing.T) {
	policy := wage.DefaultPolicy
	cfg := settings.Settings{UsePreset: false, CustomWage: 100}
	stored := []shifts.Shift{
		{
			ID:        "s-1",
			Date:      time.Date(policy.Year, 6, 2, 0, 0, 0, 0, time.UTC),
			StartTime: "08:00",
			EndTime:   "12:00",
			Day:       wage.Weekday,
		},
		{
			ID:        "s-2",
			Date:      time.Date(policy.Year, 6, 3, 0, 0, 0, 0, time.UTC),
			StartTime: "08:00",
			EndTime:   "10:00",
			Day:       wage.Weekday,
		},
	}

	register := BuildRegister(stored, nil, cfg, policy, 6)
	if len(register.Employees) != 1 {
		t.Fatalf("expected 1 summary bucket, got %d", len(register.Employees))
	}
	summary := register.Employees[0]
	if summary.Name != "Unassigned" || summary.ShiftCount != 2 || summary.Hours != 6 {
		t.Fatalf("unexpected unassigned summary: %+v", summary)
	}
}

func TestBuildRegisterSkipsBrokenShifts(t *testing.T) {
	policy := wage.DefaultPolicy
	cfg := settings.Settings{UsePreset: false, CustomWage: 100}
	stored := []shifts.Shift{
		{
			ID:        "bad",
			Date:      time.Date(policy.Year, 5, 1, 0, 0, 0, 0, time.UTC),
			StartTime: "oops",
			EndTime:   "12:00",
			Day:       wage.Weekday,
		},
	}

	register := BuildRegister(stored, nil, cfg, policy, 5)
	if len(register.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(register.Rows))
	}
	if register.Stats.Skipped != 1 {
		t.Fatalf("expected 1 skipped shift, got %d", register.Stats.Skipped)
	}
}
