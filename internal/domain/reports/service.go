package reports

import (
	"context"
	"sort"

	"skiftlonn/internal/domain/employees"
	"skiftlonn/internal/domain/settings"
	"skiftlonn/internal/domain/shifts"
	"skiftlonn/internal/domain/wage"
)

// Row is one line of the monthly wage register.
type Row struct {
	ShiftID    string  `json:"shiftId"`
	EmployeeID string  `json:"employeeId,omitempty"`
	Date       string  `json:"date"`
	DayType    string  `json:"dayType"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Hours      float64 `json:"hours"`
	BaseWage   float64 `json:"baseWage"`
	Bonus      float64 `json:"bonus"`
	Total      float64 `json:"total"`
}

// EmployeeSummary aggregates one employee's share of the month. Shifts
// without an assigned employee collect under an empty ID.
type EmployeeSummary struct {
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name"`
	ShiftCount int     `json:"shiftCount"`
	Hours      float64 `json:"hours"`
	Total      float64 `json:"total"`
}

type Register struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Rows      []Row             `json:"rows"`
	Employees []EmployeeSummary `json:"employees"`
	Stats     wage.MonthStats   `json:"stats"`
}

type Service struct {
	Shifts    *shifts.Store
	Employees *employees.Store
	Settings  *settings.Store
	Policy    wage.Policy
}

func NewService(shiftStore *shifts.Store, employeeStore *employees.Store, settingsStore *settings.Store, policy wage.Policy) *Service {
	return &Service{Shifts: shiftStore, Employees: employeeStore, Settings: settingsStore, Policy: policy}
}

// MonthRegister computes the full per-shift register for one month. Shifts
// that fail to calculate are left out of the rows and show up in
// Stats.Skipped.
func (s *Service) MonthRegister(ctx context.Context, userID string, month int) (Register, error) {
	if month < 1 || month > 12 {
		return Register{}, shifts.ErrBadMonth
	}
	rows, err := s.Shifts.ListMonth(ctx, userID, s.Policy.Year, month)
	if err != nil {
		return Register{}, err
	}
	cfg, err := s.Settings.Get(ctx, userID)
	if err != nil {
		return Register{}, err
	}

	names := map[string]string{}
	staff, err := s.Employees.List(ctx, userID)
	if err != nil {
		return Register{}, err
	}
	for _, emp := range staff {
		names[emp.ID] = emp.Name
	}

	return BuildRegister(rows, names, cfg, s.Policy, month), nil
}

// BuildRegister folds the wage engine over stored shifts. Pure apart from
// its inputs, so it is directly testable without a database.
func BuildRegister(stored []shifts.Shift, names map[string]string, cfg settings.Settings, policy wage.Policy, month int) Register {
	register := Register{Month: month, Year: policy.Year}
	src := cfg.RateSource()
	tables := cfg.Tables()

	inputs := make([]wage.ShiftInput, 0, len(stored))
	for _, shift := range stored {
		inputs = append(inputs, shift.Input())
	}
	register.Stats = wage.CalculateMonthStats(inputs, month, src, tables, policy, cfg.PauseDeduction)

	byEmployee := map[string]*EmployeeSummary{}
	for _, shift := range stored {
		if shift.Date.Year() != policy.Year || int(shift.Date.Month()) != month {
			continue
		}
		result, err := wage.CalculateShift(shift.Input(), src, tables, policy, cfg.PauseDeduction)
		if err != nil {
			continue
		}
		register.Rows = append(register.Rows, Row{
			ShiftID:    shift.ID,
			EmployeeID: shift.EmployeeID,
			Date:       shift.Date.Format("2006-01-02"),
			DayType:    string(shift.Day),
			StartTime:  shift.StartTime,
			EndTime:    shift.EndTime,
			Hours:      result.Hours,
			BaseWage:   result.BaseWage,
			Bonus:      result.Bonus,
			Total:      result.Total,
		})

		summary, ok := byEmployee[shift.EmployeeID]
		if !ok {
			name := names[shift.EmployeeID]
			if shift.EmployeeID == "" {
				name = "Unassigned"
			}
			summary = &EmployeeSummary{EmployeeID: shift.EmployeeID, Name: name}
			byEmployee[shift.EmployeeID] = summary
		}
		summary.ShiftCount++
		summary.Hours += result.Hours
		summary.Total += result.Total
	}

	for _, summary := range byEmployee {
		register.Employees = append(register.Employees, *summary)
	}
	sort.Slice(register.Employees, func(i, j int) bool {
		if register.Employees[i].Name == register.Employees[j].Name {
			return register.Employees[i].EmployeeID < register.Employees[j].EmployeeID
		}
		return register.Employees[i].Name < register.Employees[j].Name
	})

	return register
}
