package shifts

import (
	"time"

	"skiftlonn/internal/domain/wage"
)

type Shift struct {
	ID         string       `json:"id"`
	EmployeeID string       `json:"employeeId,omitempty"`
	Date       time.Time    `json:"date"`
	StartTime  string       `json:"startTime"`
	EndTime    string       `json:"endTime"`
	Day        wage.DayType `json:"dayType"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Input converts a stored shift to the engine's input shape.
func (s Shift) Input() wage.ShiftInput {
	return wage.ShiftInput{
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Day:       s.Day,
	}
}
