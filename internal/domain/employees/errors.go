package employees

import "errors"

var (
	ErrNotFound      = errors.New("employee not found")
	ErrEmployeeLimit = errors.New("employee limit reached for the current plan")
	ErrInvalidTariff = errors.New("tariff level not in wage table")
	ErrNegativeWage  = errors.New("custom wage must be non-negative")
	ErrNameRequired  = errors.New("employee name is required")
	ErrEmployeeInUse = errors.New("employee still has shifts")
)
