package wage

import "errors"

var (
	ErrInvalidTimeFormat  = errors.New("time must be in HH:MM format")
	ErrUnknownTariffLevel = errors.New("tariff level not in wage table")
	ErrInvalidWageRate    = errors.New("wage rate must be a non-negative number")
	ErrUnknownDayType     = errors.New("day type must be weekday, saturday or sunday")
)
