package shifts

import "errors"

var (
	ErrNotFound   = errors.New("shift not found")
	ErrShiftLimit = errors.New("shift limit reached for the current plan")
	ErrBadMonth   = errors.New("month must be between 1 and 12")
)
