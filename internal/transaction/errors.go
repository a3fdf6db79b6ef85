package transaction

import "errors"

var (
	ErrNotFound       = errors.New("transaction not found")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrMissingDate    = errors.New("date is required")
	ErrInvalidType    = errors.New("type must be income or expense")
)
