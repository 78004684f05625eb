package value

import "errors"

var (
	ErrInvalidBand     = errors.New("invalid band")
	ErrUnknownCategory = errors.New("unknown category")
)
