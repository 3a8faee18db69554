package timeline

import "errors"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidEntry = errors.New("invalid timeline entry")
)
