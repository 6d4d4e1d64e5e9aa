package model

import "github.com/cockroachdb/errors"

var (
	ErrInvalidInterval   = errors.New("shift end must be after its start")
	ErrNegativePayRate   = errors.New("pay rate must not be negative")
	ErrNegativeThreshold = errors.New("minimum cancellation hours must not be negative")
)
