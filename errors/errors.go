package errors

import "fmt"

// ValidationError wraps a specific error with the field and value that
// caused it.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v (value: %v)", e.Field, e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrNegativeVolume      = fmt.Errorf("volume must not be negative")
	ErrNonPositiveAHT      = fmt.Errorf("average handle time must be positive")
	ErrNonPositiveInterval = fmt.Errorf("interval must be positive")
	ErrServiceLevelRange   = fmt.Errorf("target service level must be a fraction (0-1) or percent (0-100)")
	ErrNegativeThreshold   = fmt.Errorf("threshold must not be negative")
	ErrOccupancyRange      = fmt.Errorf("max occupancy must be a fraction (0-1] or percent (0-100]")
	ErrShrinkageRange      = fmt.Errorf("shrinkage must be a fraction [0-1] or percent [0-100]")
	ErrNegativePatience    = fmt.Errorf("average patience must not be negative")
	ErrUnknownModel        = fmt.Errorf("unknown model")
	ErrMissingName         = fmt.Errorf("scenario name is required")
)
