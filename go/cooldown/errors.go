package cooldown

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is matched by every ConfigError.
var ErrInvalidRange = errors.New("invalid cooldown range")

// ConfigError reports a range whose minimum exceeds its maximum.
type ConfigError struct {
	Min time.Duration
	Max time.Duration
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cooldown: min duration %s is greater than max duration %s", e.Min, e.Max)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidRange
}

func validateRange(min, max time.Duration) error {
	if min > max {
		return &ConfigError{Min: min, Max: max}
	}
	return nil
}
