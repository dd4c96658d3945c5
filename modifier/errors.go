package modifier

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKind is reported for a modifier kind outside the ordering table.
	ErrInvalidKind = errors.New("invalid modifier kind")

	// ErrInvalidCategory is reported for a category name or value that does not exist.
	ErrInvalidCategory = errors.New("invalid modifier category")
)

// ConfigError is a caller or configuration mistake detected at call time.
type ConfigError struct {
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
