package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned for configuration that parses but fails validation.
var ErrInvalid = errors.New("invalid configuration")

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
