package baits_api

import (
	"errors"
	"fmt"
)

// ErrIndeterminateTest is returned by the chi-square computation when one of
// the expected genotype counts is zero.
var ErrIndeterminateTest = errors.New("indeterminate HWE test: expected genotype count is zero")

// ParseError reports a malformed field in an input table.
type ParseError struct {
	Source string
	Line   int
	Field  string
	Value  string
	Err    error
}

// Line is 0 when the error comes from a record reader that does not report lines
func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	if e.Field == "" {
		return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: field %s: cannot parse %q: %v", e.Source, e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports an invalid or contradictory option.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Option, e.Reason)
}
