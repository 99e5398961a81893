// Package policy defines how a destination stage reacts to records that
// cannot be processed.
package policy

import "fmt"

// ErrorPolicy selects the action taken for records that fail inside a stage.
type ErrorPolicy string

const (
	// Discard drops the failed record silently.
	Discard ErrorPolicy = "DISCARD"
	// ToError routes the failed record to the pipeline's error collector
	// and continues.
	ToError ErrorPolicy = "TO_ERROR"
	// StopPipeline aborts the batch and signals a fatal pipeline error.
	StopPipeline ErrorPolicy = "STOP_PIPELINE"
)

// ParseErrorPolicy converts a configuration string into an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(s) {
	case Discard, ToError, StopPipeline:
		return ErrorPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown error policy %q", s)
	}
}

// Valid reports whether the policy is one of the defined values.
func (p ErrorPolicy) Valid() bool {
	switch p {
	case Discard, ToError, StopPipeline:
		return true
	}
	return false
}
