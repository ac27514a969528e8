package decision

import (
	"errors"
	"fmt"
)

// Sentinel errors for lifecycle and lookup failures. Callers match them
// with errors.Is rather than string comparison.
var (
	// ErrNoOptions is returned by ranking operations when the decision has
	// no options to rank.
	ErrNoOptions = errors.New("decision has no options")

	// ErrNotDecided is returned when an operation needs a chosen option
	// and none has been set.
	ErrNotDecided = errors.New("decision has no chosen option")

	// ErrUnknownMetric is returned when a metric name references no
	// defined metric.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrUnknownOption is returned when an option name references no
	// defined option.
	ErrUnknownOption = errors.New("unknown option")
)

// ValidationError reports a field value rejected at construction time.
// Validation failures surface immediately to the caller; they are never
// deferred or swallowed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
