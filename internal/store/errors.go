package store

import "errors"

// Sentinel errors for store lookups. Callers match with errors.Is rather
// than inspecting message text.
var (
	// ErrDecisionNotFound is returned when no record matches an id or
	// id prefix.
	ErrDecisionNotFound = errors.New("decision not found")

	// ErrAmbiguousID is returned when an id prefix matches more than one
	// record; the wrapping message lists the matching ids.
	ErrAmbiguousID = errors.New("ambiguous id prefix")

	// ErrDuplicateID is returned when saving a record whose id already
	// exists in the store.
	ErrDuplicateID = errors.New("duplicate id")
)
