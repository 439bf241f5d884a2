package engine

import (
	"errors"
	"fmt"
)

// ErrNoProfile marks workflows that need a base profile when none exists.
// An empty roster itself is not an error; this only fires when a dependent
// operation (predict, simulate, sync) has nothing to run against.
var ErrNoProfile = errors.New("no profile found")

// InvalidInputError rejects malformed what-if inputs before any request is
// sent. Shown to the user; never forwarded to the model endpoints.
type InvalidInputError struct {
	Field string
	Value string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected a non-negative whole number", e.Field, e.Value)
}
