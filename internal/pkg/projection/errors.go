package projection

import (
	"errors"
	"fmt"
)

// ErrInvalidZone is wrapped by ProjectionError when a zone is outside 1..60
// or cannot be parsed.
var ErrInvalidZone = errors.New("invalid zone")

// ProjectionError reports a projection request that could not be served.
type ProjectionError struct {
	Op   string // forward, inverse or parse
	Zone string
	Err  error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("projection %s %q: %v", e.Op, e.Zone, e.Err)
}

func (e *ProjectionError) Unwrap() error {
	return e.Err
}
