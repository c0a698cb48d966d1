package navview

import (
	"errors"
	"fmt"
)

// Usage errors. The navigation view panics with one of these wrapped when it
// is mounted in a host that cannot support it or when an internal invariant
// breaks; neither is recoverable at runtime.
var (
	ErrInvalidHost    = errors.New("navview: invalid hosting context")
	ErrNoOverlayHost  = errors.New("navview: no overlay host")
	ErrUnresolvedMode = errors.New("navview: display mode resolved to auto")
)

func fatal(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}
