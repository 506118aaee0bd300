// internal/cursor/errors.go
package cursor

import "errors"

var (
	// ErrTargetNotFound is returned when a selector or handle never
	// resolved. Fatal to the call.
	ErrTargetNotFound = errors.New("cursor: target not found")

	// ErrMaxRetriesExceeded is returned when the target was never verified
	// as reached within the configured retry cap. Fatal to the call.
	ErrMaxRetriesExceeded = errors.New("cursor: max retries exceeded")

	// errConnectionLost aborts the current trajectory and any enclosing
	// operation. It never escapes the package; disconnects resolve
	// silently.
	errConnectionLost = errors.New("cursor: connection lost")
)
