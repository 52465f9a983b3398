// FILE: logtools/src/internal/core/errors.go
package core

import "errors"

// Error kinds shared by every component. Callers wrap them with context via
// fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	// ErrIO is returned when opening, reading or writing a file or stream fails.
	ErrIO = errors.New("i/o error")

	// ErrPatternCompile is returned for an invalid entry pattern, glob or timestamp format.
	ErrPatternCompile = errors.New("invalid pattern")

	// ErrTimestampParse is returned when the timestamp capture is absent or unparsable.
	ErrTimestampParse = errors.New("timestamp parse error")

	// ErrResource is returned when a temporary run cannot be created or removed.
	ErrResource = errors.New("resource error")
)
