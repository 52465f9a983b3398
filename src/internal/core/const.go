// FILE: logtools/src/internal/core/const.go
package core

import "fmt"

// Named capture groups recognised in entry patterns
const (
	CaptureTimestamp = "timestamp"
	CaptureMessage   = "message"
)

const (
	DefaultEntryPattern    = `(?P<timestamp>\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3}) (?P<message>.*)`
	DefaultTimestampFormat = "%Y-%m-%d %H:%M:%S,%3f"
	DefaultTimezone        = "UTC"
	DefaultIncludeGlob     = "*.{log,log.[0-9]*}"

	// SourcePrefixPattern matches the "<label>: " prefix written by merge
	SourcePrefixPattern = `[^:]+: `

	DefaultMemoryBudgetKB = 1024
)

// MissingPolicy decides how ordering consumers treat entries without a timestamp.
type MissingPolicy string

const (
	MissingSkip  MissingPolicy = "skip"
	MissingFirst MissingPolicy = "first"
	MissingLast  MissingPolicy = "last"
)

// ParseMissingPolicy validates a policy name. An empty name selects MissingSkip.
func ParseMissingPolicy(name string) (MissingPolicy, error) {
	switch MissingPolicy(name) {
	case "", MissingSkip:
		return MissingSkip, nil
	case MissingFirst, MissingLast:
		return MissingPolicy(name), nil
	default:
		return "", fmt.Errorf("unknown missing timestamp policy '%s' (valid: skip, first, last)", name)
	}
}
