// FILE: logtools/src/internal/uniq/uniq.go

// Package uniq counts entries that differ only in their numbers.
package uniq

import (
	"cmp"
	"fmt"
	"io"
	"regexp"
	"slices"

	"logtools/src/internal/core"
)

var numberRun = regexp.MustCompile(`\d+`)

const numberPlaceholder = "<num>"

// Count is one distinct key and how often it was seen.
type Count struct {
	Key   string
	Count uint64
}

// Counter aggregates entries by "timestamp message" with every digit run of
// the message replaced by <num>.
type Counter struct {
	pattern *regexp.Regexp
	tsGroup int
	msGroup int
	counts  map[string]uint64
	skipped uint64
}

// New creates a counter. pattern must define the timestamp and message
// capture groups.
func New(pattern *regexp.Regexp) (*Counter, error) {
	ts := pattern.SubexpIndex(core.CaptureTimestamp)
	msg := pattern.SubexpIndex(core.CaptureMessage)
	if ts < 0 || msg < 0 {
		return nil, fmt.Errorf("%w: pattern %q needs %q and %q capture groups",
			core.ErrPatternCompile, pattern.String(), core.CaptureTimestamp, core.CaptureMessage)
	}
	return &Counter{
		pattern: pattern,
		tsGroup: ts,
		msGroup: msg,
		counts:  make(map[string]uint64),
	}, nil
}

// Key computes the aggregation key of an entry.
func (c *Counter) Key(e core.Entry) (string, error) {
	m := c.pattern.FindStringSubmatch(e.FirstLine())
	if m == nil {
		return "", fmt.Errorf("%w: entry does not match pattern", core.ErrTimestampParse)
	}
	return m[c.tsGroup] + " " + numberRun.ReplaceAllLiteralString(m[c.msGroup], numberPlaceholder), nil
}

// Add counts e. Entries whose first line lacks the captures are rejected
// and counted as skipped.
func (c *Counter) Add(e core.Entry) error {
	key, err := c.Key(e)
	if err != nil {
		c.skipped++
		return err
	}
	c.counts[key]++
	return nil
}

// Skipped returns the number of rejected entries.
func (c *Counter) Skipped() uint64 {
	return c.skipped
}

// Results returns the keys ordered by ascending count, ties by key.
func (c *Counter) Results() []Count {
	out := make([]Count, 0, len(c.counts))
	for k, n := range c.counts {
		out = append(out, Count{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if a.Count != b.Count {
			return cmp.Compare(a.Count, b.Count)
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// WriteTo writes the results as "%8d key" lines.
func (c *Counter) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, r := range c.Results() {
		n, err := fmt.Fprintf(w, "%8d %s\n", r.Count, r.Key)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("%w: writing counts: %v", core.ErrIO, err)
		}
	}
	return total, nil
}
