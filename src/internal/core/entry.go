// FILE: logtools/src/internal/core/entry.go
package core

import (
	"strings"
	"time"
)

// Entry is one logical log record. Text holds every physical line of the
// record joined with '\n' and is never empty. Time is the zero value when no
// timestamp was requested or it could not be parsed.
type Entry struct {
	Text string    `json:"text"`
	Time time.Time `json:"time,omitzero"`
}

// HasTime reports whether the entry carries a parsed timestamp.
func (e Entry) HasTime() bool {
	return !e.Time.IsZero()
}

// FirstLine returns the line that opened the entry.
func (e Entry) FirstLine() string {
	if i := strings.IndexByte(e.Text, '\n'); i >= 0 {
		return e.Text[:i]
	}
	return e.Text
}

// Size is the memory accounting metric used by the external sorter.
func (e Entry) Size() int64 {
	return int64(len(e.Text))
}

// LabeledEntry attributes an entry to the source it was read from.
// An empty Label means the source is unlabeled.
type LabeledEntry struct {
	Entry
	Label string
}

// Stream is a forward-only, single-pass sequence of entries.
// Next returns io.EOF once the stream is exhausted. Close releases the
// underlying resources and may be called at any point.
type Stream interface {
	Next() (Entry, error)
	Close() error
}
