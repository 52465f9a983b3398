// FILE: logtools/src/internal/offset/offset.go

// Package offset rewrites entry timestamps shifted by a fixed duration.
package offset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"logtools/src/internal/core"
	"logtools/src/internal/timestamp"
)

// Shifter replaces the timestamp capture of an entry's first line with the
// shifted instant, formatted with the same format. All other bytes are kept.
type Shifter struct {
	parser *timestamp.Parser
	delta  time.Duration
}

// New creates a shifter moving timestamps by delta.
func New(parser *timestamp.Parser, delta time.Duration) *Shifter {
	return &Shifter{parser: parser, delta: delta}
}

// ParseHours parses a signed integer hour count such as "+1" or "-3".
func ParseHours(s string) (time.Duration, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("offset '%s' is not an integer number of hours", s)
	}
	return time.Duration(n) * time.Hour, nil
}

// Shift returns a copy of e with its timestamp moved. Entries without a
// locatable timestamp yield an error wrapping core.ErrTimestampParse.
//
// Wall-clock formats are shifted on the wall clock, so daylight saving
// transitions in the configured location neither swallow nor add hours.
// Formats carrying an offset, zone name or unix seconds are shifted as
// instants.
func (s *Shifter) Shift(e core.Entry) (core.Entry, error) {
	first := e.FirstLine()
	start, end, ok := s.parser.Locate(first)
	if !ok {
		return e, fmt.Errorf("%w: capture %q absent", core.ErrTimestampParse, core.CaptureTimestamp)
	}

	if s.parser.WallClock() {
		wall, err := s.parser.ParseWall(first[start:end])
		if err != nil {
			return e, err
		}
		shifted := wall.Add(s.delta)
		return core.Entry{
			Text: e.Text[:start] + s.parser.FormatWall(shifted) + e.Text[end:],
			Time: inLocation(shifted, s.parser.Location()),
		}, nil
	}

	t := e.Time
	if !e.HasTime() {
		parsed, err := s.parser.ParseValue(first[start:end])
		if err != nil {
			return e, err
		}
		t = parsed
	}

	shifted := t.Add(s.delta)
	return core.Entry{
		Text: e.Text[:start] + s.parser.Format(shifted) + e.Text[end:],
		Time: shifted,
	}, nil
}

// inLocation reads the UTC wall-clock fields of t as a time in loc.
func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
