// FILE: logtools/src/internal/timestamp/parser.go

// Package timestamp extracts and parses the timestamp capture of an entry's
// first line.
package timestamp

import (
	"fmt"
	"regexp"
	"time"

	"logtools/src/internal/core"
	"logtools/src/internal/timefmt"
)

// Parser locates the `timestamp` capture with an entry pattern and parses it
// with a compiled format.
type Parser struct {
	pattern *regexp.Regexp
	format  *timefmt.Format
	loc     *time.Location
	group   int
}

// New creates a parser. The pattern must contain a `timestamp` named group.
// loc is attached when the format has no offset token; nil means UTC.
func New(pattern *regexp.Regexp, format string, loc *time.Location) (*Parser, error) {
	if pattern == nil {
		return nil, fmt.Errorf("%w: nil entry pattern", core.ErrPatternCompile)
	}
	group := pattern.SubexpIndex(core.CaptureTimestamp)
	if group < 0 {
		return nil, fmt.Errorf("%w: pattern %q has no %q capture group",
			core.ErrPatternCompile, pattern.String(), core.CaptureTimestamp)
	}

	f, err := timefmt.Compile(format)
	if err != nil {
		return nil, err
	}

	if loc == nil {
		loc = time.UTC
	}

	return &Parser{
		pattern: pattern,
		format:  f,
		loc:     loc,
		group:   group,
	}, nil
}

// Locate returns the byte span of the timestamp capture within line.
func (p *Parser) Locate(line string) (start, end int, ok bool) {
	m := p.pattern.FindStringSubmatchIndex(line)
	if m == nil || m[2*p.group] < 0 {
		return 0, 0, false
	}
	return m[2*p.group], m[2*p.group+1], true
}

// Parse extracts the timestamp capture from line and parses it.
func (p *Parser) Parse(line string) (time.Time, error) {
	start, end, ok := p.Locate(line)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: capture %q absent", core.ErrTimestampParse, core.CaptureTimestamp)
	}
	return p.ParseValue(line[start:end])
}

// ParseValue parses an already extracted timestamp string.
func (p *Parser) ParseValue(value string) (time.Time, error) {
	t, err := p.format.Parse(value, p.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q with format %q: %v",
			core.ErrTimestampParse, value, p.format.String(), err)
	}
	return t, nil
}

// Format renders t with the parser's format. Formats without an offset
// token render t in the configured location.
func (p *Parser) Format(t time.Time) string {
	if !p.format.HasZone() {
		t = t.In(p.loc)
	}
	return p.format.Format(t)
}

// WallClock reports whether timestamps are bare wall-clock readings that
// only gain an instant through the configured location.
func (p *Parser) WallClock() bool {
	return p.format.IsWallClock()
}

// ParseWall parses value as a wall-clock reading expressed in UTC, ignoring
// the configured location.
func (p *Parser) ParseWall(value string) (time.Time, error) {
	t, err := p.format.Parse(value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q with format %q: %v",
			core.ErrTimestampParse, value, p.format.String(), err)
	}
	return t, nil
}

// FormatWall renders the wall-clock fields of t without converting zones.
func (p *Parser) FormatWall(t time.Time) string {
	return p.format.Format(t)
}

// Pattern returns the entry pattern the parser matches against.
func (p *Parser) Pattern() *regexp.Regexp {
	return p.pattern
}

// Location returns the location attached to offset-less timestamps.
func (p *Parser) Location() *time.Location {
	return p.loc
}
