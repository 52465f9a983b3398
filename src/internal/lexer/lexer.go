// FILE: logtools/src/internal/lexer/lexer.go

// Package lexer segments a raw line stream into multi-line log entries.
package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"logtools/src/internal/core"
	"logtools/src/internal/timestamp"

	"github.com/lixenwraith/log"
)

const readBufferSize = 64 * 1024

// Options configures a Lexer.
type Options struct {
	// Pattern recognises the first line of an entry. It must be anchored at
	// line start, see CompilePattern.
	Pattern *regexp.Regexp

	// Timestamps enables time extraction when non-nil.
	Timestamps *timestamp.Parser

	// Name identifies the input in diagnostics.
	Name string

	Logger *log.Logger
}

// Stats counts lexer activity.
type Stats struct {
	LinesRead         uint64
	EntriesEmitted    uint64
	LinesDropped      uint64
	TimestampFailures uint64
}

// Lexer is a pull-based entry stream over an io.Reader.
type Lexer struct {
	src    io.Reader
	reader *bufio.Reader
	opts   Options
	logger *log.Logger

	pending bool
	first   string
	buf     strings.Builder

	readErr error
	stats   Stats
}

// New creates a lexer reading lines from r.
func New(r io.Reader, opts Options) *Lexer {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewLogger()
	}
	if opts.Name == "" {
		opts.Name = "-"
	}
	return &Lexer{
		src:    r,
		reader: bufio.NewReaderSize(r, readBufferSize),
		opts:   opts,
		logger: logger,
	}
}

// Next returns the next complete entry or io.EOF. A read error is returned
// once, after the entry pending at that point; later calls return io.EOF.
func (l *Lexer) Next() (core.Entry, error) {
	for {
		if l.readErr != nil {
			if l.pending {
				return l.finish(), nil
			}
			if l.readErr == io.EOF {
				return core.Entry{}, io.EOF
			}
			err := l.readErr
			l.readErr = io.EOF
			return core.Entry{}, err
		}

		raw, err := l.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.readErr = io.EOF
			} else {
				l.readErr = fmt.Errorf("%w: reading %s: %v", core.ErrIO, l.opts.Name, err)
			}
		}
		if raw == "" {
			continue
		}

		if entry, ok := l.feed(cleanLine(raw)); ok {
			return entry, nil
		}
	}
}

// feed advances the state machine by one line and returns a completed entry
// when the line starts a new one.
func (l *Lexer) feed(line string) (core.Entry, bool) {
	l.stats.LinesRead++

	if l.opts.Pattern.MatchString(line) {
		var done core.Entry
		hadPending := l.pending
		if hadPending {
			done = l.finish()
		}
		l.pending = true
		l.first = line
		l.buf.WriteString(line)
		return done, hadPending
	}

	if l.pending {
		l.buf.WriteByte('\n')
		l.buf.WriteString(line)
		return core.Entry{}, false
	}

	l.stats.LinesDropped++
	l.logger.Debug("msg", "Dropping line before first entry",
		"component", "lexer",
		"source", l.opts.Name,
		"line_number", l.stats.LinesRead)
	return core.Entry{}, false
}

func (l *Lexer) finish() core.Entry {
	entry := core.Entry{Text: l.buf.String()}
	l.buf.Reset()
	l.pending = false

	if l.opts.Timestamps != nil {
		t, err := l.opts.Timestamps.Parse(l.first)
		if err != nil {
			l.stats.TimestampFailures++
			l.logger.Debug("msg", "Entry without usable timestamp",
				"component", "lexer",
				"source", l.opts.Name,
				"error", err)
		} else {
			entry.Time = t
		}
	}
	l.first = ""

	l.stats.EntriesEmitted++
	return entry
}

// Stats returns the counters accumulated so far.
func (l *Lexer) Stats() Stats {
	return l.stats
}

// Name returns the input name used in diagnostics.
func (l *Lexer) Name() string {
	return l.opts.Name
}

// Close closes the underlying reader when it is an io.Closer.
func (l *Lexer) Close() error {
	l.readErr = io.EOF
	l.pending = false
	if c, ok := l.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func cleanLine(raw string) string {
	line := strings.TrimSuffix(raw, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.ToValidUTF8(line, "\uFFFD")
}
