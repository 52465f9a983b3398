// FILE: logtools/src/internal/sink/console.go
package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"logtools/src/internal/core"
	"logtools/src/internal/format"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

const writeBufferSize = 64 * 1024

// WriterSink writes formatted entries to an io.Writer through a buffer.
// It backs both the console and the file sinks.
type WriterSink struct {
	kind      string
	buf       *bufio.Writer
	closer    io.Closer
	flushEach bool
	startTime time.Time
	logger    *log.Logger
	formatter format.Formatter

	// Statistics
	totalProcessed uint64
	lastProcessed  time.Time
	closed         bool
}

// NewConsoleSink writes to out. Output is flushed after every entry when
// out is a terminal.
func NewConsoleSink(out *os.File, formatter format.Formatter, logger *log.Logger) *WriterSink {
	interactive := term.IsTerminal(int(out.Fd()))
	s := NewWriterSink("console", out, formatter, logger)
	s.flushEach = interactive

	logger.Debug("msg", "Console sink opened",
		"component", "console_sink",
		"interactive", interactive)
	return s
}

// NewWriterSink writes to w. When w is an io.Closer, Close closes it.
func NewWriterSink(kind string, w io.Writer, formatter format.Formatter, logger *log.Logger) *WriterSink {
	s := &WriterSink{
		kind:      kind,
		buf:       bufio.NewWriterSize(w, writeBufferSize),
		startTime: time.Now(),
		logger:    logger,
		formatter: formatter,
	}
	if c, ok := w.(io.Closer); ok && w != os.Stdout && w != os.Stderr {
		s.closer = c
	}
	return s
}

func (s *WriterSink) Write(entry core.LabeledEntry) error {
	if s.closed {
		return fmt.Errorf("%w: write to closed %s sink", core.ErrIO, s.kind)
	}

	formatted, err := s.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("formatting entry: %w", err)
	}
	if _, err := s.buf.Write(formatted); err != nil {
		return fmt.Errorf("%w: writing output: %v", core.ErrIO, err)
	}

	s.totalProcessed++
	s.lastProcessed = time.Now()

	if s.flushEach {
		return s.Flush()
	}
	return nil
}

func (s *WriterSink) Flush() error {
	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("%w: flushing output: %v", core.ErrIO, err)
	}
	return nil
}

func (s *WriterSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing output: %v", core.ErrIO, cerr)
		}
	}

	s.logger.Debug("msg", "Sink closed",
		"component", s.kind+"_sink",
		"total_processed", s.totalProcessed)
	return err
}

func (s *WriterSink) GetStats() SinkStats {
	return SinkStats{
		Type:           s.kind,
		TotalProcessed: s.totalProcessed,
		StartTime:      s.startTime,
		LastProcessed:  s.lastProcessed,
		Details: map[string]any{
			"buffered":   s.buf.Buffered(),
			"flush_each": s.flushEach,
		},
	}
}
