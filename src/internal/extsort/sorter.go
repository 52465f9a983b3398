// FILE: logtools/src/internal/extsort/sorter.go

// Package extsort sorts an entry stream larger than memory by spilling
// time-ordered runs to disk and merging them back.
package extsort

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"logtools/src/internal/core"
	"logtools/src/internal/merge"

	"github.com/lixenwraith/log"
)

// Options configures a Sorter.
type Options struct {
	// MemoryBudget bounds the summed text size of buffered entries, in bytes.
	MemoryBudget int64
	// TempDir holds the runs; empty means the OS temp directory.
	TempDir string
	// Compress stores runs zstd compressed.
	Compress bool
	// Missing decides where entries without a timestamp go.
	Missing core.MissingPolicy
}

// Stats describes one sort.
type Stats struct {
	Entries        uint64
	Runs           int
	Untimed        uint64
	SkippedUntimed uint64
}

// Sorter performs bounded-memory external sorts.
type Sorter struct {
	opts   Options
	logger *log.Logger
}

// New validates opts and creates a sorter.
func New(opts Options, logger *log.Logger) (*Sorter, error) {
	if opts.MemoryBudget < 1 {
		return nil, fmt.Errorf("memory budget must be at least 1 byte, got %d", opts.MemoryBudget)
	}
	missing, err := core.ParseMissingPolicy(string(opts.Missing))
	if err != nil {
		return nil, err
	}
	opts.Missing = missing
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	if logger == nil {
		logger = log.NewLogger()
	}
	return &Sorter{opts: opts, logger: logger}, nil
}

// partition holds the state of the spill phase.
type partition struct {
	s       *Sorter
	buf     []core.Entry
	size    int64
	runs    []run
	untimed *runWriter
	stats   Stats
}

// Sort consumes in completely and returns the entries in non-decreasing
// time order. Entries with equal times keep their input order. The caller
// owns in and must Close the returned Sorted, which removes the runs.
func (s *Sorter) Sort(in core.Stream) (*Sorted, error) {
	p := &partition{s: s}

	if err := p.consume(in); err != nil {
		p.discard()
		return nil, err
	}

	var untimed *run
	if p.untimed != nil {
		r, err := p.untimed.finish()
		p.untimed = nil
		if err != nil {
			p.discard()
			return nil, err
		}
		untimed = &r
	}

	sorted, err := s.open(p.runs, untimed, p.stats)
	if err != nil {
		p.discard()
		if untimed != nil {
			os.Remove(untimed.path)
		}
		return nil, err
	}

	s.logger.Debug("msg", "Partition complete",
		"component", "extsort",
		"entries", p.stats.Entries,
		"runs", p.stats.Runs,
		"untimed", p.stats.Untimed,
		"skipped_untimed", p.stats.SkippedUntimed)

	return sorted, nil
}

func (p *partition) consume(in core.Stream) error {
	for {
		e, err := in.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.s.logger.Warn("msg", "Input read failed, sorting entries read so far",
					"component", "extsort",
					"error", err)
			}
			break
		}
		p.stats.Entries++

		if !e.HasTime() {
			if err := p.addUntimed(e); err != nil {
				return err
			}
			continue
		}

		if p.size+e.Size() > p.s.opts.MemoryBudget && len(p.buf) > 0 {
			if err := p.spill(); err != nil {
				return err
			}
		}
		p.buf = append(p.buf, e)
		p.size += e.Size()
	}

	if len(p.buf) > 0 {
		return p.spill()
	}
	return nil
}

func (p *partition) addUntimed(e core.Entry) error {
	p.stats.Untimed++

	if p.s.opts.Missing == core.MissingSkip {
		p.stats.SkippedUntimed++
		p.s.logger.Debug("msg", "Skipping entry without timestamp",
			"component", "extsort",
			"first_line", e.FirstLine())
		return nil
	}

	if p.untimed == nil {
		w, err := createRun(p.s.opts.TempDir, p.s.opts.Compress)
		if err != nil {
			return err
		}
		p.untimed = w
	}
	return p.untimed.write(e)
}

// spill writes the buffer as a new time-ordered run.
func (p *partition) spill() error {
	slices.SortStableFunc(p.buf, func(a, b core.Entry) int {
		return a.Time.Compare(b.Time)
	})

	w, err := createRun(p.s.opts.TempDir, p.s.opts.Compress)
	if err != nil {
		return err
	}
	for _, e := range p.buf {
		if err := w.write(e); err != nil {
			w.abort()
			return err
		}
	}
	r, err := w.finish()
	if err != nil {
		os.Remove(w.path())
		return err
	}

	p.runs = append(p.runs, r)
	p.stats.Runs++

	p.s.logger.Debug("msg", "Spilled run",
		"component", "extsort",
		"run", r.path,
		"entries", r.count,
		"bytes", p.size)

	clear(p.buf)
	p.buf = p.buf[:0]
	p.size = 0
	return nil
}

// discard removes every run created so far.
func (p *partition) discard() {
	if p.untimed != nil {
		p.untimed.abort()
		p.untimed = nil
	}
	for _, r := range p.runs {
		if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
			p.s.logger.Warn("msg", "Failed to remove sort run",
				"component", "extsort",
				"run", r.path,
				"error", err)
		}
	}
	p.runs = nil
}

func (s *Sorter) open(runs []run, untimed *run, stats Stats) (*Sorted, error) {
	out := &Sorted{
		runs:   slices.Clone(runs),
		stats:  stats,
		logger: s.logger,
	}

	sources := make([]merge.Source, 0, len(runs))
	for _, r := range runs {
		rr, err := openRun(r, s.opts.Compress)
		if err != nil {
			for _, src := range sources {
				src.Stream.Close()
			}
			return nil, err
		}
		sources = append(sources, merge.Source{Stream: rr, Name: r.path})
	}
	out.merger = merge.New(sources, s.logger)

	if untimed != nil {
		out.runs = append(out.runs, *untimed)
		rr, err := openRun(*untimed, s.opts.Compress)
		if err != nil {
			out.merger.Close()
			return nil, err
		}
		if s.opts.Missing == core.MissingFirst {
			out.early = rr
		} else {
			out.late = rr
		}
	}
	return out, nil
}

// Sorted streams the result of a sort. Untimed entries kept by the first
// policy come before the merged runs, those kept by the last policy after.
type Sorted struct {
	early  *runReader
	merger *merge.Merger
	late   *runReader
	runs   []run
	stats  Stats
	closed bool
	logger *log.Logger
}

// Next returns the next entry in order or io.EOF.
func (s *Sorted) Next() (core.Entry, error) {
	if s.closed {
		return core.Entry{}, io.EOF
	}

	if s.early != nil {
		e, err := s.early.Next()
		if err == nil {
			return e, nil
		}
		s.early.Close()
		s.early = nil
		if !errors.Is(err, io.EOF) {
			return core.Entry{}, err
		}
	}

	if s.merger != nil {
		le, err := s.merger.Next()
		if err == nil {
			return le.Entry, nil
		}
		s.merger.Close()
		s.merger = nil
	}

	if s.late != nil {
		e, err := s.late.Next()
		if err == nil {
			return e, nil
		}
		s.late.Close()
		s.late = nil
		if !errors.Is(err, io.EOF) {
			return core.Entry{}, err
		}
	}

	return core.Entry{}, io.EOF
}

// Stats returns the partition statistics.
func (s *Sorted) Stats() Stats {
	return s.stats
}

// Close releases every run and removes the run files. Cleanup failures are
// logged and returned wrapped in core.ErrResource. Close is idempotent.
func (s *Sorted) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.early != nil {
		errs = append(errs, s.early.Close())
	}
	if s.merger != nil {
		errs = append(errs, s.merger.Close())
	}
	if s.late != nil {
		errs = append(errs, s.late.Close())
	}
	for _, r := range s.runs {
		if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	s.runs = nil

	if err := errors.Join(errs...); err != nil {
		s.logger.Warn("msg", "Sort cleanup incomplete",
			"component", "extsort",
			"error", err)
		return fmt.Errorf("%w: cleaning up sort runs: %v", core.ErrResource, err)
	}
	return nil
}
