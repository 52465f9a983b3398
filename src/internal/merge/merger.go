// FILE: logtools/src/internal/merge/merger.go

// Package merge implements the chronological k-way merge of entry streams.
package merge

import (
	"container/heap"
	"errors"
	"fmt"
	"io"

	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
)

// Source is one input of a merge. Label is attached to every entry the
// source yields; an empty label leaves its entries unlabeled. Name is used
// in diagnostics and defaults to the label.
type Source struct {
	Stream core.Stream
	Label  string
	Name   string
}

// Stats counts merge activity.
type Stats struct {
	Emitted        uint64
	SkippedUntimed uint64
	FailedSources  uint64
}

// head is the buffered current entry of one source.
type head struct {
	entry core.Entry
	index int
}

// headHeap orders heads by time, then by source registration index.
type headHeap []head

func (h headHeap) Len() int { return len(h) }

func (h headHeap) Less(i, j int) bool {
	ti, tj := h[i].entry.Time, h[j].entry.Time
	if ti.Equal(tj) {
		return h[i].index < h[j].index
	}
	return ti.Before(tj)
}

func (h headHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *headHeap) Push(x any) { *h = append(*h, x.(head)) }

func (h *headHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Merger yields the entries of all sources in non-decreasing time order,
// provided every source is itself ordered. Equal timestamps are resolved in
// favour of the earliest registered source. Entries without a timestamp are
// skipped. A source failing with a non-EOF error is closed and dropped.
type Merger struct {
	sources []Source
	open    []bool
	heads   headHeap
	primed  bool
	closed  bool
	logger  *log.Logger
	stats   Stats
}

// New creates a merger over sources. The merger owns the sources and closes
// them when they are exhausted, fail, or when Close is called.
func New(sources []Source, logger *log.Logger) *Merger {
	if logger == nil {
		logger = log.NewLogger()
	}
	open := make([]bool, len(sources))
	for i := range open {
		open[i] = true
	}
	return &Merger{
		sources: sources,
		open:    open,
		heads:   make(headHeap, 0, len(sources)),
		logger:  logger,
	}
}

// Next returns the earliest buffered entry, or io.EOF once every source is
// exhausted.
func (m *Merger) Next() (core.LabeledEntry, error) {
	if m.closed {
		return core.LabeledEntry{}, io.EOF
	}
	if !m.primed {
		m.prime()
	}
	if len(m.heads) == 0 {
		return core.LabeledEntry{}, io.EOF
	}

	top := m.heads[0]
	out := core.LabeledEntry{Entry: top.entry, Label: m.sources[top.index].Label}

	if next, ok := m.pull(top.index); ok {
		m.heads[0].entry = next
		heap.Fix(&m.heads, 0)
	} else {
		heap.Pop(&m.heads)
	}

	m.stats.Emitted++
	return out, nil
}

func (m *Merger) prime() {
	m.primed = true
	for i := range m.sources {
		if e, ok := m.pull(i); ok {
			m.heads = append(m.heads, head{entry: e, index: i})
		}
	}
	heap.Init(&m.heads)

	m.logger.Debug("msg", "Merge primed",
		"component", "merger",
		"sources", len(m.sources),
		"active", len(m.heads))
}

// pull reads the next timed entry of source i. It returns false once the
// source is exhausted or has failed; the source is closed in both cases.
func (m *Merger) pull(i int) (core.Entry, bool) {
	src := m.sources[i]
	for {
		e, err := src.Stream.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				m.stats.FailedSources++
				m.logger.Warn("msg", "Dropping failed source from merge",
					"component", "merger",
					"source", m.sourceName(i),
					"error", err)
			}
			m.closeSource(i)
			return core.Entry{}, false
		}
		if !e.HasTime() {
			m.stats.SkippedUntimed++
			m.logger.Debug("msg", "Skipping entry without timestamp",
				"component", "merger",
				"source", m.sourceName(i),
				"first_line", e.FirstLine())
			continue
		}
		return e, true
	}
}

func (m *Merger) closeSource(i int) error {
	if !m.open[i] {
		return nil
	}
	m.open[i] = false
	if err := m.sources[i].Stream.Close(); err != nil {
		m.logger.Warn("msg", "Failed to close merge source",
			"component", "merger",
			"source", m.sourceName(i),
			"error", err)
		return fmt.Errorf("closing source %s: %w", m.sourceName(i), err)
	}
	return nil
}

func (m *Merger) sourceName(i int) string {
	src := m.sources[i]
	switch {
	case src.Name != "":
		return src.Name
	case src.Label != "":
		return src.Label
	default:
		return fmt.Sprintf("#%d", i)
	}
}

// Stats returns the counters accumulated so far.
func (m *Merger) Stats() Stats {
	return m.stats
}

// Close closes every source that is still open. It is safe to call more
// than once.
func (m *Merger) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.heads = nil

	var errs []error
	for i := range m.sources {
		if err := m.closeSource(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
