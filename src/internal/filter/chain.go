// FILE: logtools/src/internal/filter/chain.go
package filter

import (
	"fmt"

	"logtools/src/internal/config"
	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
)

// Chain is the conjunction of its filters. Entries are counted per filter
// that rejected them, so the first failing filter takes the blame.
type Chain struct {
	filters  []*Filter
	rejected []uint64
	seen     uint64
	passed   uint64
	logger   *log.Logger
}

// NewChain compiles every filter configuration up front; an invalid one
// fails the whole chain.
func NewChain(configs []config.FilterConfig, logger *log.Logger) (*Chain, error) {
	c := &Chain{
		filters:  make([]*Filter, 0, len(configs)),
		rejected: make([]uint64, len(configs)),
		logger:   logger,
	}
	for i := range configs {
		f, err := NewFilter(configs[i], logger)
		if err != nil {
			return nil, fmt.Errorf("filter[%d]: %w", i, err)
		}
		c.filters = append(c.filters, f)
	}

	logger.Debug("msg", "Filter chain compiled",
		"component", "filter_chain",
		"filter_count", len(c.filters))
	return c, nil
}

// Len reports the number of filters.
func (c *Chain) Len() int {
	return len(c.filters)
}

// Apply reports whether entry passes every filter.
func (c *Chain) Apply(entry core.Entry) bool {
	c.seen++
	for i, f := range c.filters {
		if f.Apply(entry) {
			continue
		}
		c.rejected[i]++
		return false
	}
	c.passed++
	return true
}

// Wrap returns a stream yielding only the entries of in that pass the chain.
// Read errors from in are passed through unchanged; closing the result
// closes in.
func (c *Chain) Wrap(in core.Stream) core.Stream {
	return &filtered{chain: c, in: in}
}

// GetStats returns totals plus the rejection count of each filter.
func (c *Chain) GetStats() map[string]any {
	perFilter := make([]map[string]any, len(c.filters))
	for i, f := range c.filters {
		stats := f.GetStats()
		stats["rejected"] = c.rejected[i]
		perFilter[i] = stats
	}
	return map[string]any{
		"filter_count":    len(c.filters),
		"total_processed": c.seen,
		"total_passed":    c.passed,
		"filters":         perFilter,
	}
}

type filtered struct {
	chain *Chain
	in    core.Stream
}

func (s *filtered) Next() (core.Entry, error) {
	for {
		e, err := s.in.Next()
		if err != nil {
			return core.Entry{}, err
		}
		if s.chain.Apply(e) {
			return e, nil
		}
	}
}

func (s *filtered) Close() error {
	return s.in.Close()
}
