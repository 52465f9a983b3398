// FILE: logtools/src/internal/merge/merger_test.go
package merge

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"testing"
	"time"

	"logtools/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// sliceStream replays entries and optionally fails after them.
type sliceStream struct {
	entries []core.Entry
	failAt  error
	closed  int
}

func (s *sliceStream) Next() (core.Entry, error) {
	if len(s.entries) == 0 {
		if s.failAt != nil {
			return core.Entry{}, s.failAt
		}
		return core.Entry{}, io.EOF
	}
	e := s.entries[0]
	s.entries = s.entries[1:]
	return e, nil
}

func (s *sliceStream) Close() error {
	s.closed++
	return nil
}

func at(sec int, text string) core.Entry {
	return core.Entry{Text: text, Time: base.Add(time.Duration(sec) * time.Second)}
}

func drain(t *testing.T, m *Merger) []core.LabeledEntry {
	t.Helper()
	var out []core.LabeledEntry
	for {
		e, err := m.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, e)
	}
}

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestMerger_OrderAndTieBreak(t *testing.T) {
	a := &sliceStream{entries: []core.Entry{at(0, "a0"), at(2, "a2"), at(2, "a2b")}}
	b := &sliceStream{entries: []core.Entry{at(1, "b1"), at(2, "b2")}}
	c := &sliceStream{entries: []core.Entry{at(2, "c2"), at(3, "c3")}}

	m := New([]Source{{Stream: a, Label: "a"}, {Stream: b, Label: "b"}, {Stream: c}}, newTestLogger())
	out := drain(t, m)

	var got []string
	for _, e := range out {
		got = append(got, e.Text)
	}
	assert.Equal(t, []string{"a0", "b1", "a2", "a2b", "b2", "c2", "c3"}, got)
	assert.Equal(t, "a", out[0].Label)
	assert.Equal(t, "b", out[1].Label)
	assert.Equal(t, "", out[5].Label, "unlabeled source")

	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
	assert.Equal(t, 1, c.closed)
	assert.Equal(t, uint64(7), m.Stats().Emitted)

	require.NoError(t, m.Close())
	assert.Equal(t, 1, a.closed, "exhausted sources are not closed twice")
}

func TestMerger_RandomizedProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := rng.Intn(6)
		sources := make([]Source, n)
		total := 0
		for i := range sources {
			count := rng.Intn(20)
			entries := make([]core.Entry, count)
			sec := 0
			for j := range entries {
				sec += rng.Intn(3)
				entries[j] = at(sec, fmt.Sprintf("s%d-e%d", i, j))
			}
			total += count
			sources[i] = Source{Stream: &sliceStream{entries: entries}, Label: fmt.Sprintf("s%d", i)}
		}

		out := drain(t, New(sources, newTestLogger()))
		require.Len(t, out, total, "round %d", round)

		seen := make(map[string]bool, total)
		for i, e := range out {
			assert.False(t, seen[e.Text], "duplicate %s", e.Text)
			seen[e.Text] = true
			if i == 0 {
				continue
			}
			prev := out[i-1]
			require.False(t, e.Time.Before(prev.Time), "round %d out of order at %d", round, i)
			if e.Time.Equal(prev.Time) {
				assert.LessOrEqual(t, prev.Label, e.Label, "earlier source wins ties")
			}
		}
	}
}

func TestMerger_SkipsUntimed(t *testing.T) {
	a := &sliceStream{entries: []core.Entry{{Text: "no time"}, at(1, "a1"), {Text: "also none"}}}
	b := &sliceStream{entries: []core.Entry{at(0, "b0")}}

	m := New([]Source{{Stream: a}, {Stream: b}}, newTestLogger())
	out := drain(t, m)

	require.Len(t, out, 2)
	assert.Equal(t, "b0", out[0].Text)
	assert.Equal(t, "a1", out[1].Text)
	assert.Equal(t, uint64(2), m.Stats().SkippedUntimed)
}

func TestMerger_FailingSourceDropped(t *testing.T) {
	boom := errors.New("read failed")
	a := &sliceStream{entries: []core.Entry{at(0, "a0")}, failAt: boom}
	b := &sliceStream{entries: []core.Entry{at(1, "b1"), at(2, "b2")}}

	m := New([]Source{{Stream: a, Name: "a.log"}, {Stream: b}}, newTestLogger())
	out := drain(t, m)

	require.Len(t, out, 3)
	assert.Equal(t, uint64(1), m.Stats().FailedSources)
	assert.Equal(t, 1, a.closed)
}

func TestMerger_Empty(t *testing.T) {
	m := New(nil, newTestLogger())
	_, err := m.Next()
	assert.Equal(t, io.EOF, err)
	require.NoError(t, m.Close())
}

func TestMerger_CloseEarly(t *testing.T) {
	a := &sliceStream{entries: []core.Entry{at(0, "a0"), at(1, "a1")}}
	b := &sliceStream{entries: []core.Entry{at(0, "b0")}}
	m := New([]Source{{Stream: a}, {Stream: b}}, newTestLogger())

	_, err := m.Next()
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)

	_, err = m.Next()
	assert.Equal(t, io.EOF, err)
}

func TestHeadHeap_LessIsStrictWeakOrder(t *testing.T) {
	h := headHeap{
		{entry: at(1, "x"), index: 2},
		{entry: at(1, "y"), index: 0},
		{entry: at(0, "z"), index: 5},
	}
	sort.Sort(h)
	assert.Equal(t, []int{5, 0, 2}, []int{h[0].index, h[1].index, h[2].index})
}
