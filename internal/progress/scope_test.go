package progress

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHooks struct {
	starts   int
	updates  int
	finishes int
	steps    int64
}

func (h *countingHooks) Start()       { h.starts++ }
func (h *countingHooks) Update()      { h.updates++ }
func (h *countingHooks) Finish()      { h.finishes++ }
func (h *countingHooks) Next(n int64) { h.steps += n }

func TestRunFinishesOnceOnError(t *testing.T) {
	hooks := &countingHooks{}
	boom := errors.New("boom")

	err := Run(hooks, func() error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, hooks.starts)
	assert.Equal(t, 1, hooks.finishes)
}

func TestRunFinishesOnceOnPanic(t *testing.T) {
	hooks := &countingHooks{}

	assert.PanicsWithValue(t, "halfway", func() {
		_ = Run(hooks, func() error {
			panic("halfway")
		})
	})
	assert.Equal(t, 1, hooks.starts)
	assert.Equal(t, 1, hooks.finishes)
}

func TestRunNilFunc(t *testing.T) {
	hooks := &countingHooks{}
	require.NoError(t, Run(hooks, nil))
	assert.Equal(t, 1, hooks.finishes)
}

func TestBoundedDoRendersStartAndFinish(t *testing.T) {
	rec := &recorder{}
	b := NewBounded(Options{Max: 4, Observer: rec})

	err := b.Do(func() error {
		require.Len(t, rec.snapshots, 1, "start renders the initial state")
		b.Goto(4)
		return nil
	})

	require.NoError(t, err)
	last := rec.snapshots[len(rec.snapshots)-1]
	assert.Equal(t, int64(4), last.Index)
	assert.Equal(t, 1.0, last.Progress)
}

func TestUnboundedDoStartIsSilent(t *testing.T) {
	rec := &recorder{}
	tr := New(Options{Observer: rec})

	err := tr.Do(func() error {
		assert.Empty(t, rec.snapshots)
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, rec.snapshots, 1)
}

func TestIterSliceAdoptsLength(t *testing.T) {
	rec := &recorder{}
	b := NewBounded(Options{Observer: rec})

	var seen []string
	for item := range IterSlice(b, []string{"a", "b", "c", "d", "e"}) {
		seen = append(seen, item)
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, seen)
	assert.Equal(t, int64(5), b.Max())
	assert.Equal(t, int64(5), b.Index())
	assert.Equal(t, 1.0, b.Progress())

	last := rec.snapshots[len(rec.snapshots)-1]
	assert.Equal(t, int64(5), last.Max)
	assert.Equal(t, int64(5), last.Index)
}

func TestIterFinishesOnceOnBreak(t *testing.T) {
	hooks := &countingHooks{}

	for item := range IterSlice(hooks, []int{1, 2, 3, 4}) {
		if item == 3 {
			break
		}
	}

	assert.Equal(t, int64(2), hooks.steps)
	assert.Equal(t, 1, hooks.starts)
	assert.Equal(t, 1, hooks.finishes)
}

func TestIterFinishesOnceOnPanic(t *testing.T) {
	hooks := &countingHooks{}

	assert.Panics(t, func() {
		for item := range IterSlice(hooks, []int{1, 2, 3}) {
			if item == 2 {
				panic("consumer failed")
			}
		}
	})

	assert.Equal(t, int64(1), hooks.steps)
	assert.Equal(t, 1, hooks.finishes)
}

func TestIterIsSingleUse(t *testing.T) {
	hooks := &countingHooks{}
	seq := IterSlice(hooks, []int{1, 2})

	count := 0
	for range seq {
		count++
	}
	for range seq {
		count++
	}

	assert.Equal(t, 2, count)
	assert.Equal(t, 1, hooks.finishes)
}

func TestIterUnknownSizeKeepsMax(t *testing.T) {
	b := NewBounded(Options{Max: 7})

	var unsized iter.Seq[int] = func(yield func(int) bool) {
		for i := 0; i < 3; i++ {
			if !yield(i) {
				return
			}
		}
	}
	for range Iter(b, unsized) {
	}

	assert.Equal(t, int64(7), b.Max())
	assert.Equal(t, int64(3), b.Index())
	assert.Equal(t, int64(4), b.Remaining())
}

func TestIterSliceUnboundedHasNoMax(t *testing.T) {
	tr := New(Options{})
	for range IterSlice(tr, []int{1, 2, 3}) {
	}

	assert.Equal(t, int64(3), tr.Index())
	assert.False(t, tr.Snapshot().Bounded)
}
