package progress

import (
	"iter"
	"slices"
)

// Run calls h.Start, then fn, and always calls h.Finish exactly once
// afterwards, including when fn returns an error or panics. fn's error is
// returned unchanged.
func Run(h Hooks, fn func() error) error {
	h.Start()
	defer h.Finish()
	if fn == nil {
		return nil
	}
	return fn()
}

// Iter wraps seq so that every element the consumer accepts advances h by
// one unit. Start fires before the first element and Finish fires exactly
// once when seq is exhausted, the consumer breaks out early, or the loop
// body panics.
//
// The returned sequence is single-use. Ranging over it again yields nothing.
func Iter[T any](h Stepper, seq iter.Seq[T]) iter.Seq[T] {
	return IterSized(h, seq, -1)
}

// IterSlice is Iter over a slice. Trackers implementing Sizer adopt the
// slice length as their target.
func IterSlice[T any](h Stepper, items []T) iter.Seq[T] {
	return IterSized(h, slices.Values(items), len(items))
}

// IterSized is Iter with a size hint. A negative n means the size is
// unknown and the tracker's target is left alone.
func IterSized[T any](h Stepper, seq iter.Seq[T], n int) iter.Seq[T] {
	used := false
	return func(yield func(T) bool) {
		if used {
			return
		}
		used = true

		if sizer, ok := h.(Sizer); ok && n >= 0 {
			sizer.SetMax(int64(n))
		}

		h.Start()
		defer h.Finish()
		for item := range seq {
			if !yield(item) {
				return
			}
			h.Next(1)
		}
	}
}
