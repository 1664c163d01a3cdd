package progress

import "time"

// window is a fixed-capacity FIFO of per-unit durations. Pushing into a
// full window evicts the oldest entry.
type window struct {
	buf  []time.Duration
	head int
	size int
	sum  time.Duration
}

func newWindow(capacity int) *window {
	if capacity < 1 {
		capacity = 1
	}
	return &window{buf: make([]time.Duration, capacity)}
}

func (w *window) push(d time.Duration) {
	if w.size == len(w.buf) {
		w.sum -= w.buf[w.head]
		w.buf[w.head] = d
		w.head = (w.head + 1) % len(w.buf)
		w.sum += d
		return
	}
	w.buf[(w.head+w.size)%len(w.buf)] = d
	w.size++
	w.sum += d
}

func (w *window) mean() time.Duration {
	if w.size == 0 {
		return 0
	}
	return w.sum / time.Duration(w.size)
}
