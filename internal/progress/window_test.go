package progress

import "time"

func (w *window) len() int {
	return w.size
}

func (w *window) capacity() int {
	return len(w.buf)
}

// values returns the entries oldest first.
func (w *window) values() []time.Duration {
	out := make([]time.Duration, 0, w.size)
	for i := 0; i < w.size; i++ {
		out = append(out, w.buf[(w.head+i)%len(w.buf)])
	}
	return out
}
