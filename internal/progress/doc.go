// Package progress tracks iteration counts over time and derives the metrics
// a terminal progress display needs: elapsed time, throughput, ETA and
// percent complete.
//
// # Usage
//
//	bar := progress.NewBounded(progress.Options{Max: int64(len(files))})
//	for f := range progress.IterSlice(bar, files) {
//	    process(f)
//	}
//
// Throughput is a simple moving average of per-unit durations over the last
// Options.Window samples. Samples, and the update notification that goes with
// them, are throttled to at most one per Options.MinInterval.
package progress
