package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func boundedSnapshot() Snapshot {
	return Snapshot{
		Index:     25,
		Elapsed:   3 * time.Second,
		Avg:       250 * time.Millisecond,
		Rate:      4,
		Bounded:   true,
		Max:       100,
		Remaining: 75,
		ETA:       19 * time.Second,
		Progress:  0.25,
		Percent:   25,
		Total:     22 * time.Second,
		Fields:    map[string]any{"message": "Copying", "_secret": "hidden", "index": "shadowed"},
	}
}

func TestSnapshotField(t *testing.T) {
	s := boundedSnapshot()

	tests := []struct {
		name   string
		want   any
		wantOK bool
	}{
		{name: "index", want: int64(25), wantOK: true},
		{name: "max", want: int64(100), wantOK: true},
		{name: "elapsed", want: int64(3), wantOK: true},
		{name: "elapsed_td", want: 3 * time.Second, wantOK: true},
		{name: "avg", want: 0.25, wantOK: true},
		{name: "eta", want: int64(19), wantOK: true},
		{name: "total", want: int64(22), wantOK: true},
		{name: "percent", want: 25.0, wantOK: true},
		{name: "remaining", want: int64(75), wantOK: true},
		{name: "message", want: "Copying", wantOK: true},
		{name: "_secret", want: nil, wantOK: false},
		{name: "_start", want: nil, wantOK: false},
		{name: "missing", want: nil, wantOK: false},
		{name: "", want: nil, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.Field(tc.name)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSnapshotFieldUnboundedHidesBoundedMetrics(t *testing.T) {
	s := Snapshot{
		Index:  3,
		Fields: map[string]any{"percent": 50.0, "message": "Spinning"},
	}

	_, ok := s.Field("percent")
	assert.False(t, ok)
	_, ok = s.Field("eta")
	assert.False(t, ok)

	got, ok := s.Field("message")
	assert.True(t, ok)
	assert.Equal(t, "Spinning", got)
}

func TestSnapshotExpand(t *testing.T) {
	s := boundedSnapshot()

	tests := []struct {
		template string
		want     string
	}{
		{template: "{message} {index}/{max}", want: "Copying 25/100"},
		{template: "{percent:.1f}% eta {eta}s", want: "25.0% eta 19s"},
		{template: "{eta_td}", want: "19s"},
		{template: "[{_secret}{missing}]", want: "[]"},
		{template: "{{literal}} {index:5d}", want: "{literal}    25"},
		{template: "open {index", want: "open {index"},
		{template: "plain", want: "plain"},
	}

	for _, tc := range tests {
		t.Run(tc.template, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Expand(tc.template))
		})
	}
}
