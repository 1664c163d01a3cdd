package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestJSONEmitterSerializesEvent(t *testing.T) {
	buf := &bytes.Buffer{}
	emitter := NewJSONEmitter(buf)

	event := Event{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     LevelInfo,
		Event:     EventTrackerUpdated,
		Message:   "3/10 30.0%",
		Details: map[string]any{
			"index": 3,
		},
	}

	if err := emitter.Emit(event); err != nil {
		t.Fatalf("emit: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	if decoded["event"] != string(EventTrackerUpdated) {
		t.Fatalf("unexpected event name: %v", decoded["event"])
	}
	if decoded["message"] != "3/10 30.0%" {
		t.Fatalf("unexpected message: %v", decoded["message"])
	}
}

func TestHumanEmitterQuietSkipsUpdates(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	emitter := NewHumanEmitter(NewStatusLine(out, false), errOut, true, false)

	events := []Event{
		{Level: LevelInfo, Event: EventTrackerStarted, Message: "started"},
		{Level: LevelInfo, Event: EventTrackerUpdated, Message: "1/2"},
		{Level: LevelWarn, Event: EventTrackerUpdated, Message: "slow"},
		{Level: LevelInfo, Event: EventTrackerFinished, Message: "done: 2/2"},
	}
	for _, event := range events {
		if err := emitter.Emit(event); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}

	if got := out.String(); got != "done: 2/2\n" {
		t.Fatalf("expected only the final line, got %q", got)
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected quiet mode to drop warnings, got %q", errOut.String())
	}
}

func TestHumanEmitterVerboseShowsStart(t *testing.T) {
	out := &bytes.Buffer{}
	emitter := NewHumanEmitter(NewStatusLine(out, false), &bytes.Buffer{}, false, true)

	if err := emitter.Emit(Event{Level: LevelInfo, Event: EventTrackerStarted, Message: "started: 0/5"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(out.String(), "started: 0/5") {
		t.Fatalf("expected start line in verbose mode, got %q", out.String())
	}
}

func TestHumanEmitterErrorClearsStatus(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	emitter := NewHumanEmitter(NewStatusLine(out, true), errOut, true, false)

	if err := emitter.Emit(Event{Level: LevelInfo, Event: EventTrackerUpdated, Message: "1/2"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := emitter.Emit(Event{Level: LevelError, Event: EventTrackerFinished, Message: "stopped: 1/2"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if out.Len() != 0 {
		t.Fatalf("expected quiet mode to skip the update, got %q", out.String())
	}
	if got := errOut.String(); got != "ERROR: stopped: 1/2\n" {
		t.Fatalf("unexpected error output: %q", got)
	}
}

func TestMultiEmitterFansOut(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}
	emitter := NewMultiEmitter(NewJSONEmitter(first), NewJSONEmitter(second))

	if err := emitter.Emit(Event{Level: LevelInfo, Event: EventTrackerFinished}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if first.Len() == 0 || second.Len() == 0 {
		t.Fatalf("expected both emitters to receive the event")
	}
}
