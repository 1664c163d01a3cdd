package output

import "time"

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type EventName string

const (
	EventTrackerStarted  EventName = "tracker_started"
	EventTrackerUpdated  EventName = "tracker_updated"
	EventTrackerFinished EventName = "tracker_finished"
	EventTrackerWarning  EventName = "tracker_warning"
)

type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Event     EventName      `json:"event"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}
