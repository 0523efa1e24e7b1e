package model

// EventType identifies the kind of notification emitted by an indexing run.
type EventType string

const (
	EventProgress  EventType = "progress"
	EventCompleted EventType = "completed"
	EventFailed    EventType = "failed"
)

// Event is a single notification from an indexing run. A run emits any number
// of progress events followed by exactly one completed or failed event.
type Event struct {
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
	Count     int       `json:"count"`
	Duration  float64   `json:"duration_seconds,omitempty"` // Completed only
	Cancelled bool      `json:"cancelled,omitempty"`        // Completed only
	Message   string    `json:"message,omitempty"`          // Failed only
}

// IsTerminal reports whether this is the last event of its run.
func (e Event) IsTerminal() bool {
	return e.Type == EventCompleted || e.Type == EventFailed
}

// Progress builds a progress event.
func Progress(runID string, count int) Event {
	return Event{Type: EventProgress, RunID: runID, Count: count}
}

// Completed builds a completion event.
func Completed(runID string, count int, seconds float64, cancelled bool) Event {
	return Event{Type: EventCompleted, RunID: runID, Count: count, Duration: seconds, Cancelled: cancelled}
}

// Failed builds a failure event.
func Failed(runID, message string) Event {
	return Event{Type: EventFailed, RunID: runID, Message: message}
}
