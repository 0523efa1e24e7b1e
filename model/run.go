package model

import (
	"time"
)

// RunStatus represents the lifecycle state of an indexing run
type RunStatus string

const (
	RunStatusPending    RunStatus = "pending"
	RunStatusRunning    RunStatus = "running"
	RunStatusCancelling RunStatus = "cancelling"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusCancelled  RunStatus = "cancelled"
	RunStatusFailed     RunStatus = "failed"
)

// IsTerminal reports whether no further transitions can happen from this status.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusCompleted || s == RunStatusCancelled || s == RunStatusFailed
}

// Run represents one background indexing pass over a root directory
type Run struct {
	ID          string     `json:"id"`
	Root        string     `json:"root"`
	Status      RunStatus  `json:"status"`
	Indexed     int        `json:"indexed"`
	Duration    float64    `json:"duration_seconds,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
