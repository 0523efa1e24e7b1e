package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-file-search/model"
)

// RunMetricsData represents run metrics data without mutex (safe for copying)
type RunMetricsData struct {
	RunsCreated          int64                     `json:"runs_created"`
	RunsCompleted        int64                     `json:"runs_completed"`
	RunsCancelled        int64                     `json:"runs_cancelled"`
	RunsFailed           int64                     `json:"runs_failed"`
	ItemsIndexed         int64                     `json:"items_indexed"`
	TotalExecutionTime   time.Duration             `json:"total_execution_time_ns"`
	AverageExecutionTime time.Duration             `json:"average_execution_time_ns"`
	RunsByStatus         map[model.RunStatus]int64 `json:"runs_by_status"`
	LastUpdated          time.Time                 `json:"last_updated"`
}

// RunMetrics tracks counters for indexing runs
type RunMetrics struct {
	mu                   sync.RWMutex
	RunsCreated          int64
	RunsCompleted        int64
	RunsCancelled        int64
	RunsFailed           int64
	ItemsIndexed         int64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	RunsByStatus         map[model.RunStatus]int64
	LastUpdated          time.Time
}

// NewRunMetrics creates a new metrics collector
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		RunsByStatus: make(map[model.RunStatus]int64),
		LastUpdated:  time.Now(),
	}
}

// RecordRunCreated increments run creation counter
func (m *RunMetrics) RecordRunCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RunsCreated++
	m.RunsByStatus[model.RunStatusPending]++
	m.LastUpdated = time.Now()
}

// RecordRunStatusChange updates status counters
func (m *RunMetrics) RecordRunStatusChange(oldStatus, newStatus model.RunStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus == newStatus {
		return
	}
	if oldStatus != "" {
		m.RunsByStatus[oldStatus]--
		if m.RunsByStatus[oldStatus] < 0 {
			m.RunsByStatus[oldStatus] = 0
		}
	}
	m.RunsByStatus[newStatus]++
	m.LastUpdated = time.Now()
}

// RecordRunCompleted records a run that walked its whole tree
func (m *RunMetrics) RecordRunCompleted(executionTime time.Duration, indexed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RunsCompleted++
	m.recordFinishedLocked(executionTime, indexed)
}

// RecordRunCancelled records a run stopped before the walk ended
func (m *RunMetrics) RecordRunCancelled(executionTime time.Duration, indexed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RunsCancelled++
	m.recordFinishedLocked(executionTime, indexed)
}

// RecordRunFailed records run failure
func (m *RunMetrics) RecordRunFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RunsFailed++
	m.LastUpdated = time.Now()
}

func (m *RunMetrics) recordFinishedLocked(executionTime time.Duration, indexed int) {
	m.ItemsIndexed += int64(indexed)
	m.TotalExecutionTime += executionTime

	if finished := m.RunsCompleted + m.RunsCancelled; finished > 0 {
		m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(finished)
	}
	m.LastUpdated = time.Now()
}

// GetMetrics returns a copy of current metrics without mutex (safe for copying)
func (m *RunMetrics) GetMetrics() RunMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runsByStatus := make(map[model.RunStatus]int64, len(m.RunsByStatus))
	for k, v := range m.RunsByStatus {
		runsByStatus[k] = v
	}

	return RunMetricsData{
		RunsCreated:          m.RunsCreated,
		RunsCompleted:        m.RunsCompleted,
		RunsCancelled:        m.RunsCancelled,
		RunsFailed:           m.RunsFailed,
		ItemsIndexed:         m.ItemsIndexed,
		TotalExecutionTime:   m.TotalExecutionTime,
		AverageExecutionTime: m.AverageExecutionTime,
		RunsByStatus:         runsByStatus,
		LastUpdated:          m.LastUpdated,
	}
}

// GetCurrentWorkload returns the number of runs not yet finished
func (m *RunMetrics) GetCurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.RunsByStatus[model.RunStatusPending] +
		m.RunsByStatus[model.RunStatusRunning] +
		m.RunsByStatus[model.RunStatusCancelling]
}
