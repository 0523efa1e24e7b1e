package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-file-search/internal/errors"
	"github.com/gcbaptista/go-file-search/model"
)

// RunResult is what a run function reports when it returns without error.
type RunResult struct {
	Indexed   int
	Cancelled bool
}

// RunFunc performs the work of one run. ctx is cancelled by CancelRun and
// Stop; run is a snapshot of the run at the time it started.
type RunFunc func(ctx context.Context, run model.Run) (RunResult, error)

type runEntry struct {
	run             *model.Run
	ctx             context.Context
	cancel          context.CancelFunc
	cancelRequested bool
	done            chan struct{}
}

// Manager handles background run execution and tracking
type Manager struct {
	mu       sync.RWMutex
	runs     map[string]*runEntry
	workers  chan struct{} // Limits concurrent runs
	stopChan chan struct{}
	stopOnce sync.Once
	stopped  bool // guarded by mu; set before wg.Wait in Stop
	wg       sync.WaitGroup
	metrics  *RunMetrics
	logger   *slog.Logger
}

// NewManager creates a new run manager with specified worker count
func NewManager(maxWorkers int, logger *slog.Logger) *Manager {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		runs:     make(map[string]*runEntry),
		workers:  make(chan struct{}, maxWorkers),
		stopChan: make(chan struct{}),
		metrics:  NewRunMetrics(),
		logger:   logger,
	}
}

// Start begins background cleanup of finished runs
func (m *Manager) Start() {
	m.logger.Info("Run manager started", "max_workers", cap(m.workers))

	go m.cleanupRoutine()
}

// Stop cancels every active run and waits for them to return.
// Safe to call multiple times.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		m.stopped = true
		for _, entry := range m.runs {
			if !entry.run.Status.IsTerminal() {
				entry.cancelRequested = true
				entry.cancel()
			}
		}
		m.mu.Unlock()

		m.wg.Wait()
		m.logger.Info("Run manager stopped")
	})
}

// CreateRun registers a pending run over root and returns its ID
func (m *Manager) CreateRun(root string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	run := &model.Run{
		ID:        uuid.New().String(),
		Root:      root,
		Status:    model.RunStatusPending,
		CreatedAt: time.Now(),
	}

	m.runs[run.ID] = &runEntry{
		run:    run,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.metrics.RecordRunCreated()
	m.logger.Info("Created run", "run_id", run.ID, "root", root)
	return run.ID
}

// GetRun retrieves a copy of a run by ID
func (m *Manager) GetRun(runID string) (*model.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.runs[runID]
	if !exists {
		return nil, errors.NewRunNotFoundError(runID)
	}
	return copyRun(entry.run), nil
}

// ListRuns returns all runs ordered by creation time, optionally filtered by status
func (m *Manager) ListRuns(status *model.RunStatus) []*model.Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Run, 0, len(m.runs))
	for _, entry := range m.runs {
		if status == nil || entry.run.Status == *status {
			result = append(result, copyRun(entry.run))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// ExecuteRun runs runFunc in a goroutine once a worker slot is free.
// It blocks only while waiting for the slot.
func (m *Manager) ExecuteRun(runID string, runFunc RunFunc) error {
	m.mu.Lock()
	entry, exists := m.runs[runID]
	if !exists {
		m.mu.Unlock()
		return errors.NewRunNotFoundError(runID)
	}

	if entry.run.Status != model.RunStatusPending && entry.run.Status != model.RunStatusCancelling {
		m.mu.Unlock()
		return fmt.Errorf("run with ID '%s' is not in pending status (current: %s)", runID, entry.run.Status)
	}
	m.mu.Unlock()

	// A free slot and a closed stopChan can both be ready; stop wins.
	select {
	case <-m.stopChan:
		return m.refuseRun(runID)
	default:
	}

	// Acquire worker slot
	select {
	case m.workers <- struct{}{}:
	case <-m.stopChan:
		return m.refuseRun(runID)
	}

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		<-m.workers
		return m.refuseRun(runID)
	}
	// Added under mu so Stop never waits on a group that can still grow.
	m.wg.Add(1)
	oldStatus := entry.run.Status
	if oldStatus == model.RunStatusPending {
		entry.run.Status = model.RunStatusRunning
	}
	now := time.Now()
	entry.run.StartedAt = &now
	snapshot := *entry.run
	m.metrics.RecordRunStatusChange(oldStatus, entry.run.Status)
	m.mu.Unlock()

	go func() {
		defer func() {
			<-m.workers // Release worker slot
			m.wg.Done()
		}()
		defer entry.cancel()

		startTime := time.Now()
		result, err := runFunc(entry.ctx, snapshot)
		executionTime := time.Since(startTime)

		switch {
		case err != nil:
			m.finishRun(runID, model.RunStatusFailed, result, err.Error(), executionTime)
			m.logger.Error("Run failed", "run_id", runID, "duration", executionTime, "error", err)
		case result.Cancelled:
			m.finishRun(runID, model.RunStatusCancelled, result, "", executionTime)
			m.logger.Info("Run cancelled", "run_id", runID, "indexed", result.Indexed, "duration", executionTime)
		default:
			m.finishRun(runID, model.RunStatusCompleted, result, "", executionTime)
			m.logger.Info("Run completed", "run_id", runID, "indexed", result.Indexed, "duration", executionTime)
		}
	}()

	return nil
}

// CancelRun requests cancellation of a run. It reports false when the run
// had already finished.
func (m *Manager) CancelRun(runID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.runs[runID]
	if !exists {
		return false, errors.NewRunNotFoundError(runID)
	}
	if entry.run.Status.IsTerminal() {
		return false, nil
	}

	if !entry.cancelRequested {
		entry.cancelRequested = true
		oldStatus := entry.run.Status
		entry.run.Status = model.RunStatusCancelling
		m.metrics.RecordRunStatusChange(oldStatus, entry.run.Status)
		m.logger.Info("Cancellation requested", "run_id", runID)
	}
	entry.cancel()
	return true, nil
}

// Wait blocks until the run finishes or ctx is done, and returns the run.
func (m *Manager) Wait(ctx context.Context, runID string) (*model.Run, error) {
	m.mu.RLock()
	entry, exists := m.runs[runID]
	m.mu.RUnlock()
	if !exists {
		return nil, errors.NewRunNotFoundError(runID)
	}

	select {
	case <-entry.done:
		return m.GetRun(runID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// UpdateRunProgress records how many items a running run has indexed
func (m *Manager) UpdateRunProgress(runID string, indexed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.runs[runID]
	if !exists || entry.run.Status.IsTerminal() {
		return
	}
	entry.run.Indexed = indexed
}

// finishRun moves a run to a terminal status and releases its waiters.
// refuseRun ends a run that was submitted after Stop.
func (m *Manager) refuseRun(runID string) error {
	m.finishRun(runID, model.RunStatusCancelled, RunResult{}, "Run manager shutting down", 0)
	return fmt.Errorf("run manager is shutting down")
}

func (m *Manager) finishRun(runID string, status model.RunStatus, result RunResult, errorMsg string, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.runs[runID]
	if !exists || entry.run.Status.IsTerminal() {
		return
	}

	oldStatus := entry.run.Status
	entry.run.Status = status
	entry.run.Indexed = result.Indexed
	entry.run.Duration = executionTime.Seconds()
	if errorMsg != "" {
		entry.run.Error = errorMsg
	}
	now := time.Now()
	entry.run.CompletedAt = &now

	m.metrics.RecordRunStatusChange(oldStatus, status)
	switch status {
	case model.RunStatusCompleted:
		m.metrics.RecordRunCompleted(executionTime, result.Indexed)
	case model.RunStatusCancelled:
		m.metrics.RecordRunCancelled(executionTime, result.Indexed)
	case model.RunStatusFailed:
		m.metrics.RecordRunFailed()
	}

	close(entry.done)
}

// cleanupRoutine runs periodic run cleanup
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldRuns(24 * time.Hour)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupOldRuns removes finished runs older than the specified duration
func (m *Manager) CleanupOldRuns(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for runID, entry := range m.runs {
		if entry.run.CompletedAt != nil && entry.run.CompletedAt.Before(cutoff) {
			delete(m.runs, runID)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.logger.Info("Cleaned up old runs", "count", cleaned)
	}
	return cleaned
}

// GetMetrics returns current run metrics
func (m *Manager) GetMetrics() RunMetricsData {
	return m.metrics.GetMetrics()
}

// GetCurrentWorkload returns the number of runs not yet finished
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.GetCurrentWorkload()
}

func copyRun(run *model.Run) *model.Run {
	runCopy := *run
	if run.StartedAt != nil {
		started := *run.StartedAt
		runCopy.StartedAt = &started
	}
	if run.CompletedAt != nil {
		completed := *run.CompletedAt
		runCopy.CompletedAt = &completed
	}
	return &runCopy
}
