package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gcbaptista/go-file-search/config"
	"github.com/gcbaptista/go-file-search/internal/analytics"
	"github.com/gcbaptista/go-file-search/internal/errors"
	"github.com/gcbaptista/go-file-search/internal/events"
	"github.com/gcbaptista/go-file-search/internal/jobs"
	"github.com/gcbaptista/go-file-search/internal/search"
	"github.com/gcbaptista/go-file-search/model"
	"github.com/gcbaptista/go-file-search/services"
)

// cacheKey identifies a lookup against one sealed snapshot.
type cacheKey struct {
	runID  string
	mode   services.SearchMode
	query  string
	filter string
}

// Engine owns the current index snapshot and the run that fills it.
// It implements the services.FileSearchEngine interface.
type Engine struct {
	mu         sync.Mutex // serializes Start, Cancel and Close
	activeRun  string     // guarded by mu
	current    atomic.Pointer[IndexInstance]
	jobManager *jobs.Manager
	broker     *events.Broker
	cache      *lru.Cache[cacheKey, []model.DocRecord]
	analytics  *analytics.Service
	settings   config.Settings
	logger     *slog.Logger
}

var _ services.FileSearchEngine = (*Engine)(nil)

// NewEngine creates an engine holding an empty snapshot.
func NewEngine(settings config.Settings, logger *slog.Logger) (*Engine, error) {
	if err := config.ValidateSettings(&settings); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	eng := &Engine{
		jobManager: jobs.NewManager(1, logger),
		broker:     events.NewBroker(logger),
		settings:   settings,
		logger:     logger,
	}
	eng.analytics = analytics.NewService(eng)

	if settings.Search.CacheSize > 0 {
		cache, err := lru.New[cacheKey, []model.DocRecord](settings.Search.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		eng.cache = cache
	}

	empty, err := NewIndexInstance("", settings.Indexing.ProgressInterval, logger)
	if err != nil {
		return nil, err
	}
	empty.seal()
	eng.current.Store(empty)

	eng.jobManager.Start()
	return eng, nil
}

// Start discards the current snapshot and begins indexing root into a fresh
// one. Any active run is cancelled and waited for first. Only an empty root
// is rejected here; every filesystem problem is reported as a failed event.
func (e *Engine) Start(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", errors.NewValidationError("root", "cannot be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activeRun != "" {
		if cancelled, _ := e.jobManager.CancelRun(e.activeRun); cancelled {
			e.logger.Info("Cancelling previous run", "run_id", e.activeRun)
		}
		if _, err := e.jobManager.Wait(context.Background(), e.activeRun); err != nil {
			e.logger.Warn("Could not wait for previous run", "run_id", e.activeRun, "error", err)
		}
	}

	runID := e.jobManager.CreateRun(root)
	instance, err := NewIndexInstance(runID, e.settings.Indexing.ProgressInterval, e.logger)
	if err != nil {
		return "", fmt.Errorf("failed to create index snapshot: %w", err)
	}

	e.current.Store(instance)
	if e.cache != nil {
		e.cache.Purge()
	}
	e.activeRun = runID

	err = e.jobManager.ExecuteRun(runID, func(ctx context.Context, run model.Run) (jobs.RunResult, error) {
		return e.executeRun(ctx, instance, run)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start indexing run: %w", err)
	}

	return runID, nil
}

// Cancel requests the active run to stop. It reports false when no run is
// active.
func (e *Engine) Cancel() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activeRun == "" {
		return false
	}
	cancelled, err := e.jobManager.CancelRun(e.activeRun)
	if err != nil {
		e.logger.Warn("Cancel failed", "run_id", e.activeRun, "error", err)
		return false
	}
	return cancelled
}

// Subscribe returns a stream of run events published from now on.
func (e *Engine) Subscribe() *events.Subscription {
	return e.broker.Subscribe()
}

// Wait blocks until the run finishes or ctx is done.
func (e *Engine) Wait(ctx context.Context, runID string) (*model.Run, error) {
	return e.jobManager.Wait(ctx, runID)
}

// Search runs one lookup against the current snapshot.
//
// A non-empty query is a substring search. An empty query with a manual
// extension list lists every record with one of those extensions. Anything
// else finds nothing. Hits are truncated to the limit; Total is not.
func (e *Engine) Search(query services.SearchQuery) services.SearchResult {
	startTime := time.Now()
	instance := e.current.Load()

	limit := query.Limit
	if limit <= 0 {
		limit = e.settings.Search.DisplayLimit
	}
	queryString := strings.TrimSpace(query.QueryString)
	filter := search.ResolveExtensionFilter(query.Extensions, query.Type)

	mode := services.SearchModeIdle
	switch {
	case queryString != "":
		mode = services.SearchModeQuery
	case strings.TrimSpace(query.Extensions) != "":
		mode = services.SearchModeExtensionScan
	}

	var docs []model.DocRecord
	switch mode {
	case services.SearchModeQuery:
		docs = e.lookup(instance, cacheKey{mode: mode, query: strings.ToLower(queryString), filter: filter.Key()}, func() []model.DocRecord {
			return instance.Search(queryString, filter)
		})
	case services.SearchModeExtensionScan:
		docs = e.lookup(instance, cacheKey{mode: mode, filter: filter.Key()}, func() []model.DocRecord {
			return instance.ScanByExtension(filter)
		})
	default:
		docs = []model.DocRecord{}
	}

	total := len(docs)
	if len(docs) > limit {
		docs = docs[:limit]
	}

	took := time.Since(startTime)
	e.analytics.TrackSearchEvent(model.SearchEvent{
		RunID:        instance.RunID(),
		Query:        queryString,
		Mode:         string(mode),
		Filter:       filter.Key(),
		ResponseTime: took,
		ResultCount:  total,
	})

	return services.SearchResult{
		Hits:    docs,
		Total:   total,
		Limit:   limit,
		TookMs:  float64(took.Microseconds()) / 1000,
		Mode:    mode,
		RunID:   instance.RunID(),
		QueryId: uuid.New().String(),
	}
}

// lookup serves a result from the cache when the snapshot is sealed.
// The caller always gets its own slice.
func (e *Engine) lookup(instance *IndexInstance, key cacheKey, compute func() []model.DocRecord) []model.DocRecord {
	if e.cache == nil || !instance.Sealed() {
		return compute()
	}

	key.runID = instance.RunID()
	if cached, ok := e.cache.Get(key); ok {
		return append(make([]model.DocRecord, 0, len(cached)), cached...)
	}

	docs := compute()
	e.cache.Add(key, append(make([]model.DocRecord, 0, len(docs)), docs...))
	return docs
}

// Extensions returns the catalog of the current snapshot, most frequent first.
func (e *Engine) Extensions() []string {
	return e.current.Load().SortedExtensions()
}

// ExtensionCounts returns the number of records per extension label in the
// current snapshot.
func (e *Engine) ExtensionCounts() map[string]int {
	return e.current.Load().Extensions.Counts()
}

// DocumentCount returns the number of records in the current snapshot.
func (e *Engine) DocumentCount() int {
	return e.current.Load().DocumentCount()
}

// GetAnalytics returns search analytics collected since the engine started.
func (e *Engine) GetAnalytics() model.AnalyticsDashboard {
	return e.analytics.GetDashboardData()
}

// Status reports on the current snapshot and its run.
func (e *Engine) Status() services.Status {
	instance := e.current.Load()
	status := services.Status{
		RunID:       instance.RunID(),
		Sealed:      instance.Sealed(),
		Documents:   instance.DocumentCount(),
		Trigrams:    instance.InvertedIndex.Len(),
		Extensions:  instance.Extensions.Len(),
		Subscribers: e.broker.Subscribers(),
	}

	if instance.RunID() != "" {
		if run, err := e.jobManager.GetRun(instance.RunID()); err == nil {
			status.RunStatus = run.Status
			status.Active = !run.Status.IsTerminal()
		}
	}
	return status
}

// GetRun returns a run by ID.
func (e *Engine) GetRun(runID string) (*model.Run, error) {
	return e.jobManager.GetRun(runID)
}

// ListRuns returns past and present runs, optionally filtered by status.
func (e *Engine) ListRuns(status *model.RunStatus) []*model.Run {
	return e.jobManager.ListRuns(status)
}

// GetRunMetrics returns aggregate run metrics.
func (e *Engine) GetRunMetrics() jobs.RunMetricsData {
	return e.jobManager.GetMetrics()
}

// Close cancels the active run, waits for it and closes every event stream.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.jobManager.Stop()
	e.broker.Close()
	e.logger.Info("Engine closed")
}
