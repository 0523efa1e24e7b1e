package services

import (
	"context"

	"github.com/gcbaptista/go-file-search/internal/events"
	"github.com/gcbaptista/go-file-search/internal/jobs"
	"github.com/gcbaptista/go-file-search/model"
)

// SearchMode tells which lookup produced a SearchResult.
type SearchMode string

const (
	// SearchModeQuery is a substring query over names.
	SearchModeQuery SearchMode = "query"
	// SearchModeExtensionScan lists every record with a manually given extension.
	SearchModeExtensionScan SearchMode = "extension_scan"
	// SearchModeIdle means there was nothing to look up.
	SearchModeIdle SearchMode = "idle"
)

// SearchQuery is one lookup request.
type SearchQuery struct {
	QueryString string // Substring to find in names; surrounding whitespace is ignored
	Extensions  string // Comma-separated manual extension list
	Type        string // Single extension label chosen from the catalog, or model.AllTypes
	Limit       int    // Maximum hits returned; <= 0 uses the configured display limit
}

// SearchResult holds the hits of one lookup. Total counts every match even
// when Hits was truncated to the limit.
type SearchResult struct {
	Hits    []model.DocRecord `json:"hits"`
	Total   int               `json:"total"`
	Limit   int               `json:"limit"`
	TookMs  float64           `json:"took_ms"`
	Mode    SearchMode        `json:"mode"`
	RunID   string            `json:"run_id"`
	QueryId string            `json:"query_id"` // unique UUID for this search query
}

// Status summarizes the engine and its current snapshot.
type Status struct {
	RunID       string          `json:"run_id,omitempty"`     // Run that owns the current snapshot
	RunStatus   model.RunStatus `json:"run_status,omitempty"` // Status of that run
	Active      bool            `json:"active"`
	Sealed      bool            `json:"sealed"`
	Documents   int             `json:"documents"`
	Trigrams    int             `json:"trigrams"`
	Extensions  int             `json:"extensions"`
	Subscribers int             `json:"subscribers"`
}

// Searcher answers lookups against the current snapshot
type Searcher interface {
	Search(query SearchQuery) SearchResult
	Extensions() []string
	ExtensionCounts() map[string]int
}

// RunController starts and stops indexing runs
type RunController interface {
	Start(root string) (string, error) // Returns run ID
	Cancel() bool
	Subscribe() *events.Subscription
	Wait(ctx context.Context, runID string) (*model.Run, error)
}

// RunManager exposes the history of indexing runs
type RunManager interface {
	GetRun(runID string) (*model.Run, error)
	ListRuns(status *model.RunStatus) []*model.Run
	GetRunMetrics() jobs.RunMetricsData
}

// AnalyticsProvider reports on past lookups
type AnalyticsProvider interface {
	GetAnalytics() model.AnalyticsDashboard
}

// FileSearchEngine is everything the presentation layers need
type FileSearchEngine interface {
	Searcher
	RunController
	RunManager
	AnalyticsProvider
	Status() Status
}
