// Package testing provides helpers shared by the file search tests.
package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-file-search/model"
	"github.com/gcbaptista/go-file-search/services"
)

// BuildTree creates entries below a fresh temporary directory and returns its
// path. Keys ending in "/" are directories; other keys are files whose
// content is the value. Parent directories are created as needed.
func BuildTree(t *testing.T, entries map[string]string) string {
	t.Helper()
	root := t.TempDir()

	for rel, content := range entries {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755), "Failed to create directory %s", rel)
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755), "Failed to create parent of %s", rel)
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644), "Failed to write file %s", rel)
	}

	return root
}

// RunGetter looks up runs by ID.
type RunGetter interface {
	GetRun(runID string) (*model.Run, error)
}

// RunPollingOptions configures run polling behavior
type RunPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// DefaultRunPollingOptions returns sensible defaults for run polling
func DefaultRunPollingOptions() RunPollingOptions {
	return RunPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
	}
}

// WaitForRunCompletion polls a run until it reaches a terminal status or the
// timeout expires.
func WaitForRunCompletion(t *testing.T, getter RunGetter, runID string, opts RunPollingOptions) *model.Run {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Run %s did not finish within %v timeout", runID, opts.Timeout)
			return nil
		case <-ticker.C:
			run, err := getter.GetRun(runID)
			require.NoError(t, err, "Failed to get run status")
			if run.Status.IsTerminal() {
				return run
			}
		}
	}
}

// AssertRunCompleted verifies that a run completed successfully
func AssertRunCompleted(t *testing.T, run *model.Run, expectedRoot string) {
	t.Helper()
	assert.Equal(t, model.RunStatusCompleted, run.Status, "Run should be completed")
	assert.Equal(t, expectedRoot, run.Root, "Run root should match")
	assert.NotNil(t, run.CompletedAt, "Run should have completion timestamp")
	assert.Empty(t, run.Error, "Run should not have error")
}

// CollectEvents reads events until a terminal one arrives, the channel closes
// or the timeout expires.
func CollectEvents(t *testing.T, ch <-chan model.Event, timeout time.Duration) []model.Event {
	t.Helper()
	deadline := time.After(timeout)
	var events []model.Event

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
			if ev.IsTerminal() {
				return events
			}
		case <-deadline:
			t.Fatalf("No terminal event within %v, got %d events", timeout, len(events))
			return events
		}
	}
}

// DocNames returns the names of docs in order.
func DocNames(docs []model.DocRecord) []string {
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}
	return names
}

// SearchTestCase represents a test case for search operations
type SearchTestCase struct {
	Name          string
	Query         services.SearchQuery
	ExpectedMode  services.SearchMode // Defaults to services.SearchModeQuery
	ExpectedNames []string            // Expected hit names, in order
}

// RunSearchTests runs a suite of search tests against a searcher
func RunSearchTests(t *testing.T, searcher services.Searcher, tests []SearchTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result := searcher.Search(tt.Query)

			expectedMode := tt.ExpectedMode
			if expectedMode == "" {
				expectedMode = services.SearchModeQuery
			}
			assert.Equal(t, expectedMode, result.Mode, "Search mode should match")
			require.NotNil(t, result.Hits, "Hits should never be nil")
			assert.Equal(t, tt.ExpectedNames, DocNames(result.Hits), "Hit names should match")
			assert.Equal(t, len(tt.ExpectedNames), result.Total, "Total should match")
		})
	}
}
