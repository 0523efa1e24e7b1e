package analytics

import (
	"testing"
	"time"

	"github.com/gcbaptista/go-file-search/model"
)

// mockDocumentCounter is a simple mock for testing
type mockDocumentCounter struct {
	count int
}

func (m *mockDocumentCounter) DocumentCount() int { return m.count }

func newTestService(now time.Time) *Service {
	service := NewService(&mockDocumentCounter{count: 42})
	service.now = func() time.Time { return now }
	return service
}

func TestAnalyticsService_TrackSearchEvent(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(now)

	event := model.SearchEvent{
		RunID:        "run-1",
		Query:        "report",
		Mode:         "query",
		ResponseTime: 50 * time.Microsecond,
		ResultCount:  10,
	}
	service.TrackSearchEvent(event)

	// Verify event was stored
	if len(service.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(service.events))
	}

	storedEvent := service.events[0]
	if storedEvent.Query != event.Query {
		t.Errorf("Expected Query %s, got %s", event.Query, storedEvent.Query)
	}
	if !storedEvent.Timestamp.Equal(now) {
		t.Errorf("Expected Timestamp %v, got %v", now, storedEvent.Timestamp)
	}
}

func TestAnalyticsService_KeepsLatestEvents(t *testing.T) {
	service := newTestService(time.Now())

	for i := 0; i < maxEventsToKeep+10; i++ {
		service.TrackSearchEvent(model.SearchEvent{Query: "q", ResultCount: i})
	}

	if service.EventCount() != maxEventsToKeep {
		t.Fatalf("Expected %d events, got %d", maxEventsToKeep, service.EventCount())
	}
	if oldest := service.retained()[0].ResultCount; oldest != 10 {
		t.Errorf("Expected oldest retained event to be #10, got #%d", oldest)
	}
}

func TestAnalyticsService_TrimsInBatches(t *testing.T) {
	service := newTestService(time.Now())

	for i := 0; i < 2*maxEventsToKeep; i++ {
		service.TrackSearchEvent(model.SearchEvent{ResultCount: i})
	}
	// Up to twice the cap is held without copying.
	if len(service.events) != 2*maxEventsToKeep {
		t.Fatalf("Expected %d stored events before trimming, got %d", 2*maxEventsToKeep, len(service.events))
	}
	backing := &service.events[0]

	service.TrackSearchEvent(model.SearchEvent{ResultCount: 2 * maxEventsToKeep})
	if len(service.events) != maxEventsToKeep {
		t.Fatalf("Expected %d stored events after trimming, got %d", maxEventsToKeep, len(service.events))
	}
	if &service.events[0] == backing {
		t.Error("Expected trimming to release the old backing array")
	}
	if first := service.events[0].ResultCount; first != maxEventsToKeep+1 {
		t.Errorf("Expected oldest event #%d, got #%d", maxEventsToKeep+1, first)
	}

	service.TrackSearchEvent(model.SearchEvent{ResultCount: 2*maxEventsToKeep + 1})
	if len(service.events) != maxEventsToKeep+1 {
		t.Errorf("Expected no trim below twice the cap, got %d events", len(service.events))
	}
	if service.EventCount() != maxEventsToKeep {
		t.Errorf("Expected dashboard to read %d events, got %d", maxEventsToKeep, service.EventCount())
	}
}

func TestAnalyticsService_GetDashboardData(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	service := newTestService(now)

	events := []model.SearchEvent{
		{Query: "report", Mode: "query", ResponseTime: 500 * time.Microsecond, ResultCount: 5, Timestamp: now.Add(-1 * time.Hour)},
		{Query: "report", Mode: "query", ResponseTime: 1500 * time.Microsecond, ResultCount: 5, Timestamp: now.Add(-2 * time.Hour)},
		{Query: "zzz", Mode: "query", ResponseTime: 20 * time.Millisecond, ResultCount: 0, Timestamp: now.Add(-3 * time.Hour)},
		{Query: "", Mode: "extension_scan", Filter: ".py", ResponseTime: 200 * time.Millisecond, ResultCount: 3, Timestamp: now.Add(-4 * time.Hour)},
		// Outside the 24h window, inside the week
		{Query: "main", Mode: "query", ResponseTime: time.Millisecond, ResultCount: 0, Timestamp: now.Add(-48 * time.Hour)},
		// Outside both windows
		{Query: "old", Mode: "query", ResponseTime: time.Millisecond, ResultCount: 1, Timestamp: now.Add(-30 * 24 * time.Hour)},
	}
	for _, event := range events {
		service.TrackSearchEvent(event)
	}

	dashboard := service.GetDashboardData()

	if dashboard.TotalSearches != 4 {
		t.Errorf("Expected 4 searches in the last 24h, got %d", dashboard.TotalSearches)
	}
	if dashboard.ZeroResultSearches != 1 {
		t.Errorf("Expected 1 zero-result search, got %d", dashboard.ZeroResultSearches)
	}
	if dashboard.TotalDocuments != 42 {
		t.Errorf("Expected 42 documents, got %d", dashboard.TotalDocuments)
	}
	if dashboard.AvgResponseTime != 55.5 {
		t.Errorf("Expected average response time 55.5ms, got %v", dashboard.AvgResponseTime)
	}

	if len(dashboard.SearchPerformance24h) != 24 {
		t.Errorf("Expected 24 hourly performance entries, got %d", len(dashboard.SearchPerformance24h))
	}
	if dashboard.SearchPerformance24h[11].SearchCount != 1 {
		t.Errorf("Expected 1 search at 11:00, got %d", dashboard.SearchPerformance24h[11].SearchCount)
	}

	if len(dashboard.PopularSearches) != 3 {
		t.Fatalf("Expected 3 popular searches, got %d", len(dashboard.PopularSearches))
	}
	if dashboard.PopularSearches[0].Query != "report" || dashboard.PopularSearches[0].SearchCount != 2 {
		t.Errorf("Expected 'report' x2 first, got %+v", dashboard.PopularSearches[0])
	}
	if dashboard.PopularSearches[1].Query != "main" {
		t.Errorf("Expected ties broken by query, got %+v", dashboard.PopularSearches)
	}

	if len(dashboard.ZeroResultQueries) != 2 {
		t.Errorf("Expected 2 zero-result queries, got %+v", dashboard.ZeroResultQueries)
	}

	dist := dashboard.ResponseTimeDistribution
	if dist.BucketUnder1ms != 1 || dist.Bucket1To10ms != 1 || dist.Bucket10To100ms != 1 || dist.Bucket100msPlus != 1 {
		t.Errorf("Unexpected distribution: %+v", dist)
	}
	if dist.PercentageUnder1ms != 25 {
		t.Errorf("Expected 25%% under 1ms, got %v", dist.PercentageUnder1ms)
	}

	modes := dashboard.SearchModes
	if modes.Query != 3 || modes.ExtensionScan != 1 || modes.Filtered != 1 {
		t.Errorf("Unexpected mode stats: %+v", modes)
	}

	if dashboard.SystemHealth.Goroutines <= 0 {
		t.Error("Expected a positive goroutine count")
	}
}

func TestAnalyticsService_EmptyDashboard(t *testing.T) {
	service := NewService(nil)
	dashboard := service.GetDashboardData()

	if dashboard.TotalSearches != 0 || dashboard.AvgResponseTime != 0 {
		t.Errorf("Expected empty summary, got %+v", dashboard)
	}
	if dashboard.PopularSearches == nil {
		t.Error("Expected non-nil popular searches")
	}
}
