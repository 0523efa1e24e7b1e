package analytics

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-file-search/model"
)

const (
	maxEventsToKeep    = 10000 // Keep last 10k events for performance
	popularSearchLimit = 5
)

// DocumentCounter reports the size of the current index snapshot
type DocumentCounter interface {
	DocumentCount() int
}

// Service implements in-memory search analytics. Nothing is written to disk;
// the history lives as long as the process.
type Service struct {
	mutex     sync.RWMutex
	events    []model.SearchEvent
	documents DocumentCounter
	now       func() time.Time
}

// NewService creates a new analytics service
func NewService(documents DocumentCounter) *Service {
	return &Service{
		events:    make([]model.SearchEvent, 0),
		documents: documents,
		now:       time.Now,
	}
}

// TrackSearchEvent records a new search event. A zero Timestamp is set to now.
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Trimmed in batches: history grows to twice the cap, then drops back.
	if len(s.events) > 2*maxEventsToKeep {
		s.events = append(s.events[:0:0], s.events[len(s.events)-maxEventsToKeep:]...)
	}
}

// EventCount returns the number of events the dashboard reads from.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.retained())
}

// retained returns the latest maxEventsToKeep events. Callers hold mutex.
func (s *Service) retained() []model.SearchEvent {
	if len(s.events) > maxEventsToKeep {
		return s.events[len(s.events)-maxEventsToKeep:]
	}
	return s.events
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	events := s.retained()
	last24hEvents := filterEventsByTime(events, now.Add(-24*time.Hour))
	lastWeekEvents := filterEventsByTime(events, now.Add(-7*24*time.Hour))

	zeroResults := make([]model.SearchEvent, 0)
	for _, event := range lastWeekEvents {
		if event.ResultCount == 0 {
			zeroResults = append(zeroResults, event)
		}
	}

	dashboard := model.AnalyticsDashboard{
		TotalSearches:            len(last24hEvents),
		AvgResponseTime:          calculateAvgResponseTime(last24hEvents),
		ZeroResultSearches:       countZeroResults(last24hEvents),
		SearchPerformance24h:     getHourlyPerformance(last24hEvents),
		PopularSearches:          getPopularSearches(lastWeekEvents),
		ZeroResultQueries:        getPopularSearches(zeroResults),
		ResponseTimeDistribution: getResponseTimeDistribution(last24hEvents),
		SearchModes:              getSearchModeStats(last24hEvents),
		SystemHealth:             getSystemHealth(),
	}
	if s.documents != nil {
		dashboard.TotalDocuments = s.documents.DocumentCount()
	}

	return dashboard
}

// filterEventsByTime returns events after the given time
func filterEventsByTime(events []model.SearchEvent, after time.Time) []model.SearchEvent {
	filtered := make([]model.SearchEvent, 0)
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

func countZeroResults(events []model.SearchEvent) int {
	n := 0
	for _, event := range events {
		if event.ResultCount == 0 {
			n++
		}
	}
	return n
}

// calculateAvgResponseTime returns the mean response time in milliseconds
func calculateAvgResponseTime(events []model.SearchEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avg := total / time.Duration(len(events))
	return float64(avg.Microseconds()) / 1000
}

// getHourlyPerformance returns search performance per hour of day
func getHourlyPerformance(events []model.SearchEvent) []model.SearchPerformanceHourly {
	hourlyData := make(map[int][]model.SearchEvent)
	for _, event := range events {
		hour := event.Timestamp.Hour()
		hourlyData[hour] = append(hourlyData[hour], event)
	}

	performance := make([]model.SearchPerformanceHourly, 0, 24)
	for hour := 0; hour < 24; hour++ {
		events := hourlyData[hour]
		performance = append(performance, model.SearchPerformanceHourly{
			Hour:            hour,
			SearchCount:     len(events),
			AvgResponseTime: calculateAvgResponseTime(events),
		})
	}

	return performance
}

// getPopularSearches returns the most frequent non-empty queries, ties broken
// by query.
func getPopularSearches(events []model.SearchEvent) []model.PopularSearch {
	queryCounts := make(map[string]int)
	for _, event := range events {
		if event.Query != "" {
			queryCounts[event.Query]++
		}
	}

	popular := make([]model.PopularSearch, 0, len(queryCounts))
	for query, count := range queryCounts {
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: count})
	}

	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > popularSearchLimit {
		popular = popular[:popularSearchLimit]
	}
	return popular
}

// getResponseTimeDistribution returns response time distribution
func getResponseTimeDistribution(events []model.SearchEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)
	if total == 0 {
		return dist
	}

	for _, event := range events {
		switch {
		case event.ResponseTime < time.Millisecond:
			dist.BucketUnder1ms++
		case event.ResponseTime < 10*time.Millisecond:
			dist.Bucket1To10ms++
		case event.ResponseTime < 100*time.Millisecond:
			dist.Bucket10To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}

	// Calculate percentages
	dist.PercentageUnder1ms = float64(dist.BucketUnder1ms) / float64(total) * 100
	dist.Percentage1To10 = float64(dist.Bucket1To10ms) / float64(total) * 100
	dist.Percentage10To100 = float64(dist.Bucket10To100ms) / float64(total) * 100
	dist.Percentage100Plus = float64(dist.Bucket100msPlus) / float64(total) * 100

	return dist
}

// getSearchModeStats counts events per mode
func getSearchModeStats(events []model.SearchEvent) model.SearchModeStats {
	stats := model.SearchModeStats{}

	for _, event := range events {
		switch event.Mode {
		case "query":
			stats.Query++
		case "extension_scan":
			stats.ExtensionScan++
		case "idle":
			stats.Idle++
		}
		if event.Filter != "" {
			stats.Filtered++
		}
	}

	return stats
}

// getSystemHealth returns current process health metrics
func getSystemHealth() model.SystemHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return model.SystemHealth{
		HeapAllocMB: float64(m.HeapAlloc) / (1 << 20),
		Goroutines:  runtime.NumGoroutine(),
	}
}
