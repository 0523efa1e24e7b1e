package model

import "time"

// SearchEvent represents a single answered lookup for analytics tracking
type SearchEvent struct {
	RunID        string        `json:"run_id"`
	Query        string        `json:"query"`
	Mode         string        `json:"mode"`             // "query", "extension_scan", "idle"
	Filter       string        `json:"filter,omitempty"` // Resolved extension labels, comma-joined
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for a search term
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	BucketUnder1ms     int     `json:"bucket_under_1ms"`
	Bucket1To10ms      int     `json:"bucket_1_10ms"`
	Bucket10To100ms    int     `json:"bucket_10_100ms"`
	Bucket100msPlus    int     `json:"bucket_100ms_plus"`
	PercentageUnder1ms float64 `json:"percentage_under_1ms"`
	Percentage1To10    float64 `json:"percentage_1_10"`
	Percentage10To100  float64 `json:"percentage_10_100"`
	Percentage100Plus  float64 `json:"percentage_100_plus"`
}

// SearchModeStats counts lookups per answering mode
type SearchModeStats struct {
	Query         int `json:"query"`
	ExtensionScan int `json:"extension_scan"`
	Idle          int `json:"idle"`
	Filtered      int `json:"filtered"` // Any mode with an active extension filter
}

// SearchPerformanceHourly represents hourly search performance data
type SearchPerformanceHourly struct {
	Hour            int     `json:"hour"`
	SearchCount     int     `json:"search_count"`
	AvgResponseTime float64 `json:"avg_response_time_ms"`
}

// SystemHealth represents process health metrics
type SystemHealth struct {
	HeapAllocMB float64 `json:"heap_alloc_mb"`
	Goroutines  int     `json:"goroutines"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics over the last 24 hours
	TotalSearches      int     `json:"total_searches"`
	AvgResponseTime    float64 `json:"avg_response_time_ms"`
	ZeroResultSearches int     `json:"zero_result_searches"`
	TotalDocuments     int     `json:"total_documents"`

	// Detailed analytics
	SearchPerformance24h     []SearchPerformanceHourly `json:"search_performance_24h"`
	PopularSearches          []PopularSearch           `json:"popular_searches"`    // Last 7 days
	ZeroResultQueries        []PopularSearch           `json:"zero_result_queries"` // Last 7 days
	ResponseTimeDistribution ResponseTimeDistribution  `json:"response_time_distribution"`
	SearchModes              SearchModeStats           `json:"search_modes"`
	SystemHealth             SystemHealth              `json:"system_health"`
}
