package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-file-search/model"
	"github.com/gcbaptista/go-file-search/services"
)

// API holds dependencies for API handlers, primarily the file search engine.
type API struct {
	engine services.FileSearchEngine
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.FileSearchEngine) *API {
	return &API{engine: engine}
}

// MaxRequestBodySize bounds request bodies accepted by the router.
const MaxRequestBodySize = 1 << 20

// NewRouter builds a gin router with the standard middleware chain and every
// route registered.
func NewRouter(engine services.FileSearchEngine, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(MaxRequestBodySize),
	)
	SetupRoutes(router, engine)
	return router
}

// SetupRoutes defines all the API routes for the file search engine.
func SetupRoutes(router *gin.Engine, engine services.FileSearchEngine) {
	apiHandler := NewAPI(engine)

	// Health and status routes
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/status", apiHandler.StatusHandler)

	// Indexing run routes
	runRoutes := router.Group("/runs")
	{
		runRoutes.POST("", apiHandler.StartRunHandler)             // Start a run, replacing the current index
		runRoutes.GET("", apiHandler.ListRunsHandler)              // List runs
		runRoutes.POST("/cancel", apiHandler.CancelRunHandler)     // Cancel the active run
		runRoutes.GET("/metrics", apiHandler.GetRunMetricsHandler) // Get run metrics
		runRoutes.GET("/:runId", apiHandler.GetRunHandler)         // Get run status by ID
	}

	// Run event stream
	router.GET("/events", apiHandler.EventsHandler)

	// Lookup routes
	router.GET("/search", apiHandler.SearchHandler)
	router.GET("/extensions", apiHandler.ExtensionsHandler)

	// Analytics
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)
}

// HealthCheckHandler reports that the server is up.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// StatusHandler reports on the current index snapshot and its run.
func (api *API) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Status())
}

// ExtensionsHandler returns the extension catalog of the current snapshot.
// Options is the catalog as a type selector would present it.
func (api *API) ExtensionsHandler(c *gin.Context) {
	extensions := api.engine.Extensions()

	options := make([]string, 0, len(extensions)+1)
	options = append(options, model.AllTypes)
	options = append(options, extensions...)

	c.JSON(http.StatusOK, gin.H{
		"extensions": extensions,
		"options":    options,
		"counts":     api.engine.ExtensionCounts(),
		"total":      len(extensions),
	})
}
