package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-file-search/internal/errors"
	"github.com/gcbaptista/go-file-search/model"
)

// StartRunRequest is the body of POST /runs.
type StartRunRequest struct {
	Root string `json:"root"`
}

// StartRunHandler starts an indexing run over a root directory. The previous
// index is discarded. Problems with the directory itself are reported through
// the run and its events, not here.
func (api *API) StartRunHandler(c *gin.Context) {
	var req StartRunRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateRoot(req.Root); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	runID, err := api.engine.Start(req.Root)
	if err != nil {
		var validationErr *internalErrors.ValidationError
		if errors.As(err, &validationErr) {
			result := &ValidationResult{Valid: true}
			result.AddError(validationErr.Field, validationErr.Message)
			SendValidationError(c, result)
			return
		}
		SendRunStartError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Indexing started for '" + req.Root + "'",
		"run_id":  runID,
	})
}

// CancelRunHandler requests the active run to stop
func (api *API) CancelRunHandler(c *gin.Context) {
	cancelled := api.engine.Cancel()

	message := "No active run"
	if cancelled {
		message = "Cancellation requested"
	}
	c.JSON(http.StatusOK, gin.H{
		"cancelled": cancelled,
		"message":   message,
	})
}

// GetRunHandler handles requests to get run status by ID
func (api *API) GetRunHandler(c *gin.Context) {
	runID := c.Param("runId")

	run, err := api.engine.GetRun(runID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrRunNotFound) {
			SendRunNotFoundError(c, runID)
			return
		}
		SendInternalError(c, "get run", err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// ListRunsHandler handles requests to list runs, optionally filtered by status
func (api *API) ListRunsHandler(c *gin.Context) {
	statusParam := c.Query("status")
	if result := ValidateRunStatus(statusParam); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var statusFilter *model.RunStatus
	if statusParam != "" {
		status := model.RunStatus(statusParam)
		statusFilter = &status
	}

	runs := api.engine.ListRuns(statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"total": len(runs),
	})
}

// GetRunMetricsHandler handles requests to get run metrics
func (api *API) GetRunMetricsHandler(c *gin.Context) {
	metrics := api.engine.GetRunMetrics()

	successRate := 1.0
	if finished := metrics.RunsCompleted + metrics.RunsCancelled + metrics.RunsFailed; finished > 0 {
		successRate = float64(metrics.RunsCompleted+metrics.RunsCancelled) / float64(finished)
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":      metrics,
		"success_rate": successRate,
	})
}
