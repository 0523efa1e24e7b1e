// Package api provides the HTTP interface to the file search engine.
package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-file-search/model"
)

// MaxSearchLimit caps the number of hits a single request may ask for.
const MaxSearchLimit = 10000

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateRoot validates the root directory of a run request
func ValidateRoot(root string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(root) == "" {
		result.AddError("root", "Root directory is required")
	}

	return result
}

// ValidateRunStatus validates an optional run status filter
func ValidateRunStatus(status string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if status == "" {
		return result
	}

	switch model.RunStatus(status) {
	case model.RunStatusPending, model.RunStatusRunning, model.RunStatusCancelling,
		model.RunStatusCompleted, model.RunStatusCancelled, model.RunStatusFailed:
	default:
		result.AddError("status", "Unknown run status '"+status+"'")
	}

	return result
}

// ValidateSearchRequest validates search query parameters
func ValidateSearchRequest(req SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.Limit < 0 {
		result.AddError("limit", "Limit cannot be negative")
	}
	if req.Limit > MaxSearchLimit {
		result.AddError("limit", "Limit cannot exceed 10000")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}

	return result
}
