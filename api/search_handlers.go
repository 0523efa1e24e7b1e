package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-file-search/services"
)

// SearchRequest holds the query parameters of GET /search.
type SearchRequest struct {
	Query      string `form:"q"`
	Extensions string `form:"ext"`  // Comma-separated manual extension list
	Type       string `form:"type"` // Extension label from /extensions options
	Limit      int    `form:"limit"`
}

// SearchHandler looks up the current snapshot. A non-empty q is a substring
// query; an empty q with ext lists every record with those extensions.
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if result := ValidateQueryBinding(c, &req); result.HasErrors() {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid search parameters", ErrorDetail{
			Field:   result.Errors[0].Field,
			Message: result.Errors[0].Message,
		})
		return
	}
	if result := ValidateSearchRequest(req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	result := api.engine.Search(services.SearchQuery{
		QueryString: req.Query,
		Extensions:  req.Extensions,
		Type:        req.Type,
		Limit:       req.Limit,
	})

	c.JSON(http.StatusOK, result)
}
