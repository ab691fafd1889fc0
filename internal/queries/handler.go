package queries

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	httperr "github.com/lumen-lab/project-lumen/internal/core/errors"
	"github.com/lumen-lab/project-lumen/internal/core/queryindex"
)

const (
	msgInvalidPrefix = "Invalid date prefix"
	msgInvalidSize   = "The 'size' query string parameter must be a non-negative integer"
	msgMissingSize   = "The 'size' query string parameter is missing"
	msgQueryFailed   = "Failed to execute query"
)

// RegisterRoutes registers the public query API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/1/queries/count/:prefix", s.HandleDistinctCount)
	r.GET("/1/queries/popular/:prefix", s.HandleTopQueries)
}

// HandleDistinctCount handles GET /1/queries/count/:prefix
func (s *Service) HandleDistinctCount(c *gin.Context) {
	resp, err := s.DistinctCount(c.Param("prefix"))
	if err != nil {
		writeIndexError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleTopQueries handles GET /1/queries/popular/:prefix?size=K
func (s *Service) HandleTopQueries(c *gin.Context) {
	sizeParam, ok := c.GetQuery("size")
	if !ok {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidParamError,
			Message:   msgMissingSize,
		})
		return
	}

	size, err := strconv.Atoi(sizeParam)
	if err != nil || size < 0 {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidParamError,
			Message:   msgInvalidSize,
			Details:   sizeParam,
		})
		return
	}

	resp, err := s.TopQueries(c.Param("prefix"), size)
	if err != nil {
		writeIndexError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeIndexError maps index errors to the HTTP error shape: client-input
// failures become 400, anything else is a 500.
func writeIndexError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queryindex.ErrInvalidDatePrefix):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidPrefixError,
			Message:   msgInvalidPrefix,
			Details:   err.Error(),
		})
	case errors.Is(err, queryindex.ErrInvalidQuerySize):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidSizeError,
			Message:   err.Error(),
		})
	default:
		slog.Error("Query failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   msgQueryFailed,
		})
	}
}
