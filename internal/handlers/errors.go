package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgdir/orgdir/internal/middleware"
	"github.com/orgdir/orgdir/internal/search"
	apperrors "github.com/orgdir/orgdir/pkg/errors"
	"github.com/orgdir/orgdir/pkg/logger"
)

// schemaDetail is the client-facing form of one validation failure.
type schemaDetail struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Got      any    `json:"got,omitempty"`
}

// respondError translates service and search errors into HTTP responses.
// Validation failures are client errors with structured detail; a contract
// violation means a validated tree referenced something unregistered, which
// is our bug, so it is logged with the offending subtree and surfaced as 500.
func respondError(c *gin.Context, err error) {
	var schemaErrs search.SchemaErrors
	if errors.As(err, &schemaErrs) {
		details := make([]schemaDetail, len(schemaErrs))
		for i, e := range schemaErrs {
			details[i] = schemaDetail{Path: e.Path, Expected: e.Expected, Got: e.Got}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid search expression",
			"details": details,
		})
		return
	}

	var shapeErr *search.ShapeError
	if errors.As(err, &shapeErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid search expression",
			"details": []schemaDetail{{Path: shapeErr.Path, Expected: "an object"}},
		})
		return
	}

	var contractErr *search.ContractError
	if errors.As(err, &contractErr) {
		logger.WithRequestID(middleware.RequestID(c)).
			Error("search contract violation", "entity", contractErr.Tag, "subtree", contractErr.Node)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	logger.WithRequestID(middleware.RequestID(c)).Error("unhandled error", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
