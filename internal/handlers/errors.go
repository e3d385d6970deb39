// Package handlers implements the dashboard's HTTP endpoints.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/middleware"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/policy"
	"github.com/ukydev/fleet-dashboard/internal/response"
)

// writeError maps store and validation errors to HTTP responses.
func writeError(c *gin.Context, log logrus.FieldLogger, err error, resource string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		response.NotFound(c, resource)
	case errors.Is(err, models.ErrValidation), errors.Is(err, policy.ErrInvalidEntry):
		response.Validation(c, err.Error())
	case errors.Is(err, db.ErrDuplicateID):
		response.Conflict(c, resource+" already exists")
	case errors.Is(err, db.ErrOdometerRollback):
		response.Error(c, http.StatusConflict, response.CodeConflict, err.Error())
	default:
		log.WithFields(logrus.Fields{
			"resource":   resource,
			"request_id": middleware.GetRequestID(c),
		}).WithError(err).Error("Request failed")
		response.Internal(c)
	}
}

// queryDate parses an optional date query parameter.
func queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := policy.ParseDate(raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name+": "+err.Error())
		return time.Time{}, false
	}
	return t, true
}
