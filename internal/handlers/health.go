package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ukydev/fleet-dashboard/internal/response"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	dataSource        string
	advisorConfigured bool
}

func NewHealthHandler(dataSource string, advisorConfigured bool) *HealthHandler {
	return &HealthHandler{dataSource: dataSource, advisorConfigured: advisorConfigured}
}

func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, "ok", gin.H{
		"status":             "healthy",
		"data_source":        h.dataSource,
		"advisor_configured": h.advisorConfigured,
	})
}
