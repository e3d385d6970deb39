package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/response"
)

// MaintenanceHandler serves maintenance records.
type MaintenanceHandler struct {
	maintenance db.MaintenanceCollection
	log         logrus.FieldLogger
}

func NewMaintenanceHandler(maintenance db.MaintenanceCollection, log logrus.FieldLogger) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance, log: log}
}

// List handles GET /api/maintenance?vehicle_id=.
func (h *MaintenanceHandler) List(c *gin.Context) {
	records, err := h.maintenance.FindMaintenance(c.Request.Context(), c.Query("vehicle_id"))
	if err != nil {
		writeError(c, h.log, err, "maintenance")
		return
	}
	response.SuccessWithMeta(c, "Maintenance records retrieved", records, &response.Meta{Count: len(records), Empty: len(records) == 0})
}
