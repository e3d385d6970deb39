package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/costs"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/response"
)

// CostHandler serves cost records and their aggregation.
type CostHandler struct {
	costs db.CostCollection
	log   logrus.FieldLogger
}

func NewCostHandler(costs db.CostCollection, log logrus.FieldLogger) *CostHandler {
	return &CostHandler{costs: costs, log: log}
}

func costFilter(c *gin.Context) costs.Filter {
	return costs.Filter{
		VehicleID: c.Query("vehicle_id"),
		Category:  c.Query("category"),
		Status:    c.Query("status"),
	}
}

// List handles GET /api/costs.
func (h *CostHandler) List(c *gin.Context) {
	all, err := h.costs.FindCosts(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "costs")
		return
	}
	matched := costFilter(c).Apply(all)
	response.SuccessWithMeta(c, "Costs retrieved", matched, &response.Meta{Count: len(matched), Empty: len(matched) == 0})
}

// Summary handles GET /api/costs/summary.
func (h *CostHandler) Summary(c *gin.Context) {
	all, err := h.costs.FindCosts(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "costs")
		return
	}
	response.Success(c, "Cost summary computed", costs.Summarize(costFilter(c).Apply(all)))
}
