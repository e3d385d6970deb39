package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/advisor"
	"github.com/ukydev/fleet-dashboard/internal/costs"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/response"
)

// AdvisorHandler serves AI-generated advice.
type AdvisorHandler struct {
	svc         *advisor.Service
	vehicles    db.VehicleCollection
	maintenance db.MaintenanceCollection
	costs       db.CostCollection
	log         logrus.FieldLogger
}

func NewAdvisorHandler(svc *advisor.Service, vehicles db.VehicleCollection, maintenance db.MaintenanceCollection, costs db.CostCollection, log logrus.FieldLogger) *AdvisorHandler {
	return &AdvisorHandler{svc: svc, vehicles: vehicles, maintenance: maintenance, costs: costs, log: log}
}

func (h *AdvisorHandler) writeAdvisorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, advisor.ErrNotConfigured):
		response.Unavailable(c, "AI advisor is not configured")
	case errors.Is(err, advisor.ErrInvalidRequest):
		response.Validation(c, err.Error())
	case errors.Is(err, db.ErrNotFound):
		response.NotFound(c, "vehicle")
	default:
		h.log.WithError(err).Error("Advisor request failed")
		response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, "AI advisor request failed")
	}
}

func (h *AdvisorHandler) ensureConfigured(c *gin.Context) bool {
	if !h.svc.Configured() {
		h.writeAdvisorError(c, advisor.ErrNotConfigured)
		return false
	}
	return true
}

type maintenanceAdviceRequest struct {
	VehicleID string `json:"vehicle_id"`
}

// Maintenance handles POST /api/advisor/maintenance.
func (h *AdvisorHandler) Maintenance(c *gin.Context) {
	if !h.ensureConfigured(c) {
		return
	}
	var req maintenanceAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VehicleID == "" {
		response.Validation(c, "vehicle_id is required")
		return
	}

	ctx := c.Request.Context()
	vehicle, err := h.vehicles.FindVehicleByID(ctx, req.VehicleID)
	if err != nil {
		writeError(c, h.log, err, "vehicle")
		return
	}
	records, err := h.maintenance.FindMaintenance(ctx, req.VehicleID)
	if err != nil {
		writeError(c, h.log, err, "maintenance")
		return
	}

	advice, err := h.svc.MaintenanceAdvice(ctx, *vehicle, records)
	if err != nil {
		h.writeAdvisorError(c, err)
		return
	}
	response.Success(c, "Maintenance advice generated", advice)
}

// TripPlan handles POST /api/advisor/trip-plan.
func (h *AdvisorHandler) TripPlan(c *gin.Context) {
	if !h.ensureConfigured(c) {
		return
	}
	var req advisor.TripPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid JSON")
		return
	}

	var vehicle *models.Vehicle
	if req.VehicleID != "" {
		v, err := h.vehicles.FindVehicleByID(c.Request.Context(), req.VehicleID)
		if err != nil {
			writeError(c, h.log, err, "vehicle")
			return
		}
		vehicle = v
	}

	advice, err := h.svc.PlanTrip(c.Request.Context(), req, vehicle)
	if err != nil {
		h.writeAdvisorError(c, err)
		return
	}
	response.Success(c, "Trip plan generated", advice)
}

type costForecastRequest struct {
	Months    int    `json:"months"`
	VehicleID string `json:"vehicle_id"`
}

// CostForecast handles POST /api/advisor/cost-forecast. months defaults to 3.
func (h *AdvisorHandler) CostForecast(c *gin.Context) {
	if !h.ensureConfigured(c) {
		return
	}
	req := costForecastRequest{Months: 3}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid JSON")
			return
		}
	}

	all, err := h.costs.FindCosts(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "costs")
		return
	}
	summary := costs.Summarize(costs.Filter{VehicleID: req.VehicleID}.Apply(all))

	advice, err := h.svc.ForecastCosts(c.Request.Context(), summary, req.Months)
	if err != nil {
		h.writeAdvisorError(c, err)
		return
	}
	response.Success(c, "Cost forecast generated", advice)
}
