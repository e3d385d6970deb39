package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/policy"
	"github.com/ukydev/fleet-dashboard/internal/response"
)

// VehicleHandler serves the vehicle registry and its assignment histories.
type VehicleHandler struct {
	vehicles db.VehicleCollection
	log      logrus.FieldLogger
}

func NewVehicleHandler(vehicles db.VehicleCollection, log logrus.FieldLogger) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, log: log}
}

// List handles GET /api/vehicles with optional status and fuel_type filters.
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicles.FindVehicles(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "vehicles")
		return
	}

	status, fuel := c.Query("status"), c.Query("fuel_type")
	if status != "" || fuel != "" {
		filtered := make([]models.Vehicle, 0, len(vehicles))
		for _, v := range vehicles {
			if status != "" && !strings.EqualFold(v.Status, status) {
				continue
			}
			if fuel != "" && !strings.EqualFold(v.FuelType, fuel) {
				continue
			}
			filtered = append(filtered, v)
		}
		vehicles = filtered
	}
	response.SuccessWithMeta(c, "Vehicles retrieved", vehicles, &response.Meta{Count: len(vehicles), Empty: len(vehicles) == 0})
}

// Get handles GET /api/vehicles/:id.
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicles.FindVehicleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err, "vehicle")
		return
	}
	response.Success(c, "Vehicle retrieved", vehicle)
}

// Create handles POST /api/vehicles. Every history entry must pass the
// same checks the policy aggregation applies.
func (h *VehicleHandler) Create(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		response.BadRequest(c, "invalid JSON")
		return
	}

	if err := vehicle.Validate(); err != nil {
		response.Validation(c, err.Error())
		return
	}
	for i, entry := range vehicle.AssignmentHistory {
		if err := policy.ValidateEntry(entry); err != nil {
			response.Validation(c, fmt.Sprintf("assignment_history[%d]: %v", i, err))
			return
		}
	}

	created, err := h.vehicles.InsertVehicle(c.Request.Context(), vehicle)
	if err != nil {
		writeError(c, h.log, err, "vehicle")
		return
	}

	h.log.WithField("vehicle_id", created.ID).Info("Vehicle created")
	response.Created(c, "Vehicle created", created)
}

// AppendAssignment handles POST /api/vehicles/:id/assignments.
func (h *VehicleHandler) AppendAssignment(c *gin.Context) {
	var entry models.AssignmentEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		response.BadRequest(c, "invalid JSON")
		return
	}
	if err := policy.ValidateEntry(entry); err != nil {
		response.Validation(c, err.Error())
		return
	}

	vehicle, err := h.vehicles.AppendAssignment(c.Request.Context(), c.Param("id"), entry)
	if err != nil {
		writeError(c, h.log, err, "vehicle")
		return
	}

	h.log.WithFields(logrus.Fields{
		"vehicle_id":     vehicle.ID,
		"assigned_to_id": entry.AssignedToID,
		"type":           entry.Type,
	}).Info("Assignment recorded")
	response.Created(c, "Assignment recorded", vehicle)
}

type odometerRequest struct {
	Mileage   *float64  `json:"mileage"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordOdometer handles POST /api/vehicles/:id/odometer. Readings may not
// move the odometer backwards.
func (h *VehicleHandler) RecordOdometer(c *gin.Context) {
	var req odometerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid JSON")
		return
	}
	if req.Mileage == nil {
		response.Validation(c, "mileage is required")
		return
	}
	if *req.Mileage < 0 {
		response.Validation(c, "mileage must not be negative")
		return
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	vehicle, err := h.vehicles.RecordOdometer(c.Request.Context(), models.OdometerReading{
		VehicleID: c.Param("id"),
		Mileage:   *req.Mileage,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		writeError(c, h.log, err, "vehicle")
		return
	}

	h.log.WithFields(logrus.Fields{
		"vehicle_id": vehicle.ID,
		"mileage":    vehicle.Mileage,
	}).Debug("Odometer recorded")
	response.Success(c, "Odometer recorded", vehicle)
}
