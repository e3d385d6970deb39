package models

import (
	"strings"
	"time"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID                string            `bson:"_id,omitempty" json:"id" yaml:"id"`
	Plate             string            `bson:"plate" json:"plate" yaml:"plate"`
	Make              string            `bson:"make" json:"make" yaml:"make"`
	Model             string            `bson:"model" json:"model" yaml:"model"`
	Year              int               `bson:"year" json:"year" yaml:"year"`
	FuelType          string            `bson:"fuel_type" json:"fuel_type" yaml:"fuel_type"` // "ICE", "EV" or "Hybrid"
	Status            string            `bson:"status" json:"status" yaml:"status"`          // "active", "maintenance" or "retired"
	Mileage           float64           `bson:"mileage" json:"mileage" yaml:"mileage"`       // current odometer reading in km
	CurrentLocation   Location          `bson:"current_location" json:"current_location" yaml:"current_location"`
	AssignmentHistory []AssignmentEntry `bson:"assignment_history" json:"assignment_history" yaml:"assignment_history"`
	CreatedAt         time.Time         `bson:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt         time.Time         `bson:"updated_at" json:"updated_at" yaml:"updated_at"`
}

// Vehicle statuses.
const (
	VehicleActive      = "active"
	VehicleMaintenance = "maintenance"
	VehicleRetired     = "retired"
)

// Clone returns a copy of the vehicle that shares no memory with v.
func (v Vehicle) Clone() Vehicle {
	out := v
	if v.AssignmentHistory != nil {
		out.AssignmentHistory = make([]AssignmentEntry, len(v.AssignmentHistory))
		for i, e := range v.AssignmentHistory {
			out.AssignmentHistory[i] = e.Clone()
		}
	}
	return out
}

// Validate checks the descriptive vehicle fields. Assignment history is
// validated separately by the policy package.
func (v *Vehicle) Validate() error {
	if strings.TrimSpace(v.Plate) == "" {
		return errValidation("plate is required")
	}
	if v.Mileage < 0 {
		return errValidation("mileage must not be negative")
	}
	switch v.FuelType {
	case "", "ICE", "EV", "Hybrid":
	default:
		return errValidation("fuel_type must be ICE, EV or Hybrid")
	}
	switch v.Status {
	case "":
		v.Status = VehicleActive
	case VehicleActive, VehicleMaintenance, VehicleRetired:
	default:
		return errValidation("invalid vehicle status")
	}
	return nil
}

// OdometerReading is a point-in-time odometer value reported for a vehicle.
type OdometerReading struct {
	VehicleID string    `bson:"vehicle_id" json:"vehicle_id"`
	Mileage   float64   `bson:"mileage" json:"mileage"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
