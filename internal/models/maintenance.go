package models

import "time"

// Maintenance represents a vehicle maintenance record.
type Maintenance struct {
	ID              string    `json:"id" bson:"_id,omitempty" yaml:"id"`
	VehicleID       string    `json:"vehicle_id" bson:"vehicle_id" yaml:"vehicle_id"`
	ServiceType     string    `json:"service_type" bson:"service_type" yaml:"service_type"` // "oil_change", "tire_rotation", "brake_service", "battery_service", "inspection"
	Description     string    `json:"description" bson:"description" yaml:"description"`
	ServiceDate     time.Time `json:"service_date" bson:"service_date" yaml:"service_date"`
	NextServiceDate time.Time `json:"next_service_date" bson:"next_service_date" yaml:"next_service_date"`
	Mileage         float64   `json:"mileage" bson:"mileage" yaml:"mileage"` // in kilometers
	Cost            float64   `json:"cost" bson:"cost" yaml:"cost"`          // in USD
	Technician      string    `json:"technician" bson:"technician" yaml:"technician"`
	Status          string    `json:"status" bson:"status" yaml:"status"`       // "scheduled", "in_progress", "completed", "cancelled"
	Priority        string    `json:"priority" bson:"priority" yaml:"priority"` // "low", "medium", "high", "critical"
	Notes           string    `json:"notes" bson:"notes" yaml:"notes"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at" yaml:"updated_at"`
}
