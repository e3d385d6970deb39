package models

import "time"

// Chauffeur represents a professional driver employed by the fleet.
type Chauffeur struct {
	ID                string    `json:"id" bson:"_id,omitempty" yaml:"id"`
	Name              string    `json:"name" bson:"name" yaml:"name"`
	Phone             string    `json:"phone" bson:"phone" yaml:"phone"`
	LicenseNumber     string    `json:"license_number" bson:"license_number" yaml:"license_number"`
	LicenseExpiry     time.Time `json:"license_expiry" bson:"license_expiry" yaml:"license_expiry"`
	Status            string    `json:"status" bson:"status" yaml:"status"` // "available", "on_trip", "off_duty"
	AssignedVehicleID string    `json:"assigned_vehicle_id,omitempty" bson:"assigned_vehicle_id,omitempty" yaml:"assigned_vehicle_id"`
	Rating            float64   `json:"rating" bson:"rating" yaml:"rating"`
}

// LicenseExpiresWithin reports whether the license expires before now+d.
func (c Chauffeur) LicenseExpiresWithin(now time.Time, d time.Duration) bool {
	if c.LicenseExpiry.IsZero() {
		return false
	}
	return c.LicenseExpiry.Before(now.Add(d))
}
