package models

import "time"

// Cost represents a fleet cost record.
type Cost struct {
	ID            string    `json:"id" bson:"_id,omitempty" yaml:"id"`
	VehicleID     string    `json:"vehicle_id" bson:"vehicle_id" yaml:"vehicle_id"`
	Category      string    `json:"category" bson:"category" yaml:"category"` // "fuel", "maintenance", "insurance", "registration", "tolls", "parking", "other"
	Description   string    `json:"description" bson:"description" yaml:"description"`
	Amount        float64   `json:"amount" bson:"amount" yaml:"amount"` // in USD
	Date          time.Time `json:"date" bson:"date" yaml:"date"`
	InvoiceNumber string    `json:"invoice_number" bson:"invoice_number" yaml:"invoice_number"`
	Vendor        string    `json:"vendor" bson:"vendor" yaml:"vendor"`
	PaymentMethod string    `json:"payment_method" bson:"payment_method" yaml:"payment_method"` // "credit_card", "cash", "check", "electronic"
	Status        string    `json:"status" bson:"status" yaml:"status"`                         // "pending", "paid", "disputed", "cancelled"
	Notes         string    `json:"notes" bson:"notes" yaml:"notes"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at" yaml:"updated_at"`
}

// CostCancelled marks a cost that no longer counts towards totals.
const CostCancelled = "cancelled"
