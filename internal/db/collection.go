package db

import (
	"context"
	"errors"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrOdometerRollback is returned when a reading is lower than the vehicle's
// current mileage.
var ErrOdometerRollback = errors.New("odometer reading is lower than current mileage")

// UserCollection defines the interface for user directory operations.
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) (*models.User, error)
	FindUsers(ctx context.Context) ([]models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// VehicleCollection defines the interface for vehicle registry operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error)
	FindVehicles(ctx context.Context) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	AppendAssignment(ctx context.Context, id string, entry models.AssignmentEntry) (*models.Vehicle, error)
	RecordOdometer(ctx context.Context, reading models.OdometerReading) (*models.Vehicle, error)
}

// TripCollection defines the interface for trip log operations.
type TripCollection interface {
	InsertTrip(ctx context.Context, trip models.Trip) (*models.Trip, error)
	FindTrips(ctx context.Context) ([]models.Trip, error)
}

// CostCollection defines the interface for cost record operations.
type CostCollection interface {
	InsertCost(ctx context.Context, cost models.Cost) (*models.Cost, error)
	FindCosts(ctx context.Context) ([]models.Cost, error)
}

// MaintenanceCollection defines the interface for maintenance record operations.
// An empty vehicleID lists every record.
type MaintenanceCollection interface {
	InsertMaintenance(ctx context.Context, m models.Maintenance) (*models.Maintenance, error)
	FindMaintenance(ctx context.Context, vehicleID string) ([]models.Maintenance, error)
}

// ChauffeurCollection defines the interface for chauffeur roster operations.
type ChauffeurCollection interface {
	InsertChauffeur(ctx context.Context, c models.Chauffeur) (*models.Chauffeur, error)
	FindChauffeurs(ctx context.Context) ([]models.Chauffeur, error)
}

// Store bundles every collection the dashboard reads from.
type Store interface {
	UserCollection
	VehicleCollection
	TripCollection
	CostCollection
	MaintenanceCollection
	ChauffeurCollection
	Close(ctx context.Context) error
}
