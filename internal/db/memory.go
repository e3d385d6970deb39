package db

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-dashboard/internal/mockdata"
	"github.com/ukydev/fleet-dashboard/internal/models"
)

// ErrDuplicateID is returned when inserting a record whose id is taken.
var ErrDuplicateID = errors.New("record id already exists")

// MemoryStore keeps the whole fleet in process memory. Records are kept in
// insertion order and every read returns copies.
type MemoryStore struct {
	mu          sync.RWMutex
	users       []models.User
	vehicles    []models.Vehicle
	trips       []models.Trip
	costs       []models.Cost
	maintenance []models.Maintenance
	chauffeurs  []models.Chauffeur
	now         func() time.Time
}

// NewMemoryStore creates a store holding a copy of fleet. A nil fleet gives
// an empty store.
func NewMemoryStore(fleet *mockdata.Fleet) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	if fleet == nil {
		return s
	}
	s.users = append(s.users, fleet.Users...)
	for _, v := range fleet.Vehicles {
		s.vehicles = append(s.vehicles, v.Clone())
	}
	s.trips = append(s.trips, fleet.Trips...)
	s.costs = append(s.costs, fleet.Costs...)
	s.maintenance = append(s.maintenance, fleet.Maintenance...)
	s.chauffeurs = append(s.chauffeurs, fleet.Chauffeurs...)
	return s
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// InsertUser adds a user, generating an id if none is set.
func (s *MemoryStore) InsertUser(ctx context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = newID()
	}
	for _, u := range s.users {
		if u.ID == user.ID {
			return nil, ErrDuplicateID
		}
	}
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	s.users = append(s.users, user)
	return &user, nil
}

// FindUsers returns every user.
func (s *MemoryStore) FindUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// FindUserByID finds a user by their ID.
func (s *MemoryStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// InsertVehicle adds a vehicle, generating an id if none is set.
func (s *MemoryStore) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vehicle.ID == "" {
		vehicle.ID = newID()
	}
	if s.vehicleIndex(vehicle.ID) >= 0 {
		return nil, ErrDuplicateID
	}
	vehicle = vehicle.Clone()
	if vehicle.AssignmentHistory == nil {
		vehicle.AssignmentHistory = []models.AssignmentEntry{}
	}
	vehicle.CreatedAt = s.now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	s.vehicles = append(s.vehicles, vehicle)

	out := vehicle.Clone()
	return &out, nil
}

// FindVehicles returns every vehicle with its assignment history.
func (s *MemoryStore) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Vehicle, len(s.vehicles))
	for i, v := range s.vehicles {
		out[i] = v.Clone()
	}
	return out, nil
}

// FindVehicleByID finds a vehicle by its ID.
func (s *MemoryStore) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.vehicleIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := s.vehicles[i].Clone()
	return &out, nil
}

// AppendAssignment adds entry to the end of the vehicle's history.
func (s *MemoryStore) AppendAssignment(ctx context.Context, id string, entry models.AssignmentEntry) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.vehicleIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	v := &s.vehicles[i]
	v.AssignmentHistory = append(v.AssignmentHistory, entry.Clone())
	v.UpdatedAt = s.now()

	out := v.Clone()
	return &out, nil
}

// RecordOdometer moves the vehicle's mileage forward to reading.Mileage.
func (s *MemoryStore) RecordOdometer(ctx context.Context, reading models.OdometerReading) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.vehicleIndex(reading.VehicleID)
	if i < 0 {
		return nil, ErrNotFound
	}
	v := &s.vehicles[i]
	if reading.Mileage < v.Mileage {
		return nil, ErrOdometerRollback
	}
	v.Mileage = reading.Mileage
	v.UpdatedAt = s.now()

	out := v.Clone()
	return &out, nil
}

func (s *MemoryStore) vehicleIndex(id string) int {
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			return i
		}
	}
	return -1
}

// InsertTrip adds a trip record.
func (s *MemoryStore) InsertTrip(ctx context.Context, trip models.Trip) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if trip.ID == "" {
		trip.ID = newID()
	}
	trip.CreatedAt = s.now()
	trip.UpdatedAt = trip.CreatedAt
	s.trips = append(s.trips, trip)
	return &trip, nil
}

// FindTrips returns every trip.
func (s *MemoryStore) FindTrips(ctx context.Context) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Trip, len(s.trips))
	copy(out, s.trips)
	return out, nil
}

// InsertCost adds a cost record.
func (s *MemoryStore) InsertCost(ctx context.Context, cost models.Cost) (*models.Cost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cost.ID == "" {
		cost.ID = newID()
	}
	cost.CreatedAt = s.now()
	cost.UpdatedAt = cost.CreatedAt
	s.costs = append(s.costs, cost)
	return &cost, nil
}

// FindCosts returns every cost record.
func (s *MemoryStore) FindCosts(ctx context.Context) ([]models.Cost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Cost, len(s.costs))
	copy(out, s.costs)
	return out, nil
}

// InsertMaintenance adds a maintenance record.
func (s *MemoryStore) InsertMaintenance(ctx context.Context, m models.Maintenance) (*models.Maintenance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = newID()
	}
	m.CreatedAt = s.now()
	m.UpdatedAt = m.CreatedAt
	s.maintenance = append(s.maintenance, m)
	return &m, nil
}

// FindMaintenance returns the maintenance records of one vehicle, or all of
// them when vehicleID is empty.
func (s *MemoryStore) FindMaintenance(ctx context.Context, vehicleID string) ([]models.Maintenance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Maintenance, 0, len(s.maintenance))
	for _, m := range s.maintenance {
		if vehicleID == "" || m.VehicleID == vehicleID {
			out = append(out, m)
		}
	}
	return out, nil
}

// InsertChauffeur adds a chauffeur to the roster.
func (s *MemoryStore) InsertChauffeur(ctx context.Context, c models.Chauffeur) (*models.Chauffeur, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	s.chauffeurs = append(s.chauffeurs, c)
	return &c, nil
}

// FindChauffeurs returns the chauffeur roster.
func (s *MemoryStore) FindChauffeurs(ctx context.Context) ([]models.Chauffeur, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Chauffeur, len(s.chauffeurs))
	copy(out, s.chauffeurs)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
