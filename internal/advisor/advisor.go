// Package advisor asks a generative text model for maintenance advice, trip
// plans and cost forecasts, caching the answers.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/costs"
	"github.com/ukydev/fleet-dashboard/internal/models"
)

var (
	// ErrNotConfigured is returned when no text model is available.
	ErrNotConfigured = errors.New("advisor not configured")
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("advisor returned an empty response")
	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid advisor request")
)

// Tasks, also used as cache key namespaces.
const (
	TaskMaintenance  = "maintenance"
	TaskTripPlan     = "trip-plan"
	TaskCostForecast = "cost-forecast"
)

// MaxForecastMonths bounds ForecastCosts horizons.
const MaxForecastMonths = 24

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Advice is a generated answer.
type Advice struct {
	Task        string    `json:"task"`
	Text        string    `json:"text"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generated_at"`
}

// TripPlanRequest describes a trip to plan.
type TripPlanRequest struct {
	VehicleID   string    `json:"vehicle_id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartAt    time.Time `json:"depart_at"`
	Stops       []string  `json:"stops,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// Validate checks the required fields.
func (r TripPlanRequest) Validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	return nil
}

// Service builds prompts and routes them through the generator and cache.
type Service struct {
	gen   Generator
	cache Cache
	ttl   time.Duration
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewService wires a Service. A nil gen makes every call return
// ErrNotConfigured; a nil cache disables caching.
func NewService(gen Generator, cache Cache, ttl time.Duration, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{gen: gen, cache: cache, ttl: ttl, log: log, now: time.Now}
}

// Configured reports whether a generator is available.
func (s *Service) Configured() bool { return s != nil && s.gen != nil }

// MaintenanceAdvice suggests upcoming maintenance for a vehicle given its
// service history.
func (s *Service) MaintenanceAdvice(ctx context.Context, vehicle models.Vehicle, records []models.Maintenance) (*Advice, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Vehicle %s: %d %s %s, fuel type %s, odometer %.0f km, status %s.\n",
		vehicle.Plate, vehicle.Year, vehicle.Make, vehicle.Model, vehicle.FuelType, vehicle.Mileage, vehicle.Status)

	sorted := append([]models.Maintenance(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ServiceDate.Before(sorted[j].ServiceDate) })
	if len(sorted) == 0 {
		b.WriteString("No maintenance has been recorded.\n")
	} else {
		b.WriteString("Service history:\n")
		for _, m := range sorted {
			fmt.Fprintf(&b, "- %s %s at %.0f km (%s, priority %s, cost %.2f): %s\n",
				m.ServiceDate.Format("2006-01-02"), m.ServiceType, m.Mileage, m.Status, m.Priority, m.Cost, m.Description)
		}
	}
	b.WriteString("Recommend the next maintenance actions with an approximate date or mileage for each, and flag anything overdue.")

	return s.run(ctx, TaskMaintenance, b.String())
}

// PlanTrip proposes a route plan with charging or fuel stops.
func (s *Service) PlanTrip(ctx context.Context, req TripPlanRequest, vehicle *models.Vehicle) (*Advice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip from %s to %s", req.Origin, req.Destination)
	if !req.DepartAt.IsZero() {
		fmt.Fprintf(&b, " departing %s", req.DepartAt.UTC().Format(time.RFC3339))
	}
	b.WriteString(".\n")
	if len(req.Stops) > 0 {
		fmt.Fprintf(&b, "Required stops: %s.\n", strings.Join(req.Stops, ", "))
	}
	if vehicle != nil {
		fmt.Fprintf(&b, "Vehicle: %d %s %s (%s), odometer %.0f km.\n",
			vehicle.Year, vehicle.Make, vehicle.Model, vehicle.FuelType, vehicle.Mileage)
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", req.Notes)
	}
	b.WriteString("Give the estimated distance, duration, refuelling or charging stops and an estimated cost.")

	return s.run(ctx, TaskTripPlan, b.String())
}

// ForecastCosts projects spend for the next months from a cost summary.
func (s *Service) ForecastCosts(ctx context.Context, summary costs.Summary, months int) (*Advice, error) {
	if months < 1 || months > MaxForecastMonths {
		return nil, fmt.Errorf("%w: months must be between 1 and %d", ErrInvalidRequest, MaxForecastMonths)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Fleet spend so far: total %.2f over %d records.\n", summary.Total, summary.Count)
	if len(summary.ByMonth) > 0 {
		b.WriteString("Monthly totals:\n")
		for _, m := range summary.ByMonth {
			fmt.Fprintf(&b, "- %s: %.2f\n", m.Month, m.Amount)
		}
	}
	if len(summary.ByCategory) > 0 {
		cats := make([]string, 0, len(summary.ByCategory))
		for c := range summary.ByCategory {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		b.WriteString("By category:\n")
		for _, c := range cats {
			fmt.Fprintf(&b, "- %s: %.2f\n", c, summary.ByCategory[c])
		}
	}
	fmt.Fprintf(&b, "Forecast the spend for each of the next %d months by category and suggest savings.", months)

	return s.run(ctx, TaskCostForecast, b.String())
}

func (s *Service) run(ctx context.Context, task, prompt string) (*Advice, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	log := s.log.WithField("task", task)

	key := CacheKey(task, prompt)
	if s.cache != nil {
		text, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.WithError(err).Warn("advisor cache read failed")
		case ok:
			log.Debug("advisor cache hit")
			return &Advice{Task: task, Text: text, Cached: true, GeneratedAt: s.now()}, nil
		}
	}

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text, s.ttl); err != nil {
			log.WithError(err).Warn("advisor cache write failed")
		}
	}
	return &Advice{Task: task, Text: text, GeneratedAt: s.now()}, nil
}
