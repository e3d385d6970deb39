// Package triplog filters, summarizes and exports the trip log.
package triplog

import (
	"sort"
	"strings"
	"time"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// Filter selects trips. Zero-valued fields match everything. From and To
// bound the trip start time, inclusive.
type Filter struct {
	VehicleID string
	DriverID  string
	Status    string
	Purpose   string
	From      time.Time
	To        time.Time
	Query     string
}

// Match reports whether trip passes every criterion of f.
func (f Filter) Match(trip models.Trip) bool {
	if f.VehicleID != "" && trip.VehicleID != f.VehicleID {
		return false
	}
	if f.DriverID != "" && trip.DriverID != f.DriverID {
		return false
	}
	if f.Status != "" && !strings.EqualFold(trip.Status, f.Status) {
		return false
	}
	if f.Purpose != "" && !strings.EqualFold(trip.Purpose, f.Purpose) {
		return false
	}
	if !f.From.IsZero() && trip.StartTime.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && trip.StartTime.After(f.To) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		haystack := strings.ToLower(strings.Join([]string{trip.Notes, trip.Purpose, trip.VehicleID, trip.DriverID}, " "))
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// Apply returns the trips matching f, most recent first. The input slice is
// left untouched.
func (f Filter) Apply(trips []models.Trip) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

// Stats summarizes a set of trips.
type Stats struct {
	Count           int     `json:"count"`
	TotalDistance   float64 `json:"total_distance"`
	TotalCost       float64 `json:"total_cost"`
	TotalDuration   float64 `json:"total_duration"`
	AverageDistance float64 `json:"average_distance"`
}

// Summarize computes Stats over trips.
func Summarize(trips []models.Trip) Stats {
	var s Stats
	for _, t := range trips {
		s.Count++
		s.TotalDistance += t.Distance
		s.TotalCost += t.Cost
		s.TotalDuration += t.Duration
	}
	if s.Count > 0 {
		s.AverageDistance = s.TotalDistance / float64(s.Count)
	}
	return s
}
