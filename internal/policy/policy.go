// Package policy classifies each employee's cumulative company-vehicle usage
// against the fleet's distance and tenure limits.
//
// The aggregation is a pure function of a users/vehicles snapshot and an
// evaluation time. It never mutates its inputs and keeps no state between
// calls.
package policy

import (
	"errors"
	"sort"
	"time"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

const (
	// KmLimit is the distance an employee may drive under one policy window.
	KmLimit = 60000.0
	// YearLimit is the tenure of one policy window.
	YearLimit = 3
	// MonthLimit is YearLimit expressed in calendar months.
	MonthLimit = YearLimit * 12
	// ApproachingThreshold is the percentage of either limit above which an
	// employee is flagged as approaching it.
	ApproachingThreshold = 85.0

	// DefaultStartMileage is used when an assignment has no start reading.
	DefaultStartMileage = 0.0
)

// Status is the compliance classification of an employee.
type Status string

const (
	StatusWithinLimit Status = "Within Limit"
	StatusApproaching Status = "Approaching Limit"
	StatusExceeded    Status = "Exceeded"
)

var (
	ErrNilUsers    = errors.New("policy: users snapshot is nil")
	ErrNilVehicles = errors.New("policy: vehicles snapshot is nil")
)

// AssignmentDetail is one qualifying assignment contributing to a summary.
type AssignmentDetail struct {
	VehicleID string                 `json:"vehicle_id"`
	Plate     string                 `json:"plate"`
	Make      string                 `json:"make"`
	Model     string                 `json:"model"`
	Entry     models.AssignmentEntry `json:"entry"`
	StartDate time.Time              `json:"start_date"`
	Open      bool                   `json:"open"`
	KmDriven  float64                `json:"km_driven"`
}

// Summary is the derived policy position of one employee.
type Summary struct {
	EmployeeID      string             `json:"employee_id"`
	Name            string             `json:"name"`
	Department      string             `json:"department"`
	TotalKmDriven   float64            `json:"total_km_driven"`
	PolicyStartDate time.Time          `json:"policy_start_date"`
	MonthsElapsed   int                `json:"months_elapsed"`
	KmPercentage    float64            `json:"km_percentage"`
	TimePercentage  float64            `json:"time_percentage"`
	Status          Status             `json:"status"`
	Assignments     []AssignmentDetail `json:"assignments"`
}

// Rejection records an assignment entry left out of the aggregation because
// its data could not be trusted.
type Rejection struct {
	VehicleID    string `json:"vehicle_id"`
	Index        int    `json:"index"`
	AssignedToID string `json:"assigned_to_id"`
	Reason       string `json:"reason"`
}

// Report is the result of one aggregation run.
type Report struct {
	EvaluatedAt      time.Time   `json:"evaluated_at"`
	Summaries        []Summary   `json:"summaries"`
	Rejections       []Rejection `json:"rejections"`
	UnknownEmployees []string    `json:"unknown_employees"`
}

// Find returns the summary for employeeID.
func (r *Report) Find(employeeID string) (*Summary, bool) {
	for i := range r.Summaries {
		if r.Summaries[i].EmployeeID == employeeID {
			return &r.Summaries[i], true
		}
	}
	return nil, false
}

// NonCompliant returns the summaries whose status is not Within Limit, in
// report order.
func (r *Report) NonCompliant() []Summary {
	out := make([]Summary, 0)
	for _, s := range r.Summaries {
		if s.Status != StatusWithinLimit {
			out = append(out, s)
		}
	}
	return out
}

type accumulator struct {
	user        models.User
	assignments []AssignmentDetail
}

// ComputeSummaries aggregates every Employee-typed assignment in vehicles
// into one Summary per known user, evaluated at now.
//
// Entries with a missing or malformed start date, a malformed end date or a
// negative odometer reading are skipped and reported in Report.Rejections.
// Assignments to ids with no matching user are dropped. Summaries are sorted
// by TotalKmDriven, highest first.
func ComputeSummaries(users []models.User, vehicles []models.Vehicle, now time.Time) (*Report, error) {
	if users == nil {
		return nil, ErrNilUsers
	}
	if vehicles == nil {
		return nil, ErrNilVehicles
	}

	directory := make(map[string]models.User, len(users))
	for _, u := range users {
		directory[u.ID] = u
	}

	report := &Report{
		EvaluatedAt:      now,
		Summaries:        make([]Summary, 0),
		Rejections:       make([]Rejection, 0),
		UnknownEmployees: make([]string, 0),
	}

	byEmployee := make(map[string]*accumulator)
	unknown := make(map[string]bool)
	var order []*accumulator

	for _, v := range vehicles {
		for i, entry := range v.AssignmentHistory {
			if entry.Type != models.AssignmentEmployee {
				continue
			}
			start, err := validate(entry)
			if err != nil {
				report.Rejections = append(report.Rejections, Rejection{
					VehicleID:    v.ID,
					Index:        i,
					AssignedToID: entry.AssignedToID,
					Reason:       err.Error(),
				})
				continue
			}
			if unknown[entry.AssignedToID] {
				continue
			}

			acc, ok := byEmployee[entry.AssignedToID]
			if !ok {
				user, found := directory[entry.AssignedToID]
				if !found {
					unknown[entry.AssignedToID] = true
					report.UnknownEmployees = append(report.UnknownEmployees, entry.AssignedToID)
					continue
				}
				acc = &accumulator{user: user}
				byEmployee[entry.AssignedToID] = acc
				order = append(order, acc)
			}

			acc.assignments = append(acc.assignments, AssignmentDetail{
				VehicleID: v.ID,
				Plate:     v.Plate,
				Make:      v.Make,
				Model:     v.Model,
				Entry:     entry.Clone(),
				StartDate: start,
				Open:      entry.IsOpen(),
				KmDriven:  KmDriven(entry, v.Mileage),
			})
		}
	}

	for _, acc := range order {
		report.Summaries = append(report.Summaries, summarize(acc, now))
	}

	sort.SliceStable(report.Summaries, func(i, j int) bool {
		return report.Summaries[i].TotalKmDriven > report.Summaries[j].TotalKmDriven
	})

	return report, nil
}

func summarize(acc *accumulator, now time.Time) Summary {
	sort.SliceStable(acc.assignments, func(i, j int) bool {
		return acc.assignments[i].StartDate.Before(acc.assignments[j].StartDate)
	})

	var total float64
	for _, a := range acc.assignments {
		total += a.KmDriven
	}

	start := acc.assignments[0].StartDate
	months := MonthsElapsed(start, now)
	kmPct, timePct, status := Classify(total, months)

	return Summary{
		EmployeeID:      acc.user.ID,
		Name:            acc.user.Name,
		Department:      acc.user.Department,
		TotalKmDriven:   total,
		PolicyStartDate: start,
		MonthsElapsed:   months,
		KmPercentage:    kmPct,
		TimePercentage:  timePct,
		Status:          status,
		Assignments:     acc.assignments,
	}
}

// KmDriven returns the distance covered during one assignment. An assignment
// without an end reading is still open and counts up to the vehicle's
// current odometer. A reading that went backwards yields zero.
func KmDriven(entry models.AssignmentEntry, vehicleMileage float64) float64 {
	start := DefaultStartMileage
	if entry.StartMileage != nil {
		start = *entry.StartMileage
	}
	end := vehicleMileage
	if entry.EndMileage != nil {
		end = *entry.EndMileage
	}
	if end < start {
		return 0
	}
	return end - start
}

// MonthsElapsed counts calendar months from start to now using only the
// year and month components (UTC). The day of month is ignored.
func MonthsElapsed(start, now time.Time) int {
	s := start.UTC()
	n := now.UTC()
	return (n.Year()-s.Year())*12 + int(n.Month()) - int(s.Month())
}

// Classify converts usage into progress percentages and a status.
func Classify(totalKm float64, monthsElapsed int) (kmPercentage, timePercentage float64, status Status) {
	kmPercentage = totalKm / KmLimit * 100
	timePercentage = float64(monthsElapsed) / float64(MonthLimit) * 100

	switch {
	case kmPercentage >= 100 || timePercentage >= 100:
		status = StatusExceeded
	case kmPercentage > ApproachingThreshold || timePercentage > ApproachingThreshold:
		status = StatusApproaching
	default:
		status = StatusWithinLimit
	}
	return kmPercentage, timePercentage, status
}
