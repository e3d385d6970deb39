// Package costs aggregates fleet cost records.
package costs

import (
	"sort"
	"strings"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// MonthTotal is the spend for one calendar month, keyed YYYY-MM.
type MonthTotal struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Summary is the aggregate view of a set of costs. Cancelled costs are
// counted in Excluded and left out of every total.
type Summary struct {
	Total      float64            `json:"total"`
	Count      int                `json:"count"`
	Excluded   int                `json:"excluded"`
	ByCategory map[string]float64 `json:"by_category"`
	ByVehicle  map[string]float64 `json:"by_vehicle"`
	ByMonth    []MonthTotal       `json:"by_month"`
}

// Filter narrows the costs fed into Summarize.
type Filter struct {
	VehicleID string
	Category  string
	Status    string
}

// Apply returns the costs matching f in input order.
func (f Filter) Apply(costs []models.Cost) []models.Cost {
	out := make([]models.Cost, 0, len(costs))
	for _, c := range costs {
		if f.VehicleID != "" && c.VehicleID != f.VehicleID {
			continue
		}
		if f.Category != "" && !strings.EqualFold(c.Category, f.Category) {
			continue
		}
		if f.Status != "" && !strings.EqualFold(c.Status, f.Status) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Summarize totals costs by category, vehicle and month.
func Summarize(costs []models.Cost) Summary {
	s := Summary{
		ByCategory: map[string]float64{},
		ByVehicle:  map[string]float64{},
	}
	months := map[string]float64{}
	for _, c := range costs {
		if strings.EqualFold(c.Status, models.CostCancelled) {
			s.Excluded++
			continue
		}
		s.Count++
		s.Total += c.Amount
		s.ByCategory[categoryOf(c)] += c.Amount
		s.ByVehicle[c.VehicleID] += c.Amount
		if !c.Date.IsZero() {
			months[c.Date.UTC().Format("2006-01")] += c.Amount
		}
	}
	s.ByMonth = MonthlySeries(months)
	return s
}

// MonthlySeries orders a month->amount map ascending by month.
func MonthlySeries(months map[string]float64) []MonthTotal {
	out := make([]MonthTotal, 0, len(months))
	for m, amt := range months {
		out = append(out, MonthTotal{Month: m, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// AverageMonthly is the mean spend over the months present in s.
func (s Summary) AverageMonthly() float64 {
	if len(s.ByMonth) == 0 {
		return 0
	}
	return s.Total / float64(len(s.ByMonth))
}

func categoryOf(c models.Cost) string {
	if c.Category == "" {
		return "other"
	}
	return strings.ToLower(c.Category)
}
