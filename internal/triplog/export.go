package triplog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

var csvHeader = []string{
	"id", "vehicle_id", "driver_id", "start_time", "end_time",
	"distance_km", "duration_h", "fuel_l", "battery_kwh", "cost_usd",
	"purpose", "status", "notes",
}

// WriteCSV writes trips as CSV with a header row.
func WriteCSV(w io.Writer, trips []models.Trip) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range trips {
		if err := cw.Write(record(t)); err != nil {
			return fmt.Errorf("write trip %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(t models.Trip) []string {
	return []string{
		t.ID,
		t.VehicleID,
		t.DriverID,
		formatTime(t.StartTime),
		formatTime(t.EndTime),
		formatFloat(t.Distance),
		formatFloat(t.Duration),
		formatFloat(t.FuelConsumption),
		formatFloat(t.BatteryConsumption),
		formatFloat(t.Cost),
		t.Purpose,
		t.Status,
		t.Notes,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
