package policy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// ErrInvalidEntry is wrapped by every assignment validation failure.
var ErrInvalidEntry = errors.New("invalid assignment entry")

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDate parses an ISO-8601 calendar date or timestamp. Values without a
// zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO-8601 date", s)
}

// ValidateEntry checks an assignment entry before it is stored. It applies
// the same rules the aggregation uses to reject entries.
func ValidateEntry(entry models.AssignmentEntry) error {
	if strings.TrimSpace(entry.AssignedToID) == "" {
		return fmt.Errorf("%w: assigned_to_id is required", ErrInvalidEntry)
	}
	if entry.Type == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidEntry)
	}
	_, err := validate(entry)
	return err
}

// validate returns the parsed start date of a usable entry.
func validate(entry models.AssignmentEntry) (time.Time, error) {
	if strings.TrimSpace(entry.StartDate) == "" {
		return time.Time{}, fmt.Errorf("%w: start_date is missing", ErrInvalidEntry)
	}
	start, err := ParseDate(entry.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start_date %v", ErrInvalidEntry, err)
	}
	if entry.EndDate != "" {
		if _, err := ParseDate(entry.EndDate); err != nil {
			return time.Time{}, fmt.Errorf("%w: end_date %v", ErrInvalidEntry, err)
		}
	}
	if entry.StartMileage != nil && *entry.StartMileage < 0 {
		return time.Time{}, fmt.Errorf("%w: start_mileage is negative", ErrInvalidEntry)
	}
	if entry.EndMileage != nil && *entry.EndMileage < 0 {
		return time.Time{}, fmt.Errorf("%w: end_mileage is negative", ErrInvalidEntry)
	}
	return start, nil
}
