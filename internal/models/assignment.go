package models

// AssignmentType discriminates who or what a vehicle was assigned to.
type AssignmentType string

const (
	AssignmentEmployee  AssignmentType = "Employee"
	AssignmentPool      AssignmentType = "Pool"
	AssignmentGuest     AssignmentType = "Guest"
	AssignmentChauffeur AssignmentType = "Chauffeur"
)

// AssignmentEntry is one element of a vehicle's assignment history.
// Dates are kept as the ISO-8601 strings they were recorded with; a nil
// mileage pointer means the reading was never taken.
type AssignmentEntry struct {
	AssignedToID string         `bson:"assigned_to_id" json:"assigned_to_id" yaml:"assigned_to_id"`
	Type         AssignmentType `bson:"type" json:"type" yaml:"type"`
	StartDate    string         `bson:"start_date,omitempty" json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate      string         `bson:"end_date,omitempty" json:"end_date,omitempty" yaml:"end_date,omitempty"`
	StartMileage *float64       `bson:"start_mileage,omitempty" json:"start_mileage,omitempty" yaml:"start_mileage,omitempty"`
	EndMileage   *float64       `bson:"end_mileage,omitempty" json:"end_mileage,omitempty" yaml:"end_mileage,omitempty"`
}

// IsOpen reports whether the assignment has no recorded end.
func (e AssignmentEntry) IsOpen() bool {
	return e.EndDate == "" && e.EndMileage == nil
}

// Clone returns a copy of the entry with its own mileage pointers.
func (e AssignmentEntry) Clone() AssignmentEntry {
	out := e
	if e.StartMileage != nil {
		out.StartMileage = Float(*e.StartMileage)
	}
	if e.EndMileage != nil {
		out.EndMileage = Float(*e.EndMileage)
	}
	return out
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
