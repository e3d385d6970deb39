package policy

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// Evaluator runs ComputeSummaries against the wall clock and logs the
// entries it had to reject.
type Evaluator struct {
	now func() time.Time
	log logrus.FieldLogger
}

// NewEvaluator creates an evaluator using time.Now.
func NewEvaluator(log logrus.FieldLogger) *Evaluator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Evaluator{now: time.Now, log: log}
}

// WithClock returns a copy of the evaluator that reads the time from now.
func (e *Evaluator) WithClock(now func() time.Time) *Evaluator {
	out := *e
	out.now = now
	return &out
}

// Now returns the evaluator's current time.
func (e *Evaluator) Now() time.Time {
	return e.now()
}

// Evaluate aggregates the snapshot at the current time.
func (e *Evaluator) Evaluate(users []models.User, vehicles []models.Vehicle) (*Report, error) {
	return e.EvaluateAt(users, vehicles, e.now())
}

// EvaluateAt aggregates the snapshot at the given time.
func (e *Evaluator) EvaluateAt(users []models.User, vehicles []models.Vehicle, at time.Time) (*Report, error) {
	report, err := ComputeSummaries(users, vehicles, at)
	if err != nil {
		return nil, err
	}

	for _, r := range report.Rejections {
		e.log.WithFields(logrus.Fields{
			"vehicle_id":     r.VehicleID,
			"index":          r.Index,
			"assigned_to_id": r.AssignedToID,
		}).Warn("Rejected assignment entry: " + r.Reason)
	}
	if len(report.UnknownEmployees) > 0 {
		e.log.WithField("employee_ids", report.UnknownEmployees).Debug("Skipped assignments to unknown employees")
	}
	e.log.WithFields(logrus.Fields{
		"employees":  len(report.Summaries),
		"rejections": len(report.Rejections),
	}).Debug("Policy summaries computed")

	return report, nil
}
