package policy

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

func TestEvaluator_LogsRejections(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	fixed := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	ev := NewEvaluator(logger).WithClock(func() time.Time { return fixed })

	vehicles := []models.Vehicle{{
		ID: "v1",
		AssignmentHistory: []models.AssignmentEntry{
			{AssignedToID: "u1", Type: models.AssignmentEmployee, StartDate: "yesterday"},
			{AssignedToID: "u1", Type: models.AssignmentEmployee, StartDate: "2022-01-10", StartMileage: models.Float(0), EndMileage: models.Float(10)},
		},
	}}

	report, err := ev.Evaluate(testUsers(), vehicles)
	require.NoError(t, err)
	assert.Equal(t, fixed, report.EvaluatedAt)
	assert.Len(t, report.Summaries, 1)

	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
			assert.Equal(t, "v1", e.Data["vehicle_id"])
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestEvaluator_PropagatesPreconditionErrors(t *testing.T) {
	ev := NewEvaluator(nil)
	_, err := ev.Evaluate(nil, nil)
	assert.ErrorIs(t, err, ErrNilUsers)
}
