package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-dashboard/internal/costs"
	"github.com/ukydev/fleet-dashboard/internal/models"
)

// MockGenerator is a mock implementation of Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockCache is a mock implementation of Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func quietLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

func sampleVehicle() models.Vehicle {
	return models.Vehicle{ID: "v1", Plate: "AB-123-CD", Make: "Renault", Model: "Zoe", Year: 2021, FuelType: "EV", Mileage: 42000, Status: "active"}
}

func TestService_NotConfigured(t *testing.T) {
	svc := NewService(nil, nil, time.Hour, quietLogger())
	assert.False(t, svc.Configured())

	_, err := svc.MaintenanceAdvice(context.Background(), sampleVehicle(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestService_MaintenanceAdvice_NoCache(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		first := strings.Index(p, "2023-05-01 tire_rotation")
		second := strings.Index(p, "2024-01-10 inspection")
		return strings.Contains(p, "AB-123-CD") && first >= 0 && second > first
	})).Return("Rotate tyres at 50000 km", nil)

	svc := NewService(gen, nil, time.Hour, quietLogger())
	records := []models.Maintenance{
		{ServiceType: "inspection", ServiceDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ServiceType: "tire_rotation", ServiceDate: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	advice, err := svc.MaintenanceAdvice(context.Background(), sampleVehicle(), records)
	require.NoError(t, err)
	assert.Equal(t, TaskMaintenance, advice.Task)
	assert.Equal(t, "Rotate tyres at 50000 km", advice.Text)
	assert.False(t, advice.Cached)
	assert.Equal(t, "inspection", records[0].ServiceType)
	gen.AssertExpectations(t)
}

func TestService_CacheHit(t *testing.T) {
	gen := new(MockGenerator)
	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return("cached plan", true, nil)

	svc := NewService(gen, cache, time.Hour, quietLogger())
	advice, err := svc.PlanTrip(context.Background(), TripPlanRequest{Origin: "Lyon", Destination: "Paris"}, nil)
	require.NoError(t, err)
	assert.True(t, advice.Cached)
	assert.Equal(t, "cached plan", advice.Text)

	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestService_CacheMissStores(t *testing.T) {
	gen := new(MockGenerator)
	cache := new(MockCache)
	gen.On("Generate", mock.Anything, mock.Anything).Return("fresh plan", nil)
	cache.On("Get", mock.Anything, mock.Anything).Return("", false, nil)
	cache.On("Set", mock.Anything, mock.AnythingOfType("string"), "fresh plan", 2*time.Hour).Return(nil)

	svc := NewService(gen, cache, 2*time.Hour, quietLogger())
	vehicle := sampleVehicle()
	advice, err := svc.PlanTrip(context.Background(), TripPlanRequest{Origin: "Lyon", Destination: "Paris", Stops: []string{"Dijon"}}, &vehicle)
	require.NoError(t, err)
	assert.False(t, advice.Cached)
	gen.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_CacheErrorsAreNotFatal(t *testing.T) {
	gen := new(MockGenerator)
	cache := new(MockCache)
	gen.On("Generate", mock.Anything, mock.Anything).Return("answer", nil)
	cache.On("Get", mock.Anything, mock.Anything).Return("", false, errors.New("redis down"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	log, hook := test.NewNullLogger()
	svc := NewService(gen, cache, time.Hour, log)
	advice, err := svc.ForecastCosts(context.Background(), costs.Summary{Total: 10}, 3)
	require.NoError(t, err)
	assert.Equal(t, "answer", advice.Text)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestService_GeneratorError(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", ErrEmptyResponse)

	svc := NewService(gen, nil, time.Hour, quietLogger())
	_, err := svc.ForecastCosts(context.Background(), costs.Summary{}, 6)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestService_InvalidRequests(t *testing.T) {
	svc := NewService(new(MockGenerator), nil, time.Hour, quietLogger())

	_, err := svc.PlanTrip(context.Background(), TripPlanRequest{Destination: "Paris"}, nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.PlanTrip(context.Background(), TripPlanRequest{Origin: "Lyon", Destination: " "}, nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.ForecastCosts(context.Background(), costs.Summary{}, 0)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.ForecastCosts(context.Background(), costs.Summary{}, MaxForecastMonths+1)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_ForecastPrompt(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "- 2024-01: 220.00") &&
			strings.Contains(p, "- fuel: 140.00") &&
			strings.Contains(p, "next 6 months")
	})).Return("forecast", nil)

	summary := costs.Summary{
		Total:      360,
		Count:      3,
		ByCategory: map[string]float64{"maintenance": 220, "fuel": 140},
		ByMonth:    []costs.MonthTotal{{Month: "2024-01", Amount: 220}, {Month: "2024-02", Amount: 140}},
	}
	svc := NewService(gen, nil, time.Hour, quietLogger())
	_, err := svc.ForecastCosts(context.Background(), summary, 6)
	require.NoError(t, err)
	gen.AssertExpectations(t)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(TaskTripPlan, "Lyon to Paris")
	assert.Equal(t, a, CacheKey(TaskTripPlan, "Lyon to Paris"))
	assert.NotEqual(t, a, CacheKey(TaskMaintenance, "Lyon to Paris"))
	assert.NotEqual(t, a, CacheKey(TaskTripPlan, "Lyon to Nice"))
	assert.Contains(t, a, "fleet:advisor:trip-plan:")
}
