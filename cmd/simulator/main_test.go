package main

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

type fakeAPI struct {
	mu       sync.Mutex
	vehicles []models.Vehicle
	readings []models.OdometerReading
	reject   bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/vehicles":
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": f.vehicles})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/odometer"):
		if f.reject {
			w.WriteHeader(http.StatusConflict)
			return
		}
		var body struct {
			Mileage   float64   `json:"mileage"`
			Timestamp time.Time `json:"timestamp"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/vehicles/"), "/odometer")
		f.mu.Lock()
		f.readings = append(f.readings, models.OdometerReading{VehicleID: id, Mileage: body.Mileage, Timestamp: body.Timestamp})
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.readings)
}

func testFleet() []models.Vehicle {
	return []models.Vehicle{
		{ID: "v1", Status: models.VehicleActive, Mileage: 1000},
		{ID: "v2", Status: models.VehicleRetired, Mileage: 5000},
		{ID: "v3", Status: "Active", Mileage: 200},
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api:9000/")
	t.Setenv("SIM_TICK_SECONDS", "5")
	t.Setenv("SIM_MAX_VEHICLES", "3")

	cfg := loadConfig()
	assert.Equal(t, "http://api:9000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, 3, cfg.MaxVehicles)
}

func TestLoadConfig_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("SIM_TICK_SECONDS", "0")
	t.Setenv("SIM_MAX_VEHICLES", "many")

	cfg := loadConfig()
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, 10, cfg.MaxVehicles)
}

func TestStep_AdvancesOdometerWithinSpeedBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	s := &vehicleState{VehicleID: "v1", Mileage: 100, SpeedKmh: 16}

	prev := s.Mileage
	for i := 0; i < 200; i++ {
		step(s, time.Minute, rnd)
		assert.GreaterOrEqual(t, s.SpeedKmh, minSpeedKmh)
		assert.LessOrEqual(t, s.SpeedKmh, maxSpeedKmh)
		assert.Greater(t, s.Mileage, prev)
		prev = s.Mileage
	}
}

func TestSelectActive(t *testing.T) {
	got := selectActive(testFleet(), 0)
	require.Len(t, got, 2)
	assert.Equal(t, "v1", got[0].ID)
	assert.Equal(t, "v3", got[1].ID)

	assert.Len(t, selectActive(testFleet(), 1), 1)
}

func TestListVehicles(t *testing.T) {
	api := &fakeAPI{vehicles: testFleet()}
	srv := httptest.NewServer(api)
	defer srv.Close()

	c := newAPIClient(srv.URL)
	defer c.http.CloseIdleConnections()
	got, err := c.listVehicles(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1000.0, got[0].Mileage)
}

func TestPostOdometer_RejectedReading(t *testing.T) {
	api := &fakeAPI{reject: true}
	srv := httptest.NewServer(api)
	defer srv.Close()

	c := newAPIClient(srv.URL)
	defer c.http.CloseIdleConnections()
	err := c.postOdometer(context.Background(), models.OdometerReading{VehicleID: "v1", Mileage: 10, Timestamp: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}

func TestRun_NoActiveVehicles(t *testing.T) {
	api := &fakeAPI{vehicles: []models.Vehicle{{ID: "v2", Status: models.VehicleRetired}}}
	srv := httptest.NewServer(api)
	defer srv.Close()

	err := run(context.Background(), simConfig{APIURL: srv.URL, Interval: time.Second, MaxVehicles: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active vehicles")
}

func TestRun_PostsReadingsUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := &fakeAPI{vehicles: testFleet()}
	srv := httptest.NewServer(api)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, simConfig{APIURL: srv.URL, Interval: 10 * time.Millisecond, MaxVehicles: 5})
	}()

	require.Eventually(t, func() bool { return api.count() >= 4 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("simulator did not stop after cancel")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	last := map[string]float64{"v1": 1000, "v3": 200}
	for _, r := range api.readings {
		assert.NotEqual(t, "v2", r.VehicleID)
		assert.Greater(t, r.Mileage, last[r.VehicleID])
		last[r.VehicleID] = r.Mileage
	}
}
