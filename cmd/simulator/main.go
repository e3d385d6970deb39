// Command simulator drives the odometers of the fleet's active vehicles
// against a running dashboard API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

const (
	minSpeedKmh = 15.0
	maxSpeedKmh = 90.0
)

type simConfig struct {
	APIURL      string
	Interval    time.Duration
	MaxVehicles int
}

func loadConfig() simConfig {
	cfg := simConfig{
		APIURL:      "http://localhost:8080",
		Interval:    2 * time.Second,
		MaxVehicles: 10,
	}
	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.Interval = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("SIM_MAX_VEHICLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.MaxVehicles = n
		}
	}
	return cfg
}

// apiClient talks to the dashboard's vehicle endpoints.
type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second, Transport: &http.Transport{}},
	}
}

func (c *apiClient) listVehicles(ctx context.Context) ([]models.Vehicle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/vehicles", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list vehicles: unexpected status %s", resp.Status)
	}
	var envelope struct {
		Data []models.Vehicle `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return envelope.Data, nil
}

func (c *apiClient) postOdometer(ctx context.Context, r models.OdometerReading) error {
	body, err := json.Marshal(map[string]any{
		"mileage":   r.Mileage,
		"timestamp": r.Timestamp,
	})
	if err != nil {
		return err
	}
	url := c.base + "/api/vehicles/" + r.VehicleID + "/odometer"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("odometer %s: unexpected status %s", r.VehicleID, resp.Status)
	}
	return nil
}

type vehicleState struct {
	VehicleID string
	Mileage   float64
	SpeedKmh  float64
}

// step applies speed noise and advances the odometer by one tick.
func step(s *vehicleState, interval time.Duration, rnd *rand.Rand) {
	s.SpeedKmh += (rnd.Float64()*2 - 1) * 1.5
	if s.SpeedKmh < minSpeedKmh {
		s.SpeedKmh = minSpeedKmh
	}
	if s.SpeedKmh > maxSpeedKmh {
		s.SpeedKmh = maxSpeedKmh
	}
	s.Mileage += s.SpeedKmh * interval.Hours()
}

func simulateVehicle(ctx context.Context, c *apiClient, s *vehicleState, interval time.Duration, rnd *rand.Rand) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			step(s, interval, rnd)
			reading := models.OdometerReading{VehicleID: s.VehicleID, Mileage: s.Mileage, Timestamp: now.UTC()}
			if err := c.postOdometer(ctx, reading); err != nil {
				if ctx.Err() != nil {
					return
				}
				log.WithError(err).WithField("vehicle_id", s.VehicleID).Error("Failed to send odometer reading")
				continue
			}
			log.WithFields(log.Fields{
				"vehicle_id": s.VehicleID,
				"mileage":    fmt.Sprintf("%.1f", s.Mileage),
			}).Debug("Sent odometer reading")
		}
	}
}

// selectActive returns up to limit active vehicles, in API order.
func selectActive(vehicles []models.Vehicle, limit int) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if !strings.EqualFold(v.Status, models.VehicleActive) {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func run(ctx context.Context, cfg simConfig) error {
	c := newAPIClient(cfg.APIURL)
	defer c.http.CloseIdleConnections()

	vehicles, err := c.listVehicles(ctx)
	if err != nil {
		return err
	}
	active := selectActive(vehicles, cfg.MaxVehicles)
	if len(active) == 0 {
		return fmt.Errorf("no active vehicles at %s", cfg.APIURL)
	}

	log.WithFields(log.Fields{
		"vehicles": len(active),
		"api_url":  cfg.APIURL,
		"interval": cfg.Interval,
	}).Info("Odometer simulation started")

	var wg sync.WaitGroup
	for i, v := range active {
		s := &vehicleState{VehicleID: v.ID, Mileage: v.Mileage}
		rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(i)))
		s.SpeedKmh = 30 + rnd.Float64()*30
		wg.Add(1)
		go func() {
			defer wg.Done()
			simulateVehicle(ctx, c, s, cfg.Interval, rnd)
		}()
	}
	wg.Wait()

	log.Info("Odometer simulation stopped")
	return nil
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, loadConfig()); err != nil {
		log.WithError(err).Error("Simulator exited")
		os.Exit(1)
	}
}
