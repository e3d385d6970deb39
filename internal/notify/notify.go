// Package notify publishes policy alerts for employees approaching or past
// their vehicle usage limits.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ukydev/fleet-dashboard/internal/policy"
)

// Alert is the message published for one non-compliant employee.
type Alert struct {
	EmployeeID     string        `json:"employee_id"`
	Name           string        `json:"name"`
	Department     string        `json:"department"`
	Status         policy.Status `json:"status"`
	TotalKmDriven  float64       `json:"total_km_driven"`
	KmPercentage   float64       `json:"km_percentage"`
	TimePercentage float64       `json:"time_percentage"`
	MonthsElapsed  int           `json:"months_elapsed"`
	EvaluatedAt    time.Time     `json:"evaluated_at"`
}

// AlertsFromReport returns one alert per summary not within limits, in
// report order.
func AlertsFromReport(r *policy.Report) []Alert {
	alerts := []Alert{}
	if r == nil {
		return alerts
	}
	for _, s := range r.NonCompliant() {
		alerts = append(alerts, Alert{
			EmployeeID:     s.EmployeeID,
			Name:           s.Name,
			Department:     s.Department,
			Status:         s.Status,
			TotalKmDriven:  s.TotalKmDriven,
			KmPercentage:   s.KmPercentage,
			TimePercentage: s.TimePercentage,
			MonthsElapsed:  s.MonthsElapsed,
			EvaluatedAt:    r.EvaluatedAt,
		})
	}
	return alerts
}

// Publisher delivers alerts.
type Publisher interface {
	Publish(ctx context.Context, alert Alert) error
	Close()
}

// PublishAll sends every alert and returns how many succeeded. Failures
// are joined into the returned error.
func PublishAll(ctx context.Context, p Publisher, alerts []Alert) (int, error) {
	sent := 0
	var errs []error
	for _, a := range alerts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := p.Publish(ctx, a); err != nil {
			errs = append(errs, fmt.Errorf("alert %s: %w", a.EmployeeID, err))
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}

// NopPublisher drops every alert.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Alert) error { return nil }
func (NopPublisher) Close()                               {}

// mqttClient is the part of mqtt.Client used by MQTTPublisher.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTPublisher publishes alerts as JSON to <topic>/<employeeId> at QoS 1.
type MQTTPublisher struct {
	client  mqttClient
	topic   string
	timeout time.Duration
}

// DialMQTT connects to broker and returns a publisher on topic.
func DialMQTT(broker, clientID, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect to mqtt broker %s: timeout", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", broker, err)
	}
	return newMQTTPublisher(client, topic), nil
}

func newMQTTPublisher(client mqttClient, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic, timeout: 5 * time.Second}
}

// Topic returns the topic an alert for employeeID is published to.
func (p *MQTTPublisher) Topic(employeeID string) string {
	return p.topic + "/" + employeeID
}

func (p *MQTTPublisher) Publish(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	token := p.client.Publish(p.Topic(alert.EmployeeID), 1, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.timeout):
		return fmt.Errorf("publish to %s: timeout", p.Topic(alert.EmployeeID))
	}
	return token.Error()
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
