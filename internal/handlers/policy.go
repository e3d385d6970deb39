package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/notify"
	"github.com/ukydev/fleet-dashboard/internal/observability"
	"github.com/ukydev/fleet-dashboard/internal/policy"
	"github.com/ukydev/fleet-dashboard/internal/response"
)

// NoPolicyDataMessage is returned when no employee has a qualifying assignment.
const NoPolicyDataMessage = "No policy data: no employee vehicle assignments found"

// PolicyHandler serves the usage-policy summaries.
type PolicyHandler struct {
	users     db.UserCollection
	vehicles  db.VehicleCollection
	evaluator *policy.Evaluator
	publisher notify.Publisher
	log       logrus.FieldLogger
}

// NewPolicyHandler creates a new policy handler. A nil publisher drops alerts.
func NewPolicyHandler(users db.UserCollection, vehicles db.VehicleCollection, evaluator *policy.Evaluator, publisher notify.Publisher, log logrus.FieldLogger) *PolicyHandler {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &PolicyHandler{
		users:     users,
		vehicles:  vehicles,
		evaluator: evaluator,
		publisher: publisher,
		log:       log,
	}
}

// report loads a fresh snapshot and aggregates it. Nothing is cached.
func (h *PolicyHandler) report(ctx context.Context, at time.Time) (*policy.Report, error) {
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "policy.compute", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	users, err := h.users.FindUsers(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load users")
		return nil, err
	}
	vehicles, err := h.vehicles.FindVehicles(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load vehicles")
		return nil, err
	}

	if at.IsZero() {
		at = h.evaluator.Now()
	}
	report, err := h.evaluator.EvaluateAt(users, vehicles, at)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate")
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("policy.users", len(users)),
		attribute.Int("policy.vehicles", len(vehicles)),
		attribute.Int("policy.employees", len(report.Summaries)),
		attribute.Int("policy.rejections", len(report.Rejections)),
	)
	return report, nil
}

// Summaries handles GET /api/policy/summaries. Optional query parameters:
// as_of (evaluation date), status and department filters.
func (h *PolicyHandler) Summaries(c *gin.Context) {
	at, ok := queryDate(c, "as_of")
	if !ok {
		return
	}

	report, err := h.report(c.Request.Context(), at)
	if err != nil {
		writeError(c, h.log, err, "policy summaries")
		return
	}

	summaries := report.Summaries
	status := c.Query("status")
	department := c.Query("department")
	if status != "" || department != "" {
		filtered := make([]policy.Summary, 0, len(summaries))
		for _, s := range summaries {
			if status != "" && !strings.EqualFold(string(s.Status), status) {
				continue
			}
			if department != "" && !strings.EqualFold(s.Department, department) {
				continue
			}
			filtered = append(filtered, s)
		}
		summaries = filtered
	}

	meta := &response.Meta{
		Count:       len(summaries),
		Rejected:    len(report.Rejections),
		Unknown:     len(report.UnknownEmployees),
		EvaluatedAt: &report.EvaluatedAt,
	}
	if len(summaries) == 0 {
		meta.Empty = true
		response.SuccessWithMeta(c, NoPolicyDataMessage, summaries, meta)
		return
	}
	response.SuccessWithMeta(c, "Policy summaries computed", summaries, meta)
}

// Summary handles GET /api/policy/summaries/:employeeId.
func (h *PolicyHandler) Summary(c *gin.Context) {
	at, ok := queryDate(c, "as_of")
	if !ok {
		return
	}

	report, err := h.report(c.Request.Context(), at)
	if err != nil {
		writeError(c, h.log, err, "policy summary")
		return
	}

	summary, found := report.Find(c.Param("employeeId"))
	if !found {
		response.NotFound(c, "policy summary")
		return
	}
	response.Success(c, "Policy summary computed", summary)
}

// Rejections handles GET /api/policy/rejections.
func (h *PolicyHandler) Rejections(c *gin.Context) {
	report, err := h.report(c.Request.Context(), time.Time{})
	if err != nil {
		writeError(c, h.log, err, "policy rejections")
		return
	}
	response.SuccessWithMeta(c, "Rejected assignment entries", report.Rejections, &response.Meta{
		Count:       len(report.Rejections),
		Empty:       len(report.Rejections) == 0,
		EvaluatedAt: &report.EvaluatedAt,
	})
}

// PublishAlerts handles POST /api/policy/alerts.
func (h *PolicyHandler) PublishAlerts(c *gin.Context) {
	report, err := h.report(c.Request.Context(), time.Time{})
	if err != nil {
		writeError(c, h.log, err, "policy alerts")
		return
	}

	alerts := notify.AlertsFromReport(report)
	sent, err := notify.PublishAll(c.Request.Context(), h.publisher, alerts)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"sent":   sent,
			"alerts": len(alerts),
		}).WithError(err).Warn("Some policy alerts were not published")
		if sent == 0 && len(alerts) > 0 {
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, "failed to publish policy alerts")
			return
		}
	}

	response.Success(c, "Policy alerts published", gin.H{
		"sent":   sent,
		"failed": len(alerts) - sent,
		"alerts": alerts,
	})
}
