// Package observability sets up OpenTelemetry tracing.
package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TracerName is the instrumentation scope used by application spans.
const TracerName = "github.com/ukydev/fleet-dashboard"

type Options struct {
	Enabled     bool
	ServiceName string
	Environment string
	// Output receives exported spans; stdout when nil.
	Output io.Writer
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a global tracer provider exporting to stdout. When tracing
// is disabled the global no-op provider is left in place.
func Setup(ctx context.Context, opts Options, log logrus.FieldLogger) (ShutdownFunc, error) {
	if !opts.Enabled {
		return noopShutdown, nil
	}

	name := strings.TrimSpace(opts.ServiceName)
	if name == "" {
		name = "fleet-dashboard"
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", name),
		attribute.String("deployment.environment", opts.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
	if err != nil {
		return nil, fmt.Errorf("otel stdout exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if log != nil {
		log.WithField("service", name).Info("otel tracing initialized")
	}
	return tp.Shutdown, nil
}
