package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cleanarchmvc/catalog/app/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewTracerProvider installs a global tracer provider. Spans are exported
// over OTLP gRPC when cfg.Endpoint is set, and only recorded locally otherwise.
func NewTracerProvider(ctx context.Context, cfg config.OTLPConfig) (*sdktrace.TracerProvider, error) {
	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.Endpoint != "" {
		endpoint, insecure, err := parseEndpoint(cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		exporterOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
		if insecure {
			exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
		}
		exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// parseEndpoint accepts both a bare host:port and the URL form of
// OTEL_EXPORTER_OTLP_ENDPOINT. Only https enables TLS.
func parseEndpoint(raw string) (hostport string, insecure bool, err error) {
	if !strings.Contains(raw, "://") {
		return raw, true, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http":
		return u.Host, true, nil
	case "https":
		return u.Host, false, nil
	default:
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: unsupported scheme %q", raw, u.Scheme)
	}
}
