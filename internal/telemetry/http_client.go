package telemetry

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HTTPClientConfig holds configuration for an instrumented HTTP client
type HTTPClientConfig struct {
	ServiceName string        // Name of the external service (e.g., "text-analysis")
	Timeout     time.Duration // Request timeout
}

// NewInstrumentedHTTPClient creates an HTTP client whose requests are traced
// to OpenTelemetry. With tracing disabled the transport is a no-op
// passthrough.
func NewInstrumentedHTTPClient(cfg HTTPClientConfig) *http.Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: otelhttp.NewTransport(
			http.DefaultTransport,
			otelhttp.WithSpanOptions(
				trace.WithSpanKind(trace.SpanKindClient),
			),
		),
	}
}

// TraceNLPCall creates a span for a call to the text-analysis service.
// Operations: "embed", "classify".
func TraceNLPCall(ctx context.Context, operation string, batchSize int) (context.Context, trace.Span) {
	ctx, span := otel.Tracer("text-analysis").Start(ctx, "nlp."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("nlp.operation", operation),
			attribute.Int("nlp.batch_size", batchSize),
		),
	)
	return ctx, span
}

// TraceEnrichment creates a span covering a full enrichment pass over the
// event table. Passes: "temporal", "topics", "emotions".
func TraceEnrichment(ctx context.Context, pass string, eventCount int) (context.Context, trace.Span) {
	ctx, span := otel.Tracer("enrichment").Start(ctx, "enrich."+pass,
		trace.WithAttributes(
			attribute.String("enrich.pass", pass),
			attribute.Int("enrich.event_count", eventCount),
		),
	)
	return ctx, span
}

// RecordSpanError marks a span as failed and records the error.
func RecordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
