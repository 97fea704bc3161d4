package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/talkdeck/talkdeck/pkg/talks"
)

const defaultTracerName = "talkdeck"

// MeteredSource wraps a talk source with load counters and timing.
type MeteredSource struct {
	inner   talks.Source
	metrics *Metrics
}

// NewMeteredSource wraps source so every fetch is counted and timed.
func NewMeteredSource(source talks.Source, metrics *Metrics) *MeteredSource {
	return &MeteredSource{inner: source, metrics: metrics}
}

func (s *MeteredSource) FetchTalks(ctx context.Context) ([]talks.Talk, error) {
	start := time.Now()
	result, err := s.inner.FetchTalks(ctx)
	s.metrics.RecordLoad(time.Since(start).Seconds(), err)
	return result, err
}

// TracedSource wraps a talk source in an OpenTelemetry span per fetch.
type TracedSource struct {
	inner  talks.Source
	tracer trace.Tracer
}

// NewTracedSource wraps source with tracing. The tracer comes from the
// global provider; configure it in main() before serving.
func NewTracedSource(source talks.Source, tracerName string) *TracedSource {
	if tracerName == "" {
		tracerName = defaultTracerName
	}
	return &TracedSource{
		inner:  source,
		tracer: otel.Tracer(tracerName),
	}
}

func (s *TracedSource) FetchTalks(ctx context.Context) ([]talks.Talk, error) {
	ctx, span := s.tracer.Start(ctx, "talks.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	result, err := s.inner.FetchTalks(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	span.SetAttributes(attribute.Int("talks.count", len(result)))
	return result, nil
}
