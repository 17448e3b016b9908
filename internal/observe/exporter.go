package observe

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogExporter is a span exporter that writes finished spans to a logger. It
// lets the CLI show traces without a collector.
type LogExporter struct {
	logger *slog.Logger
}

// NewLogExporter returns an exporter writing to logger, or to the default
// logger when logger is nil.
func NewLogExporter(logger *slog.Logger) *LogExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogExporter{logger: logger}
}

func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		args := []any{
			"span", span.Name(),
			"trace_id", span.SpanContext().TraceID().String(),
			"duration", span.EndTime().Sub(span.StartTime()),
			"status", span.Status().Code.String(),
			"events", len(span.Events()),
		}
		for _, kv := range span.Attributes() {
			args = append(args, string(kv.Key), attrValue(kv.Value))
		}
		e.logger.InfoContext(ctx, "Span finished.", args...)
	}
	return nil
}

func (e *LogExporter) Shutdown(context.Context) error {
	return nil
}

func attrValue(v attribute.Value) any {
	switch v.Type() {
	case attribute.BOOL:
		return v.AsBool()
	case attribute.INT64:
		return v.AsInt64()
	case attribute.FLOAT64:
		return v.AsFloat64()
	case attribute.STRING:
		return v.AsString()
	}
	return v.Emit()
}

// NewLogTracerProvider returns a tracer provider that exports each span
// synchronously through a LogExporter.
func NewLogTracerProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(NewLogExporter(logger)))
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)
