package observe

import (
	"context"

	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// SpanDefineToolchain is the name of the span covering one toolchain block.
	SpanDefineToolchain = "toolchain.define"
	// EventToolDefined is recorded on the toolchain span for every tool.
	EventToolDefined = "tool.defined"

	AttrLabel           = "toolchain.label"
	AttrTool            = "toolchain.tool"
	AttrToolCount       = "toolchain.tool_count"
	AttrConcurrentLinks = "toolchain.concurrent_links"
	AttrPassID          = "toolchain.pass_id"
)

// Trace opens a span per toolchain declaration and records an event for each
// tool defined inside it.
type Trace struct {
	tracer trace.Tracer
	passID string
}

// NewTrace returns a tracing observer. passID, when set, is attached to
// every span so spans of one configuration pass can be grouped.
func NewTrace(tracer trace.Tracer, passID string) *Trace {
	return &Trace{tracer: tracer, passID: passID}
}

func (o *Trace) ToolchainStarted(ctx context.Context, l label.Label) context.Context {
	attrs := []attribute.KeyValue{attribute.String(AttrLabel, l.String())}
	if o.passID != "" {
		attrs = append(attrs, attribute.String(AttrPassID, o.passID))
	}
	ctx, _ = o.tracer.Start(ctx, SpanDefineToolchain, trace.WithAttributes(attrs...))
	return ctx
}

func (o *Trace) ToolDefined(ctx context.Context, _ label.Label, tool *toolchain.Tool) {
	trace.SpanFromContext(ctx).AddEvent(EventToolDefined,
		trace.WithAttributes(attribute.String(AttrTool, tool.Category().String())))
}

func (o *Trace) ToolchainFinished(ctx context.Context, _ label.Label, tc *toolchain.Toolchain, err error) {
	span := trace.SpanFromContext(ctx)
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(
		attribute.Int(AttrToolCount, len(tc.Categories())),
		attribute.Int(AttrConcurrentLinks, tc.ConcurrentLinks()),
	)
	span.SetStatus(codes.Ok, "")
}
