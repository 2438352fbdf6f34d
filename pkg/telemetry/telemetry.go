package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Provider is a TracerProvider whose spans do nothing. It is what the CLI
// hands out when tracing is disabled.
type Provider struct {
	trace.TracerProvider
}

var (
	provider    = &Provider{}
	tracer      = &Tracer{}
	span        = &Span{}
	spanContext = trace.SpanContext{}
)

func NewProvider() *Provider {
	return provider
}

func (provider *Provider) Tracer(name string, options ...trace.TracerOption) trace.Tracer {
	return tracer
}

type Tracer struct {
	trace.Tracer
}

func (tracer *Tracer) Start(ctx context.Context, name string, options ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, span
}

type Span struct {
	trace.Span
}

func (span *Span) End(options ...trace.SpanEndOption)                  {}
func (span *Span) AddEvent(name string, options ...trace.EventOption)  {}
func (span *Span) AddLink(link trace.Link)                             {}
func (span *Span) IsRecording() bool                                   { return false }
func (span *Span) RecordError(err error, options ...trace.EventOption) {}
func (span *Span) SetAttributes(kv ...attribute.KeyValue)              {}
func (span *Span) SetName(name string)                                 {}
func (span *Span) SetStatus(code codes.Code, description string)       {}
func (span *Span) SpanContext() trace.SpanContext                      { return spanContext }
func (span *Span) TracerProvider() trace.TracerProvider                { return provider }

// New returns a hook that opens a span named "seqdetect.<step>" under ctx
// for every traced step and ends it with the step's error, if any. The
// result is assignable to seqdetect.Trace.
func New(ctx context.Context, tracer trace.Tracer) func(step string, attributes ...attribute.KeyValue) func(err error) {
	return func(step string, attributes ...attribute.KeyValue) func(err error) {
		_, span := tracer.Start(ctx, "seqdetect."+step, trace.WithAttributes(attributes...))
		return func(err error) {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}
	}
}
