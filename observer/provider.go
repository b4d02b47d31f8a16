package observer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	codelab "github.com/arvyn/codelab"
)

// ObservedProvider wraps a codelab.Provider with OTEL instrumentation.
type ObservedProvider struct {
	inner codelab.Provider
	inst  *Instruments
}

// WrapProvider returns an instrumented provider.
func WrapProvider(inner codelab.Provider, inst *Instruments) *ObservedProvider {
	return &ObservedProvider{inner: inner, inst: inst}
}

func (o *ObservedProvider) Name() string { return o.inner.Name() }

func (o *ObservedProvider) Ask(ctx context.Context, prompt string) (string, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "llm.ask", trace.WithAttributes(
		AttrLLMProvider.String(o.inner.Name()),
		AttrPromptChars.Int(len(prompt)),
	))
	defer span.End()
	start := time.Now()

	answer, err := o.inner.Ask(ctx, prompt)

	durationMs := float64(time.Since(start).Milliseconds())
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(AttrAnswerChars.Int(len(answer)))
	}

	attrs := metric.WithAttributes(
		AttrLLMProvider.String(o.inner.Name()),
		attribute.String("status", status),
	)
	o.inst.LLMRequests.Add(ctx, 1, attrs)
	o.inst.LLMDuration.Record(ctx, durationMs, attrs)

	var rec otellog.Record
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetBody(otellog.StringValue("llm call completed"))
	rec.AddAttributes(
		otellog.String("llm.provider", o.inner.Name()),
		otellog.Float64("llm.duration_ms", durationMs),
		otellog.String("status", status),
	)
	o.inst.Logger.Emit(ctx, rec)

	return answer, err
}

// Compile-time interface check.
var _ codelab.Provider = (*ObservedProvider)(nil)
