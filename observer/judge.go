package observer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/arvyn/codelab/judge"
)

// ObservedExecutor wraps a judge.Executor with OTEL instrumentation.
type ObservedExecutor struct {
	inner judge.Executor
	inst  *Instruments
}

// WrapExecutor returns an instrumented executor that emits traces, metrics,
// and logs around every execution.
func WrapExecutor(inner judge.Executor, inst *Instruments) *ObservedExecutor {
	return &ObservedExecutor{inner: inner, inst: inst}
}

func (o *ObservedExecutor) Execute(ctx context.Context, req judge.ExecRequest) (*judge.ExecutionResult, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "judge.execute", trace.WithAttributes(
		AttrLanguage.String(req.Language),
	))
	defer span.End()
	start := time.Now()

	res, err := o.inner.Execute(ctx, req)

	durationMs := float64(time.Since(start).Milliseconds())
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			AttrToken.String(res.Token),
			AttrStatusID.Int(res.Status.ID),
			AttrStatusDescr.String(res.Status.Description),
		)
	}

	attrs := metric.WithAttributes(
		AttrLanguage.String(req.Language),
		attribute.String("status", status),
	)
	o.inst.ExecRequests.Add(ctx, 1, attrs)
	o.inst.ExecDuration.Record(ctx, durationMs, attrs)

	// Structured log
	var rec otellog.Record
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetBody(otellog.StringValue("code execution completed"))
	rec.AddAttributes(
		otellog.String("judge.language", req.Language),
		otellog.Float64("judge.duration_ms", durationMs),
		otellog.String("status", status),
	)
	if res != nil {
		rec.AddAttributes(
			otellog.String("judge.token", res.Token),
			otellog.Int("judge.status_id", res.Status.ID),
		)
	}
	o.inst.Logger.Emit(ctx, rec)

	return res, err
}

// Compile-time interface check.
var _ judge.Executor = (*ObservedExecutor)(nil)
