package model

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracedExecutor wraps an Executor and records one span per canonical
// command. Useful when diagnosing normalizer output ordering.
type TracedExecutor struct {
	inner  Executor
	tracer trace.Tracer
}

// Traced wraps exec so every Execute emits a span on tracer.
func Traced(exec Executor, tracer trace.Tracer) *TracedExecutor {
	return &TracedExecutor{inner: exec, tracer: tracer}
}

// Execute implements Executor.
func (t *TracedExecutor) Execute(cmd Command) error {
	_, span := t.tracer.Start(context.Background(), "command."+cmd.Name(),
		trace.WithAttributes(attribute.String("command", cmd.Name())))
	defer span.End()

	err := t.inner.Execute(cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
