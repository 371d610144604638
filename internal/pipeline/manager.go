package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fraudcli/internal/infrastructure"
)

// Manager runs a fixed sequence of steps against a shared run state. The
// first failing step aborts the run; there is no partial or degraded output
// mode.
type Manager struct {
	logger *slog.Logger
	tracer trace.Tracer
	steps  []Step
}

// NewManager creates a pipeline manager over the given steps.
func NewManager(logger *slog.Logger, steps ...Step) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger: logger,
		tracer: infrastructure.Tracer(),
		steps:  steps,
	}
}

// Run executes the steps in order and returns the final state.
func (m *Manager) Run(ctx context.Context) (*State, error) {
	state := &State{}
	start := time.Now()

	m.logger.InfoContext(ctx, "pipeline run starting", slog.Int("step_count", len(m.steps)))

	for _, s := range m.steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline canceled before step %s: %w", s.ID(), err)
		}

		stepCtx, span := m.tracer.Start(ctx, "pipeline."+s.ID(),
			trace.WithAttributes(attribute.String("step.name", s.Name())))

		stepStart := time.Now()
		m.logger.InfoContext(stepCtx, "step starting", slog.String("step", s.ID()))

		err := s.Execute(stepCtx, state)
		duration := time.Since(stepStart)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			m.logger.ErrorContext(stepCtx, "step failed",
				slog.String("step", s.ID()),
				slog.Duration("duration", duration),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("step %s failed: %w", s.ID(), err)
		}

		span.SetStatus(codes.Ok, "")
		span.End()
		m.logger.InfoContext(stepCtx, "step completed",
			slog.String("step", s.ID()),
			slog.Duration("duration", duration))
	}

	m.logger.InfoContext(ctx, "pipeline run completed",
		slog.Duration("duration", time.Since(start)))

	return state, nil
}
