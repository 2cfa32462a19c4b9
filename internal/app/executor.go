package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

// Create operations run in five steps: Validate → Perform → Verify → Archive → Respond.
//
//  1. VALIDATE  checks input fields and resolves references. Nothing is written.
//  2. PERFORM   builds the new record (id, timestamps, denormalized names).
//  3. VERIFY    confirms the id is not already taken in the target collection.
//  4. ARCHIVE   inserts the record.
//  5. RESPOND   shapes the stored record for the caller.
//
// A failure in steps 1-3 leaves the store untouched.

// ExecutionStep represents a step in the create pattern.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func stepError(step ExecutionStep, message string, cause error) error {
	return &ExecutionError{Step: step, Message: message, Cause: cause}
}

// Executor runs operations step by step, logging each transition.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a new executor with the given logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation defines the functions for each step. Nil steps are skipped.
//
// I is the input, P the record built by Perform, V the record confirmed by Verify,
// and O the value returned to the caller.
type Operation[I, P, V, O any] struct {
	Name     string
	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

type run struct {
	logger *slog.Logger
	span   trace.Span
}

// step runs fn, logs and annotates the span, and wraps a failure with its step.
func (r *run) step(ctx context.Context, step ExecutionStep, message string, fn func() error) error {
	r.logger.DebugContext(ctx, "step started", slog.String("step", string(step)))

	if err := fn(); err != nil {
		level := slog.LevelError
		if step == StepValidate || step == StepVerify {
			level = slog.LevelWarn
		}

		r.logger.Log(ctx, level, "step failed", slog.String("step", string(step)), slog.Any("error", err))
		r.span.AddEvent(string(step) + " failed")

		if step == StepRespond {
			return err
		}

		return stepError(step, message, err)
	}

	r.span.AddEvent(string(step))

	return nil
}

// Execute runs an operation through every step in order.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var (
		zero      O
		performed P
		verified  V
		result    O
	)

	logger, ok := logging.Lookup(ctx)
	if !ok {
		logger = exec.logger
	}

	r := &run{
		logger: logger.With(slog.String("operation", op.Name)),
		span:   trace.SpanFromContext(ctx),
	}
	start := time.Now()

	err := r.step(ctx, StepValidate, "input validation failed", func() error {
		if op.Validate == nil {
			return nil
		}

		return op.Validate(ctx, input)
	})
	if err != nil {
		return zero, err
	}

	err = r.step(ctx, StepPerform, "building record failed", func() (err error) {
		if op.Perform != nil {
			performed, err = op.Perform(ctx, input)
		}

		return err
	})
	if err != nil {
		return zero, err
	}

	err = r.step(ctx, StepVerify, "record verification failed", func() (err error) {
		if op.Verify != nil {
			verified, err = op.Verify(ctx, input, performed)
		}

		return err
	})
	if err != nil {
		return zero, err
	}

	err = r.step(ctx, StepArchive, "record persistence failed", func() error {
		if op.Archive == nil {
			return nil
		}

		return op.Archive(ctx, input, verified)
	})
	if err != nil {
		return zero, err
	}

	err = r.step(ctx, StepRespond, "", func() (err error) {
		if op.Respond != nil {
			result, err = op.Respond(ctx, input, verified)
		}

		return err
	})
	if err != nil {
		return zero, err
	}

	r.logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
