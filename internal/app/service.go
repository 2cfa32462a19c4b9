// Package app contains the quotebook use cases. It coordinates the domain
// types and the collection store through ports, and knows nothing about HTTP.
//
// Every exported operation on Service runs alone: a weighted semaphore of size one
// admits one call at a time and holds it until the call, cascades included, has
// finished. A caller whose context ends while it waits gives up without running.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/jsamuelsen/quotebook/internal/platform/logging"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

const tracerName = "github.com/jsamuelsen/quotebook/internal/app"

// Service implements the nine quotebook operations plus the operator queries.
type Service struct {
	admit         *semaphore.Weighted
	store         ports.Store
	ids           ports.IDGenerator
	clock         ports.Clock
	exec          *Executor
	cascade       *Cascade
	tracer        trace.Tracer
	transactional bool
	logger        *slog.Logger
}

// ServiceConfig holds the dependencies of Service. Only Store is required.
type ServiceConfig struct {
	Store ports.Store
	IDs   ports.IDGenerator
	Clock ports.Clock

	// Metrics receives cascade counters. Nil disables them.
	Metrics *CascadeMetrics

	// TransactionalCascade runs every delete, dependents included, in one store transaction.
	TransactionalCascade bool

	Logger *slog.Logger
}

// NewService creates the service. It panics when cfg.Store is nil.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Store == nil {
		panic("app: NewService requires a Store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ids := cfg.IDs
	if ids == nil {
		ids = UUIDGenerator{}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = NewMonotonicClock(nil)
	}

	return &Service{
		admit:         semaphore.NewWeighted(1),
		store:         cfg.Store,
		ids:           ids,
		clock:         clock,
		exec:          NewExecutor(logger),
		cascade:       NewCascade(logger, cfg.Metrics, cfg.TransactionalCascade),
		tracer:        otel.Tracer(tracerName),
		transactional: cfg.TransactionalCascade,
		logger:        logger.With(slog.String("component", "app.Service")),
	}
}

// begin waits for the operation's turn. The returned func records the outcome and
// lets the next operation in. When ctx ends first, begin fails and nothing runs.
func (s *Service) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error), error) {
	ctx, span := s.tracer.Start(ctx, "app."+op, trace.WithAttributes(attrs...))

	if err := s.admit.Acquire(ctx, 1); err != nil {
		err = fmt.Errorf("waiting to run %s: %w", op, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()

		return ctx, nil, err
	}

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
		s.admit.Release(1)
	}, nil
}

// loggerFor prefers the request logger in ctx and tags records with the component and method.
func (s *Service) loggerFor(ctx context.Context, method string) *slog.Logger {
	logger, ok := logging.Lookup(ctx)
	if !ok {
		return s.logger.With(slog.String("method", method))
	}

	return logger.With(slog.String("component", "app.Service"), slog.String("method", method))
}

// mutate runs fn against the store, inside a transaction when transactional cascade is on.
func (s *Service) mutate(ctx context.Context, fn func(ctx context.Context, store ports.Store) error) error {
	if !s.transactional {
		return fn(ctx, s.store)
	}

	return s.store.Atomically(ctx, fn)
}
