package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Collection labels used by cascade metrics and logs.
const (
	collectionUsers    = "users"
	collectionQuotes   = "quotes"
	collectionComments = "comments"
)

// CascadeMetrics counts records removed by deletes and dependents that could not be removed.
type CascadeMetrics struct {
	removed  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewCascadeMetrics registers the cascade counters with reg.
// A nil reg keeps the counters unregistered.
func NewCascadeMetrics(reg prometheus.Registerer) *CascadeMetrics {
	factory := promauto.With(reg)

	return &CascadeMetrics{
		removed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotebook",
			Subsystem: "cascade",
			Name:      "removed_total",
			Help:      "Records removed by delete operations, including cascaded dependents.",
		}, []string{"collection"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotebook",
			Subsystem: "cascade",
			Name:      "failures_total",
			Help:      "Dependents a cascade failed to remove.",
		}, []string{"collection"}),
	}
}

func (m *CascadeMetrics) removedOne(collection string) {
	if m != nil {
		m.removed.WithLabelValues(collection).Inc()
	}
}

func (m *CascadeMetrics) failedOne(collection string) {
	if m != nil {
		m.failures.WithLabelValues(collection).Inc()
	}
}

// Cascade deletes a parent and then its dependents, top-down: user, quotes, comments.
//
// Preconditions (existence, pin code, ownership, parent match) are checked before
// anything is removed, so a rejected call changes nothing. A context that is already
// done is a rejection too; after the parent is removed cancellation is ignored. Once the parent is gone,
// dependents are removed best-effort: a failing child is logged and counted and its
// siblings are still processed. With strict set, the first dependent failure is
// returned instead so an enclosing transaction can roll the whole delete back.
type Cascade struct {
	logger  *slog.Logger
	metrics *CascadeMetrics
	strict  bool
}

// NewCascade creates a cascade engine.
func NewCascade(logger *slog.Logger, metrics *CascadeMetrics, strict bool) *Cascade {
	if logger == nil {
		logger = slog.Default()
	}

	return &Cascade{
		logger:  logger.With(slog.String("component", "app.Cascade")),
		metrics: metrics,
		strict:  strict,
	}
}

func (c *Cascade) loggerFor(ctx context.Context) *slog.Logger {
	if logger, ok := logging.Lookup(ctx); ok {
		return logger.With(slog.String("component", "app.Cascade"))
	}

	return c.logger
}

// dependentFailed records a dependent that could not be removed.
// It returns err in strict mode and nil otherwise.
func (c *Cascade) dependentFailed(ctx context.Context, collection, id string, err error) error {
	c.metrics.failedOne(collection)
	c.loggerFor(ctx).WarnContext(ctx, "cascade step failed",
		slog.String("collection", collection),
		slog.String("id", id),
		slog.Any("error", err),
	)

	if c.strict {
		return fmt.Errorf("cascading to %s %q: %w", collection, id, err)
	}

	return nil
}

// detach keeps ctx values (logger, span) but drops its deadline and cancellation,
// so the dependents of a removed parent are always swept. Inside a transaction the
// tx was begun on the original context and still rolls back as a whole.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// DeleteUser removes the user after checking the pin code, then every quote the user wrote.
func (c *Cascade) DeleteUser(ctx context.Context, store ports.Store, userID, pinCode string) (domain.User, error) {
	users := store.Users()

	user, ok, err := users.Get(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("looking up user: %w", err)
	}

	if !ok {
		return domain.User{}, domain.NewNotFoundError("user", userID)
	}

	if user.PinCode != pinCode {
		return domain.User{}, domain.NewUnauthorizedError("deleteUser", "pin code mismatch")
	}

	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("removing user: %w", err)
	}

	if _, _, err := users.Remove(ctx, userID); err != nil {
		return domain.User{}, fmt.Errorf("removing user: %w", err)
	}

	c.metrics.removedOne(collectionUsers)

	ctx = detach(ctx)

	quotes, err := store.Quotes().Values(ctx)
	if err != nil {
		return user, c.dependentFailed(ctx, collectionQuotes, "*", err)
	}

	failed := 0

	for _, q := range quotes {
		if !q.WrittenBy(userID) {
			continue
		}

		if _, err := c.DeleteQuote(ctx, store, q.ID, userID); err != nil {
			if c.strict {
				return user, err
			}

			failed++

			_ = c.dependentFailed(ctx, collectionQuotes, q.ID, err)
		}
	}

	c.loggerFor(ctx).InfoContext(ctx, "user deleted",
		slog.String("user_id", userID),
		slog.Int("quote_failures", failed),
	)

	return user, nil
}

// DeleteQuote removes the quote when authorID owns it, then every comment attached to it.
func (c *Cascade) DeleteQuote(ctx context.Context, store ports.Store, quoteID, authorID string) (domain.Quote, error) {
	quotes := store.Quotes()

	quote, ok, err := quotes.Get(ctx, quoteID)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("looking up quote: %w", err)
	}

	if !ok {
		return domain.Quote{}, domain.NewNotFoundError("quote", quoteID)
	}

	if !quote.WrittenBy(authorID) {
		return domain.Quote{}, domain.NewUnauthorizedError("deleteQuote", "author does not own the quote")
	}

	if err := ctx.Err(); err != nil {
		return domain.Quote{}, fmt.Errorf("removing quote: %w", err)
	}

	if _, _, err := quotes.Remove(ctx, quoteID); err != nil {
		return domain.Quote{}, fmt.Errorf("removing quote: %w", err)
	}

	c.metrics.removedOne(collectionQuotes)

	if err := c.sweepComments(detach(ctx), store, quoteID); err != nil {
		return quote, err
	}

	return quote, nil
}

// sweepComments removes every comment on quoteID. The quote owner authorized the
// delete, so comment authors are not re-checked.
func (c *Cascade) sweepComments(ctx context.Context, store ports.Store, quoteID string) error {
	comments := store.Comments()

	all, err := comments.Values(ctx)
	if err != nil {
		return c.dependentFailed(ctx, collectionComments, "*", err)
	}

	removed := 0

	for _, cm := range all {
		if !cm.On(quoteID) {
			continue
		}

		if _, _, err := comments.Remove(ctx, cm.ID); err != nil {
			if ferr := c.dependentFailed(ctx, collectionComments, cm.ID, err); ferr != nil {
				return ferr
			}

			continue
		}

		removed++

		c.metrics.removedOne(collectionComments)
	}

	c.loggerFor(ctx).Log(ctx, logging.LevelTrace, "comments swept",
		slog.String("quote_id", quoteID),
		slog.Int("removed", removed),
	)

	return nil
}

// DeleteComment removes a single comment after checking that it sits under quoteID
// and was written by authorID.
func (c *Cascade) DeleteComment(
	ctx context.Context,
	store ports.Store,
	quoteID, commentID, authorID string,
) (domain.Comment, error) {
	comments := store.Comments()

	comment, ok, err := comments.Get(ctx, commentID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("looking up comment: %w", err)
	}

	if !ok {
		return domain.Comment{}, domain.NewNotFoundError("comment", commentID)
	}

	if !comment.On(quoteID) {
		return domain.Comment{}, domain.NewMismatchError("comment", commentID, "quoteId", quoteID, comment.QuoteID)
	}

	if comment.AuthorID != authorID {
		return domain.Comment{}, domain.NewUnauthorizedError("deleteComment", "author does not own the comment")
	}

	if _, _, err := comments.Remove(ctx, commentID); err != nil {
		return domain.Comment{}, fmt.Errorf("removing comment: %w", err)
	}

	c.metrics.removedOne(collectionComments)

	return comment, nil
}
