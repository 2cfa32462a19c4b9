package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var epoch = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.Open(storage.Options{
		Driver: storage.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "app.db"),
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	return store
}

type testService struct {
	*Service
	store   ports.Store
	metrics *CascadeMetrics
	reg     *prometheus.Registry
}

func newTestService(t *testing.T, store ports.Store, transactional bool) *testService {
	t.Helper()

	if store == nil {
		store = newTestStore(t)
	}

	reg := prometheus.NewRegistry()
	metrics := NewCascadeMetrics(reg)

	svc := NewService(ServiceConfig{
		Store:                store,
		Clock:                NewMonotonicClock(func() time.Time { return epoch }),
		Metrics:              metrics,
		TransactionalCascade: transactional,
		Logger:               discardLogger(),
	})

	return &testService{Service: svc, store: store, metrics: metrics, reg: reg}
}

func (ts *testService) mustUser(t *testing.T, name, pin string) domain.User {
	t.Helper()

	u, err := ts.NewUser(context.Background(), NewUserInput{Name: name, PinCode: pin})
	require.NoError(t, err)

	return u
}

func (ts *testService) mustQuote(t *testing.T, authorID, text string) domain.Quote {
	t.Helper()

	q, err := ts.NewQuote(context.Background(), NewQuoteInput{AuthorID: authorID, Quote: text})
	require.NoError(t, err)

	return q
}

func (ts *testService) mustComment(t *testing.T, authorID, quoteID, text string) domain.Comment {
	t.Helper()

	c, err := ts.AddComment(context.Background(), AddCommentInput{AuthorID: authorID, QuoteID: quoteID, Comment: text})
	require.NoError(t, err)

	return c
}

var errDisk = errors.New("disk I/O error")

// faultyStore wraps a store so that removing one comment id always fails.
type faultyStore struct {
	ports.Store
	failComment string
}

func (f faultyStore) Comments() ports.Collection[domain.Comment] {
	return faultyComments{Collection: f.Store.Comments(), failID: f.failComment}
}

func (f faultyStore) Atomically(ctx context.Context, fn func(context.Context, ports.Store) error) error {
	return f.Store.Atomically(ctx, func(ctx context.Context, tx ports.Store) error {
		return fn(ctx, faultyStore{Store: tx, failComment: f.failComment})
	})
}

type faultyComments struct {
	ports.Collection[domain.Comment]
	failID string
}

func (f faultyComments) Remove(ctx context.Context, id string) (domain.Comment, bool, error) {
	if id == f.failID {
		return domain.Comment{}, false, domain.NewStorageError("comments", "remove", errDisk)
	}

	return f.Collection.Remove(ctx, id)
}

// cancelAfterRemove cancels the operation's context as soon as a parent record is removed,
// the way a request deadline can fire halfway through a delete.
type cancelAfterRemove struct {
	ports.Store
	cancel context.CancelFunc
}

func (s cancelAfterRemove) Users() ports.Collection[domain.User] {
	return cancellingCollection[domain.User]{Collection: s.Store.Users(), cancel: s.cancel}
}

func (s cancelAfterRemove) Quotes() ports.Collection[domain.Quote] {
	return cancellingCollection[domain.Quote]{Collection: s.Store.Quotes(), cancel: s.cancel}
}

type cancellingCollection[T any] struct {
	ports.Collection[T]
	cancel context.CancelFunc
}

func (c cancellingCollection[T]) Remove(ctx context.Context, id string) (T, bool, error) {
	rec, ok, err := c.Collection.Remove(ctx, id)
	c.cancel()

	return rec, ok, err
}
