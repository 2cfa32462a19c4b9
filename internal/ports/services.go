// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Every method takes a context first. Store failures surface as domain.ErrStorage.
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// Collection is an ordered, durable map from record id to record.
// Values returns records in insertion order. Insert overwrites an existing id,
// so create-only callers must check absence with Get first.
type Collection[T any] interface {
	// Get returns the record stored under id. The bool is false when absent.
	Get(ctx context.Context, id string) (T, bool, error)

	// Insert stores rec under id and returns the record it replaced, if any.
	// A record larger than the collection limit fails with domain.ErrRecordTooLarge.
	Insert(ctx context.Context, id string, rec T) (T, bool, error)

	// Remove deletes the record under id and returns it. The bool is false when absent.
	Remove(ctx context.Context, id string) (T, bool, error)

	// Values returns every record in insertion order.
	Values(ctx context.Context) ([]T, error)

	// Len returns the number of stored records.
	Len(ctx context.Context) (int, error)
}

// Store groups the three collections of the service.
type Store interface {
	Users() Collection[domain.User]
	Quotes() Collection[domain.Quote]
	Comments() Collection[domain.Comment]

	// Atomically runs fn against a Store whose writes commit together or not at all.
	Atomically(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// IDGenerator issues identifiers that are never reused.
type IDGenerator interface {
	NewID() (string, error)
}

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}
