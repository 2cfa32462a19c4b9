package mocks

import (
	"context"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Store is a ports.Store assembled from any three collections, typically a mix of
// real ones and MockCollections. Atomically runs fn against the same collections.
type Store struct {
	UsersCollection    ports.Collection[domain.User]
	QuotesCollection   ports.Collection[domain.Quote]
	CommentsCollection ports.Collection[domain.Comment]
}

// Users returns the users collection.
func (s *Store) Users() ports.Collection[domain.User] { return s.UsersCollection }

// Quotes returns the quotes collection.
func (s *Store) Quotes() ports.Collection[domain.Quote] { return s.QuotesCollection }

// Comments returns the comments collection.
func (s *Store) Comments() ports.Collection[domain.Comment] { return s.CommentsCollection }

// Atomically calls fn with s. It provides no rollback.
func (s *Store) Atomically(ctx context.Context, fn func(ctx context.Context, tx ports.Store) error) error {
	return fn(ctx, s)
}

var _ ports.Store = (*Store)(nil)
