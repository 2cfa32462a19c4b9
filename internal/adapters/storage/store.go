package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Store is the gorm-backed ports.Store. It also reports database health.
type Store struct {
	db     *gorm.DB
	driver string
	limits Limits
}

var (
	_ ports.Store         = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Users returns the users collection.
func (s *Store) Users() ports.Collection[domain.User] {
	return newCollection(s.db, CollectionUsers, s.limits.Users, userCodec)
}

// Quotes returns the quotes collection.
func (s *Store) Quotes() ports.Collection[domain.Quote] {
	return newCollection(s.db, CollectionQuotes, s.limits.Quotes, quoteCodec)
}

// Comments returns the comments collection.
func (s *Store) Comments() ports.Collection[domain.Comment] {
	return newCollection(s.db, CollectionComments, s.limits.Comments, commentCodec)
}

// Atomically runs fn inside a database transaction. Any error rolls back every write fn made.
func (s *Store) Atomically(ctx context.Context, fn func(ctx context.Context, tx ports.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Store{db: tx, driver: s.driver, limits: s.limits})
	})
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "storage-" + s.driver
}

// Check pings the database.
func (s *Store) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return domain.NewUnavailableError(s.Name(), err.Error())
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return domain.NewUnavailableError(s.Name(), err.Error())
	}

	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting connection pool: %w", err)
	}

	return sqlDB.Close()
}
