package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Reference checks run on every create. Each one scans a whole collection,
// so cost grows linearly with the number of stored records.

// ensureNameFree fails with DuplicateName when any live user already holds name.
func ensureNameFree(ctx context.Context, users ports.Collection[domain.User], name string) error {
	all, err := users.Values(ctx)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	for _, u := range all {
		if u.Name == name {
			return domain.NewDuplicateNameError(name)
		}
	}

	return nil
}

// resolveAuthor returns the user referenced by authorID or fails with UnknownAuthor.
func resolveAuthor(ctx context.Context, users ports.Collection[domain.User], authorID string) (domain.User, error) {
	user, ok, err := users.Get(ctx, authorID)
	if err != nil {
		return domain.User{}, fmt.Errorf("resolving author: %w", err)
	}

	if !ok {
		return domain.User{}, domain.NewUnknownAuthorError(authorID)
	}

	return user, nil
}

// resolveQuote returns the quote referenced by quoteID or fails with UnknownQuote.
func resolveQuote(ctx context.Context, quotes ports.Collection[domain.Quote], quoteID string) (domain.Quote, error) {
	quote, ok, err := quotes.Get(ctx, quoteID)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("resolving quote: %w", err)
	}

	if !ok {
		return domain.Quote{}, domain.NewUnknownQuoteError(quoteID)
	}

	return quote, nil
}

// required returns a ValidationError for the first blank field.
// Fields are given as name/value pairs.
func required(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return domain.NewValidationError(fields[i], "is required")
		}
	}

	return nil
}
