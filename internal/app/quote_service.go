package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// NewQuoteInput is the payload of NewQuote.
type NewQuoteInput struct {
	AuthorID string
	Quote    string
}

// Validate checks that both fields are present.
func (in NewQuoteInput) Validate() error {
	return required("authorId", in.AuthorID, "quote", in.Quote)
}

// GetAllQuotes lists every quote in creation order. An empty store is an EmptyResult error.
func (s *Service) GetAllQuotes(ctx context.Context) (_ []domain.QuoteToDisplay, err error) {
	ctx, end, err := s.begin(ctx, "GetAllQuotes")
	if err != nil {
		return
	}

	defer func() { end(err) }()

	quotes, err := s.store.Quotes().Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	if len(quotes) == 0 {
		return nil, domain.NewEmptyResultError("quotes")
	}

	return domain.DisplayQuotes(quotes), nil
}

// NewQuote stores a quote for an existing user and copies the user's name into it.
func (s *Service) NewQuote(ctx context.Context, in NewQuoteInput) (_ domain.Quote, err error) {
	ctx, end, err := s.begin(ctx, "NewQuote", attribute.String("author.id", in.AuthorID))
	if err != nil {
		return
	}

	defer func() { end(err) }()

	quotes := s.store.Quotes()

	var author domain.User

	op := Operation[NewQuoteInput, domain.Quote, domain.Quote, domain.Quote]{
		Name: "newQuote",
		Validate: func(ctx context.Context, in NewQuoteInput) error {
			if err := in.Validate(); err != nil {
				return err
			}

			var err error
			author, err = resolveAuthor(ctx, s.store.Users(), in.AuthorID)

			return err
		},
		Perform: func(_ context.Context, in NewQuoteInput) (domain.Quote, error) {
			id, err := s.ids.NewID()
			if err != nil {
				return domain.Quote{}, fmt.Errorf("generating id: %w", err)
			}

			return domain.Quote{
				ID:       id,
				AuthorID: author.ID,
				Author:   author.Name,
				Quote:    in.Quote,
				Created:  s.clock.Now(),
			}, nil
		},
		Verify:  verifyAbsent[NewQuoteInput](quotes, "quote", func(q domain.Quote) string { return q.ID }),
		Archive: archive[NewQuoteInput](quotes, func(q domain.Quote) string { return q.ID }),
		Respond: respond[NewQuoteInput, domain.Quote],
	}

	return Execute(ctx, s.exec, op, in)
}

// DeleteQuote removes a quote owned by authorID together with all of its comments.
func (s *Service) DeleteQuote(ctx context.Context, quoteID, authorID string) (_ domain.Quote, err error) {
	ctx, end, err := s.begin(ctx, "DeleteQuote",
		attribute.String("quote.id", quoteID),
		attribute.String("author.id", authorID),
	)
	if err != nil {
		return
	}

	defer func() { end(err) }()

	if err := required("quoteId", quoteID, "authorId", authorID); err != nil {
		return domain.Quote{}, err
	}

	var deleted domain.Quote

	err = s.mutate(ctx, func(ctx context.Context, store ports.Store) error {
		var err error
		deleted, err = s.cascade.DeleteQuote(ctx, store, quoteID, authorID)

		return err
	})
	if err != nil {
		return domain.Quote{}, fmt.Errorf("deleting quote: %w", err)
	}

	s.loggerFor(ctx, "DeleteQuote").InfoContext(ctx, "quote removed", slog.String("quote_id", quoteID))

	return deleted, nil
}
