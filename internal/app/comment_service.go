package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// AddCommentInput is the payload of AddComment.
type AddCommentInput struct {
	AuthorID string
	QuoteID  string
	Comment  string
}

// Validate checks that every field is present.
func (in AddCommentInput) Validate() error {
	return required("authorId", in.AuthorID, "quoteId", in.QuoteID, "comment", in.Comment)
}

// GetQuoteComments lists the comments on a quote in creation order.
// A missing quote is UnknownQuote; a quote without comments is NoComments.
func (s *Service) GetQuoteComments(ctx context.Context, quoteID string) (_ []domain.CommentToDisplay, err error) {
	ctx, end, err := s.begin(ctx, "GetQuoteComments", attribute.String("quote.id", quoteID))
	if err != nil {
		return
	}

	defer func() { end(err) }()

	if _, err := resolveQuote(ctx, s.store.Quotes(), quoteID); err != nil {
		return nil, err
	}

	comments, err := s.store.Comments().Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	out := domain.DisplayCommentsOn(quoteID, comments)
	if len(out) == 0 {
		return nil, domain.NewNoCommentsError()
	}

	return out, nil
}

// AddComment stores a comment by an existing user on an existing quote.
func (s *Service) AddComment(ctx context.Context, in AddCommentInput) (_ domain.Comment, err error) {
	ctx, end, err := s.begin(ctx, "AddComment",
		attribute.String("quote.id", in.QuoteID),
		attribute.String("author.id", in.AuthorID),
	)
	if err != nil {
		return
	}

	defer func() { end(err) }()

	comments := s.store.Comments()

	var author domain.User

	op := Operation[AddCommentInput, domain.Comment, domain.Comment, domain.Comment]{
		Name: "addComment",
		Validate: func(ctx context.Context, in AddCommentInput) error {
			if err := in.Validate(); err != nil {
				return err
			}

			var err error
			if author, err = resolveAuthor(ctx, s.store.Users(), in.AuthorID); err != nil {
				return err
			}

			_, err = resolveQuote(ctx, s.store.Quotes(), in.QuoteID)

			return err
		},
		Perform: func(_ context.Context, in AddCommentInput) (domain.Comment, error) {
			id, err := s.ids.NewID()
			if err != nil {
				return domain.Comment{}, fmt.Errorf("generating id: %w", err)
			}

			return domain.Comment{
				ID:         id,
				AuthorID:   author.ID,
				AuthorName: author.Name,
				QuoteID:    in.QuoteID,
				Comment:    in.Comment,
				Created:    s.clock.Now(),
			}, nil
		},
		Verify:  verifyAbsent[AddCommentInput](comments, "comment", func(c domain.Comment) string { return c.ID }),
		Archive: archive[AddCommentInput](comments, func(c domain.Comment) string { return c.ID }),
		Respond: respond[AddCommentInput, domain.Comment],
	}

	return Execute(ctx, s.exec, op, in)
}

// DeleteComment removes one comment. The comment must sit under quoteID and belong to authorID;
// otherwise nothing is removed.
func (s *Service) DeleteComment(ctx context.Context, quoteID, commentID, authorID string) (_ domain.Comment, err error) {
	ctx, end, err := s.begin(ctx, "DeleteComment",
		attribute.String("quote.id", quoteID),
		attribute.String("comment.id", commentID),
	)
	if err != nil {
		return
	}

	defer func() { end(err) }()

	if err := required("quoteId", quoteID, "commentId", commentID, "authorId", authorID); err != nil {
		return domain.Comment{}, err
	}

	var deleted domain.Comment

	err = s.mutate(ctx, func(ctx context.Context, store ports.Store) error {
		var err error
		deleted, err = s.cascade.DeleteComment(ctx, store, quoteID, commentID, authorID)

		return err
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("deleting comment: %w", err)
	}

	s.loggerFor(ctx, "DeleteComment").InfoContext(ctx, "comment removed", slog.String("comment_id", commentID))

	return deleted, nil
}
