package app

import (
	"context"
	"fmt"
	"log/slog"
)

// Orphan is a record whose parent reference no longer resolves.
type Orphan struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Field      string `json:"field"`
	Missing    string `json:"missing"`
}

// AuditReport lists integrity findings.
//
// Orphans break the cascade guarantee: quotes without an author and comments without a quote.
// DetachedComments are comments whose author was deleted while the quote survived; they are
// expected and reported for information only.
type AuditReport struct {
	Orphans          []Orphan `json:"orphans"`
	DetachedComments []Orphan `json:"detachedComments"`
}

// Clean reports whether the audit found no orphans.
func (r AuditReport) Clean() bool {
	return len(r.Orphans) == 0
}

// Stats holds per-collection record counts.
type Stats struct {
	Users    int `json:"users"`
	Quotes   int `json:"quotes"`
	Comments int `json:"comments"`
}

// Audit scans all collections for broken references. It never modifies the store.
func (s *Service) Audit(ctx context.Context) (_ AuditReport, err error) {
	ctx, end, err := s.begin(ctx, "Audit")
	if err != nil {
		return
	}

	defer func() { end(err) }()

	report := AuditReport{Orphans: []Orphan{}, DetachedComments: []Orphan{}}

	users, quotes, comments, err := Parallel3(ctx,
		s.store.Users().Values,
		s.store.Quotes().Values,
		s.store.Comments().Values,
	)
	if err != nil {
		return report, fmt.Errorf("loading collections: %w", err)
	}

	userIDs := make(map[string]struct{}, len(users))
	for _, u := range users {
		userIDs[u.ID] = struct{}{}
	}

	quoteIDs := make(map[string]struct{}, len(quotes))
	for _, q := range quotes {
		quoteIDs[q.ID] = struct{}{}

		if _, ok := userIDs[q.AuthorID]; !ok {
			report.Orphans = append(report.Orphans, Orphan{
				Collection: collectionQuotes, ID: q.ID, Field: "authorId", Missing: q.AuthorID,
			})
		}
	}

	for _, c := range comments {
		if _, ok := quoteIDs[c.QuoteID]; !ok {
			report.Orphans = append(report.Orphans, Orphan{
				Collection: collectionComments, ID: c.ID, Field: "quoteId", Missing: c.QuoteID,
			})

			continue
		}

		if _, ok := userIDs[c.AuthorID]; !ok {
			report.DetachedComments = append(report.DetachedComments, Orphan{
				Collection: collectionComments, ID: c.ID, Field: "authorId", Missing: c.AuthorID,
			})
		}
	}

	s.loggerFor(ctx, "Audit").InfoContext(ctx, "audit finished",
		slog.Int("orphans", len(report.Orphans)),
		slog.Int("detached_comments", len(report.DetachedComments)),
	)

	return report, nil
}

// Stats counts the records in each collection.
func (s *Service) Stats(ctx context.Context) (_ Stats, err error) {
	ctx, end, err := s.begin(ctx, "Stats")
	if err != nil {
		return
	}

	defer func() { end(err) }()

	counts, err := Parallel(ctx,
		s.store.Users().Len,
		s.store.Quotes().Len,
		s.store.Comments().Len,
	)
	if err != nil {
		return Stats{}, err
	}

	return Stats{Users: counts[0], Quotes: counts[1], Comments: counts[2]}, nil
}
