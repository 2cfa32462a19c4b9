package domain

import "time"

// Comment is a user's reply attached to a quote.
type Comment struct {
	ID         string
	AuthorID   string
	AuthorName string
	QuoteID    string
	Comment    string
	Created    time.Time
	LastUpdate *time.Time
}

// On reports whether the comment is attached to the given quote.
func (c Comment) On(quoteID string) bool {
	return c.QuoteID == quoteID
}
