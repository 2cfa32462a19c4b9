// Package domain contains core business entities and rules.
package domain

import "time"

// Quote is a line of text attributed to a user.
// Author is copied from the user's name at creation and never resynchronized.
type Quote struct {
	ID         string
	AuthorID   string
	Author     string
	Quote      string
	Created    time.Time
	LastUpdate *time.Time
}

// WrittenBy reports whether the quote belongs to the given user.
func (q Quote) WrittenBy(userID string) bool {
	return q.AuthorID == userID
}
