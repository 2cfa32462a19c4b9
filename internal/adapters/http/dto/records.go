package dto

import (
	"time"

	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/domain"
)

// CredentialsRequest is the body of POST /users and POST /users/me.
type CredentialsRequest struct {
	Name    string `json:"name"    validate:"required,notblank,max=64"`
	PinCode string `json:"pinCode" validate:"required,notblank,max=32"`
}

// ToCredentials converts the request into the application input.
func (r CredentialsRequest) ToCredentials() app.Credentials {
	return app.Credentials{Name: r.Name, PinCode: r.PinCode}
}

// NewQuoteRequest is the body of POST /quotes.
type NewQuoteRequest struct {
	AuthorID string `json:"authorId" validate:"required,notblank"`
	Quote    string `json:"quote"    validate:"required,notblank"`
}

// NewCommentRequest is the body of POST /quotes/:quoteId/comments.
type NewCommentRequest struct {
	AuthorID string `json:"authorId" validate:"required,notblank"`
	Comment  string `json:"comment"  validate:"required,notblank"`
}

// DeleteQuoteRequest carries the parameters of DELETE /quotes/:quoteId.
type DeleteQuoteRequest struct {
	QuoteID  string `uri:"quoteId"   form:"-"        header:"-" validate:"required"`
	AuthorID string `uri:"-"         form:"authorId" header:"-" validate:"required,notblank"`
}

// DeleteCommentRequest carries the parameters of DELETE /quotes/:quoteId/comments/:commentId.
type DeleteCommentRequest struct {
	QuoteID   string `uri:"quoteId"   form:"-"        header:"-" validate:"required"`
	CommentID string `uri:"commentId" form:"-"        header:"-" validate:"required"`
	AuthorID  string `uri:"-"         form:"authorId" header:"-" validate:"required,notblank"`
}

// DeleteUserRequest carries the parameters of DELETE /users/:userId.
//
// Every field names exactly one source; gin falls back to the Go field name for untagged sources.
type DeleteUserRequest struct {
	UserID  string `uri:"userId" form:"-" header:"-"          validate:"required"`
	PinCode string `uri:"-"      form:"-" header:"X-Pin-Code" validate:"required,notblank"`
}

// UserResponse is a user as returned to its owner. It includes the pin code.
type UserResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	PinCode    string     `json:"pinCode"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"lastUpdate"`
}

// QuoteResponse is a stored quote.
type QuoteResponse struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"authorId"`
	Author     string     `json:"author"`
	Quote      string     `json:"quote"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"lastUpdate"`
}

// CommentResponse is a stored comment.
type CommentResponse struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"authorId"`
	AuthorName string     `json:"authorName"`
	QuoteID    string     `json:"quoteId"`
	Comment    string     `json:"comment"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"lastUpdate"`
}

// QuoteDisplay is the public listing shape of a quote.
type QuoteDisplay struct {
	ID     string `json:"id"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// CommentDisplay is the public listing shape of a comment.
type CommentDisplay struct {
	Comment string `json:"comment"`
	Author  string `json:"author"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse(u)
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse(q)
}

// NewCommentResponse converts a domain comment.
func NewCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse(c)
}

// NewQuoteDisplays converts projected quotes.
func NewQuoteDisplays(in []domain.QuoteToDisplay) []QuoteDisplay {
	out := make([]QuoteDisplay, 0, len(in))
	for _, q := range in {
		out = append(out, QuoteDisplay(q))
	}

	return out
}

// NewCommentDisplays converts projected comments.
func NewCommentDisplays(in []domain.CommentToDisplay) []CommentDisplay {
	out := make([]CommentDisplay, 0, len(in))
	for _, c := range in {
		out = append(out, CommentDisplay(c))
	}

	return out
}
