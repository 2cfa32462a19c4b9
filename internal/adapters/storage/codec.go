package storage

import (
	"encoding/json"
	"time"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// codec converts a domain entity to and from its stored payload.
type codec[T any] struct {
	encode func(T) ([]byte, error)
	decode func([]byte) (T, error)
}

func jsonCodec[T, R any](to func(T) R, from func(R) T) codec[T] {
	return codec[T]{
		encode: func(v T) ([]byte, error) {
			return json.Marshal(to(v))
		},
		decode: func(b []byte) (T, error) {
			var r R
			if err := json.Unmarshal(b, &r); err != nil {
				var zero T
				return zero, err
			}

			return from(r), nil
		},
	}
}

type userRecord struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	PinCode    string     `json:"pinCode"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
}

type quoteRecord struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"authorId"`
	Author     string     `json:"author"`
	Quote      string     `json:"quote"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
}

type commentRecord struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"authorId"`
	AuthorName string     `json:"authorName"`
	QuoteID    string     `json:"quoteId"`
	Comment    string     `json:"comment"`
	Created    time.Time  `json:"created"`
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
}

var userCodec = jsonCodec(
	func(u domain.User) userRecord { return userRecord(u) },
	func(r userRecord) domain.User { return domain.User(r) },
)

var quoteCodec = jsonCodec(
	func(q domain.Quote) quoteRecord { return quoteRecord(q) },
	func(r quoteRecord) domain.Quote { return domain.Quote(r) },
)

var commentCodec = jsonCodec(
	func(c domain.Comment) commentRecord { return commentRecord(c) },
	func(r commentRecord) domain.Comment { return domain.Comment(r) },
)
