package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
)

func TestQuoteHandler_ListQuotes(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		engine := newTestEngine(t)

		w := do(engine, http.MethodGet, "/api/v1/quotes", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrorCodeEmptyResult, errorCode(t, w))
	})

	t.Run("display shape in insertion order", func(t *testing.T) {
		engine := newTestEngine(t)
		ada := mustCreateUser(t, engine, "ada", "1815")
		first := mustCreateQuote(t, engine, ada.ID, "first")
		second := mustCreateQuote(t, engine, ada.ID, "second")

		w := do(engine, http.MethodGet, "/api/v1/quotes", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []dto.QuoteDisplay{
			{ID: first.ID, Quote: "first", Author: "ada"},
			{ID: second.ID, Quote: "second", Author: "ada"},
		}, decode[[]dto.QuoteDisplay](t, w))
	})
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	engine := newTestEngine(t)
	ada := mustCreateUser(t, engine, "ada", "1815")

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       dto.NewQuoteRequest{AuthorID: ada.ID, Quote: "hello"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown author",
			body:       dto.NewQuoteRequest{AuthorID: "nobody", Quote: "hello"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   dto.ErrorCodeUnknownAuthor,
		},
		{
			name:       "blank quote",
			body:       dto.NewQuoteRequest{AuthorID: ada.ID, Quote: "  "},
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name:       "malformed body",
			body:       `{"authorId":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(engine, http.MethodPost, "/api/v1/quotes", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
				return
			}

			quote := decode[dto.QuoteResponse](t, w)
			assert.NotEmpty(t, quote.ID)
			assert.Equal(t, ada.ID, quote.AuthorID)
			assert.Equal(t, "ada", quote.Author)
			assert.Nil(t, quote.LastUpdate)
		})
	}
}

func TestQuoteHandler_Comments(t *testing.T) {
	engine := newTestEngine(t)
	ada := mustCreateUser(t, engine, "ada", "1815")
	bob := mustCreateUser(t, engine, "bob", "2020")
	quote := mustCreateQuote(t, engine, ada.ID, "hello")
	commentsPath := "/api/v1/quotes/" + quote.ID + "/comments"

	w := do(engine, http.MethodGet, commentsPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeNoComments, errorCode(t, w))

	w = do(engine, http.MethodGet, "/api/v1/quotes/missing/comments", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeUnknownQuote, errorCode(t, w))

	w = do(engine, http.MethodPost, "/api/v1/quotes/missing/comments",
		dto.NewCommentRequest{AuthorID: bob.ID, Comment: "lost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeUnknownQuote, errorCode(t, w))

	w = do(engine, http.MethodPost, commentsPath, dto.NewCommentRequest{AuthorID: "ghost", Comment: "boo"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrorCodeUnknownAuthor, errorCode(t, w))

	comment := mustAddComment(t, engine, bob.ID, quote.ID, "nice")
	assert.Equal(t, "bob", comment.AuthorName)
	assert.Equal(t, quote.ID, comment.QuoteID)

	w = do(engine, http.MethodGet, commentsPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []dto.CommentDisplay{{Comment: "nice", Author: "bob"}}, decode[[]dto.CommentDisplay](t, w))
}

func TestQuoteHandler_DeleteComment(t *testing.T) {
	engine := newTestEngine(t)
	ada := mustCreateUser(t, engine, "ada", "1815")
	bob := mustCreateUser(t, engine, "bob", "2020")
	q1 := mustCreateQuote(t, engine, ada.ID, "one")
	q2 := mustCreateQuote(t, engine, ada.ID, "two")
	comment := mustAddComment(t, engine, bob.ID, q1.ID, "nice")

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing authorId",
			path:       "/api/v1/quotes/" + q1.ID + "/comments/" + comment.ID,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrorCodeValidation,
		},
		{
			name:       "unknown comment",
			path:       "/api/v1/quotes/" + q1.ID + "/comments/nope?authorId=" + bob.ID,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrorCodeNotFound,
		},
		{
			name:       "wrong quote",
			path:       "/api/v1/quotes/" + q2.ID + "/comments/" + comment.ID + "?authorId=" + bob.ID,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrorCodeMismatch,
		},
		{
			name:       "quote id in query string is ignored",
			path:       "/api/v1/quotes/" + q2.ID + "/comments/" + comment.ID + "?authorId=" + bob.ID + "&QuoteID=" + q1.ID,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrorCodeMismatch,
		},
		{
			name:       "not the author",
			path:       "/api/v1/quotes/" + q1.ID + "/comments/" + comment.ID + "?authorId=" + ada.ID,
			wantStatus: http.StatusForbidden,
			wantCode:   dto.ErrorCodeUnauthorized,
		},
		{
			name:       "deleted",
			path:       "/api/v1/quotes/" + q1.ID + "/comments/" + comment.ID + "?authorId=" + bob.ID,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(engine, http.MethodDelete, tt.path, nil)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
			}
		})
	}

	w := do(engine, http.MethodGet, "/api/v1/quotes/"+q1.ID+"/comments", nil)
	assert.Equal(t, dto.ErrorCodeNoComments, errorCode(t, w))
}

func TestQuoteHandler_DeleteQuote(t *testing.T) {
	engine := newTestEngine(t)
	ada := mustCreateUser(t, engine, "ada", "1815")
	bob := mustCreateUser(t, engine, "bob", "2020")
	quote := mustCreateQuote(t, engine, ada.ID, "hello")
	mustAddComment(t, engine, bob.ID, quote.ID, "nice")

	w := do(engine, http.MethodDelete, "/api/v1/quotes/"+quote.ID+"?authorId="+bob.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(engine, http.MethodDelete, "/api/v1/quotes/missing?authorId="+ada.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(engine, http.MethodDelete, "/api/v1/quotes/"+quote.ID+"?authorId="+ada.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, quote.ID, decode[dto.QuoteResponse](t, w).ID)

	w = do(engine, http.MethodGet, "/api/v1/quotes/"+quote.ID+"/comments", nil)
	assert.Equal(t, dto.ErrorCodeUnknownQuote, errorCode(t, w))

	w = do(engine, http.MethodGet, "/api/v1/quotes", nil)
	assert.Equal(t, dto.ErrorCodeEmptyResult, errorCode(t, w))
}
