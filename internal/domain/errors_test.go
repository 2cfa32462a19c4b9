package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrValidation,
		ErrUnauthorized,
		ErrUnknownReference,
		ErrMismatch,
		ErrEmptyResult,
		ErrStorage,
		ErrUnavailable,
		ErrDuplicateName,
		ErrUnknownAuthor,
		ErrUnknownQuote,
		ErrNoComments,
		ErrRecordTooLarge,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "user",
			id:          "123",
			expectedMsg: `user with id "123" not found`,
		},
		{
			name:        "with entity only",
			entity:      "comment",
			expectedMsg: "comment not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestKindErrors_MatchCategoryAndKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category error
		kind     error
		msg      string
	}{
		{
			name:     "duplicate name",
			err:      NewDuplicateNameError("alice"),
			category: ErrConflict,
			kind:     ErrDuplicateName,
			msg:      "user conflict: name already taken (alice)",
		},
		{
			name:     "unknown author",
			err:      NewUnknownAuthorError("u-1"),
			category: ErrUnknownReference,
			kind:     ErrUnknownAuthor,
			msg:      `unknown author "u-1"`,
		},
		{
			name:     "unknown quote",
			err:      NewUnknownQuoteError("q-1"),
			category: ErrUnknownReference,
			kind:     ErrUnknownQuote,
			msg:      `unknown quote "q-1"`,
		},
		{
			name:     "no comments",
			err:      NewNoCommentsError(),
			category: ErrEmptyResult,
			kind:     ErrNoComments,
			msg:      "no comments found",
		},
		{
			name:     "record too large",
			err:      NewRecordTooLargeError("quotes", 70, 64),
			category: ErrStorage,
			kind:     ErrRecordTooLarge,
			msg:      "storage insert on quotes: record too large: 70 bytes exceeds 64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.category)
			require.ErrorIs(t, tt.err, tt.kind)
		})
	}
}

func TestConflictError_WithoutKind(t *testing.T) {
	err := NewConflictError("user", "busy")

	require.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, "user conflict: busy", err.Error())
}

func TestEmptyResultError_WithoutKind(t *testing.T) {
	err := NewEmptyResultError("quotes")

	require.ErrorIs(t, err, ErrEmptyResult)
	assert.NotErrorIs(t, err, ErrNoComments)
	assert.Equal(t, "no quotes found", err.Error())
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
		field       string
	}{
		{
			name:        "with field",
			err:         NewValidationError("name", "is required"),
			expectedMsg: "validation failed for name: is required",
			field:       "name",
		},
		{
			name:        "without field",
			err:         NewValidationError("", "bad input"),
			expectedMsg: "validation failed: bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMsg, tt.err.Error())
			require.ErrorIs(t, tt.err, ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, tt.err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("deleteUser", "pin code mismatch")

	assert.Equal(t, `operation "deleteUser" unauthorized: pin code mismatch`, err.Error())
	assert.True(t, IsUnauthorized(err))

	bare := NewUnauthorizedError("deleteQuote", "")
	assert.Equal(t, `operation "deleteQuote" unauthorized`, bare.Error())
}

func TestMismatchError(t *testing.T) {
	err := NewMismatchError("comment", "c-1", "quoteId", "q-2", "q-1")

	assert.Equal(t, `comment "c-1": quoteId is "q-1", not "q-2"`, err.Error())
	require.ErrorIs(t, err, ErrMismatch)

	var me *MismatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "q-1", me.Actual)
}

func TestStorageError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("users", "insert", cause)

	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, cause)
	assert.True(t, IsStorage(err))
	assert.False(t, errors.Is(err, ErrRecordTooLarge))
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailableError("sqlite", "ping failed")

	assert.Equal(t, `service "sqlite" unavailable: ping failed`, err.Error())
	assert.True(t, IsUnavailable(err))
}

func TestIsHelpers_ThroughWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NewNotFoundError("quote", "1"), IsNotFound},
		{"conflict", NewDuplicateNameError("bob"), IsConflict},
		{"validation", NewValidationError("name", "x"), IsValidation},
		{"unauthorized", NewUnauthorizedError("op", ""), IsUnauthorized},
		{"storage", NewRecordTooLargeError("users", 2, 1), IsStorage},
		{"unavailable", NewUnavailableError("db", ""), IsUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tt.err)
			assert.True(t, tt.check(wrapped))
			assert.False(t, tt.check(errors.New("other")))
		})
	}
}
