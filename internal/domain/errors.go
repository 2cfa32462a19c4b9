// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/CLI output by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Category sentinels for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a state conflict such as a duplicate name.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates input validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the supplied credential or owner id does not match.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnknownReference indicates a referenced parent entity does not exist.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrMismatch indicates an entity exists but is not attached to the given parent.
	ErrMismatch = errors.New("mismatch")

	// ErrEmptyResult indicates a listing produced no records.
	ErrEmptyResult = errors.New("empty result")

	// ErrStorage indicates the collection store failed.
	ErrStorage = errors.New("storage fault")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// Kind sentinels narrow a category. Typed errors unwrap to both.
var (
	ErrDuplicateName  = errors.New("duplicate name")
	ErrUnknownAuthor  = errors.New("unknown author")
	ErrUnknownQuote   = errors.New("unknown quote")
	ErrNoComments     = errors.New("no comments")
	ErrRecordTooLarge = errors.New("record too large")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError provides context for conflict errors.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
	Kind    error
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s conflict: %s (%s)", e.Entity, e.Reason, e.Details)
	}

	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the category and, when set, the kind.
func (e *ConflictError) Unwrap() []error {
	if e.Kind == nil {
		return []error{ErrConflict}
	}

	return []error{ErrConflict, e.Kind}
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewDuplicateNameError reports a name already held by another user.
func NewDuplicateNameError(name string) error {
	return &ConflictError{
		Entity:  "user",
		Reason:  "name already taken",
		Details: name,
		Kind:    ErrDuplicateName,
	}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnauthorizedError is returned when a pin code or owner id does not match the stored record.
type UnauthorizedError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q unauthorized: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q unauthorized", e.Operation)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// NewUnauthorizedError creates an unauthorized error with context.
func NewUnauthorizedError(operation, reason string) error {
	return &UnauthorizedError{Operation: operation, Reason: reason}
}

// ReferenceError reports a create whose parent id resolves to nothing.
type ReferenceError struct {
	Entity string
	ID     string
	Kind   error
}

// Error implements the error interface.
func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Entity, e.ID)
}

// Unwrap returns the category and the kind.
func (e *ReferenceError) Unwrap() []error {
	return []error{ErrUnknownReference, e.Kind}
}

// NewUnknownAuthorError reports an author id with no matching user.
func NewUnknownAuthorError(id string) error {
	return &ReferenceError{Entity: "author", ID: id, Kind: ErrUnknownAuthor}
}

// NewUnknownQuoteError reports a quote id with no matching quote.
func NewUnknownQuoteError(id string) error {
	return &ReferenceError{Entity: "quote", ID: id, Kind: ErrUnknownQuote}
}

// MismatchError reports a child record found under a different parent than requested.
type MismatchError struct {
	Entity   string
	ID       string
	Field    string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s %q: %s is %q, not %q", e.Entity, e.ID, e.Field, e.Actual, e.Expected)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// NewMismatchError creates a mismatch error with context.
func NewMismatchError(entity, id, field, expected, actual string) error {
	return &MismatchError{Entity: entity, ID: id, Field: field, Expected: expected, Actual: actual}
}

// EmptyResultError is returned by listings that treat "nothing" as a failure.
type EmptyResultError struct {
	Collection string
	Kind       error
}

// Error implements the error interface.
func (e *EmptyResultError) Error() string {
	return "no " + e.Collection + " found"
}

// Unwrap returns the category and, when set, the kind.
func (e *EmptyResultError) Unwrap() []error {
	if e.Kind == nil {
		return []error{ErrEmptyResult}
	}

	return []error{ErrEmptyResult, e.Kind}
}

// NewEmptyResultError creates an empty result error for a collection.
func NewEmptyResultError(collection string) error {
	return &EmptyResultError{Collection: collection}
}

// NewNoCommentsError reports an existing quote with no comments.
func NewNoCommentsError() error {
	return &EmptyResultError{Collection: "comments", Kind: ErrNoComments}
}

// StorageError wraps a failure raised by a collection store.
type StorageError struct {
	Collection string
	Op         string
	Err        error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s on %s: %v", e.Op, e.Collection, e.Err)
}

// Unwrap returns the category and the underlying cause.
func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// NewStorageError creates a storage error with context.
func NewStorageError(collection, op string, err error) error {
	return &StorageError{Collection: collection, Op: op, Err: err}
}

// NewRecordTooLargeError reports a record whose encoded size exceeds the collection limit.
func NewRecordTooLargeError(collection string, size, limit int) error {
	return &StorageError{
		Collection: collection,
		Op:         "insert",
		Err:        fmt.Errorf("%w: %d bytes exceeds %d", ErrRecordTooLarge, size, limit),
	}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthorized checks if an error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsStorage checks if an error came from the collection store.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
