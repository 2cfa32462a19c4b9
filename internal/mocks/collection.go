// Package mocks holds testify mocks for the ports interfaces, written in the
// layout mockery generates.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// MockCollection is a mock implementation of ports.Collection.
type MockCollection[T any] struct {
	mock.Mock
}

// NewMockCollection creates a MockCollection that asserts its expectations on cleanup.
func NewMockCollection[T any](t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCollection[T] {
	m := &MockCollection[T]{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func record[T any](args mock.Arguments, i int) T {
	var zero T
	if v, ok := args.Get(i).(T); ok {
		return v
	}

	return zero
}

// Get provides a mock function with given fields: ctx, id.
func (m *MockCollection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	args := m.Called(ctx, id)

	return record[T](args, 0), args.Bool(1), args.Error(2)
}

// Insert provides a mock function with given fields: ctx, id, rec.
func (m *MockCollection[T]) Insert(ctx context.Context, id string, rec T) (T, bool, error) {
	args := m.Called(ctx, id, rec)

	return record[T](args, 0), args.Bool(1), args.Error(2)
}

// Remove provides a mock function with given fields: ctx, id.
func (m *MockCollection[T]) Remove(ctx context.Context, id string) (T, bool, error) {
	args := m.Called(ctx, id)

	return record[T](args, 0), args.Bool(1), args.Error(2)
}

// Values provides a mock function with given fields: ctx.
func (m *MockCollection[T]) Values(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)

	return record[[]T](args, 0), args.Error(1)
}

// Len provides a mock function with given fields: ctx.
func (m *MockCollection[T]) Len(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

var _ ports.Collection[domain.User] = (*MockCollection[domain.User])(nil)
