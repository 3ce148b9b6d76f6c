// Package history keeps answers in submission order behind a last-in-first-out API.
package history

import (
	"errors"
	"slices"
)

// ErrEmpty is returned when popping an empty stack
var ErrEmpty = errors.New("history is empty")

// Stack is an array-backed LIFO container. Not safe for concurrent use.
type Stack[T any] struct {
	items []T
}

// NewStack creates an empty stack
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push adds an item on top
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the top item
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrEmpty
	}

	last := len(s.items) - 1
	item := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return item, nil
}

// Peek returns the top item without removing it
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Size returns the number of items
func (s *Stack[T]) Size() int {
	return len(s.items)
}

// IsEmpty returns true if the stack holds nothing
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Clear drops every item
func (s *Stack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// Chronological returns the items oldest first (reverse of pop order).
// The stack itself is left untouched.
func (s *Stack[T]) Chronological() []T {
	return slices.Clone(s.items)
}
