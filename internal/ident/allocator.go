// Package ident derives the next record identifier for a collection by
// scanning the records that already exist. Identifiers are client-observed,
// not server-assigned: two clients creating records in the same collection at
// the same time can collect the same id. That race is an accepted limitation
// of the backend contract, not something the allocator defends against.
package ident

import (
	"context"
	"fmt"
	"strconv"

	"catalog/internal/models"
)

// NextIntID returns max(ids)+1, or 1 for an empty collection.
func NextIntID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// NextStringID returns the string-encoded successor of the largest id, or "1"
// for an empty collection. Every existing id must parse as an integer.
func NextStringID(ids []string) (string, error) {
	next := 1
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			return "", fmt.Errorf("non-numeric id %q in collection: %w", id, err)
		}
		if n >= next {
			next = n + 1
		}
	}
	return strconv.Itoa(next), nil
}

// BookSource lists the books collection.
type BookSource interface {
	List(ctx context.Context) ([]models.Book, error)
}

// UserSource lists the users collection.
type UserSource interface {
	List(ctx context.Context) ([]models.User, error)
}

// Allocator fetches a full collection immediately before each allocation. It
// never caches a computed value across create flows.
type Allocator struct {
	books BookSource
	users UserSource
}

// New creates an allocator over the two catalog collections.
func New(books BookSource, users UserSource) *Allocator {
	return &Allocator{books: books, users: users}
}

// NextBookID allocates the id for a new book.
func (a *Allocator) NextBookID(ctx context.Context) (int, error) {
	books, err := a.books.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch books for id allocation: %w", err)
	}
	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	return NextIntID(ids), nil
}

// NextUserID allocates the id for a new user.
func (a *Allocator) NextUserID(ctx context.Context) (string, error) {
	users, err := a.users.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch users for id allocation: %w", err)
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return NextStringID(ids)
}
