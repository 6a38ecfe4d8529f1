// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// Sentinel errors returned (optionally wrapped) by every Store implementation.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// ExpenseFilter narrows ListExpenses. The zero value matches every expense.
type ExpenseFilter struct {
	// Participant, when set, keeps only expenses listing this user ID as a participant.
	Participant string
}

// Store defines the record-store operations the ledger depends on.
// This abstraction allows swapping storage backends (SQLite, MongoDB)
// without changing the service layer.
type Store interface {
	// CreateExpense persists a new expense.
	// ID, CreatedAt, UpdatedAt and Version are assigned by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses returns expenses matching filter, oldest first.
	// An empty result is not an error.
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*models.Expense, error)

	// CreateUser persists a new user. Returns ErrConflict when the email
	// or mobile is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns ErrNotFound when no user has the given ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// FindUserByEmailOrMobile returns the first user whose email or mobile
	// matches. Empty arguments are ignored. Returns ErrNotFound on no match.
	FindUserByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
