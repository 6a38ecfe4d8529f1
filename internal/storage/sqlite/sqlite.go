// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateExpense persists a new expense with its participants and shares in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Millisecond precision matches what is stored.
	now := time.Now().UTC().Truncate(time.Millisecond)
	expense.ID = uuid.New().String()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	expense.Version = 1

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, title, total_amount, split_method, added_by, created_at, updated_at, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Title, expense.TotalAmount, string(expense.SplitMethod), expense.AddedBy,
		now.UnixMilli(), now.UnixMilli(), expense.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, userID := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, position, user_id) VALUES (?, ?, ?)",
			expense.ID, i, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for userID, amount := range expense.SplitAmounts {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, user_id, amount) VALUES (?, ?, ?)",
			expense.ID, userID, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListExpenses retrieves expenses matching filter, including participants and shares,
// ordered by creation time.
func (s *SQLiteStore) ListExpenses(ctx context.Context, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	query := sq.Select("e.id", "e.title", "e.total_amount", "e.split_method", "e.added_by",
		"e.created_at", "e.updated_at", "e.version").
		From("expenses e").
		OrderBy("e.created_at", "e.rowid")
	if filter.Participant != "" {
		query = query.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM expense_participants p WHERE p.expense_id = e.id AND p.user_id = ?)",
			filter.Participant,
		))
	}

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		var (
			e                    models.Expense
			method               string
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.TotalAmount, &method, &e.AddedBy,
			&createdAt, &updatedAt, &e.Version); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.SplitMethod = models.SplitMethod(method)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		e.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		e.SplitAmounts = make(map[string]float64)
		expenses = append(expenses, &e)
		byID[e.ID] = &e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	if err := s.loadParticipants(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := s.loadShares(ctx, ids, byID); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, ids []string, byID map[string]*models.Expense) error {
	rows, err := sq.Select("expense_id", "user_id").
		From("expense_participants").
		Where(sq.Eq{"expense_id": ids}).
		OrderBy("expense_id", "position").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, userID string
		if err := rows.Scan(&expenseID, &userID); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.Participants = append(e.Participants, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, ids []string, byID map[string]*models.Expense) error {
	rows, err := sq.Select("expense_id", "user_id", "amount").
		From("expense_shares").
		Where(sq.Eq{"expense_id": ids}).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			expenseID, userID string
			amount            float64
		)
		if err := rows.Scan(&expenseID, &userID, &amount); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.SplitAmounts[userID] = amount
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
