package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var userColumns = []string{"id", "name", "email", "mobile", "password_hash", "created_at", "updated_at"}

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, mobile, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Mobile,
		user.PasswordHash,
		user.CreatedAt.UnixMilli(),
		user.UpdatedAt.UnixMilli(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to create user: %w", storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

// FindUserByEmailOrMobile retrieves the first user matching either the email or the mobile.
func (s *SQLiteStore) FindUserByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	match := sq.Or{}
	if email != "" {
		match = append(match, sq.Eq{"email": email})
	}
	if mobile != "" {
		match = append(match, sq.Eq{"mobile": mobile})
	}
	if len(match) == 0 {
		return nil, fmt.Errorf("user: %w", storage.ErrNotFound)
	}

	row := sq.Select(userColumns...).
		From("users").
		Where(match).
		OrderBy("created_at").
		Limit(1).
		RunWith(s.db).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func scanUser(row scanner) (*models.User, error) {
	var (
		user                 models.User
		createdAt, updatedAt int64
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Mobile,
		&user.PasswordHash,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	user.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
