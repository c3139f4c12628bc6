package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"clinicore/internal/auth/domain"
	"clinicore/pkg/platform/sentinel"
)

// PostgresUserStore persists users in PostgreSQL. The users table carries
// unique indexes on username and email; violations surface as
// sentinel.ErrConflict.
type PostgresUserStore struct {
	db *sql.DB
}

// NewPostgresUserStore constructs a PostgreSQL-backed user store.
func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userColumns = `id, username, password_hash, email, locked, created_at, updated_at`

func (s *PostgresUserStore) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id.String())
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return user, nil
}

func (s *PostgresUserStore) FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username.Value())
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return user, nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.Value())
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (s *PostgresUserStore) UsernameExists(ctx context.Context, username domain.Username) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username.Value()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

func (s *PostgresUserStore) EmailExists(ctx context.Context, email domain.Email) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email.Value()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// Save upserts by id. Username or email unique violations from another user
// map to sentinel.ErrConflict.
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			password_hash = EXCLUDED.password_hash,
			email = EXCLUDED.email,
			locked = EXCLUDED.locked,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID().String(),
		user.Username().Value(),
		user.PasswordHash().Value(),
		user.Email().Value(),
		user.IsLocked(),
		user.CreatedAt(),
		user.UpdatedAt(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Delete removes a user. Deleting an absent id is a no-op.
func (s *PostgresUserStore) Delete(ctx context.Context, id domain.UserID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id.String()); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		rawID, rawUsername, rawHash, rawEmail string
		locked                                bool
		createdAt, updatedAt                  time.Time
	)
	if err := row.Scan(&rawID, &rawUsername, &rawHash, &rawEmail, &locked, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := domain.ParseUserID(rawID)
	if err != nil {
		return nil, err
	}
	username, err := domain.NewUsername(rawUsername)
	if err != nil {
		return nil, err
	}
	hash, err := domain.NewPasswordHash(rawHash)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateUser(id, username, hash, email, locked, createdAt, updatedAt), nil
}
