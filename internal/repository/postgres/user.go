package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ec-commerce/internal/domain/user"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, password_hash, point, created_at`

func (s *UserStore) FindByID(ctx context.Context, id string) (*user.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *UserStore) FindForUpdate(ctx context.Context, id string) (*user.User, error) {
	return s.FindByID(ctx, id)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *UserStore) Save(ctx context.Context, u *user.User) (*user.User, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			point = EXCLUDED.point`,
		u.ID, u.Email, u.PasswordHash, u.Point, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	cp := *u
	return &cp, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Point, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
