package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/utaskhq/utask/internal/domain"
)

// CreateUser inserts a new account. A duplicate email surfaces as Conflict.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	err := s.q.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, city, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING avatar_url, balance, created_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.City, u.State,
	).Scan(&u.AvatarURL, &u.Balance, &u.CreatedAt)
	if uniqueViolation(err) {
		return domain.E(domain.ErrConflict, "this email is already in use")
	}
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, `WHERE email = $1`, email)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getUser(ctx, `WHERE id = $1`, id)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	u := new(domain.User)
	err := s.q.QueryRow(ctx, `
		SELECT id, name, email, password_hash, city, state, avatar_url, balance, created_at
		FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.City, &u.State, &u.AvatarURL, &u.Balance, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.E(domain.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserSummary loads the public slice of a user embedded in responses.
func (s *Store) GetUserSummary(ctx context.Context, userID string) (*domain.UserSummary, error) {
	u := new(domain.UserSummary)
	err := s.q.QueryRow(ctx, `
		SELECT id, name, avatar_url, city, state FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Name, &u.AvatarURL, &u.City, &u.State)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.E(domain.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserContact returns the name and email used for email alerts.
func (s *Store) GetUserContact(ctx context.Context, userID string) (name, email string, err error) {
	err = s.q.QueryRow(ctx, `SELECT name, email FROM users WHERE id = $1`, userID).Scan(&name, &email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", domain.E(domain.ErrNotFound, "user not found")
	}
	return name, email, err
}
