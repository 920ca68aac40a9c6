package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/utaskhq/utask/internal/domain"
)

// GetBalance reads the user's cached balance. The ledger below is the
// history behind it; nothing in this API reconciles the two.
func (s *Store) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.q.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, domain.E(domain.ErrNotFound, "user not found")
	}
	return balance, err
}

// ListTransactions pages through the append-only wallet ledger, newest
// first, optionally filtered by credit/debit.
func (s *Store) ListTransactions(ctx context.Context, userID, txType string, limit, offset int) ([]domain.Transaction, int, error) {
	cond := `user_id = $1`
	args := []any{userID}
	if txType != "" {
		args = append(args, txType)
		cond += ` AND type = $2`
	}

	var total int
	if err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM wallet_transactions WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, amount, type, description, created_at
		FROM wallet_transactions
		WHERE ` + cond + `
		ORDER BY created_at DESC`
	if txType != "" {
		query += ` LIMIT $3 OFFSET $4`
	} else {
		query += ` LIMIT $2 OFFSET $3`
	}
	args = append(args, limit, offset)

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}
