package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/utaskhq/utask/internal/domain"
	"github.com/utaskhq/utask/internal/notifications"
)

func (s *Store) InsertNotification(ctx context.Context, n *domain.Notification) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, related_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.RelatedID, n.Read, n.CreatedAt,
	)
	return err
}

// ListNotifications returns one page of a user's notifications, newest
// first, plus the unread and total counts.
func (s *Store) ListNotifications(ctx context.Context, userID string, f notifications.Filter) ([]domain.Notification, int, int, error) {
	cond := `user_id = $1`
	if f.UnreadOnly {
		cond += ` AND NOT read`
	}

	var unread int
	err := s.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`, userID,
	).Scan(&unread)
	if err != nil {
		return nil, 0, 0, err
	}

	var total int
	if err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE `+cond, userID).Scan(&total); err != nil {
		return nil, 0, 0, err
	}

	rows, err := s.q.Query(ctx, `
		SELECT id, user_id, type, title, message, related_id, read, created_at
		FROM notifications
		WHERE `+cond+`
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var items []domain.Notification
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, 0, 0, err
		}
		items = append(items, n)
	}
	return items, unread, total, rows.Err()
}

func (s *Store) GetNotification(ctx context.Context, id string) (*domain.Notification, error) {
	n := new(domain.Notification)
	err := s.q.QueryRow(ctx, `
		SELECT id, user_id, type, title, message, related_id, read, created_at
		FROM notifications WHERE id = $1`,
		id,
	).Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.Read, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.E(domain.ErrNotFound, "notification not found")
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	tag, err := s.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.E(domain.ErrNotFound, "notification not found")
	}
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := s.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read`, userID)
	return err
}
