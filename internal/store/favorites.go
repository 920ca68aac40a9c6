package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/utaskhq/utask/internal/domain"
)

// ListFavorites returns the user's bookmarked services, most recently
// favorited first.
func (s *Store) ListFavorites(ctx context.Context, userID string) ([]domain.Service, error) {
	rows, err := s.q.Query(ctx, `
		SELECT`+serviceColumns+serviceJoins+`
		JOIN favorite_services f ON f.service_id = s.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

func (s *Store) AddFavorite(ctx context.Context, userID, serviceID string) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO favorite_services (id, user_id, service_id)
		VALUES ($1, $2, $3)`,
		uuid.New().String(), userID, serviceID,
	)
	if uniqueViolation(err) {
		return domain.E(domain.ErrConflict, "service is already in favorites")
	}
	return err
}

func (s *Store) RemoveFavorite(ctx context.Context, userID, serviceID string) error {
	tag, err := s.q.Exec(ctx, `
		DELETE FROM favorite_services WHERE user_id = $1 AND service_id = $2`,
		userID, serviceID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.E(domain.ErrNotFound, "favorite not found")
	}
	return nil
}
