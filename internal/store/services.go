package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/utaskhq/utask/internal/domain"
	"github.com/utaskhq/utask/internal/marketplace"
)

const serviceColumns = `
	s.id, s.user_id, s.title, s.description, s.price, s.date, s.location,
	s.latitude, s.longitude, s.category_id, s.status, s.created_at,
	c.name, c.icon, c.description,
	u.name, u.avatar_url, u.city, u.state`

const serviceJoins = `
	FROM services s
	LEFT JOIN categories c ON c.id = s.category_id
	JOIN users u ON u.id = s.user_id`

// scanService reads one joined service row, building the nested category
// and owner summary.
func scanService(row pgx.Row) (*domain.Service, error) {
	var (
		svc                       domain.Service
		catName, catIcon, catDesc *string
		ownerName, ownerAvatar    string
		ownerCity, ownerState     string
	)
	err := row.Scan(
		&svc.ID, &svc.OwnerID, &svc.Title, &svc.Description, &svc.Price, &svc.Date, &svc.Location,
		&svc.Latitude, &svc.Longitude, &svc.CategoryID, &svc.Status, &svc.CreatedAt,
		&catName, &catIcon, &catDesc,
		&ownerName, &ownerAvatar, &ownerCity, &ownerState,
	)
	if err != nil {
		return nil, err
	}

	if svc.CategoryID != nil && catName != nil {
		svc.Category = &domain.Category{ID: *svc.CategoryID, Name: *catName}
		if catIcon != nil {
			svc.Category.Icon = *catIcon
		}
		if catDesc != nil {
			svc.Category.Description = *catDesc
		}
	}
	svc.User = &domain.UserSummary{
		ID:        svc.OwnerID,
		Name:      ownerName,
		AvatarURL: ownerAvatar,
		City:      ownerCity,
		State:     ownerState,
	}
	return &svc, nil
}

func (s *Store) CreateService(ctx context.Context, svc *domain.Service) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO services
			(id, user_id, title, description, price, date, location, latitude, longitude, category_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		svc.ID, svc.OwnerID, svc.Title, svc.Description, svc.Price, svc.Date, svc.Location,
		svc.Latitude, svc.Longitude, svc.CategoryID, svc.Status, svc.CreatedAt,
	)
	return err
}

func (s *Store) GetService(ctx context.Context, id string) (*domain.Service, error) {
	svc, err := scanService(s.q.QueryRow(ctx, `SELECT`+serviceColumns+serviceJoins+` WHERE s.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.E(domain.ErrNotFound, "service not found")
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// ListServices applies the discovery filters and returns one page plus the
// total match count.
func (s *Store) ListServices(ctx context.Context, f marketplace.ServiceFilter) ([]domain.Service, int, error) {
	where := []string{"1=1"}
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.CategoryID != "" {
		add("s.category_id = $%d", f.CategoryID)
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where = append(where, fmt.Sprintf("(s.title ILIKE $%d OR s.description ILIKE $%d)", len(args), len(args)))
	}
	if f.Location != "" {
		add("s.location ILIKE $%d", "%"+f.Location+"%")
	}
	if f.Status != "" {
		add("s.status = $%d", f.Status)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM services s WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT%s%s WHERE %s ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d`,
		serviceColumns, serviceJoins, cond, len(args)+1, len(args)+2,
	)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		services = append(services, *svc)
	}
	return services, total, rows.Err()
}

// ListGeoServices returns the nearby-search candidates: pending services
// with coordinates. Distance ranking happens in the marketplace package.
func (s *Store) ListGeoServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.q.Query(ctx, `
		SELECT`+serviceColumns+serviceJoins+`
		WHERE s.status = $1 AND s.latitude IS NOT NULL AND s.longitude IS NOT NULL`,
		domain.ServicePending,
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

func (s *Store) UpdateService(ctx context.Context, svc *domain.Service) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE services
		SET title = $1, description = $2, price = $3, date = $4, location = $5,
			latitude = $6, longitude = $7, category_id = $8, status = $9
		WHERE id = $10`,
		svc.Title, svc.Description, svc.Price, svc.Date, svc.Location,
		svc.Latitude, svc.Longitude, svc.CategoryID, svc.Status, svc.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.E(domain.ErrNotFound, "service not found")
	}
	return nil
}

func (s *Store) DeleteService(ctx context.Context, id string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.E(domain.ErrNotFound, "service not found")
	}
	return nil
}

// UpdateServiceStatus is the transaction-scoped status flip used by the
// acceptance workflow.
func (s *Store) UpdateServiceStatus(ctx context.Context, serviceID, status string) error {
	tag, err := s.q.Exec(ctx, `UPDATE services SET status = $1 WHERE id = $2`, status, serviceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.E(domain.ErrNotFound, "service not found")
	}
	return nil
}
