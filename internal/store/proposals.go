package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/utaskhq/utask/internal/domain"
)

// GetProposal loads a proposal together with the parent service fields the
// workflow preconditions need.
func (s *Store) GetProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	p := new(domain.Proposal)
	err := s.q.QueryRow(ctx, `
		SELECT p.id, p.service_id, p.provider_id, p.price, p.message, p.status, p.created_at,
			sv.user_id, sv.title, sv.status
		FROM proposals p
		JOIN services sv ON sv.id = p.service_id
		WHERE p.id = $1`,
		id,
	).Scan(
		&p.ID, &p.ServiceID, &p.ProviderID, &p.Price, &p.Message, &p.Status, &p.CreatedAt,
		&p.ServiceOwnerID, &p.ServiceTitle, &p.ServiceStatus,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.E(domain.ErrNotFound, "proposal not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListServiceProposals(ctx context.Context, serviceID string) ([]domain.Proposal, error) {
	return s.listProposals(ctx, `WHERE p.service_id = $1`, serviceID)
}

func (s *Store) ListProviderProposals(ctx context.Context, serviceID, providerID string) ([]domain.Proposal, error) {
	return s.listProposals(ctx, `WHERE p.service_id = $1 AND p.provider_id = $2`, serviceID, providerID)
}

func (s *Store) listProposals(ctx context.Context, where string, args ...any) ([]domain.Proposal, error) {
	rows, err := s.q.Query(ctx, `
		SELECT p.id, p.service_id, p.provider_id, p.price, p.message, p.status, p.created_at,
			u.name, u.avatar_url
		FROM proposals p
		JOIN users u ON u.id = p.provider_id
		`+where+`
		ORDER BY p.created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []domain.Proposal
	for rows.Next() {
		var (
			p                            domain.Proposal
			providerName, providerAvatar string
		)
		err := rows.Scan(
			&p.ID, &p.ServiceID, &p.ProviderID, &p.Price, &p.Message, &p.Status, &p.CreatedAt,
			&providerName, &providerAvatar,
		)
		if err != nil {
			return nil, err
		}
		p.Provider = &domain.UserSummary{ID: p.ProviderID, Name: providerName, AvatarURL: providerAvatar}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (s *Store) HasProposal(ctx context.Context, serviceID, providerID string) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM proposals WHERE service_id = $1 AND provider_id = $2)`,
		serviceID, providerID,
	).Scan(&exists)
	return exists, err
}

func (s *Store) InsertProposal(ctx context.Context, p *domain.Proposal) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO proposals (id, service_id, provider_id, price, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.ServiceID, p.ProviderID, p.Price, p.Message, p.Status, p.CreatedAt,
	)
	if uniqueViolation(err) {
		return domain.E(domain.ErrConflict, "you already made a proposal for this service")
	}
	return err
}

// MarkProposalAccepted flips a pending proposal to accepted. The status
// guard makes concurrent accepts lose: the second caller changes no row.
func (s *Store) MarkProposalAccepted(ctx context.Context, id string) (bool, error) {
	tag, err := s.q.Exec(ctx, `
		UPDATE proposals SET status = $1 WHERE id = $2 AND status = $3`,
		domain.ProposalAccepted, id, domain.ProposalPending,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateProposalStatus moves a pending proposal to the given status. The
// same pending guard as MarkProposalAccepted keeps a concurrently resolved
// proposal from being overwritten.
func (s *Store) UpdateProposalStatus(ctx context.Context, id, status string) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE proposals SET status = $1 WHERE id = $2 AND status = $3`,
		status, id, domain.ProposalPending,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.E(domain.ErrInvalidState, "proposal is no longer pending")
	}
	return nil
}

func (s *Store) ApplyCounterOffer(ctx context.Context, id string, price decimal.Decimal, message string) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE proposals SET price = $1, message = $2, status = $3
		WHERE id = $4 AND status = $5`,
		price, message, domain.ProposalCounter, id, domain.ProposalPending,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.E(domain.ErrInvalidState, "proposal is no longer pending")
	}
	return nil
}

// RejectSiblingProposals rejects every non-terminal proposal of the
// service except the accepted one.
func (s *Store) RejectSiblingProposals(ctx context.Context, serviceID, acceptedID string) error {
	_, err := s.q.Exec(ctx, `
		UPDATE proposals SET status = $1
		WHERE service_id = $2 AND id <> $3 AND status IN ($4, $5)`,
		domain.ProposalRejected, serviceID, acceptedID, domain.ProposalPending, domain.ProposalCounter,
	)
	return err
}
