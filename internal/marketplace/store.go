package marketplace

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/utaskhq/utask/internal/domain"
)

// ServiceFilter narrows the service listing.
type ServiceFilter struct {
	CategoryID string
	Query      string // matches title or description
	Location   string
	Status     string
	Limit      int
	Offset     int
}

// Store is the persistence surface for services, proposals and favorites.
// All mutations of the proposal state machine happen through InTx.
type Store interface {
	CreateService(ctx context.Context, svc *domain.Service) error
	GetService(ctx context.Context, id string) (*domain.Service, error)
	ListServices(ctx context.Context, f ServiceFilter) ([]domain.Service, int, error)
	ListGeoServices(ctx context.Context) ([]domain.Service, error)
	UpdateService(ctx context.Context, svc *domain.Service) error
	DeleteService(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]domain.Category, error)

	GetProposal(ctx context.Context, id string) (*domain.Proposal, error)
	ListServiceProposals(ctx context.Context, serviceID string) ([]domain.Proposal, error)
	ListProviderProposals(ctx context.Context, serviceID, providerID string) ([]domain.Proposal, error)
	HasProposal(ctx context.Context, serviceID, providerID string) (bool, error)

	ListFavorites(ctx context.Context, userID string) ([]domain.Service, error)
	AddFavorite(ctx context.Context, userID, serviceID string) error
	RemoveFavorite(ctx context.Context, userID, serviceID string) error

	GetUserSummary(ctx context.Context, userID string) (*domain.UserSummary, error)
	GetUserContact(ctx context.Context, userID string) (name, email string, err error)

	// InTx runs fn inside a single storage transaction; fn's writes either
	// all commit or none do.
	InTx(ctx context.Context, fn func(TxStore) error) error
}

// TxStore is the transaction-scoped write surface used by the proposal
// workflow.
type TxStore interface {
	InsertProposal(ctx context.Context, p *domain.Proposal) error
	// MarkProposalAccepted flips a pending proposal to accepted and reports
	// whether a row actually changed. Guards against concurrent accepts.
	MarkProposalAccepted(ctx context.Context, id string) (bool, error)
	// UpdateProposalStatus and ApplyCounterOffer only touch a still-pending
	// proposal; a concurrently resolved one returns ErrInvalidState so the
	// surrounding transaction aborts.
	UpdateProposalStatus(ctx context.Context, id, status string) error
	ApplyCounterOffer(ctx context.Context, id string, price decimal.Decimal, message string) error
	RejectSiblingProposals(ctx context.Context, serviceID, acceptedID string) error
	UpdateServiceStatus(ctx context.Context, serviceID, status string) error
	InsertNotification(ctx context.Context, n *domain.Notification) error
}
