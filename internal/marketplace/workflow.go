package marketplace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/utaskhq/utask/internal/domain"
)

// Workflow orchestrates the proposal state machine: create, accept, reject
// and counter. Every multi-row effect runs in one storage transaction.
type Workflow struct {
	store Store
}

func NewWorkflow(store Store) *Workflow {
	return &Workflow{store: store}
}

// requireServiceOwner is the single ownership predicate for owner-side
// proposal actions.
func requireServiceOwner(actorID string, p *domain.Proposal) error {
	if actorID != p.ServiceOwnerID {
		return domain.E(domain.ErrForbidden, "you do not own the service for this proposal")
	}
	return nil
}

// Propose creates a pending proposal from a provider against a service and
// notifies the owner.
func (w *Workflow) Propose(ctx context.Context, serviceID, providerID string, price decimal.Decimal, message string) (*domain.Proposal, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, domain.E(domain.ErrValidation, "price must be greater than zero")
	}

	svc, err := w.store.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.Status != domain.ServicePending {
		return nil, domain.E(domain.ErrInvalidState, "this service is not accepting proposals")
	}
	if svc.OwnerID == providerID {
		return nil, domain.E(domain.ErrForbidden, "you cannot propose on your own service")
	}
	exists, err := w.store.HasProposal(ctx, serviceID, providerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.E(domain.ErrConflict, "you already made a proposal for this service")
	}

	proposal := &domain.Proposal{
		ID:             uuid.New().String(),
		ServiceID:      serviceID,
		ProviderID:     providerID,
		Price:          price,
		Message:        message,
		Status:         domain.ProposalPending,
		CreatedAt:      time.Now(),
		ServiceOwnerID: svc.OwnerID,
		ServiceTitle:   svc.Title,
		ServiceStatus:  svc.Status,
	}

	err = w.store.InTx(ctx, func(tx TxStore) error {
		if err := tx.InsertProposal(ctx, proposal); err != nil {
			return err
		}
		return tx.InsertNotification(ctx, w.notification(
			svc.OwnerID,
			domain.NotifNewProposal,
			"New proposal",
			fmt.Sprintf("You received a new proposal for %q", svc.Title),
			proposal.ID,
		))
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// Accept marks the proposal accepted, moves the service to in_progress,
// rejects every sibling proposal and notifies the winning provider. All
// four steps commit together or not at all.
func (w *Workflow) Accept(ctx context.Context, proposalID, actorID string) (*domain.Proposal, error) {
	p, err := w.loadPending(ctx, proposalID, actorID, "this proposal cannot be accepted")
	if err != nil {
		return nil, err
	}

	err = w.store.InTx(ctx, func(tx TxStore) error {
		changed, err := tx.MarkProposalAccepted(ctx, p.ID)
		if err != nil {
			return err
		}
		if !changed {
			// Someone else accepted or resolved it first.
			return domain.E(domain.ErrInvalidState, "this proposal cannot be accepted")
		}
		if err := tx.UpdateServiceStatus(ctx, p.ServiceID, domain.ServiceInProgress); err != nil {
			return err
		}
		if err := tx.RejectSiblingProposals(ctx, p.ServiceID, p.ID); err != nil {
			return err
		}
		return tx.InsertNotification(ctx, w.notification(
			p.ProviderID,
			domain.NotifProposalAccepted,
			"Proposal accepted",
			fmt.Sprintf("Your proposal for %q was accepted!", p.ServiceTitle),
			p.ID,
		))
	})
	if err != nil {
		return nil, err
	}

	p.Status = domain.ProposalAccepted
	return p, nil
}

// Reject marks a single proposal rejected and notifies its provider. The
// parent service stays pending.
func (w *Workflow) Reject(ctx context.Context, proposalID, actorID string) (*domain.Proposal, error) {
	p, err := w.loadPending(ctx, proposalID, actorID, "this proposal cannot be rejected")
	if err != nil {
		return nil, err
	}

	err = w.store.InTx(ctx, func(tx TxStore) error {
		if err := tx.UpdateProposalStatus(ctx, p.ID, domain.ProposalRejected); err != nil {
			return err
		}
		return tx.InsertNotification(ctx, w.notification(
			p.ProviderID,
			domain.NotifProposalRejected,
			"Proposal rejected",
			fmt.Sprintf("Your proposal for %q was rejected", p.ServiceTitle),
			p.ID,
		))
	})
	if err != nil {
		return nil, err
	}

	p.Status = domain.ProposalRejected
	return p, nil
}

// Counter revises a pending proposal's price and message on behalf of the
// owner. One counter round only: a countered proposal has no further
// owner-side transition.
func (w *Workflow) Counter(ctx context.Context, proposalID, actorID string, price decimal.Decimal, message string) (*domain.Proposal, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, domain.E(domain.ErrValidation, "price must be greater than zero")
	}

	p, err := w.loadPending(ctx, proposalID, actorID, "this proposal cannot be countered")
	if err != nil {
		return nil, err
	}

	err = w.store.InTx(ctx, func(tx TxStore) error {
		if err := tx.ApplyCounterOffer(ctx, p.ID, price, message); err != nil {
			return err
		}
		return tx.InsertNotification(ctx, w.notification(
			p.ProviderID,
			domain.NotifCounterProposal,
			"Counter offer received",
			fmt.Sprintf("You received a counter offer for %q", p.ServiceTitle),
			p.ID,
		))
	})
	if err != nil {
		return nil, err
	}

	p.Price = price
	p.Message = message
	p.Status = domain.ProposalCounter
	return p, nil
}

// loadPending fetches the proposal and runs the shared owner-action
// preconditions: existence, ownership, pending status.
func (w *Workflow) loadPending(ctx context.Context, proposalID, actorID, stateMsg string) (*domain.Proposal, error) {
	p, err := w.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if err := requireServiceOwner(actorID, p); err != nil {
		return nil, err
	}
	if p.Status != domain.ProposalPending {
		return nil, domain.E(domain.ErrInvalidState, stateMsg)
	}
	return p, nil
}

func (w *Workflow) notification(userID, typ, title, message, relatedID string) *domain.Notification {
	return &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		RelatedID: &relatedID,
		CreatedAt: time.Now(),
	}
}
