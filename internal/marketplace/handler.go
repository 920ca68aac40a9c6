package marketplace

import (
	"github.com/shopspring/decimal"
)

// Alerter enqueues best-effort email alerts for proposal lifecycle events.
// Stored notifications are transactional and handled by the workflow; these
// are the out-of-band copies.
type Alerter interface {
	EnqueueProposalReceived(email, name, serviceTitle string, price decimal.Decimal) error
	EnqueueProposalAccepted(email, name, serviceTitle string) error
	EnqueueProposalRejected(email, name, serviceTitle string) error
	EnqueueCounterOffer(email, name, serviceTitle string, price decimal.Decimal) error
}

// Handler serves the marketplace routes: services, proposals, categories
// and favorites.
type Handler struct {
	store  Store
	flow   *Workflow
	alerts Alerter
}

func NewHandler(store Store, alerts Alerter) *Handler {
	return &Handler{store: store, flow: NewWorkflow(store), alerts: alerts}
}
