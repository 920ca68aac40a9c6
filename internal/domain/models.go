package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service statuses. A service accepts proposals only while pending.
const (
	ServicePending    = "pending"
	ServiceInProgress = "in_progress"
	ServiceCompleted  = "completed"
	ServiceCancelled  = "cancelled"
)

// Proposal statuses. Accepted and rejected are terminal; counter allows a
// single owner-side revision round.
const (
	ProposalPending  = "pending"
	ProposalAccepted = "accepted"
	ProposalRejected = "rejected"
	ProposalCounter  = "counter"
)

// Notification types emitted by the proposal workflow.
const (
	NotifNewProposal      = "new_proposal"
	NotifProposalAccepted = "proposal_accepted"
	NotifProposalRejected = "proposal_rejected"
	NotifCounterProposal  = "counter_proposal"
)

// Wallet transaction types.
const (
	TxCredit = "credit"
	TxDebit  = "debit"
)

type User struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	City         string          `json:"city,omitempty"`
	State        string          `json:"state,omitempty"`
	AvatarURL    string          `json:"avatar_url"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// UserSummary is the public slice of a user embedded in services and
// proposals.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

type Service struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Date        time.Time       `json:"date"`
	Location    string          `json:"location,omitempty"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`

	Category  *Category    `json:"category,omitempty"`
	User      *UserSummary `json:"user,omitempty"`
	Proposals []Proposal   `json:"proposals,omitempty"`
	// Distance in meters, set only by nearby search.
	Distance *float64 `json:"distance,omitempty"`
}

type Proposal struct {
	ID         string          `json:"id"`
	ServiceID  string          `json:"service_id"`
	ProviderID string          `json:"provider_id"`
	Price      decimal.Decimal `json:"price"`
	Message    string          `json:"message"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`

	Provider *UserSummary `json:"provider,omitempty"`

	// Parent service fields loaded alongside the proposal for workflow
	// checks. Never serialized.
	ServiceOwnerID string `json:"-"`
	ServiceTitle   string `json:"-"`
	ServiceStatus  string `json:"-"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID *string   `json:"related_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Pagination echoes back the window applied to a listing.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}
