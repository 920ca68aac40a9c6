package alerts

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task type constants
const (
	TaskWelcomeEmail     = "email:welcome"
	TaskProposalReceived = "email:proposal_received"
	TaskProposalAccepted = "email:proposal_accepted"
	TaskProposalRejected = "email:proposal_rejected"
	TaskCounterOffer     = "email:counter_proposal"
)

// EmailEnvelope is the common shell of every email task.
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// ProposalEmailPayload covers the proposal lifecycle alerts: received,
// accepted, rejected and countered.
type ProposalEmailPayload struct {
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	ServiceTitle string          `json:"service_title"`
	Price        decimal.Decimal `json:"price,omitempty"`
	Envelope     EmailEnvelope   `json:"envelope"`
	SentAt       time.Time       `json:"sent_at"`
}
