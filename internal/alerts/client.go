package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// Client enqueues email alert tasks. Callers treat enqueue failures as
// best-effort: they log and move on, stored notifications are the source
// of truth.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string) *Client {
	return &Client{client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueWelcomeEmail schedules the post-registration welcome email.
func (c *Client) EnqueueWelcomeEmail(userID, email, name string) error {
	payload := WelcomeEmailPayload{
		UserID: userID,
		Name:   name,
		Email:  email,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: fmt.Sprintf("Welcome to UTASK, %s!", name),
			Body:    fmt.Sprintf("Hi %s, thanks for joining UTASK. Post a service or send your first proposal to get started.", name),
		},
		SentAt: time.Now(),
	}
	return c.enqueue(TaskWelcomeEmail, payload)
}

// EnqueueProposalReceived alerts a service owner about a new proposal.
func (c *Client) EnqueueProposalReceived(email, name, serviceTitle string, price decimal.Decimal) error {
	return c.enqueueProposal(TaskProposalReceived, email, name, serviceTitle, price,
		"You received a new proposal",
		fmt.Sprintf("Hi %s, a provider offered %s for %q. Review it in your dashboard.", name, price.StringFixed(2), serviceTitle),
	)
}

// EnqueueProposalAccepted alerts a provider that their proposal won.
func (c *Client) EnqueueProposalAccepted(email, name, serviceTitle string) error {
	return c.enqueueProposal(TaskProposalAccepted, email, name, serviceTitle, decimal.Zero,
		"Your proposal was accepted",
		fmt.Sprintf("Hi %s, your proposal for %q was accepted. The service is now in progress.", name, serviceTitle),
	)
}

// EnqueueProposalRejected alerts a provider that their proposal was turned
// down.
func (c *Client) EnqueueProposalRejected(email, name, serviceTitle string) error {
	return c.enqueueProposal(TaskProposalRejected, email, name, serviceTitle, decimal.Zero,
		"Your proposal was rejected",
		fmt.Sprintf("Hi %s, your proposal for %q was rejected by the owner.", name, serviceTitle),
	)
}

// EnqueueCounterOffer alerts a provider about an owner counter offer.
func (c *Client) EnqueueCounterOffer(email, name, serviceTitle string, price decimal.Decimal) error {
	return c.enqueueProposal(TaskCounterOffer, email, name, serviceTitle, price,
		"You received a counter offer",
		fmt.Sprintf("Hi %s, the owner of %q countered with %s.", name, serviceTitle, price.StringFixed(2)),
	)
}

func (c *Client) enqueueProposal(taskType, email, name, serviceTitle string, price decimal.Decimal, subject, body string) error {
	payload := ProposalEmailPayload{
		Email:        email,
		Name:         name,
		ServiceTitle: serviceTitle,
		Price:        price,
		Envelope:     EmailEnvelope{To: email, Subject: subject, Body: body},
		SentAt:       time.Now(),
	}
	return c.enqueue(taskType, payload)
}

func (c *Client) enqueue(taskType string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(asynq.NewTask(taskType, b), asynq.Queue("emails"))
	return err
}
