package alerts

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Processor consumes email tasks off Redis and delivers them through the
// mailer. It runs inside the API process; a dedicated worker binary could
// reuse it unchanged.
type Processor struct {
	server *asynq.Server
	mailer *Mailer
}

func NewProcessor(redisAddr string, mailer *Mailer) *Processor {
	server := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails": 10,
		},
	})
	return &Processor{server: server, mailer: mailer}
}

// Start runs the worker loop in the background.
func (p *Processor) Start() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcomeEmail, p.handleWelcomeEmail)
	mux.HandleFunc(TaskProposalReceived, p.handleProposalEmail)
	mux.HandleFunc(TaskProposalAccepted, p.handleProposalEmail)
	mux.HandleFunc(TaskProposalRejected, p.handleProposalEmail)
	mux.HandleFunc(TaskCounterOffer, p.handleProposalEmail)

	go func() {
		if err := p.server.Run(mux); err != nil {
			zap.S().Errorw("email worker stopped", "error", err)
		}
	}()
}

func (p *Processor) Shutdown() {
	p.server.Shutdown()
}

func (p *Processor) handleWelcomeEmail(_ context.Context, t *asynq.Task) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	if err := p.mailer.Send(payload.Envelope.To, payload.Envelope.Subject, payload.Envelope.Body); err != nil {
		zap.S().Errorw("welcome email failed", "to", payload.Email, "error", err)
		return err
	}
	zap.S().Infow("welcome email sent", "to", payload.Email, "user_id", payload.UserID)
	return nil
}

func (p *Processor) handleProposalEmail(_ context.Context, t *asynq.Task) error {
	var payload ProposalEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	if err := p.mailer.Send(payload.Envelope.To, payload.Envelope.Subject, payload.Envelope.Body); err != nil {
		zap.S().Errorw("proposal email failed", "task", t.Type(), "to", payload.Email, "error", err)
		return err
	}
	zap.S().Infow("proposal email sent", "task", t.Type(), "to", payload.Email, "service", payload.ServiceTitle)
	return nil
}
