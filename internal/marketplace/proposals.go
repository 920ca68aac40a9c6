package marketplace

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/utaskhq/utask/internal/domain"
	"github.com/utaskhq/utask/internal/httpx"
)

type proposalRequest struct {
	Price   decimal.Decimal `json:"price"`
	Message string          `json:"message"`
}

// CreateProposal submits a provider's offer against a service.
func (h *Handler) CreateProposal(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	req := new(proposalRequest)
	if err := c.Bind(req); err != nil {
		return httpx.Error(c, domain.E(domain.ErrValidation, "invalid request body"))
	}

	ctx := c.Request().Context()
	proposal, err := h.flow.Propose(ctx, c.Param("id"), uid, req.Price, req.Message)
	if err != nil {
		return httpx.Error(c, err)
	}

	if provider, err := h.store.GetUserSummary(ctx, uid); err == nil {
		proposal.Provider = provider
	}

	if h.alerts != nil {
		if name, email, err := h.store.GetUserContact(ctx, proposal.ServiceOwnerID); err == nil {
			if err := h.alerts.EnqueueProposalReceived(email, name, proposal.ServiceTitle, proposal.Price); err != nil {
				zap.S().Warnw("proposal alert enqueue failed", "proposal_id", proposal.ID, "error", err)
			}
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"proposal": proposal})
}

// ListProposals returns a service's proposals. The owner sees all of them;
// anyone else sees only their own.
func (h *Handler) ListProposals(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	ctx := c.Request().Context()
	svc, err := h.store.GetService(ctx, c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}

	var proposals []domain.Proposal
	if svc.OwnerID == uid {
		proposals, err = h.store.ListServiceProposals(ctx, svc.ID)
	} else {
		proposals, err = h.store.ListProviderProposals(ctx, svc.ID, uid)
	}
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"proposals": proposals})
}

// AcceptProposal runs the acceptance workflow on behalf of the service
// owner.
func (h *Handler) AcceptProposal(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	ctx := c.Request().Context()
	proposal, err := h.flow.Accept(ctx, c.Param("id"), uid)
	if err != nil {
		return httpx.Error(c, err)
	}

	h.alertProvider(c, proposal, func(email, name string) error {
		return h.alerts.EnqueueProposalAccepted(email, name, proposal.ServiceTitle)
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"proposal": echo.Map{"id": proposal.ID, "status": proposal.Status},
	})
}

// RejectProposal rejects a single proposal without touching its siblings.
func (h *Handler) RejectProposal(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	proposal, err := h.flow.Reject(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return httpx.Error(c, err)
	}

	h.alertProvider(c, proposal, func(email, name string) error {
		return h.alerts.EnqueueProposalRejected(email, name, proposal.ServiceTitle)
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"proposal": echo.Map{"id": proposal.ID, "status": proposal.Status},
	})
}

// CounterProposal revises price and message of a pending proposal.
func (h *Handler) CounterProposal(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	req := new(proposalRequest)
	if err := c.Bind(req); err != nil {
		return httpx.Error(c, domain.E(domain.ErrValidation, "invalid request body"))
	}

	proposal, err := h.flow.Counter(c.Request().Context(), c.Param("id"), uid, req.Price, req.Message)
	if err != nil {
		return httpx.Error(c, err)
	}

	h.alertProvider(c, proposal, func(email, name string) error {
		return h.alerts.EnqueueCounterOffer(email, name, proposal.ServiceTitle, proposal.Price)
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"proposal": echo.Map{
			"id":      proposal.ID,
			"price":   proposal.Price,
			"message": proposal.Message,
			"status":  proposal.Status,
		},
	})
}

// alertProvider sends a best-effort email alert to the proposal's provider.
func (h *Handler) alertProvider(c echo.Context, p *domain.Proposal, enqueue func(email, name string) error) {
	if h.alerts == nil {
		return
	}
	name, email, err := h.store.GetUserContact(c.Request().Context(), p.ProviderID)
	if err != nil || email == "" {
		return
	}
	if err := enqueue(email, name); err != nil {
		zap.S().Warnw("proposal alert enqueue failed", "proposal_id", p.ID, "error", err)
	}
}
