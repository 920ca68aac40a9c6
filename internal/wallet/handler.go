package wallet

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/utaskhq/utask/internal/domain"
	"github.com/utaskhq/utask/internal/httpx"
)

// recentTransactionCount is how many ledger entries the wallet summary
// embeds.
const recentTransactionCount = 5

// Store is the read-only persistence surface for the wallet. The ledger is
// append-only and nothing in this API writes to it.
type Store interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, userID, txType string, limit, offset int) ([]domain.Transaction, int, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Summary returns the cached balance with the most recent ledger entries.
func (h *Handler) Summary(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	ctx := c.Request().Context()
	balance, err := h.store.GetBalance(ctx, uid)
	if err != nil {
		return httpx.Error(c, err)
	}

	recent, _, err := h.store.ListTransactions(ctx, uid, "", recentTransactionCount, 0)
	if err != nil {
		return httpx.Error(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"balance":            balance,
		"recentTransactions": recent,
	})
}

// Transactions lists the user's ledger with optional credit/debit filter.
func (h *Handler) Transactions(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	txType := c.QueryParam("type")
	if txType != "" && txType != domain.TxCredit && txType != domain.TxDebit {
		return httpx.Error(c, domain.E(domain.ErrValidation, "type must be credit or debit"))
	}

	limit, offset := httpx.Page(c)
	items, total, err := h.store.ListTransactions(c.Request().Context(), uid, txType, limit, offset)
	if err != nil {
		return httpx.Error(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"transactions": items,
		"pagination":   domain.Pagination{Limit: limit, Offset: offset, Total: total},
	})
}
