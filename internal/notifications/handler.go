package notifications

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/utaskhq/utask/internal/domain"
	"github.com/utaskhq/utask/internal/httpx"
)

// Filter narrows the notification listing.
type Filter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// Store is the persistence surface for reading and flipping notification
// read-state. Creation happens inside the proposal workflow transaction.
type Store interface {
	ListNotifications(ctx context.Context, userID string, f Filter) (items []domain.Notification, unread, total int, err error)
	GetNotification(ctx context.Context, id string) (*domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List returns the user's notifications, newest first, with the unread
// count and pagination totals.
func (h *Handler) List(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	limit, offset := httpx.Page(c)
	filter := Filter{
		UnreadOnly: c.QueryParam("unread") == "true",
		Limit:      limit,
		Offset:     offset,
	}

	items, unread, total, err := h.store.ListNotifications(c.Request().Context(), uid, filter)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": items,
		"unreadCount":   unread,
		"pagination":    domain.Pagination{Limit: limit, Offset: offset, Total: total},
	})
}

// MarkRead flips one notification to read; recipient only.
func (h *Handler) MarkRead(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	ctx := c.Request().Context()
	n, err := h.store.GetNotification(ctx, c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}
	if n.UserID != uid {
		return httpx.Error(c, domain.E(domain.ErrForbidden, "this notification belongs to another user"))
	}

	if err := h.store.MarkNotificationRead(ctx, n.ID); err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllRead flips every unread notification of the acting user.
func (h *Handler) MarkAllRead(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	if err := h.store.MarkAllNotificationsRead(c.Request().Context(), uid); err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
