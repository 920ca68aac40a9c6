package marketplace

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/utaskhq/utask/internal/domain"
	"github.com/utaskhq/utask/internal/httpx"
)

// ListFavorites returns the acting user's favorited services.
func (h *Handler) ListFavorites(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	favorites, err := h.store.ListFavorites(c.Request().Context(), uid)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": favorites})
}

// AddFavorite bookmarks a service for the acting user.
func (h *Handler) AddFavorite(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	var req struct {
		ServiceID string `json:"service_id"`
	}
	if err := c.Bind(&req); err != nil || req.ServiceID == "" {
		return httpx.Error(c, domain.E(domain.ErrValidation, "service_id is required"))
	}

	ctx := c.Request().Context()
	if _, err := h.store.GetService(ctx, req.ServiceID); err != nil {
		return httpx.Error(c, err)
	}
	if err := h.store.AddFavorite(ctx, uid, req.ServiceID); err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// RemoveFavorite drops a service from the acting user's favorites.
func (h *Handler) RemoveFavorite(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	if err := h.store.RemoveFavorite(c.Request().Context(), uid, c.Param("serviceId")); err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
