package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/utaskhq/utask/internal/domain"
	"github.com/utaskhq/utask/internal/httpx"
)

// Store is the persistence surface the auth handlers need.
type Store interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// Alerter enqueues the welcome email after registration.
type Alerter interface {
	EnqueueWelcomeEmail(userID, email, name string) error
}

type Handler struct {
	store  Store
	secret string
	alerts Alerter
}

func NewHandler(store Store, secret string, alerts Alerter) *Handler {
	return &Handler{store: store, secret: secret, alerts: alerts}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// Register creates a user account and returns it with a session token.
func (h *Handler) Register(c echo.Context) error {
	req := new(RegisterRequest)
	if err := c.Bind(req); err != nil {
		return httpx.Error(c, domain.E(domain.ErrValidation, "invalid request body"))
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return httpx.Error(c, domain.E(domain.ErrValidation, "name, email and password are required"))
	}
	if err := ValidateEmail(req.Email); err != nil {
		return httpx.Error(c, err)
	}
	if err := ValidatePassword(req.Password); err != nil {
		return httpx.Error(c, err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return httpx.Error(c, err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		City:         req.City,
		State:        req.State,
	}
	if err := h.store.CreateUser(c.Request().Context(), user); err != nil {
		return httpx.Error(c, err)
	}

	token, err := GenerateToken(h.secret, user.ID, user.Email)
	if err != nil {
		return httpx.Error(c, err)
	}

	if h.alerts != nil {
		if err := h.alerts.EnqueueWelcomeEmail(user.ID, user.Email, user.Name); err != nil {
			zap.S().Warnw("welcome email enqueue failed", "user_id", user.ID, "error", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user, "token": token})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns the user with a fresh token.
func (h *Handler) Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return httpx.Error(c, domain.E(domain.ErrValidation, "invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return httpx.Error(c, domain.E(domain.ErrValidation, "email and password are required"))
	}

	user, err := h.store.GetUserByEmail(c.Request().Context(), req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "invalid credentials"))
	}
	if err != nil {
		return httpx.Error(c, err)
	}
	if !CheckPassword(user.PasswordHash, req.Password) {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "invalid credentials"))
	}

	token, err := GenerateToken(h.secret, user.ID, user.Email)
	if err != nil {
		return httpx.Error(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": token})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c echo.Context) error {
	uid, ok := httpx.UserID(c)
	if !ok {
		return httpx.Error(c, domain.E(domain.ErrUnauthorized, "unauthorized"))
	}

	user, err := h.store.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
