package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utaskhq/utask/internal/domain"
)

type fakeUserStore struct {
	users   map[string]*domain.User // keyed by email
	byEmail error                   // forced error for GetUserByEmail
}

func (f *fakeUserStore) CreateUser(_ context.Context, u *domain.User) error {
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.byEmail != nil {
		return nil, f.byEmail
	}
	u, ok := f.users[email]
	if !ok {
		return nil, domain.E(domain.ErrNotFound, "user not found")
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.E(domain.ErrNotFound, "user not found")
}

func loginRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	return rec
}

func TestLoginSuccess(t *testing.T) {
	hash, err := HashPassword("sup3rsecret")
	require.NoError(t, err)
	store := &fakeUserStore{users: map[string]*domain.User{
		"alice@example.com": {ID: "u1", Email: "alice@example.com", PasswordHash: hash},
	}}
	h := NewHandler(store, testSecret, nil)

	rec := loginRequest(t, h, `{"email":"alice@example.com","password":"sup3rsecret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	store := &fakeUserStore{users: map[string]*domain.User{}}
	h := NewHandler(store, testSecret, nil)

	rec := loginRequest(t, h, `{"email":"nobody@example.com","password":"sup3rsecret"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	hash, err := HashPassword("sup3rsecret")
	require.NoError(t, err)
	store := &fakeUserStore{users: map[string]*domain.User{
		"alice@example.com": {ID: "u1", Email: "alice@example.com", PasswordHash: hash},
	}}
	h := NewHandler(store, testSecret, nil)

	rec := loginRequest(t, h, `{"email":"alice@example.com","password":"wrongpass1"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginStoreFailureIsNotUnauthorized(t *testing.T) {
	store := &fakeUserStore{
		users:   map[string]*domain.User{},
		byEmail: errors.New("dial tcp: connection refused"),
	}
	h := NewHandler(store, testSecret, nil)

	rec := loginRequest(t, h, `{"email":"alice@example.com","password":"sup3rsecret"}`)

	// An outage must not look like bad credentials.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "invalid credentials")
}
