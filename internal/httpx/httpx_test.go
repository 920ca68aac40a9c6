package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utaskhq/utask/internal/domain"
)

func newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.E(domain.ErrValidation, "bad input"), http.StatusBadRequest},
		{"invalid state", domain.E(domain.ErrInvalidState, "wrong state"), http.StatusBadRequest},
		{"unauthorized", domain.E(domain.ErrUnauthorized, "no token"), http.StatusUnauthorized},
		{"forbidden", domain.E(domain.ErrForbidden, "not yours"), http.StatusForbidden},
		{"not found", domain.E(domain.ErrNotFound, "gone"), http.StatusNotFound},
		{"conflict", domain.E(domain.ErrConflict, "duplicate"), http.StatusConflict},
		{"unknown", errors.New("pg: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext("/")
			require.NoError(t, Error(c, tc.err))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestErrorHidesInternalDetails(t *testing.T) {
	c, rec := newContext("/")
	require.NoError(t, Error(c, errors.New("dial tcp 10.0.0.5:5432: timeout")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestPageDefaultsAndBounds(t *testing.T) {
	c, _ := newContext("/")
	limit, offset := Page(c)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	c, _ = newContext("/?limit=50&offset=10")
	limit, offset = Page(c)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 10, offset)

	// Oversized limits clamp to the max; bad offsets fall back to 0.
	c, _ = newContext("/?limit=500&offset=-3")
	limit, offset = Page(c)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 0, offset)

	c, _ = newContext("/?limit=-1")
	limit, _ = Page(c)
	assert.Equal(t, 20, limit)

	c, _ = newContext("/?limit=abc&offset=xyz")
	limit, offset = Page(c)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
}

func TestUserID(t *testing.T) {
	c, _ := newContext("/")
	_, ok := UserID(c)
	assert.False(t, ok)

	c.Set("user_id", "u1")
	uid, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, "u1", uid)
}
