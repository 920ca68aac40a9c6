package marketplace

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utaskhq/utask/internal/domain"
)

func favoriteRequest(t *testing.T, h func(echo.Context) error, userID, body, serviceParam string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/favorites", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	if serviceParam != "" {
		c.SetParamNames("serviceId")
		c.SetParamValues(serviceParam)
	}
	require.NoError(t, h(c))
	return rec
}

func TestAddFavorite(t *testing.T) {
	store := newFakeStore()
	store.addService("svc1", "owner", "Fix my sink", domain.ServicePending)
	h := NewHandler(store, nil)

	rec := favoriteRequest(t, h.AddFavorite, "alice", `{"service_id":"svc1"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, store.favorites["alice|svc1"])
}

func TestAddFavoriteUnknownService(t *testing.T) {
	h := NewHandler(newFakeStore(), nil)

	rec := favoriteRequest(t, h.AddFavorite, "alice", `{"service_id":"missing"}`, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddFavoriteTwiceConflicts(t *testing.T) {
	store := newFakeStore()
	store.addService("svc1", "owner", "Fix my sink", domain.ServicePending)
	store.favorites["alice|svc1"] = true
	h := NewHandler(store, nil)

	rec := favoriteRequest(t, h.AddFavorite, "alice", `{"service_id":"svc1"}`, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAddFavoriteMissingServiceID(t *testing.T) {
	h := NewHandler(newFakeStore(), nil)

	rec := favoriteRequest(t, h.AddFavorite, "alice", `{}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveFavorite(t *testing.T) {
	store := newFakeStore()
	store.addService("svc1", "owner", "Fix my sink", domain.ServicePending)
	store.favorites["alice|svc1"] = true
	h := NewHandler(store, nil)

	rec := favoriteRequest(t, h.RemoveFavorite, "alice", "", "svc1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, store.favorites["alice|svc1"])
}

func TestRemoveFavoriteNotFavorited(t *testing.T) {
	store := newFakeStore()
	store.addService("svc1", "owner", "Fix my sink", domain.ServicePending)
	h := NewHandler(store, nil)

	rec := favoriteRequest(t, h.RemoveFavorite, "alice", "", "svc1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
