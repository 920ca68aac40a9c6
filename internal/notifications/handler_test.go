package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utaskhq/utask/internal/domain"
)

type fakeStore struct {
	items map[string]*domain.Notification
	read  []string
}

func (f *fakeStore) ListNotifications(_ context.Context, userID string, filter Filter) ([]domain.Notification, int, int, error) {
	var items []domain.Notification
	unread := 0
	for _, n := range f.items {
		if n.UserID != userID {
			continue
		}
		if !n.Read {
			unread++
		}
		if filter.UnreadOnly && n.Read {
			continue
		}
		items = append(items, *n)
	}
	return items, unread, len(items), nil
}

func (f *fakeStore) GetNotification(_ context.Context, id string) (*domain.Notification, error) {
	n, ok := f.items[id]
	if !ok {
		return nil, domain.E(domain.ErrNotFound, "notification not found")
	}
	cp := *n
	return &cp, nil
}

func (f *fakeStore) MarkNotificationRead(_ context.Context, id string) error {
	f.read = append(f.read, id)
	return nil
}

func (f *fakeStore) MarkAllNotificationsRead(_ context.Context, userID string) error {
	for _, n := range f.items {
		if n.UserID == userID {
			f.read = append(f.read, n.ID)
		}
	}
	return nil
}

func request(t *testing.T, h func(echo.Context) error, userID, path, paramName, paramValue string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(""))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	require.NoError(t, h(c))
	return rec
}

func TestMarkReadByRecipient(t *testing.T) {
	store := &fakeStore{items: map[string]*domain.Notification{
		"n1": {ID: "n1", UserID: "alice", Type: domain.NotifNewProposal},
	}}
	h := NewHandler(store)

	rec := request(t, h.MarkRead, "alice", "/notifications/n1/read", "id", "n1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"n1"}, store.read)
}

func TestMarkReadByOtherUserForbidden(t *testing.T) {
	store := &fakeStore{items: map[string]*domain.Notification{
		"n1": {ID: "n1", UserID: "alice", Type: domain.NotifNewProposal},
	}}
	h := NewHandler(store)

	rec := request(t, h.MarkRead, "bob", "/notifications/n1/read", "id", "n1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, store.read)
}

func TestMarkReadUnknownNotification(t *testing.T) {
	store := &fakeStore{items: map[string]*domain.Notification{}}
	h := NewHandler(store)

	rec := request(t, h.MarkRead, "alice", "/notifications/missing/read", "id", "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkReadUnauthenticated(t *testing.T) {
	h := NewHandler(&fakeStore{items: map[string]*domain.Notification{}})

	rec := request(t, h.MarkRead, "", "/notifications/n1/read", "id", "n1")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListReturnsUnreadCount(t *testing.T) {
	store := &fakeStore{items: map[string]*domain.Notification{
		"n1": {ID: "n1", UserID: "alice"},
		"n2": {ID: "n2", UserID: "alice", Read: true},
		"n3": {ID: "n3", UserID: "bob"},
	}}
	h := NewHandler(store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "alice")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Notifications []domain.Notification `json:"notifications"`
		UnreadCount   int                   `json:"unreadCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Notifications, 2)
	assert.Equal(t, 1, body.UnreadCount)
}

func TestMarkAllReadOnlyTouchesOwnRows(t *testing.T) {
	store := &fakeStore{items: map[string]*domain.Notification{
		"n1": {ID: "n1", UserID: "alice"},
		"n2": {ID: "n2", UserID: "bob"},
	}}
	h := NewHandler(store)

	rec := request(t, h.MarkAllRead, "alice", "/notifications/read-all", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"n1"}, store.read)
}
