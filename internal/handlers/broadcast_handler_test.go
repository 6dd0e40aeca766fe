package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/campuswall/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readKey struct {
	broadcastID uint
	sessionID   string
}

// fakeBroadcastRepository keeps broadcasts and read marks in memory. MarkRead
// mirrors the ON CONFLICT DO NOTHING upsert: marking twice leaves one row.
type fakeBroadcastRepository struct {
	mu         sync.Mutex
	broadcasts []models.Broadcast
	reads      map[readKey]bool
}

func newFakeBroadcastRepository(broadcasts ...models.Broadcast) *fakeBroadcastRepository {
	return &fakeBroadcastRepository{broadcasts: broadcasts, reads: make(map[readKey]bool)}
}

func (f *fakeBroadcastRepository) CreateBroadcast(broadcast *models.Broadcast) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	broadcast.ID = uint(len(f.broadcasts) + 1)
	f.broadcasts = append(f.broadcasts, *broadcast)
	return nil
}

func (f *fakeBroadcastRepository) Deactivate(broadcastID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.broadcasts {
		if f.broadcasts[i].ID == broadcastID {
			f.broadcasts[i].IsActive = false
		}
	}
	return nil
}

func (f *fakeBroadcastRepository) GetActive(ctx context.Context) ([]models.Broadcast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var active []models.Broadcast
	for _, b := range f.broadcasts {
		if b.IsActive {
			active = append(active, b)
		}
	}
	return active, nil
}

func (f *fakeBroadcastRepository) GetActiveUnread(ctx context.Context, sessionID string) ([]models.Broadcast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var unread []models.Broadcast
	for _, b := range f.broadcasts {
		if b.IsActive && !f.reads[readKey{b.ID, sessionID}] {
			unread = append(unread, b)
		}
	}
	return unread, nil
}

func (f *fakeBroadcastRepository) UnreadCount(ctx context.Context, sessionID string) (int, error) {
	unread, err := f.GetActiveUnread(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

func (f *fakeBroadcastRepository) MarkRead(broadcastID uint, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[readKey{broadcastID, sessionID}] = true
	return nil
}

func (f *fakeBroadcastRepository) readRowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reads)
}

func broadcastContext(e *echo.Echo, method, target, sessionID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sessionID != "" {
		c.Set("anonSession", sessionID)
	}
	return c, rec
}

func unreadCountFor(t *testing.T, e *echo.Echo, handler *BroadcastHandler, sessionID string) int {
	t.Helper()
	c, rec := broadcastContext(e, http.MethodGet, "/api/v1/broadcasts/unread-count", sessionID)
	require.NoError(t, handler.GetUnreadCount(c))
	var response struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Data.Count
}

func dismiss(e *echo.Echo, handler *BroadcastHandler, sessionID, broadcastID string) (*httptest.ResponseRecorder, error) {
	c, rec := broadcastContext(e, http.MethodPost, "/api/v1/broadcasts/"+broadcastID+"/dismiss", sessionID)
	c.SetParamNames("id")
	c.SetParamValues(broadcastID)
	return rec, handler.DismissBroadcast(c)
}

func TestGetUnreadBroadcasts_ExcludesDismissed(t *testing.T) {
	e := echo.New()
	repo := newFakeBroadcastRepository(
		models.Broadcast{ID: 1, Title: "Library hours extended", IsActive: true},
		models.Broadcast{ID: 2, Title: "Wifi maintenance tonight", IsActive: true},
		models.Broadcast{ID: 3, Title: "Old news", IsActive: false},
	)
	handler := NewBroadcastHandler(repo)

	require.NoError(t, repo.MarkRead(1, "session-a"))

	c, rec := broadcastContext(e, http.MethodGet, "/api/v1/broadcasts", "session-a")
	require.NoError(t, handler.GetUnreadBroadcasts(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Library hours extended")
	assert.Contains(t, rec.Body.String(), "Wifi maintenance tonight")
	assert.NotContains(t, rec.Body.String(), "Old news")
}

func TestDismissBroadcast_IsIdempotent(t *testing.T) {
	e := echo.New()
	repo := newFakeBroadcastRepository(
		models.Broadcast{ID: 1, Title: "Library hours extended", IsActive: true},
		models.Broadcast{ID: 2, Title: "Wifi maintenance tonight", IsActive: true},
	)
	handler := NewBroadcastHandler(repo)

	require.Equal(t, 2, unreadCountFor(t, e, handler, "session-a"))

	rec, err := dismiss(e, handler, "session-a", "1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, unreadCountFor(t, e, handler, "session-a"))

	// A second dismissal succeeds but changes nothing.
	rec, err = dismiss(e, handler, "session-a", "1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, unreadCountFor(t, e, handler, "session-a"))
	assert.Equal(t, 1, repo.readRowCount())
}

func TestUnreadCount_IsPerSession(t *testing.T) {
	e := echo.New()
	repo := newFakeBroadcastRepository(
		models.Broadcast{ID: 1, Title: "Library hours extended", IsActive: true},
	)
	handler := NewBroadcastHandler(repo)

	_, err := dismiss(e, handler, "session-a", "1")
	require.NoError(t, err)

	assert.Equal(t, 0, unreadCountFor(t, e, handler, "session-a"))
	assert.Equal(t, 1, unreadCountFor(t, e, handler, "session-b"))
}

func TestBroadcastEndpoints_RequireSession(t *testing.T) {
	e := echo.New()
	handler := NewBroadcastHandler(newFakeBroadcastRepository())

	c, _ := broadcastContext(e, http.MethodGet, "/api/v1/broadcasts", "")
	err := handler.GetUnreadBroadcasts(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
