package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/campuswall/backend/internal/models"
	"github.com/campuswall/backend/internal/ratelimit"
	"github.com/campuswall/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatRepository keeps messages in memory
type fakeChatRepository struct {
	mu       sync.Mutex
	messages []models.ChatMessage
}

func (f *fakeChatRepository) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeChatRepository) GetRecentMessages(ctx context.Context, limit int64) ([]models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ChatMessage, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

// fakeRateStore is an in-memory ratelimit.Store
type fakeRateStore struct {
	mu      sync.Mutex
	records map[string]*models.AnonymousRateRecord
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{records: make(map[string]*models.AnonymousRateRecord)}
}

func (s *fakeRateStore) Find(ctx context.Context, ip string) (*models.AnonymousRateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[ip]
	if !ok {
		return nil, ratelimit.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *fakeRateStore) Create(ctx context.Context, record *models.AnonymousRateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.records[record.IP] = &copied
	return nil
}

func (s *fakeRateStore) ResetIfStale(ctx context.Context, ip string, cutoff, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[ip]
	if !ok || record.LastReset.After(cutoff) {
		return false, nil
	}
	record.Count = 0
	record.LastReset = now
	return true, nil
}

func (s *fakeRateStore) Increment(ctx context.Context, ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[ip]
	if !ok {
		return ratelimit.ErrNotFound
	}
	record.Count++
	return nil
}

func newChatTestServer() (*echo.Echo, *ChatHandler, *fakeChatRepository) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	chatRepo := &fakeChatRepository{}
	handler := NewChatHandler(chatRepo, ratelimit.New(newFakeRateStore()))
	return e, handler, chatRepo
}

func postChatMessage(e *echo.Echo, handler *ChatHandler, ip, alias, body string) *httptest.ResponseRecorder {
	payload := fmt.Sprintf(`{"alias":%q,"body":%q}`, alias, body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.RemoteAddr = ip + ":51234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler.SendMessage(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestSendMessage_FlaggedContentStoredVerbatim(t *testing.T) {
	e, handler, chatRepo := newChatTestServer()

	rec := postChatMessage(e, handler, "10.0.0.5", "nightowl", "that exam was stupid hard")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, chatRepo.messages, 1)
	assert.Equal(t, "nightowl", chatRepo.messages[0].Alias)
	// Flagged words are surfaced to moderators, not masked.
	assert.Equal(t, "that exam was stupid hard", chatRepo.messages[0].Body)
}

func TestSendMessage_BlockedContentRejected(t *testing.T) {
	e, handler, chatRepo := newChatTestServer()

	rec := postChatMessage(e, handler, "10.0.0.5", "nightowl", "you should just ky s already")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "Your message contains prohibited content and was not sent.", response["error"])
	assert.Empty(t, chatRepo.messages, "blocked messages must never be stored")
}

func TestSendMessage_EleventhMessageLimited(t *testing.T) {
	e, handler, chatRepo := newChatTestServer()

	for i := 0; i < ratelimit.MessageLimit; i++ {
		rec := postChatMessage(e, handler, "10.0.0.5", "nightowl", fmt.Sprintf("message number %d", i+1))
		require.Equal(t, http.StatusCreated, rec.Code, "message %d should be accepted", i+1)
	}

	rec := postChatMessage(e, handler, "10.0.0.5", "nightowl", "one more")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "Daily message limit reached. Register for unlimited access.", response["error"])
	assert.Equal(t, float64(0), response["messagesRemaining"])
	assert.Len(t, chatRepo.messages, ratelimit.MessageLimit)
}

func TestSendMessage_LimitIsPerIP(t *testing.T) {
	e, handler, _ := newChatTestServer()

	for i := 0; i < ratelimit.MessageLimit; i++ {
		rec := postChatMessage(e, handler, "10.0.0.5", "nightowl", "hello from the library")
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := postChatMessage(e, handler, "10.0.0.6", "earlybird", "hello from the quad")
	assert.Equal(t, http.StatusCreated, rec.Code, "a different IP keeps its own quota")
}

func TestSendMessage_ReportsRemainingCount(t *testing.T) {
	e, handler, _ := newChatTestServer()

	rec := postChatMessage(e, handler, "10.0.0.5", "nightowl", "first message")
	require.Equal(t, http.StatusCreated, rec.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			MessagesRemaining int `json:"messagesRemaining"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, ratelimit.MessageLimit-1, response.Data.MessagesRemaining)
}

func TestSendMessage_RejectsInvalidPayload(t *testing.T) {
	e, handler, chatRepo := newChatTestServer()

	rec := postChatMessage(e, handler, "10.0.0.5", "x", "missing a long enough alias")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, chatRepo.messages)
}

func TestGetMessages_ReturnsStored(t *testing.T) {
	e, handler, chatRepo := newChatTestServer()
	chatRepo.messages = []models.ChatMessage{
		{Alias: "nightowl", Body: "anyone in the library?"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/messages", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.GetMessages(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "anyone in the library?")
}
