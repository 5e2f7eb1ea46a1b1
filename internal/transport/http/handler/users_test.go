package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hobbs-it/helpdesk-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockDirectory struct{ mock.Mock }

func (m *mockDirectory) List(ctx context.Context) ([]domain.VerifiedUser, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VerifiedUser), args.Error(1)
}

func (m *mockDirectory) Delete(ctx context.Context, chatID int64) error {
	return m.Called(ctx, chatID).Error(0)
}

type mockMessageLog struct{ mock.Mock }

func (m *mockMessageLog) ListByChat(ctx context.Context, chatID int64, limit int32) ([]domain.MessageLogEntry, error) {
	args := m.Called(ctx, chatID, limit)
	return args.Get(0).([]domain.MessageLogEntry), args.Error(1)
}

// newRouter mounts the handlers under the same paths the real router uses,
// so chi URL params resolve.
func newRouter(userH *UserHandler, msgH *MessageHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/verified-users", userH.List)
	r.Delete("/v1/verified-users/{chatID}", userH.Delete)
	r.Get("/v1/messages/{chatID}", msgH.ListByChat)
	return r
}

// --- tests ---

func TestUserHandler_List(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("List", mock.Anything).Return([]domain.VerifiedUser{
		{ChatID: 42, Email: "ivanov@kurganmk.ru", CreatedAt: time.Now()},
	}, nil)

	r := newRouter(NewUserHandler(dir), NewMessageHandler(new(mockMessageLog)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/verified-users", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var env VerifiedUsersEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, int64(42), env.Data[0].ChatID)
	assert.Equal(t, "ivanov@kurganmk.ru", env.Data[0].Email)
	dir.AssertExpectations(t)
}

func TestUserHandler_List_StoreError(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("List", mock.Anything).Return([]domain.VerifiedUser(nil), errors.New("dynamo down"))

	r := newRouter(NewUserHandler(dir), NewMessageHandler(new(mockMessageLog)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/verified-users", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUserHandler_Delete(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("Delete", mock.Anything, int64(42)).Return(nil)

	r := newRouter(NewUserHandler(dir), NewMessageHandler(new(mockMessageLog)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/verified-users/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	dir.AssertExpectations(t)
}

func TestUserHandler_Delete_BadChatID(t *testing.T) {
	dir := new(mockDirectory)

	r := newRouter(NewUserHandler(dir), NewMessageHandler(new(mockMessageLog)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/verified-users/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	dir.AssertNotCalled(t, "Delete")
}

func TestMessageHandler_ListByChat(t *testing.T) {
	log := new(mockMessageLog)
	log.On("ListByChat", mock.Anything, int64(42), int32(50)).Return([]domain.MessageLogEntry{
		{ChatID: 42, EntryID: "01HZX", Text: "привет", CreatedAt: time.Now()},
	}, nil)

	r := newRouter(NewUserHandler(new(mockDirectory)), NewMessageHandler(log))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/messages/42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var env MessagesEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "привет", env.Data[0].Text)
	log.AssertExpectations(t)
}

func TestMessageHandler_ListByChat_CustomLimit(t *testing.T) {
	log := new(mockMessageLog)
	log.On("ListByChat", mock.Anything, int64(42), int32(10)).Return([]domain.MessageLogEntry{}, nil)

	r := newRouter(NewUserHandler(new(mockDirectory)), NewMessageHandler(log))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/messages/42?limit=10", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	log.AssertExpectations(t)
}

func TestMessageHandler_ListByChat_BadLimit(t *testing.T) {
	log := new(mockMessageLog)

	r := newRouter(NewUserHandler(new(mockDirectory)), NewMessageHandler(log))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/messages/42?limit=0", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	log.AssertNotCalled(t, "ListByChat")
}
