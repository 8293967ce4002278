package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vocabdeck/vocabdeck/internal/api"
	"github.com/vocabdeck/vocabdeck/internal/auth"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
	"github.com/vocabdeck/vocabdeck/internal/services"
	"github.com/vocabdeck/vocabdeck/internal/testutil/mocks"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type testEnv struct {
	handler http.Handler
	tokens  *auth.TokenManager
	users   *mocks.MockUserRepository
	cards   *mocks.MockCardRepository
	reviews *mocks.MockReviewRepository
	tags    *mocks.MockTagRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		tokens:  auth.NewTokenManager("test-secret-do-not-use", time.Hour),
		users:   new(mocks.MockUserRepository),
		cards:   new(mocks.MockCardRepository),
		reviews: new(mocks.MockReviewRepository),
		tags:    new(mocks.MockTagRepository),
	}

	clock := fixedClock{now: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)}
	srv := api.NewServer(
		services.NewUserService(env.users, env.tokens),
		services.NewCardService(env.users, env.cards, clock),
		services.NewReviewService(env.users, env.cards, env.reviews, clock, 3),
		services.NewTagService(env.users, env.tags),
		nil,
		env.tokens,
	)
	env.handler = srv.Routes()
	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) authToken(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.Generate("alice")
	require.NoError(t, err)
	return token
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func aliceCard() *models.Card {
	return &models.Card{
		ID:         42,
		UserID:     1,
		Front:      "der Hund",
		Back:       "the dog",
		EaseFactor: 2.5,
		NextReview: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Tags:       []models.Tag{},
	}
}

func TestReviewEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	env.cards.On("Get", mock.Anything, int64(42)).Return(aliceCard(), nil)
	env.reviews.On("Record", mock.Anything, mock.AnythingOfType("models.Card"), int64(0), mock.AnythingOfType("models.ReviewHistory")).
		Return(int64(7), nil)

	rec := env.request(t, http.MethodPost, "/api/review",
		map[string]any{"card_id": 42, "quality": 5}, env.authToken(t))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var card models.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	assert.Equal(t, 1, card.Repetitions)
	assert.Equal(t, 1, card.IntervalDays)
	assert.InDelta(t, 2.6, card.EaseFactor, 0.0001)
}

func TestReviewEndpoint_QualityZeroAccepted(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	env.cards.On("Get", mock.Anything, int64(42)).Return(aliceCard(), nil)
	env.reviews.On("Record", mock.Anything, mock.AnythingOfType("models.Card"), int64(0), mock.AnythingOfType("models.ReviewHistory")).
		Return(int64(7), nil)

	rec := env.request(t, http.MethodPost, "/api/review",
		map[string]any{"card_id": 42, "quality": 0}, env.authToken(t))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestReviewEndpoint_InvalidQuality(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []map[string]any{
		{"card_id": 42, "quality": 6},
		{"card_id": 42, "quality": -1},
		{"card_id": 42},
	} {
		rec := env.request(t, http.MethodPost, "/api/review", body, env.authToken(t))
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	}
	env.cards.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReviewEndpoint_Conflict(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	env.cards.On("Get", mock.Anything, int64(42)).Return(aliceCard(), nil)
	env.reviews.On("Record", mock.Anything, mock.AnythingOfType("models.Card"), int64(0), mock.AnythingOfType("models.ReviewHistory")).
		Return(int64(0), repository.ErrConflict)

	rec := env.request(t, http.MethodPost, "/api/review",
		map[string]any{"card_id": 42, "quality": 5}, env.authToken(t))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))
}

func TestReviewEndpoint_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/review",
		map[string]any{"card_id": 42, "quality": 5}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))

	rec = env.request(t, http.MethodPost, "/api/review",
		map[string]any{"card_id": 42, "quality": 5}, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewEndpoint_ForeignCard(t *testing.T) {
	env := newTestEnv(t)
	card := aliceCard()
	card.UserID = 2
	env.users.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	env.cards.On("Get", mock.Anything, int64(42)).Return(card, nil)

	rec := env.request(t, http.MethodPost, "/api/review",
		map[string]any{"card_id": 42, "quality": 5}, env.authToken(t))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
}

func TestSignupAndLoginEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	env.users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	env.users.On("Insert", mock.Anything, mock.AnythingOfType("models.User")).Return(int64(1), nil)

	rec := env.request(t, http.MethodPost, "/api/auth/signup", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct horse",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "alice", result.Username)

	// The issued token passes the auth middleware.
	subject, err := env.tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestSignupEndpoint_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/signup", map[string]any{
		"username": "alice",
		"email":    "not-an-email",
		"password": "correct horse",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))

	rec = env.request(t, http.MethodPost, "/api/auth/signup", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCardEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	env.cards.On("Insert", mock.Anything, mock.AnythingOfType("models.Card")).Return(int64(10), nil)
	env.cards.On("Get", mock.Anything, int64(10)).Return(&models.Card{ID: 10, UserID: 1, Front: "der Hund", Back: "the dog"}, nil)

	rec := env.request(t, http.MethodPost, "/api/v1/vocabulary/", map[string]any{
		"front":              "der Hund",
		"back":               "the dog",
		"language_selection": "EN_DE",
	}, env.authToken(t))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateCardEndpoint_BadLanguage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/vocabulary/", map[string]any{
		"front":              "der Hund",
		"back":               "the dog",
		"language_selection": "KLINGON",
	}, env.authToken(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestListCardsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	env.cards.On("List", mock.Anything, mock.AnythingOfType("models.CardFilter")).
		Return([]models.LeanCard{{ID: 1, Front: "der Hund", Back: "the dog"}}, nil)

	rec := env.request(t, http.MethodGet, "/api/v1/vocabulary/?search=hund&sort_by=front", nil, env.authToken(t))

	require.Equal(t, http.StatusOK, rec.Code)
	var cards []models.LeanCard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "der Hund", cards[0].Front)
}

func TestDeleteCardEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	env.cards.On("Get", mock.Anything, int64(99)).Return(nil, nil)

	rec := env.request(t, http.MethodDelete, "/api/v1/vocabulary/99", nil, env.authToken(t))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestDueCountEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	env.cards.On("CountDue", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(7, nil)

	rec := env.request(t, http.MethodGet, "/api/v1/vocabulary/due/count", nil, env.authToken(t))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body["count"])
}

func TestTagEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	env.tags.On("FindByNameAndUser", mock.Anything, "verbs", int64(1)).Return(nil, nil)
	env.tags.On("Insert", mock.Anything, mock.AnythingOfType("models.Tag")).Return(int64(5), nil)

	rec := env.request(t, http.MethodPost, "/api/tags/", map[string]any{
		"name":  "verbs",
		"color": "#ff0000",
	}, env.authToken(t))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tag models.Tag
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tag))
	assert.Equal(t, int64(5), tag.ID)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
