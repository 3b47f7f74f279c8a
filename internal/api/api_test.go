package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majnugame/majnu-go/internal/api"
	"github.com/majnugame/majnu-go/internal/api/middleware"
	"github.com/majnugame/majnu-go/internal/api/response"
	"github.com/majnugame/majnu-go/internal/factory"
)

// testServer bundles the router with a cookie jar per simulated player
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	require.NoError(t, app.LoadTestDomains())

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		Clock:              app.Clock,
		UserService:        app.UserService,
		GameController:     app.GameController,
		DailyService:       app.DailyService,
		LeaderboardService: app.LeaderboardService,
		ShortLinkService:   app.ShortLinkService,
		WordsService:       app.WordsService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

// request performs one API call. A non-empty userID is sent as the identity
// cookie; the returned recorder carries any Set-Cookie from the server.
func (ts *testServer) request(method, path string, body any, userID string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: userID})
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// newIdentity registers a user through the API and returns the cookie value
func (ts *testServer) newIdentity(t *testing.T) string {
	t.Helper()

	rr := ts.request(http.MethodGet, "/api/me", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == middleware.CookieName {
			require.NotEmpty(t, cookie.Value)
			return cookie.Value
		}
	}
	t.Fatal("no identity cookie issued")
	return ""
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/status", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := decode[response.StatusResponse](t, rr)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Domains, 2)
	assert.Equal(t, "bollywood", resp.Domains[0].Key)

	// No identity cookie is minted for the status probe
	assert.Empty(t, rr.Result().Cookies())
}

func TestIdentityCookieIssuedOnce(t *testing.T) {
	ts := newTestServer(t)

	userID := ts.newIdentity(t)

	// Presenting the cookie back does not mint a new identity
	rr := ts.request(http.MethodGet, "/api/me", nil, userID)
	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode[response.MeResponse](t, rr)
	assert.Equal(t, userID, resp.UserID)
	assert.Empty(t, rr.Result().Cookies())
}

func TestPlayAndLoseGame(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{
		"domain": "bollywood",
		"word":   "heraferi",
	}, userID)
	require.Equal(t, http.StatusCreated, rr.Code)

	created := decode[response.GameResponse](t, rr)
	assert.Equal(t, "________", created.Masked)
	assert.Empty(t, created.Answer)
	assert.Equal(t, 5, created.MaxWrongGuesses)

	// One correct guess
	rr = ts.request(http.MethodPost, "/api/games/"+created.ID+"/guess", map[string]string{"letter": "h"}, userID)
	require.Equal(t, http.StatusOK, rr.Code)
	guess := decode[response.GuessResponse](t, rr)
	assert.True(t, guess.IsCorrect)
	assert.Equal(t, "h_______", guess.Game.Masked)

	// Five wrong guesses lose the game
	for _, letter := range []string{"x", "q", "z", "j", "v"} {
		rr = ts.request(http.MethodPost, "/api/games/"+created.ID+"/guess", map[string]string{"letter": letter}, userID)
		require.Equal(t, http.StatusOK, rr.Code)
		guess = decode[response.GuessResponse](t, rr)
	}

	assert.Equal(t, "lost", guess.Game.Status)
	assert.Equal(t, "heraferi", guess.Game.Answer)
	require.NotNil(t, guess.Settlement)
	assert.Equal(t, -1, guess.Settlement.ScoreDelta)
	assert.True(t, guess.Settlement.RequiresHandle)

	// Further guesses are rejected
	rr = ts.request(http.MethodPost, "/api/games/"+created.ID+"/guess", map[string]string{"letter": "e"}, userID)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestWinGame(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{
		"domain": "bollywood",
		"word":   "sholay",
	}, userID)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[response.GameResponse](t, rr)

	var guess response.GuessResponse
	for _, letter := range []string{"s", "h", "o", "l", "a", "y"} {
		rr = ts.request(http.MethodPost, "/api/games/"+created.ID+"/guess", map[string]string{"letter": letter}, userID)
		require.Equal(t, http.StatusOK, rr.Code)
		guess = decode[response.GuessResponse](t, rr)
	}

	assert.Equal(t, "won", guess.Game.Status)
	require.NotNil(t, guess.Settlement)
	assert.Equal(t, 3, guess.Settlement.ScoreDelta)
	require.Len(t, guess.Settlement.Achievements, 1)
	assert.Equal(t, "First Blood", guess.Settlement.Achievements[0].Title)
}

func TestGamesAreScopedToTheirOwner(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.newIdentity(t)
	stranger := ts.newIdentity(t)

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"domain": "bollywood"}, owner)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[response.GameResponse](t, rr)

	rr = ts.request(http.MethodGet, "/api/games/"+created.ID, nil, stranger)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodPost, "/api/games/"+created.ID+"/guess", map[string]string{"letter": "a"}, stranger)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInvalidGuess(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"domain": "bollywood"}, userID)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[response.GameResponse](t, rr)

	rr = ts.request(http.MethodPost, "/api/games/"+created.ID+"/guess", map[string]string{"letter": "ab"}, userID)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_LETTER")
}

func TestUnknownDomain(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"domain": "hollywood"}, userID)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "UNKNOWN_DOMAIN")
}

func TestGiveUp(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"domain": "bollywood"}, userID)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[response.GameResponse](t, rr)

	rr = ts.request(http.MethodPost, "/api/games/"+created.ID+"/give-up", nil, userID)
	require.Equal(t, http.StatusOK, rr.Code)
	guess := decode[response.GuessResponse](t, rr)
	assert.Equal(t, "lost", guess.Game.Status)
	assert.NotEmpty(t, guess.Game.Answer)
	require.NotNil(t, guess.Settlement)
	assert.Equal(t, -1, guess.Settlement.ScoreDelta)
}

func TestDailyPuzzle(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)

	rr := ts.request(http.MethodGet, "/api/daily", nil, userID)
	require.Equal(t, http.StatusOK, rr.Code)
	daily := decode[response.DailyResponse](t, rr)
	assert.Equal(t, "2026-08-29", daily.DateKey)
	assert.NotEmpty(t, daily.Pattern)
	assert.False(t, daily.Played)

	// Start the attempt
	rr = ts.request(http.MethodPost, "/api/daily/game", nil, userID)
	require.Equal(t, http.StatusCreated, rr.Code)
	started := decode[response.DailyGameResponse](t, rr)
	assert.False(t, started.Resumed)
	assert.Equal(t, "daily", started.Game.Mode)

	// Starting again the same day resumes
	rr = ts.request(http.MethodPost, "/api/daily/game", nil, userID)
	require.Equal(t, http.StatusOK, rr.Code)
	resumed := decode[response.DailyGameResponse](t, rr)
	assert.True(t, resumed.Resumed)
	assert.Equal(t, started.Game.ID, resumed.Game.ID)

	// The daily view now reports the attempt
	rr = ts.request(http.MethodGet, "/api/daily", nil, userID)
	require.Equal(t, http.StatusOK, rr.Code)
	daily = decode[response.DailyResponse](t, rr)
	assert.True(t, daily.Played)
	assert.Equal(t, started.Game.ID, daily.GameID)

	// A finished attempt cannot be restarted the same day
	rr = ts.request(http.MethodPost, "/api/games/"+started.Game.ID+"/give-up", nil, userID)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/daily/game", nil, userID)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "DAILY_COMPLETED")
}

func TestHandleLifecycle(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)

	rr := ts.request(http.MethodGet, "/api/handle?handle=majnubhai", nil, userID)
	require.Equal(t, http.StatusOK, rr.Code)
	avail := decode[response.HandleAvailabilityResponse](t, rr)
	assert.True(t, avail.Available)

	rr = ts.request(http.MethodPost, "/api/handle", map[string]string{"handle": "@majnubhai"}, userID)
	require.Equal(t, http.StatusOK, rr.Code)
	claimed := decode[response.HandleResponse](t, rr)
	assert.Equal(t, "majnubhai", claimed.Handle)

	// Taken now, case-insensitively
	other := ts.newIdentity(t)
	rr = ts.request(http.MethodPost, "/api/handle", map[string]string{"handle": "MajnuBhai"}, other)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "HANDLE_TAKEN")

	// Locked for the owner
	rr = ts.request(http.MethodPost, "/api/handle", map[string]string{"handle": "newname"}, userID)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "HANDLE_LOCKED")

	rr = ts.request(http.MethodPost, "/api/handle", map[string]string{"handle": "x"}, other)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLeaderboard(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)

	rr := ts.request(http.MethodPost, "/api/handle", map[string]string{"handle": "winner"}, userID)
	require.Equal(t, http.StatusOK, rr.Code)

	// Win a game to get on the board
	rr = ts.request(http.MethodPost, "/api/games", map[string]string{
		"domain": "bollywood",
		"word":   "sholay",
	}, userID)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[response.GameResponse](t, rr)
	for _, letter := range []string{"s", "h", "o", "l", "a", "y"} {
		rr = ts.request(http.MethodPost, "/api/games/"+created.ID+"/guess", map[string]string{"letter": letter}, userID)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr = ts.request(http.MethodGet, "/api/leaderboard?scope=daily", nil, userID)
	require.Equal(t, http.StatusOK, rr.Code)
	board := decode[response.LeaderboardResponse](t, rr)
	assert.Equal(t, "daily", board.Scope)
	assert.Equal(t, 1, board.Total)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, "winner", board.Entries[0].Handle)
	assert.Equal(t, 3, board.Entries[0].Score)
	require.NotNil(t, board.You)
	assert.Equal(t, 1, board.You.Rank)

	rr = ts.request(http.MethodGet, "/api/leaderboard?scope=monthly", nil, userID)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)

	rr := ts.request(http.MethodGet, "/api/me", nil, userID)
	require.Equal(t, http.StatusOK, rr.Code)
	me := decode[response.MeResponse](t, rr)
	assert.Equal(t, userID, me.UserID)
	assert.Empty(t, me.Handle)
	assert.Zero(t, me.Stats.Score)
	assert.NotNil(t, me.Achievements)
	assert.Zero(t, me.Ranks.Daily)
}

func TestShareLinks(t *testing.T) {
	ts := newTestServer(t)
	userID := ts.newIdentity(t)
	ts.app.MockRandom.QueueString("abc123")

	rr := ts.request(http.MethodPost, "/api/share-links", map[string]string{
		"target": "https://majnu.example/result/42",
	}, userID)
	require.Equal(t, http.StatusCreated, rr.Code)
	link := decode[response.ShareLinkResponse](t, rr)
	assert.Equal(t, "abc123", link.ID)
	assert.Equal(t, "/api/s/abc123", link.Path)

	rr = ts.request(http.MethodGet, "/api/s/abc123", nil, "")
	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	assert.Equal(t, "https://majnu.example/result/42", rr.Header().Get("Location"))

	rr = ts.request(http.MethodGet, "/api/s/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodPost, "/api/share-links", map[string]string{"target": "ftp://nope"}, userID)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
