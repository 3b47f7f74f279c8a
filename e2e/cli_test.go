package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majnugame/majnu-go/internal/api"
	"github.com/majnugame/majnu-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	idFile     string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "majnu-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/majnu")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp identity file path; the server mints the ID on first use
	idFile := filepath.Join(t.TempDir(), "user-id")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		idFile:     idFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--user-id-file", r.idFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	projectRoot := findProjectRoot(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{
		DomainsPath: filepath.Join(projectRoot, "data/domains.json"),
		HintsPath:   filepath.Join(projectRoot, "data/hints.json"),
		Logger:      logger,
	})
	require.NoError(t, err)

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

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/status")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing

type gameResponse struct {
	ID              string   `json:"id"`
	Domain          string   `json:"domain"`
	Mode            string   `json:"mode"`
	Masked          string   `json:"masked"`
	Hint            string   `json:"hint"`
	WrongGuesses    int      `json:"wrong_guesses"`
	MaxWrongGuesses int      `json:"max_wrong_guesses"`
	Status          string   `json:"status"`
	GuessedLetters  []string `json:"guessed_letters"`
	WrongLetters    []string `json:"wrong_letters"`
	Answer          string   `json:"answer"`
	Result          string   `json:"result"`
}

type settlementResponse struct {
	ScoreDelta     int  `json:"score_delta"`
	RequiresHandle bool `json:"requires_handle"`
	Stats          struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
		Score  int `json:"score"`
	} `json:"stats"`
	Achievements []struct {
		Key   string `json:"key"`
		Title string `json:"title"`
	} `json:"achievements"`
}

type guessResponse struct {
	Game       gameResponse        `json:"game"`
	IsRepeat   bool                `json:"is_repeat"`
	IsCorrect  bool                `json:"is_correct"`
	Settlement *settlementResponse `json:"settlement"`
}

type dailyResponse struct {
	DateKey    string `json:"date_key"`
	Domain     string `json:"domain"`
	Hint       string `json:"hint"`
	Pattern    string `json:"pattern"`
	WordLength int    `json:"word_length"`
	Played     bool   `json:"played"`
	GameID     string `json:"game_id"`
}

type dailyGameResponse struct {
	Game    gameResponse `json:"game"`
	Resumed bool         `json:"resumed"`
}

type handleAvailabilityResponse struct {
	Handle    string `json:"handle"`
	Available bool   `json:"available"`
}

type handleResponse struct {
	Handle string `json:"handle"`
}

type meResponse struct {
	UserID string `json:"user_id"`
	Handle string `json:"handle"`
	Stats  struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
		Score  int `json:"score"`
	} `json:"stats"`
}

type leaderboardResponse struct {
	Scope   string `json:"scope"`
	Entries []struct {
		Rank   int    `json:"rank"`
		Handle string `json:"handle"`
		Score  int    `json:"score"`
		IsYou  bool   `json:"is_you"`
	} `json:"entries"`
	Total int `json:"total"`
}

type shareLinkResponse struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Target string `json:"target"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Domains []struct {
		Key       string `json:"key"`
		WordCount int    `json:"word_count"`
	} `json:"domains"`
}

// Tests

func TestCLI_Status(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("status")
	require.NoError(t, err, "output: %s", output)

	var resp statusResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Domains)
}

func TestCLI_IdentityPersists(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("me")
	require.NoError(t, err, "output: %s", output)

	var first meResponse
	require.NoError(t, json.Unmarshal([]byte(output), &first))
	assert.NotEmpty(t, first.UserID)

	// Second run reuses the persisted identity
	output, err = cli.run("me")
	require.NoError(t, err, "output: %s", output)

	var second meResponse
	require.NoError(t, json.Unmarshal([]byte(output), &second))
	assert.Equal(t, first.UserID, second.UserID)
}

func TestCLI_WinGame(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Pin the answer so the guess sequence is deterministic
	output, err := cli.run("game", "start", "bollywood", "--word", "sholay")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "active", game.Status)
	assert.Equal(t, "______", game.Masked)
	assert.Empty(t, game.Answer, "active game must not reveal the answer")
	gameID := game.ID

	var last guessResponse
	for _, letter := range []string{"s", "h", "o", "l", "a", "y"} {
		output, err = cli.run("game", "guess", gameID, letter)
		require.NoError(t, err, "guess %s: %s", letter, output)
		require.NoError(t, json.Unmarshal([]byte(output), &last))
		assert.True(t, last.IsCorrect, "letter %s should be in the answer", letter)
	}

	assert.Equal(t, "won", last.Game.Status)
	assert.Equal(t, "sholay", last.Game.Answer)
	require.NotNil(t, last.Settlement)
	assert.Equal(t, 3, last.Settlement.ScoreDelta)
	assert.True(t, last.Settlement.RequiresHandle)

	// Guessing after the game is over is rejected
	output, err = cli.run("game", "guess", gameID, "z")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "finished")
}

func TestCLI_GiveUp(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "start", "bollywood", "--word", "lagaan")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	output, err = cli.run("game", "give-up", game.ID)
	require.NoError(t, err, "output: %s", output)

	var result guessResponse
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "lost", result.Game.Status)
	assert.Equal(t, "lagaan", result.Game.Answer)
	require.NotNil(t, result.Settlement)
	assert.Equal(t, -1, result.Settlement.ScoreDelta)
}

func TestCLI_HandleAndLeaderboard(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Check availability before claiming
	output, err := cli.run("handle", "check", "MajnuBhai")
	require.NoError(t, err, "output: %s", output)

	var avail handleAvailabilityResponse
	require.NoError(t, json.Unmarshal([]byte(output), &avail))
	assert.True(t, avail.Available)

	// Claim
	output, err = cli.run("handle", "claim", "@MajnuBhai")
	require.NoError(t, err, "output: %s", output)

	var claimed handleResponse
	require.NoError(t, json.Unmarshal([]byte(output), &claimed))
	assert.Equal(t, "MajnuBhai", claimed.Handle)

	// Handles are locked once set
	output, err = cli.run("handle", "claim", "SomeoneElse")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "once set")

	// Win a game so the leaderboard has a row
	output, err = cli.run("game", "start", "bollywood", "--word", "dangal")
	require.NoError(t, err, "output: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	for _, letter := range []string{"d", "a", "n", "g", "l"} {
		output, err = cli.run("game", "guess", game.ID, letter)
		require.NoError(t, err, "guess %s: %s", letter, output)
	}

	output, err = cli.run("leaderboard", "--scope", "daily")
	require.NoError(t, err, "output: %s", output)

	var board leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.NotEmpty(t, board.Entries)
	assert.Equal(t, "MajnuBhai", board.Entries[0].Handle)
	assert.True(t, board.Entries[0].IsYou)
}

func TestCLI_Daily(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("daily", "show")
	require.NoError(t, err, "output: %s", output)

	var daily dailyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &daily))
	assert.NotEmpty(t, daily.DateKey)
	assert.NotEmpty(t, daily.Domain)
	assert.False(t, daily.Played)

	// Start the attempt
	output, err = cli.run("daily", "play")
	require.NoError(t, err, "output: %s", output)

	var started dailyGameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &started))
	assert.False(t, started.Resumed)
	assert.Equal(t, "daily", started.Game.Mode)

	// Playing again resumes the same game
	output, err = cli.run("daily", "play")
	require.NoError(t, err, "output: %s", output)

	var resumed dailyGameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resumed))
	assert.True(t, resumed.Resumed)
	assert.Equal(t, started.Game.ID, resumed.Game.ID)
}

func TestCLI_ShareLink(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("share", "https://example.com/result/42")
	require.NoError(t, err, "output: %s", output)

	var link shareLinkResponse
	require.NoError(t, json.Unmarshal([]byte(output), &link))
	assert.Len(t, link.ID, 6)
	assert.Equal(t, "/api/s/"+link.ID, link.Path)

	// Invalid target is rejected
	output, err = cli.run("share", "ftp://example.com/file")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "http")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Unknown domain
	output, err := cli.run("game", "start", "nope")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "domain")

	// Unknown game
	output, err = cli.run("game", "get", "nonexistent")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Invalid guess
	output, err = cli.run("game", "start", "bollywood", "--word", "sholay")
	require.NoError(t, err, "output: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	output, err = cli.run("game", "guess", game.ID, "!")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "letter")
}
