package response

import (
	"time"

	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/services/leaderboard"
	"github.com/majnugame/majnu-go/internal/services/settlement"
	"github.com/majnugame/majnu-go/internal/services/words"
)

// GameResponse is the wire shape of a game session. The answer is only
// present once the game is finished.
type GameResponse struct {
	ID              string     `json:"id"`
	Domain          string     `json:"domain"`
	Mode            string     `json:"mode"`
	Masked          string     `json:"masked"`
	Hint            string     `json:"hint"`
	WrongGuesses    int        `json:"wrong_guesses"`
	MaxWrongGuesses int        `json:"max_wrong_guesses"`
	Status          string     `json:"status"`
	GuessedLetters  []string   `json:"guessed_letters"`
	WrongLetters    []string   `json:"wrong_letters"`
	CreatedAt       time.Time  `json:"created_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	Answer          string     `json:"answer,omitempty"`
	Result          string     `json:"result,omitempty"`
}

// GameFromModel converts a game, withholding the answer while active
func GameFromModel(g *model.Game) GameResponse {
	resp := GameResponse{
		ID:              string(g.ID),
		Domain:          g.Domain,
		Mode:            string(g.Mode),
		Masked:          g.Masked,
		Hint:            g.Hint,
		WrongGuesses:    g.WrongGuessCount,
		MaxWrongGuesses: model.MaxWrongGuesses,
		Status:          string(g.Status),
		GuessedLetters:  g.GuessedLetters,
		WrongLetters:    g.WrongLetters,
		CreatedAt:       g.CreatedAt,
		FinishedAt:      g.FinishedAt,
	}
	if resp.GuessedLetters == nil {
		resp.GuessedLetters = []string{}
	}
	if resp.WrongLetters == nil {
		resp.WrongLetters = []string{}
	}
	if g.IsTerminal() {
		resp.Answer = g.Answer
		resp.Result = string(g.Result)
	}
	return resp
}

// StatsResponse is the wire shape of a user's lifetime stats
type StatsResponse struct {
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	StreakCurrent int `json:"streak_current"`
	StreakBest    int `json:"streak_best"`
	Score         int `json:"score"`
}

// StatsFromModel converts user stats
func StatsFromModel(s *model.UserStats) StatsResponse {
	return StatsResponse{
		Wins:          s.WinsAll,
		Losses:        s.LossesAll,
		StreakCurrent: s.StreakCurrent,
		StreakBest:    s.StreakBest,
		Score:         s.ScoreTotal,
	}
}

// AchievementResponse is the wire shape of an unlocked achievement
type AchievementResponse struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// AchievementFromModel converts an achievement
func AchievementFromModel(a *model.Achievement) AchievementResponse {
	return AchievementResponse{
		Key:         a.Key,
		Title:       a.Title,
		Description: a.Description,
		UnlockedAt:  a.UnlockedAt,
	}
}

// DailyStreakResponse is the wire shape of a daily-puzzle streak
type DailyStreakResponse struct {
	Current     int    `json:"current"`
	Best        int    `json:"best"`
	LastPlayed  string `json:"last_played,omitempty"`
	TotalPlayed int    `json:"total_played"`
}

// DailyStreakFromModel converts a daily streak
func DailyStreakFromModel(s *model.DailyStreak) DailyStreakResponse {
	return DailyStreakResponse{
		Current:     s.Current,
		Best:        s.Best,
		LastPlayed:  s.LastPlayDate,
		TotalPlayed: s.TotalPlayed,
	}
}

// SettlementResponse reports what finishing a game changed
type SettlementResponse struct {
	ScoreDelta     int                   `json:"score_delta"`
	Stats          StatsResponse         `json:"stats"`
	AlreadySettled bool                  `json:"already_settled,omitempty"`
	Throttled      bool                  `json:"throttled,omitempty"`
	RequiresHandle bool                  `json:"requires_handle"`
	Achievements   []AchievementResponse `json:"achievements,omitempty"`
	DailyStreak    *DailyStreakResponse  `json:"daily_streak,omitempty"`
}

// SettlementFromResult converts a settlement result
func SettlementFromResult(r *settlement.Result) *SettlementResponse {
	resp := &SettlementResponse{
		ScoreDelta:     r.ScoreDelta,
		AlreadySettled: r.AlreadySettled,
		Throttled:      r.Throttled,
		RequiresHandle: r.RequiresHandle,
	}
	if r.Stats != nil {
		resp.Stats = StatsFromModel(r.Stats)
	}
	for _, a := range r.Achievements {
		resp.Achievements = append(resp.Achievements, AchievementFromModel(a))
	}
	if r.DailyStreak != nil {
		streak := DailyStreakFromModel(r.DailyStreak)
		resp.DailyStreak = &streak
	}
	return resp
}

// GuessResponse is the outcome of a single guess
type GuessResponse struct {
	Game       GameResponse        `json:"game"`
	IsRepeat   bool                `json:"is_repeat"`
	IsCorrect  bool                `json:"is_correct"`
	Settlement *SettlementResponse `json:"settlement,omitempty"`
}

// DailyResponse describes today's puzzle without revealing the word
type DailyResponse struct {
	DateKey    string `json:"date_key"`
	Domain     string `json:"domain"`
	Hint       string `json:"hint"`
	Pattern    string `json:"pattern"`
	WordLength int    `json:"word_length"`
	Played     bool   `json:"played"`
	GameID     string `json:"game_id,omitempty"`

	// ResetsIn is the number of seconds until the next UTC day's puzzle
	ResetsIn int `json:"resets_in_seconds"`
}

// DailyGameResponse is a started or resumed daily attempt
type DailyGameResponse struct {
	Game    GameResponse `json:"game"`
	Resumed bool         `json:"resumed"`
}

// LeaderboardEntryResponse is one ranked leaderboard row
type LeaderboardEntryResponse struct {
	Rank       int      `json:"rank"`
	Handle     string   `json:"handle,omitempty"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	Score      int      `json:"score"`
	StreakBest int      `json:"streak_best"`
	Badges     []string `json:"badges,omitempty"`
	Trend      string   `json:"trend"`
	IsYou      bool     `json:"is_you,omitempty"`
}

// LeaderboardEntryFromService converts a ranked entry
func LeaderboardEntryFromService(e leaderboard.Entry) LeaderboardEntryResponse {
	return LeaderboardEntryResponse{
		Rank:       e.Rank,
		Handle:     e.Handle,
		Wins:       e.Wins,
		Losses:     e.Losses,
		Score:      e.Score,
		StreakBest: e.StreakBest,
		Badges:     e.Badges,
		Trend:      string(e.Trend),
		IsYou:      e.IsYou,
	}
}

// LeaderboardSummaryResponse aggregates the whole scope period
type LeaderboardSummaryResponse struct {
	Players int `json:"players"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Games   int `json:"games"`
}

// LeaderboardResponse is one page of a scope period's ranking
type LeaderboardResponse struct {
	Scope      string                     `json:"scope"`
	ScopeKey   string                     `json:"scope_key"`
	Entries    []LeaderboardEntryResponse `json:"entries"`
	You        *LeaderboardEntryResponse  `json:"you,omitempty"`
	NextCursor string                     `json:"next_cursor,omitempty"`
	Total      int                        `json:"total"`
	Summary    LeaderboardSummaryResponse `json:"summary"`
}

// LeaderboardFromPage converts a leaderboard page
func LeaderboardFromPage(p *leaderboard.Page) LeaderboardResponse {
	resp := LeaderboardResponse{
		Scope:      string(p.Scope),
		ScopeKey:   p.ScopeKey,
		Entries:    []LeaderboardEntryResponse{},
		NextCursor: p.NextCursor,
		Total:      p.Total,
		Summary: LeaderboardSummaryResponse{
			Players: p.Summary.Players,
			Wins:    p.Summary.Wins,
			Losses:  p.Summary.Losses,
			Games:   p.Summary.Games,
		},
	}
	for _, e := range p.Entries {
		resp.Entries = append(resp.Entries, LeaderboardEntryFromService(e))
	}
	if p.UserEntry != nil {
		you := LeaderboardEntryFromService(*p.UserEntry)
		resp.You = &you
	}
	return resp
}

// RanksResponse holds the user's current rank per scope, 0 when unranked
type RanksResponse struct {
	Daily  int `json:"daily"`
	Weekly int `json:"weekly"`
}

// MeResponse is the caller's profile
type MeResponse struct {
	UserID       string                `json:"user_id"`
	Handle       string                `json:"handle,omitempty"`
	Stats        StatsResponse         `json:"stats"`
	Achievements []AchievementResponse `json:"achievements"`
	DailyStreak  DailyStreakResponse   `json:"daily_streak"`
	Ranks        RanksResponse         `json:"ranks"`
}

// HandleAvailabilityResponse reports whether a handle can be claimed
type HandleAvailabilityResponse struct {
	Handle    string `json:"handle"`
	Available bool   `json:"available"`
}

// HandleResponse is a claimed handle
type HandleResponse struct {
	Handle string `json:"handle"`
}

// ShareLinkResponse is a created share link
type ShareLinkResponse struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Target string `json:"target"`
}

// DomainResponse is one playable word domain
type DomainResponse struct {
	Key       string `json:"key"`
	Hint      string `json:"hint"`
	WordCount int    `json:"word_count"`
}

// DomainFromService converts a domain listing
func DomainFromService(d words.DomainInfo) DomainResponse {
	return DomainResponse{
		Key:       d.Key,
		Hint:      d.Hint,
		WordCount: d.WordCount,
	}
}

// StatusResponse reports service health and available domains
type StatusResponse struct {
	Status  string           `json:"status"`
	Domains []DomainResponse `json:"domains"`
}
