// Package leaderboard ranks per-period score aggregates and serves stable,
// cursor-paginated pages of them.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/majnugame/majnu-go/internal/datekeys"
	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/storage"
)

const (
	// MaxLimit caps the page size a client can request
	MaxLimit = 100
	// DefaultLimit is used when the client does not ask for a size
	DefaultLimit = 50

	cursorSeparator = "::"

	// hotStreakThreshold is the best streak that earns the Hot Streak badge
	hotStreakThreshold = 5
)

// Badge names shown next to leaderboard entries
const (
	BadgeHotStreak = "Hot Streak"
	BadgeComeback  = "Comeback"
)

// Entry is one ranked row of a leaderboard page
type Entry struct {
	Rank       int
	UserID     model.UserID
	Handle     string
	Wins       int
	Losses     int
	Score      int
	StreakBest int
	Badges     []string
	Trend      model.RankTrend
	IsYou      bool
}

// Summary aggregates results across the whole scope period, independent of
// the page window.
type Summary struct {
	Players int
	Wins    int
	Losses  int
	Games   int
}

// Page is one cursor-delimited window of a scope period's ranking
type Page struct {
	Scope    model.LeaderboardScope
	ScopeKey string
	Entries  []Entry

	// UserEntry is the requesting user's own row, present even when it
	// falls outside the page window.
	UserEntry *Entry

	// NextCursor is empty on the last page
	NextCursor string

	// Total is the number of ranked users in the period
	Total int

	Summary Summary
}

// Service reads leaderboard records and derives ranking, badges, and trend
// arrows. It never writes records; settlement owns those.
type Service struct {
	store  storage.Store
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(store storage.Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// ScopeKey returns the period key for a scope at the given instant
func ScopeKey(scope model.LeaderboardScope, at time.Time) string {
	if scope == model.ScopeWeekly {
		return datekeys.Week(at)
	}
	return datekeys.Date(at)
}

// Page returns one window of the current period's ranking for the scope. An
// empty cursor starts from the top; the returned NextCursor resumes after
// the last entry of this window. The requesting user's own row rides along
// regardless of the window.
func (s *Service) Page(ctx context.Context, scope model.LeaderboardScope, userID model.UserID, limit int, cursor string) (*Page, error) {
	if !scope.Valid() {
		return nil, model.ErrInvalidScope
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	scopeKey := ScopeKey(scope, s.clock.Now())
	records, err := s.store.ListLeaderboardRecords(ctx, scope, scopeKey)
	if err != nil {
		return nil, fmt.Errorf("listing leaderboard records: %w", err)
	}
	sortRecords(records)

	start := 0
	if cursor != "" {
		start, err = s.resolveCursor(records, cursor)
		if err != nil {
			return nil, err
		}
	}

	end := start + limit
	if end > len(records) {
		end = len(records)
	}

	page := &Page{
		Scope:    scope,
		ScopeKey: scopeKey,
		Total:    len(records),
		Summary:  summarize(records),
	}

	for i := start; i < end; i++ {
		entry, err := s.entry(ctx, scopeKey, records[i], i+1, userID)
		if err != nil {
			return nil, err
		}
		page.Entries = append(page.Entries, entry)
	}

	if end < len(records) {
		last := records[end-1]
		page.NextCursor = encodeCursor(last)
	}

	for i, record := range records {
		if record.UserID == userID {
			if i >= start && i < end {
				own := page.Entries[i-start]
				page.UserEntry = &own
			} else {
				own, err := s.entry(ctx, scopeKey, record, i+1, userID)
				if err != nil {
					return nil, err
				}
				page.UserEntry = &own
			}
			break
		}
	}

	return page, nil
}

// Rank returns the requesting user's 1-based rank in the scope's current
// period, or 0 when they have no record yet.
func (s *Service) Rank(ctx context.Context, scope model.LeaderboardScope, userID model.UserID) (int, error) {
	if !scope.Valid() {
		return 0, model.ErrInvalidScope
	}

	scopeKey := ScopeKey(scope, s.clock.Now())
	records, err := s.store.ListLeaderboardRecords(ctx, scope, scopeKey)
	if err != nil {
		return 0, fmt.Errorf("listing leaderboard records: %w", err)
	}
	sortRecords(records)

	for i, record := range records {
		if record.UserID == userID {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (s *Service) entry(ctx context.Context, scopeKey string, record *model.LeaderboardRecord, rank int, requester model.UserID) (Entry, error) {
	entry := Entry{
		Rank:       rank,
		UserID:     record.UserID,
		Wins:       record.Wins,
		Losses:     record.Losses,
		Score:      record.Score,
		StreakBest: record.StreakBest,
		IsYou:      record.UserID == requester,
	}

	user, err := s.store.GetUser(ctx, record.UserID)
	if err == nil {
		entry.Handle = user.Handle
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return Entry{}, fmt.Errorf("loading user %s: %w", record.UserID, err)
	}

	badges, err := s.badges(ctx, record)
	if err != nil {
		return Entry{}, err
	}
	entry.Badges = badges

	trend, err := s.trend(ctx, scopeKey, record.UserID, rank)
	if err != nil {
		return Entry{}, err
	}
	entry.Trend = trend

	return entry, nil
}

// badges derives display badges from the record and the user's recent games
func (s *Service) badges(ctx context.Context, record *model.LeaderboardRecord) ([]string, error) {
	var badges []string
	if record.StreakBest >= hotStreakThreshold {
		badges = append(badges, BadgeHotStreak)
	}

	comeback, err := s.hasComeback(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	if comeback {
		badges = append(badges, BadgeComeback)
	}
	return badges, nil
}

// hasComeback reports whether the user's three most recent finished games
// read win, win, loss from newest to oldest.
func (s *Service) hasComeback(ctx context.Context, userID model.UserID) (bool, error) {
	games, err := s.store.ListGamesByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("listing games for badges: %w", err)
	}

	finished := games[:0:0]
	for _, g := range games {
		if g.IsTerminal() && g.FinishedAt != nil {
			finished = append(finished, g)
		}
	}
	if len(finished) < 3 {
		return false, nil
	}

	sort.Slice(finished, func(i, j int) bool {
		return finished[i].FinishedAt.After(*finished[j].FinishedAt)
	})

	return finished[0].Result == model.GameResultWin &&
		finished[1].Result == model.GameResultWin &&
		finished[2].Result == model.GameResultLoss, nil
}

// trend compares the user's rank to the last snapshot within the same
// period and records the new position.
func (s *Service) trend(ctx context.Context, scopeKey string, userID model.UserID, rank int) (model.RankTrend, error) {
	previous, err := s.store.GetRankSnapshot(ctx, scopeKey, userID)
	if err != nil && !errors.Is(err, model.ErrSnapshotNotFound) {
		return "", fmt.Errorf("loading rank snapshot: %w", err)
	}

	trend := model.TrendSame
	if err == nil {
		switch {
		case rank < previous.Rank:
			trend = model.TrendUp
		case rank > previous.Rank:
			trend = model.TrendDown
		}
	}

	if err == nil && previous.Rank == rank {
		return trend, nil
	}
	saveErr := s.store.SaveRankSnapshot(ctx, &model.RankSnapshot{
		ScopeKey:   scopeKey,
		UserID:     userID,
		Rank:       rank,
		CapturedAt: s.clock.Now(),
	})
	if saveErr != nil {
		return "", fmt.Errorf("saving rank snapshot: %w", saveErr)
	}
	return trend, nil
}

// summarize totals wins and losses over every record in the period
func summarize(records []*model.LeaderboardRecord) Summary {
	summary := Summary{Players: len(records)}
	for _, record := range records {
		summary.Wins += record.Wins
		summary.Losses += record.Losses
	}
	summary.Games = summary.Wins + summary.Losses
	return summary
}

// sortRecords orders records by score, then wins, then fewest losses, then
// earliest update, with the store-assigned insertion sequence as the final
// deterministic tiebreak.
func sortRecords(records []*model.LeaderboardRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses < b.Losses
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		return a.Seq < b.Seq
	})
}

func encodeCursor(record *model.LeaderboardRecord) string {
	return record.UpdatedAt.UTC().Format(time.RFC3339Nano) + cursorSeparator + record.ID
}

// resolveCursor locates the cursor's record in the sorted slice and returns
// the index just past it. A cursor pointing at a record that left the
// ranking resumes from the top rather than failing the whole read.
func (s *Service) resolveCursor(records []*model.LeaderboardRecord, cursor string) (int, error) {
	parts := strings.SplitN(cursor, cursorSeparator, 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed leaderboard cursor")
	}
	if _, err := time.Parse(time.RFC3339Nano, parts[0]); err != nil {
		return 0, fmt.Errorf("malformed leaderboard cursor: %w", err)
	}

	for i, record := range records {
		if record.ID == parts[1] {
			return i + 1, nil
		}
	}
	return 0, nil
}
