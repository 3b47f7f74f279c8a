package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case GuessResult:
		o.printGuessResult(v)
	case Daily:
		o.printDaily(v)
	case DailyGame:
		o.printDailyGame(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case Me:
		o.printMe(v)
	case HandleAvailability:
		o.printHandleAvailability(v)
	case Handle:
		o.printHandle(v)
	case ShareLink:
		o.printShareLink(v)
	case Status:
		o.printStatus(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Game response type (matches API)
type Game struct {
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
	Answer          string   `json:"answer,omitempty"`
	Result          string   `json:"result,omitempty"`
}

// Stats response type
type Stats struct {
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	StreakCurrent int `json:"streak_current"`
	StreakBest    int `json:"streak_best"`
	Score         int `json:"score"`
}

// Achievement response type
type Achievement struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DailyStreak response type
type DailyStreak struct {
	Current     int    `json:"current"`
	Best        int    `json:"best"`
	LastPlayed  string `json:"last_played,omitempty"`
	TotalPlayed int    `json:"total_played"`
}

// Settlement response type
type Settlement struct {
	ScoreDelta     int           `json:"score_delta"`
	Stats          Stats         `json:"stats"`
	AlreadySettled bool          `json:"already_settled,omitempty"`
	Throttled      bool          `json:"throttled,omitempty"`
	RequiresHandle bool          `json:"requires_handle"`
	Achievements   []Achievement `json:"achievements,omitempty"`
	DailyStreak    *DailyStreak  `json:"daily_streak,omitempty"`
}

// GuessResult response type
type GuessResult struct {
	Game       Game        `json:"game"`
	IsRepeat   bool        `json:"is_repeat"`
	IsCorrect  bool        `json:"is_correct"`
	Settlement *Settlement `json:"settlement,omitempty"`
}

// Daily response type
type Daily struct {
	DateKey    string `json:"date_key"`
	Domain     string `json:"domain"`
	Hint       string `json:"hint"`
	Pattern    string `json:"pattern"`
	WordLength int    `json:"word_length"`
	Played     bool   `json:"played"`
	GameID     string `json:"game_id,omitempty"`
}

// DailyGame response type
type DailyGame struct {
	Game    Game `json:"game"`
	Resumed bool `json:"resumed"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
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

// LeaderboardSummary response type
type LeaderboardSummary struct {
	Players int `json:"players"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Games   int `json:"games"`
}

// Leaderboard response type
type Leaderboard struct {
	Scope      string             `json:"scope"`
	ScopeKey   string             `json:"scope_key"`
	Entries    []LeaderboardEntry `json:"entries"`
	You        *LeaderboardEntry  `json:"you,omitempty"`
	NextCursor string             `json:"next_cursor,omitempty"`
	Total      int                `json:"total"`
	Summary    LeaderboardSummary `json:"summary"`
}

// Ranks response type
type Ranks struct {
	Daily  int `json:"daily"`
	Weekly int `json:"weekly"`
}

// Me response type
type Me struct {
	UserID       string        `json:"user_id"`
	Handle       string        `json:"handle,omitempty"`
	Stats        Stats         `json:"stats"`
	Achievements []Achievement `json:"achievements"`
	DailyStreak  DailyStreak   `json:"daily_streak"`
	Ranks        Ranks         `json:"ranks"`
}

// HandleAvailability response type
type HandleAvailability struct {
	Handle    string `json:"handle"`
	Available bool   `json:"available"`
}

// Handle response type
type Handle struct {
	Handle string `json:"handle"`
}

// ShareLink response type
type ShareLink struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Target string `json:"target"`
}

// Domain response type
type Domain struct {
	Key       string `json:"key"`
	Hint      string `json:"hint"`
	WordCount int    `json:"word_count"`
}

// Status response type
type Status struct {
	Status  string   `json:"status"`
	Domains []Domain `json:"domains"`
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Domain: %s\n", g.Domain)
	if g.Mode != "" && g.Mode != "standard" {
		fmt.Printf("Mode: %s\n", g.Mode)
	}
	fmt.Printf("Hint: %s\n", g.Hint)
	fmt.Printf("Word: %s\n", spaced(g.Masked))
	fmt.Printf("Wrong guesses: %d/%d\n", g.WrongGuesses, g.MaxWrongGuesses)

	if len(g.GuessedLetters) > 0 {
		fmt.Printf("Guessed: %s\n", strings.Join(g.GuessedLetters, ", "))
	}
	if len(g.WrongLetters) > 0 {
		fmt.Printf("Missed: %s\n", strings.Join(g.WrongLetters, ", "))
	}

	switch g.Status {
	case "won":
		fmt.Printf("You won! The word was: %s\n", g.Answer)
	case "lost":
		fmt.Printf("You lost. The word was: %s\n", g.Answer)
	}
}

func (o *Output) printGuessResult(r GuessResult) {
	if r.IsRepeat {
		fmt.Println("Already guessed that letter")
	} else if r.IsCorrect {
		fmt.Println("Correct!")
	} else {
		fmt.Println("Wrong!")
	}

	o.printGame(r.Game)

	if r.Settlement != nil {
		o.printSettlement(*r.Settlement)
	}
}

func (o *Output) printSettlement(s Settlement) {
	fmt.Printf("\nScore: %+d (total %d)\n", s.ScoreDelta, s.Stats.Score)
	if s.Stats.StreakCurrent > 1 {
		fmt.Printf("Win streak: %d\n", s.Stats.StreakCurrent)
	}
	for _, a := range s.Achievements {
		fmt.Printf("Achievement unlocked: %s\n", a.Title)
	}
	if s.DailyStreak != nil {
		fmt.Printf("Daily streak: %d (best %d)\n", s.DailyStreak.Current, s.DailyStreak.Best)
	}
	if s.Throttled {
		fmt.Println("Scoring is throttled right now; finish again later to settle")
	}
	if s.RequiresHandle {
		fmt.Println("Claim a handle to appear on the leaderboard: majnu handle claim <name>")
	}
}

func (o *Output) printDaily(d Daily) {
	fmt.Printf("Daily puzzle for %s\n", d.DateKey)
	fmt.Printf("Domain: %s\n", d.Domain)
	fmt.Printf("Hint: %s\n", d.Hint)
	fmt.Printf("Word: %s (%d letters)\n", spaced(d.Pattern), d.WordLength)
	if d.Played {
		fmt.Printf("In progress: majnu game get %s\n", d.GameID)
	} else {
		fmt.Println("Not played yet: majnu daily play")
	}
}

func (o *Output) printDailyGame(d DailyGame) {
	if d.Resumed {
		fmt.Println("Resuming today's puzzle")
	}
	o.printGame(d.Game)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%s, %s)\n", l.Scope, l.ScopeKey)
	if len(l.Entries) == 0 {
		fmt.Println("No entries yet")
		return
	}

	fmt.Printf("%d players, %d games (%dW/%dL)\n",
		l.Summary.Players, l.Summary.Games, l.Summary.Wins, l.Summary.Losses)

	for _, e := range l.Entries {
		o.printLeaderboardEntry(e)
	}

	if l.You != nil {
		fmt.Println("---")
		o.printLeaderboardEntry(*l.You)
	}
	if l.NextCursor != "" {
		fmt.Printf("More: --cursor %s\n", l.NextCursor)
	}
}

func (o *Output) printLeaderboardEntry(e LeaderboardEntry) {
	handle := e.Handle
	if handle == "" {
		handle = "(anonymous)"
	}
	marker := ""
	if e.IsYou {
		marker = " <- you"
	}
	trend := ""
	switch e.Trend {
	case "up":
		trend = " ^"
	case "down":
		trend = " v"
	}
	badges := ""
	if len(e.Badges) > 0 {
		badges = " [" + strings.Join(e.Badges, ", ") + "]"
	}
	fmt.Printf("%3d. %s - %d pts (%dW/%dL)%s%s%s\n",
		e.Rank, handle, e.Score, e.Wins, e.Losses, badges, trend, marker)
}

func (o *Output) printMe(m Me) {
	if m.Handle != "" {
		fmt.Printf("Handle: @%s\n", m.Handle)
	} else {
		fmt.Println("Handle: not claimed")
	}
	fmt.Printf("User ID: %s\n", m.UserID)
	fmt.Printf("Record: %dW/%dL, %d points\n", m.Stats.Wins, m.Stats.Losses, m.Stats.Score)
	fmt.Printf("Win streak: %d (best %d)\n", m.Stats.StreakCurrent, m.Stats.StreakBest)
	fmt.Printf("Daily streak: %d (best %d, %d played)\n",
		m.DailyStreak.Current, m.DailyStreak.Best, m.DailyStreak.TotalPlayed)
	if m.Ranks.Daily > 0 {
		fmt.Printf("Rank today: #%d\n", m.Ranks.Daily)
	}
	if m.Ranks.Weekly > 0 {
		fmt.Printf("Rank this week: #%d\n", m.Ranks.Weekly)
	}
	if len(m.Achievements) > 0 {
		fmt.Println("Achievements:")
		for _, a := range m.Achievements {
			fmt.Printf("  - %s: %s\n", a.Title, a.Description)
		}
	}
}

func (o *Output) printHandleAvailability(h HandleAvailability) {
	if h.Available {
		fmt.Printf("@%s is available\n", h.Handle)
	} else {
		fmt.Printf("@%s is taken\n", h.Handle)
	}
}

func (o *Output) printHandle(h Handle) {
	fmt.Printf("Handle claimed: @%s\n", h.Handle)
}

func (o *Output) printShareLink(s ShareLink) {
	fmt.Printf("Share link: %s\n", s.Path)
	fmt.Printf("Target: %s\n", s.Target)
}

func (o *Output) printStatus(s Status) {
	fmt.Printf("Status: %s\n", s.Status)
	fmt.Printf("Domains (%d):\n", len(s.Domains))
	for _, d := range s.Domains {
		fmt.Printf("  - %s (%d words)\n", d.Key, d.WordCount)
	}
}

// spaced renders a mask with gaps between letters for readability
func spaced(mask string) string {
	return strings.Join(strings.Split(mask, ""), " ")
}
