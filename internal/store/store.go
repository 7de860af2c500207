package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"daily-departed/internal/daily"
	"daily-departed/internal/game"
)

// Record keys. The game slot is shared: it holds either today's in-progress
// state or today's finished summary, never both; the two are told apart by
// the presence of a score field.
const (
	keyGame       = "daily_game"
	keyStats      = "lifetime_stats"
	keyLastPlayed = "last_played"
)

// LifetimeStats accumulates across days. Updated exactly once per completed
// game. PlayerID is an anonymous install id assigned on first write.
type LifetimeStats struct {
	PlayerID          string `json:"playerId,omitempty"`
	GamesPlayed       int    `json:"gamesPlayed"`
	TotalCorrect      int    `json:"totalCorrect"`
	TotalQuestions    int    `json:"totalQuestions"`
	PerfectGames      int    `json:"perfectGames"`
	BestStreakEver    int    `json:"bestStreakEver"`
	CurrentPlayStreak int    `json:"currentPlayStreak"`
	MaxPlayStreak     int    `json:"maxPlayStreak"`
	LastPlayDate      string `json:"lastPlayDate,omitempty"`
}

// GameStore owns the persisted-record schema on top of a KV substrate. It is
// bound to the session's resolved date so every date comparison (including
// under a test override) agrees with the rest of the session. Corrupt or
// stale records never surface as errors; they degrade to absent and are
// overwritten by the next write.
type GameStore struct {
	kv        KV
	today     string
	yesterday string
}

func NewGameStore(kv KV, today time.Time) *GameStore {
	return &GameStore{
		kv:        kv,
		today:     daily.DateString(today),
		yesterday: daily.DateString(today.UTC().AddDate(0, 0, -1)),
	}
}

// gameRecord probes the shared slot without committing to a full decode.
type gameRecord struct {
	Date  string `json:"date"`
	Score *int   `json:"score"`
}

// HasPlayedToday reports whether a game was completed on the session date.
func (g *GameStore) HasPlayedToday(ctx context.Context) (bool, error) {
	value, ok, err := g.kv.Get(ctx, keyLastPlayed)
	if err != nil {
		return false, err
	}
	return ok && string(value) == g.today, nil
}

// MarkPlayed records the session date as the last completed day.
func (g *GameStore) MarkPlayed(ctx context.Context) error {
	return g.kv.Set(ctx, keyLastPlayed, []byte(g.today))
}

// SaveState stamps the session date onto the snapshot and overwrites the
// in-progress record. Implements game.Recorder.
func (g *GameStore) SaveState(ctx context.Context, state game.SavedState) error {
	state.Date = g.today
	encoded, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return g.kv.Set(ctx, keyGame, encoded)
}

// LoadState returns today's in-progress state, or absent when there is no
// record, the record does not parse, the slot holds a finished summary, or
// the record is dated another day. A stale-dated record is deleted on the
// way out.
func (g *GameStore) LoadState(ctx context.Context) (game.SavedState, bool, error) {
	value, ok, err := g.kv.Get(ctx, keyGame)
	if err != nil || !ok {
		return game.SavedState{}, false, err
	}

	var probe gameRecord
	if err := json.Unmarshal(value, &probe); err != nil {
		return game.SavedState{}, false, nil
	}
	if probe.Date != g.today {
		_ = g.kv.Delete(ctx, keyGame)
		return game.SavedState{}, false, nil
	}
	if probe.Score != nil {
		return game.SavedState{}, false, nil
	}

	var state game.SavedState
	if err := json.Unmarshal(value, &state); err != nil {
		return game.SavedState{}, false, nil
	}
	return state, true, nil
}

// SaveResults finalizes the day: the summary overwrites the game slot, the
// day is marked played, and lifetime stats are rolled forward. The three
// writes are individually atomic; a crash in between leaves a readable
// summary with stats one game behind, which is acceptable because stats are
// advisory. Implements game.Recorder.
func (g *GameStore) SaveResults(ctx context.Context, results game.Results) error {
	results.Date = g.today
	encoded, err := json.Marshal(results)
	if err != nil {
		return err
	}
	if err := g.kv.Set(ctx, keyGame, encoded); err != nil {
		return err
	}
	if err := g.MarkPlayed(ctx); err != nil {
		return err
	}
	return g.updateStats(ctx, results)
}

// TodayResults returns the finished summary for the session date, or absent
// when the day has not been completed.
func (g *GameStore) TodayResults(ctx context.Context) (game.Results, bool, error) {
	played, err := g.HasPlayedToday(ctx)
	if err != nil || !played {
		return game.Results{}, false, err
	}

	value, ok, err := g.kv.Get(ctx, keyGame)
	if err != nil || !ok {
		return game.Results{}, false, err
	}

	var probe gameRecord
	if err := json.Unmarshal(value, &probe); err != nil {
		return game.Results{}, false, nil
	}
	if probe.Date != g.today || probe.Score == nil {
		return game.Results{}, false, nil
	}

	var results game.Results
	if err := json.Unmarshal(value, &results); err != nil {
		return game.Results{}, false, nil
	}
	return results, true, nil
}

// Stats returns the lifetime statistics, zero-valued when never written or
// unreadable.
func (g *GameStore) Stats(ctx context.Context) (LifetimeStats, error) {
	value, ok, err := g.kv.Get(ctx, keyStats)
	if err != nil {
		return LifetimeStats{}, err
	}
	var stats LifetimeStats
	if !ok {
		return stats, nil
	}
	if err := json.Unmarshal(value, &stats); err != nil {
		return LifetimeStats{}, nil
	}
	return stats, nil
}

func (g *GameStore) updateStats(ctx context.Context, results game.Results) error {
	stats, err := g.Stats(ctx)
	if err != nil {
		return err
	}

	if stats.PlayerID == "" {
		stats.PlayerID = uuid.NewString()
	}

	stats.GamesPlayed++
	stats.TotalCorrect += results.Score
	stats.TotalQuestions += results.Total
	if results.Score == results.Total {
		stats.PerfectGames++
	}
	if results.BestStreak > stats.BestStreakEver {
		stats.BestStreakEver = results.BestStreak
	}

	switch stats.LastPlayDate {
	case g.today:
		// Defends against double-counting if called twice the same day.
	case g.yesterday:
		stats.CurrentPlayStreak++
	default:
		stats.CurrentPlayStreak = 1
	}
	if stats.CurrentPlayStreak > stats.MaxPlayStreak {
		stats.MaxPlayStreak = stats.CurrentPlayStreak
	}
	stats.LastPlayDate = g.today

	encoded, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return g.kv.Set(ctx, keyStats, encoded)
}
