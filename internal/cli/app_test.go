package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"daily-departed/internal/daily"
	"daily-departed/internal/game"
	"daily-departed/internal/store"
)

func testSubjects() []game.Subject {
	subjects := make([]game.Subject, 0, game.DefaultRounds)
	for idx := 0; idx < game.DefaultRounds; idx++ {
		subject := game.Subject{
			ID:         fmt.Sprintf("p%d", idx),
			Name:       fmt.Sprintf("Person %d", idx),
			BirthYear:  1950 + idx,
			Profession: "actor",
		}
		if idx%3 == 0 {
			subject.DeathYear = 2015
			subject.CauseOfDeath = game.CauseHeart
		}
		subjects = append(subjects, subject)
	}
	return subjects
}

func testConfig(kv store.KV, fetch func(context.Context, string) ([]game.Subject, error)) Config {
	return Config{
		KV:    kv,
		Now:   func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) },
		Fetch: fetch,
	}
}

func fixedFetch(subjects []game.Subject) func(context.Context, string) ([]game.Subject, error) {
	return func(context.Context, string) ([]game.Subject, error) {
		return subjects, nil
	}
}

// Rounds 1, 4, 7 and 10 hold departed subjects (heart failure); the script
// misses the main guess in round 5 and the bonus in round 7.
const fullGameScript = "d\n1\na\na\nd\n1\nd\na\nd\n2\na\na\nd\n1\n"

func TestRunPlaysFullGame(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()

	var fetchedKey string
	cfg := testConfig(kv, func(_ context.Context, key string) ([]game.Subject, error) {
		fetchedKey = key
		return testSubjects(), nil
	})

	var out bytes.Buffer
	if err := Run(ctx, cfg, strings.NewReader(fullGameScript), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantKey := daily.Key(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	if fetchedKey != wantKey {
		t.Fatalf("fetched key %q, want %q", fetchedKey, wantKey)
	}

	printed := out.String()
	if !strings.Contains(printed, "Final score: 12/14 (9 main, 3 of 4 bonus)") {
		t.Fatalf("final score line missing from output:\n%s", printed)
	}
	if !strings.Contains(printed, "Best streak today: 5") {
		t.Fatalf("best streak line missing from output:\n%s", printed)
	}
	if !strings.Contains(printed, "Share your result:") {
		t.Fatalf("share block missing from output:\n%s", printed)
	}
}

func TestRunRefusesSecondPlaythrough(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()
	cfg := testConfig(kv, fixedFetch(testSubjects()))

	var first bytes.Buffer
	if err := Run(ctx, cfg, strings.NewReader(fullGameScript), &first); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	// No input at all: a finished day must replay the summary, never round 1.
	var second bytes.Buffer
	if err := Run(ctx, cfg, strings.NewReader(""), &second); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	printed := second.String()
	if !strings.Contains(printed, "You already played today's Daily Departed.") {
		t.Fatalf("replay notice missing:\n%s", printed)
	}
	if !strings.Contains(printed, "Final score: 12/14") {
		t.Fatalf("stored summary not replayed:\n%s", printed)
	}
	if strings.Contains(printed, "Round 1/10") {
		t.Fatalf("second run must not start a new game:\n%s", printed)
	}
}

func TestRunResumesAfterInterruption(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()
	cfg := testConfig(kv, fixedFetch(testSubjects()))

	// Two rounds in, then the input dries up mid-game.
	var first bytes.Buffer
	err := Run(ctx, cfg, strings.NewReader("d\n1\na\n"), &first)
	if err == nil {
		t.Fatalf("expected an error when input closes mid-game")
	}
	if !strings.Contains(err.Error(), "progress is saved") {
		t.Fatalf("unexpected interruption error: %v", err)
	}

	var second bytes.Buffer
	if err := Run(ctx, cfg, strings.NewReader("a\nd\n1\nd\na\nd\n2\na\na\nd\n1\n"), &second); err != nil {
		t.Fatalf("resumed Run failed: %v", err)
	}

	printed := second.String()
	if !strings.Contains(printed, "Welcome back! Resuming at round 3 of 10.") {
		t.Fatalf("resume notice missing:\n%s", printed)
	}
	if !strings.Contains(printed, "Final score: 12/14 (9 main, 3 of 4 bonus)") {
		t.Fatalf("resumed game did not finish with the full score:\n%s", printed)
	}
}

func TestRunRetriesInvalidGuesses(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(store.NewMemKV(), fixedFetch(testSubjects()))

	var out bytes.Buffer
	err := Run(ctx, cfg, strings.NewReader("maybe\nx\nq\n"), &out)
	if err == nil {
		t.Fatalf("three invalid answers should abort the round")
	}

	if !strings.Contains(out.String(), "Please answer a (alive) or d (departed):") {
		t.Fatalf("retry prompt missing:\n%s", out.String())
	}
}

func TestRunReportsFetchFailure(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(store.NewMemKV(), func(context.Context, string) ([]game.Subject, error) {
		return nil, errors.New("origin is down")
	})

	var out bytes.Buffer
	err := Run(ctx, cfg, strings.NewReader(""), &out)
	if err == nil || !strings.Contains(err.Error(), "could not load today's game") {
		t.Fatalf("expected a friendly fetch error, got %v", err)
	}
}

func TestShowStatsBeforeFirstGame(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(store.NewMemKV(), fixedFetch(testSubjects()))

	var out bytes.Buffer
	if err := ShowStats(ctx, cfg, &out); err != nil {
		t.Fatalf("ShowStats failed: %v", err)
	}
	if !strings.Contains(out.String(), "No games played yet.") {
		t.Fatalf("unexpected stats output:\n%s", out.String())
	}
}

func TestShowShareAfterCompletedGame(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()
	cfg := testConfig(kv, fixedFetch(testSubjects()))

	var played bytes.Buffer
	if err := Run(ctx, cfg, strings.NewReader(fullGameScript), &played); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var out bytes.Buffer
	if err := ShowShare(ctx, cfg, &out); err != nil {
		t.Fatalf("ShowShare failed: %v", err)
	}
	if !strings.Contains(out.String(), "12/14") {
		t.Fatalf("share output missing the score:\n%s", out.String())
	}

	var fresh bytes.Buffer
	if err := ShowShare(ctx, testConfig(store.NewMemKV(), fixedFetch(testSubjects())), &fresh); err != nil {
		t.Fatalf("ShowShare on a fresh store failed: %v", err)
	}
	if !strings.Contains(fresh.String(), "Finish today's game first") {
		t.Fatalf("unexpected output for an unplayed day:\n%s", fresh.String())
	}
}
