package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"daily-departed/internal/content"
	"daily-departed/internal/daily"
	"daily-departed/internal/game"
	"daily-departed/internal/store"
)

const maxAttempts = 3

// Config wires one CLI session. KV, Now, and Fetch have working defaults and
// exist so tests can run a full game without sqlite or a network.
type Config struct {
	Title        string
	ShareURL     string
	Rounds       int
	DateOverride string // 8-digit YYYYMMDD; malformed values fall back to the clock
	DBPath       string
	ContentURL   string
	QRPath       string // when set, the share message is also written as a QR PNG

	KV    store.KV
	Now   func() time.Time
	Fetch func(ctx context.Context, key string) ([]game.Subject, error)
}

func (c *Config) defaults() (store.KV, func(ctx context.Context, key string) ([]game.Subject, error), error) {
	if c.Title == "" {
		c.Title = "Daily Departed"
	}
	if c.ShareURL == "" {
		c.ShareURL = "https://dailydeparted.com"
	}
	if c.Rounds <= 0 {
		c.Rounds = game.DefaultRounds
	}

	kv := c.KV
	if kv == nil {
		sqliteKV, err := store.NewSQLiteKV(c.DBPath)
		if err != nil {
			return nil, nil, err
		}
		kv = sqliteKV
	}

	fetch := c.Fetch
	if fetch == nil {
		fetch = content.NewClient(c.ContentURL, nil).FetchDay
	}
	return kv, fetch, nil
}

// Run plays (or resumes, or replays the summary of) the day's game.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	kv, fetch, err := cfg.defaults()
	if err != nil {
		return err
	}
	defer closeKV(kv)

	date := daily.Resolve(cfg.DateOverride, cfg.Now)
	gameStore := store.NewGameStore(kv, date)

	// Already finished today: present the stored summary, never round 1.
	if results, ok, err := gameStore.TodayResults(ctx); err != nil {
		return err
	} else if ok {
		fmt.Fprintf(out, "You already played today's %s.\n\n", cfg.Title)
		return printFinal(ctx, cfg, gameStore, results, out)
	}

	subjects, err := fetch(ctx, daily.Key(date))
	if err != nil {
		return fmt.Errorf("could not load today's game, please try again later: %w", err)
	}

	session, err := game.NewSession(game.Config{
		Rounds:  cfg.Rounds,
		Date:    daily.DateString(date),
		Edition: daily.Edition(date),
	}, subjects, gameStore)
	if err != nil {
		return err
	}

	saved, ok, err := gameStore.LoadState(ctx)
	if err != nil {
		return err
	}
	if ok && saved.Round > 0 && !saved.Complete {
		if err := session.Restore(saved); err != nil {
			return err
		}
		fmt.Fprintf(out, "Welcome back! Resuming at round %d of %d.\n", session.Round(), session.Rounds())
	} else {
		fmt.Fprintf(out, "%s #%d — alive or departed?\n", cfg.Title, daily.Edition(date))
		if err := session.Begin(ctx); err != nil {
			return err
		}
	}

	reader := bufio.NewReader(in)
	for session.Phase() != game.PhaseComplete {
		switch session.Phase() {
		case game.PhaseGuessing:
			if err := playRound(ctx, session, reader, out); err != nil {
				return err
			}
		case game.PhaseRevealed:
			if err := session.Advance(ctx); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected session phase %d", session.Phase())
		}
	}

	results, _ := session.Results()
	fmt.Fprintln(out)
	return printFinal(ctx, cfg, gameStore, results, out)
}

func playRound(ctx context.Context, session *game.Session, reader *bufio.Reader, out io.Writer) error {
	subject, ok := session.CurrentSubject()
	if !ok {
		return errors.New("no subject for the current round")
	}

	fmt.Fprintf(out, "\nRound %d/%d: %s\n", session.Round(), session.Rounds(), subject.Name)
	fmt.Fprintf(out, "  %s, born %d\n", subject.DisplayProfession(), subject.BirthYear)
	fmt.Fprint(out, "Alive or departed? [a/d]: ")

	guess, err := readGuess(reader, out)
	if err != nil {
		return err
	}

	answer, err := session.SubmitGuess(ctx, guess)
	if err != nil {
		return err
	}

	if answer.Correct {
		fmt.Fprintf(out, "Correct! Streak: %d\n", session.Streak())
	} else if answer.ActualStatus == game.StatusDead {
		fmt.Fprintf(out, "Wrong — %s passed away in %d.\n", subject.Name, subject.DeathYear)
	} else {
		fmt.Fprintf(out, "Wrong — %s is still with us.\n", subject.Name)
	}

	if session.Phase() == game.PhaseBonus {
		if err := playBonus(ctx, session, subject, reader, out); err != nil {
			return err
		}
	}

	return session.Advance(ctx)
}

func playBonus(ctx context.Context, session *game.Session, subject game.Subject, reader *bufio.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Bonus: what was the cause?")
	for idx, cause := range game.Causes {
		fmt.Fprintf(out, "  %d. %s\n", idx+1, cause)
	}
	fmt.Fprintf(out, "Pick 1-%d: ", len(game.Causes))

	guess := readCause(reader, out)
	correct, err := session.SubmitBonus(ctx, guess)
	if err != nil {
		return err
	}

	if correct {
		fmt.Fprintln(out, "Bonus point!")
	} else {
		detail := string(subject.CauseOfDeath)
		if subject.CauseDetail != "" {
			detail = fmt.Sprintf("%s (%s)", subject.CauseOfDeath, subject.CauseDetail)
		}
		fmt.Fprintf(out, "No bonus — it was %s.\n", detail)
	}
	return nil
}

func readGuess(reader *bufio.Reader, out io.Writer) (game.Status, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("input closed, progress is saved: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "alive":
			return game.StatusAlive, nil
		case "d", "dead", "departed":
			return game.StatusDead, nil
		}

		if attempt < maxAttempts {
			fmt.Fprint(out, "Please answer a (alive) or d (departed): ")
		}
	}
	return "", errors.New("no valid answer received, progress is saved")
}

// readCause never fails the session: an unreadable or invalid pick submits
// an empty guess, which simply scores the bonus as missed.
func readCause(reader *bufio.Reader, out io.Writer) game.Cause {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return ""
		}

		pick, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && pick >= 1 && pick <= len(game.Causes) {
			return game.Causes[pick-1]
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "Pick a number 1-%d: ", len(game.Causes))
		}
	}
	return ""
}

func closeKV(kv store.KV) {
	if closer, ok := kv.(io.Closer); ok {
		_ = closer.Close()
	}
}
