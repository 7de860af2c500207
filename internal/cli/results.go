package cli

import (
	"context"
	"fmt"
	"io"

	qrcode "github.com/skip2/go-qrcode"

	"daily-departed/internal/daily"
	"daily-departed/internal/game"
	"daily-departed/internal/store"
)

func printFinal(ctx context.Context, cfg Config, gameStore *store.GameStore, results game.Results, out io.Writer) error {
	stats, err := gameStore.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Final score: %d/%d (%d main, %d of %d bonus)\n",
		results.Score, results.Total, results.MainScore, results.BonusScore, results.BonusTotal)
	fmt.Fprintf(out, "Best streak today: %d\n\n", results.BestStreak)

	for _, row := range game.RenderGrid(results.Answers).Rows() {
		for idx, cell := range row {
			if idx > 0 {
				fmt.Fprint(out, " ")
			}
			fmt.Fprint(out, cell)
		}
		fmt.Fprintln(out)
	}

	message := game.ShareMessage(results, stats.CurrentPlayStreak, cfg.Title, cfg.ShareURL)
	fmt.Fprintf(out, "\nShare your result:\n%s\n", message)

	if cfg.QRPath != "" {
		if err := qrcode.WriteFile(message, qrcode.Medium, 256, cfg.QRPath); err != nil {
			return fmt.Errorf("could not write share QR code: %w", err)
		}
		fmt.Fprintf(out, "\nQR code written to %s\n", cfg.QRPath)
	}
	return nil
}

// ShowStats prints the lifetime statistics record.
func ShowStats(ctx context.Context, cfg Config, out io.Writer) error {
	kv, _, err := cfg.defaults()
	if err != nil {
		return err
	}
	defer closeKV(kv)

	date := daily.Resolve(cfg.DateOverride, cfg.Now)
	stats, err := store.NewGameStore(kv, date).Stats(ctx)
	if err != nil {
		return err
	}

	if stats.GamesPlayed == 0 {
		fmt.Fprintln(out, "No games played yet.")
		return nil
	}

	fmt.Fprintf(out, "Games played:     %d\n", stats.GamesPlayed)
	fmt.Fprintf(out, "Questions:        %d/%d correct\n", stats.TotalCorrect, stats.TotalQuestions)
	fmt.Fprintf(out, "Perfect games:    %d\n", stats.PerfectGames)
	fmt.Fprintf(out, "Best streak ever: %d\n", stats.BestStreakEver)
	fmt.Fprintf(out, "Play streak:      %d (max %d)\n", stats.CurrentPlayStreak, stats.MaxPlayStreak)
	fmt.Fprintf(out, "Last played:      %s\n", stats.LastPlayDate)
	return nil
}

// ShowShare reprints the share message for an already-completed day.
func ShowShare(ctx context.Context, cfg Config, out io.Writer) error {
	kv, _, err := cfg.defaults()
	if err != nil {
		return err
	}
	defer closeKV(kv)

	date := daily.Resolve(cfg.DateOverride, cfg.Now)
	gameStore := store.NewGameStore(kv, date)

	results, ok, err := gameStore.TodayResults(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Finish today's game first, then come back to share.")
		return nil
	}
	return printFinal(ctx, cfg, gameStore, results, out)
}
