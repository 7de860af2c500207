package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"daily-departed/internal/cli"
)

type config struct {
	title      string
	shareURL   string
	contentURL string
	db         string
	date       string
	qr         string
}

func (c *config) toCLI() cli.Config {
	return cli.Config{
		Title:        c.title,
		ShareURL:     c.shareURL,
		ContentURL:   c.contentURL,
		DBPath:       c.db,
		DateOverride: c.date,
		QRPath:       c.qr,
	}
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DEPARTED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "departed",
		Short: "Play the daily alive-or-departed trivia game in your terminal.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.Run(cmd.Context(), cfg.toCLI(), os.Stdin, cmd.OutOrStdout())
		},
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.title, "title", "Daily Departed", "game title used in the share message (env: DEPARTED_TITLE)")
	fs.StringVar(&cfg.shareURL, "share-url", "https://dailydeparted.com", "canonical URL appended to the share message (env: DEPARTED_SHARE_URL)")
	fs.StringVar(&cfg.contentURL, "content-url", "https://dailydeparted.com/data", "base URL of the content provider (env: DEPARTED_CONTENT_URL)")
	fs.StringVar(&cfg.db, "db", defaultDBPath(), "path to the local progress database (env: DEPARTED_DB)")
	fs.StringVar(&cfg.date, "date", "", "8-digit YYYYMMDD date override for testing specific days (env: DEPARTED_DATE)")
	fs.StringVar(&cfg.qr, "qr", "", "write the share message as a QR PNG to this path (env: DEPARTED_QR)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(newStatsCmd(cfg), newShareCmd(cfg))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SilenceUsage = true

	return cmd
}

func newStatsCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lifetime play statistics.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.ShowStats(cmd.Context(), cfg.toCLI(), cmd.OutOrStdout())
		},
	}
}

func newShareCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Reprint today's shareable result.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.ShowShare(cmd.Context(), cfg.toCLI(), cmd.OutOrStdout())
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "departed.db"
	}
	return home + "/.departed.db"
}
