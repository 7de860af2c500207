package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"daily-departed/internal/daily"
)

type config struct {
	bind    string
	port    int
	catalog string
	horizon int

	outDir string
	from   string
	days   int
}

func (c *config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.catalog == "" {
		return errors.New("--catalog is required")
	}
	return nil
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DEPARTED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "departed-service",
		Short: "Serve hashed daily content files for the trivia game.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: DEPARTED_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: DEPARTED_PORT)")
	fs.StringVar(&cfg.catalog, "catalog", "", "path to the subject catalog JSON (env: DEPARTED_CATALOG)")
	fs.IntVar(&cfg.horizon, "horizon", 7, "days past today that keys stay resolvable (env: DEPARTED_HORIZON)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(newGenerateCmd(cfg))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SilenceUsage = true

	return cmd
}

func newGenerateCmd(cfg *config) *cobra.Command {
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Pre-render hashed day files and the manifest to a directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.catalog == "" {
				return errors.New("--catalog is required")
			}
			if cfg.days < 1 {
				return errors.New("--days must be at least 1")
			}
			from := time.Now().UTC()
			if cfg.from != "" {
				parsed, err := time.ParseInLocation("20060102", cfg.from, time.UTC)
				if err != nil {
					return fmt.Errorf("invalid --from (want YYYYMMDD): %w", err)
				}
				from = parsed
			}
			return generateDays(cmd, cfg, from)
		},
	}

	generate.Flags().StringVarP(&cfg.outDir, "out", "o", "days", "output directory for day files")
	generate.Flags().StringVar(&cfg.from, "from", "", "first date to render, YYYYMMDD (default today)")
	generate.Flags().IntVar(&cfg.days, "days", 365, "number of days to render")

	return generate
}

func editionRange(from time.Time, days int) string {
	last := from.AddDate(0, 0, days-1)
	return fmt.Sprintf("#%d-#%d", daily.Edition(from), daily.Edition(last))
}
