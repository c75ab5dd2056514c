package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
)

// app holds what PersistentPreRunE resolves for the subcommands.
var app struct {
	cfg    *config.Config
	logger *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Decide membership and emptiness for finite and data-word automata",
	Long: `automata evaluates NFA, register (RA), set augmented (SAFA), class counting (CCA)
and class memory (CMA) automata on batches of words, checks emptiness of NFA and SAFA,
and serves the same operations over HTTP and MCP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, cfg); err != nil {
			return err
		}

		level, err := config.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		app.cfg = cfg
		app.logger = logging.NewWithFormat(os.Stderr, level, cfg.Log.Format)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Settings file (default ./"+config.DefaultPath+" when present)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.Int("budget", 0, "Per-word exploration budget (0 keeps the default, negative disables the cap)")
	pf.Int("workers", 0, "Words decided in parallel (0 uses GOMAXPROCS)")
	pf.String("cache-dir", "", "Memoize verdicts as files in this directory")
	pf.String("redis", "", "Memoize verdicts in Redis at this address")
	pf.Bool("no-cache", false, "Disable the verdict cache")
}

// applyFlags overrides file settings with the flags the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("budget") {
		cfg.Engine.Budget, _ = flags.GetInt("budget")
	}
	if flags.Changed("workers") {
		cfg.Engine.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir, _ = flags.GetString("cache-dir")
	}
	if flags.Changed("redis") {
		cfg.Cache.Redis, _ = flags.GetString("redis")
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Disabled, _ = flags.GetBool("no-cache")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		port, _ := flags.GetInt("port")
		if cmd.Name() == "mcp" {
			cfg.MCP.Port = port
		} else {
			cfg.Server.Port = port
		}
	}
	if flags.Lookup("transport") != nil && flags.Changed("transport") {
		cfg.MCP.Transport, _ = flags.GetString("transport")
	}
	return cfg.Validate()
}

// newEngine builds the engine from the resolved settings. Callers close it.
func newEngine() (*cli.Engine, error) {
	return cli.NewEngine(app.cfg, app.logger)
}
