// Package cli wires the stopwatch commands together. Running the binary with
// no subcommand starts the terminal UI.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/j-veylop/stopwatch-tui/internal/config"
	"github.com/j-veylop/stopwatch-tui/internal/db"
	"github.com/j-veylop/stopwatch-tui/internal/logger"
	"github.com/j-veylop/stopwatch-tui/internal/services/history"
	"github.com/j-veylop/stopwatch-tui/internal/version"
)

// options holds the persistent flags shared by every command.
type options struct {
	envFile string
	debug   bool
}

var debugMode bool

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "Stopwatch TUI - a terminal stopwatch with session history",
		Long: `A terminal stopwatch with start, stop and reset controls.

Every run with time on it is saved when it is reset or when you quit, and
can be browsed in the History tab or with the history and stats commands.

Configuration is read from a .env file and the environment:
  DATABASE_PATH          SQLite database path
  REFRESH_INTERVAL       Display refresh cadence (default: 10ms)
  MILESTONE_INTERVAL     Desktop alert every N of elapsed time (default: off)
  TARGET_DURATION        Audible alert once this is reached (default: off)
  NOTIFICATIONS_ENABLED  Toggle desktop alerts (default: true)
  HISTORY_LIMIT          Sessions shown in the History tab (default: 50)
  LOG_FILE, LOG_LEVEL    Optional log file and level`,
		Version: version.GetVersion(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debugMode = opts.debug
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return runTUI(cmd.OutOrStdout(), cfg)
		},
	}

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SuggestionsMinimumDistance = 2
	rootCmd.SetVersionTemplate(version.Info() + "\n")

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env", "", "read configuration from this .env file instead of searching for one")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "print detailed error messages")

	rootCmd.AddCommand(
		newHistoryCmd(opts),
		newStatsCmd(opts),
		newLabelCmd(opts),
		newDeleteCmd(opts),
		newVacuumCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if len(os.Args) > 1 {
			if suggestions := rootCmd.SuggestionsFor(os.Args[1]); len(suggestions) > 0 {
				fmt.Fprintf(os.Stderr, "Did you mean:\n")
				for _, s := range suggestions {
					fmt.Fprintf(os.Stderr, "  • %s\n", s)
				}
				fmt.Fprintln(os.Stderr)
			}
		}
		PrintError(err)
		os.Exit(1)
	}
}

// IsDebug returns true if debug mode is enabled.
func IsDebug() bool {
	return debugMode
}

func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.envFile != "" {
		cfg, err = config.LoadFrom(o.envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openHistory opens the session store for a one-shot command. The returned
// closer releases the database.
func (o *options) openHistory() (*history.Service, io.Closer, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	closer, err := logger.Init(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, nil, err
	}

	database, err := db.New(cfg.DatabasePath)
	if err != nil {
		closer.Close()
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	return history.New(database), multiCloser{database, closer}, nil
}

// multiCloser closes every element in order and returns the first error.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}
