// Package cli wires configuration, storage and the order service into the
// orderparser command tree.
package cli

import (
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/eshaffer321/orderparser/internal/infrastructure/config"
	"github.com/eshaffer321/orderparser/internal/infrastructure/logging"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// GlobalFlags are shared by every subcommand.
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
	LogFormat  string
	Local      bool
}

// NewRootCommand builds the orderparser command tree.
func NewRootCommand() *cobra.Command {
	flags := &GlobalFlags{}

	root := &cobra.Command{
		Use:   "orderparser",
		Short: "Turn pasted order text into shipping tables",
		Long: `orderparser extracts order rows from free-form text with an LLM,
keeps a history of runs and exports them as tab-separated tables.

Commands:
  serve    - Run the HTTP API
  parse    - Extract orders from a file or stdin and save the run
  history  - List saved runs
  show     - Print one run
  edit     - Change one field of one row
  export   - Print or copy a run in one of the fixed layouts`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "Config file (falls back to environment variables)")
	root.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flags.LogFormat, "log-format", "", "Log format: maven, text or json")
	root.PersistentFlags().BoolVar(&flags.Local, "local", false, "Use only the local store, never the server")

	root.AddCommand(
		newServeCommand(flags),
		newParseCommand(flags),
		newHistoryCommand(flags),
		newShowCommand(flags),
		newEditCommand(flags),
		newExportCommand(flags),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// load resolves config and the logger for a command.
func (f *GlobalFlags) load(system string) (*config.Config, *slog.Logger) {
	cfg := config.LoadOrEnvWithPath(f.ConfigPath)

	loggingCfg := cfg.Observability.Logging
	if f.Verbose {
		loggingCfg.Level = "debug"
	}
	if f.LogFormat != "" {
		loggingCfg.Format = f.LogFormat
	}
	return cfg, logging.NewLoggerWithSystem(loggingCfg, system)
}
