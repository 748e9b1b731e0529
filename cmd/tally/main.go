// Command tally shows a ledger of transactions that can be managed with
// touch gestures: swipe a row left to delete it, swipe it right to pick a new
// category, and pull the list down to refresh it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"tally.dev/tally/config"
	"tally.dev/tally/ledger"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logLevel   string
	seed       uint64
	count      int
}

func newRootCommand() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Touch-friendly transaction ledger",
		Version: versionString(),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "tally.yaml", "path to the configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the configuration")
	flags.Uint64Var(&opts.seed, "seed", 1, "seed for the generated demo transactions")
	flags.IntVar(&opts.count, "transactions", 40, "number of generated demo transactions")

	return rootCmd
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "tally",
	})
	logger.SetLevel(lvl)
	return logger, nil
}

func run(cmd *cobra.Command, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}
	if opts.count < 0 {
		return fmt.Errorf("--transactions must not be negative, got %d", opts.count)
	}

	caps, err := cfg.Capabilities()
	if err != nil {
		return err
	}
	logger.Debug("detected platform", "os", caps.OS, "touch", caps.Touch, "mouse_emulation", caps.MouseEmulation)

	store := ledger.New(logger.WithPrefix("ledger"), opts.seed, opts.count, time.Now())

	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := app.NewWindow(app.Title("tally"), app.Size(unit.Dp(420), unit.Dp(760)))
		a := NewApplication(ctx, w, logger, store, cfg, caps)
		if err := a.Run(); err != nil {
			logger.Fatal("window closed with error", "err", err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
