package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/ichiban/kanren"
)

// Version is a version of this build.
var Version = "1kn/0.1"

type options struct {
	verbose     bool
	facts       []string
	occursCheck bool

	// interactive is true if the output is a terminal.
	interactive bool
	logger      *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts options
	opts.interactive = terminal.IsTerminal(int(os.Stdout.Fd()))
	if err := newRootCmd(&opts).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "1kn",
		Short:   "Query YAML fact bases with a relational search",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose")
	cmd.PersistentFlags().StringSliceVarP(&opts.facts, "facts", "f", nil, "YAML fact files")
	cmd.PersistentFlags().BoolVar(&opts.occursCheck, "occurs-check", false, "unify with occurs check")

	cmd.AddCommand(newQueryCmd(opts), newRelationsCmd(opts))
	return cmd
}

// newEngine creates an engine with the fact files loaded.
func newEngine(opts *options) (*kanren.Engine, error) {
	e := kanren.New(
		kanren.WithLogger(opts.logger),
		kanren.WithOccursCheck(opts.occursCheck),
	)
	for _, name := range opts.facts {
		if err := loadFile(e, name); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func loadFile(e *kanren.Engine, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	if err := e.LoadFacts(f); err != nil {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}
	return nil
}
