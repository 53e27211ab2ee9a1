package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fmtkit/builtin"
	"github.com/randalmurphal/fmtkit/settings"
	"github.com/randalmurphal/fmtkit/template"
)

// Command group IDs for organizing help output
const (
	GroupRender  = "render"
	GroupInspect = "inspect"
)

// app is the state shared by every command.
type app struct {
	settingsPath string
	verbose      bool
	quiet        bool

	settings settings.Settings
	logger   *slog.Logger
	engine   *template.Engine
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "fmtkit",
		Short: "Render and inspect composite-format templates",
		Long: `fmtkit renders templates such as "Hello {Name}, you have {Count:cond:one|many} items".

Settings come from --settings (YAML, TOML or JSON) or FMTKIT_* environment
variables.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "completion" || cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&a.settingsPath, "settings", "", "Settings file (.yaml, .toml or .json)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupRender, Title: "Render Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
	)

	cmd.AddCommand(newRenderCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newParseCmd(a))
	cmd.AddCommand(newSchemaCmd(a))
	cmd.AddCommand(newPoolsCmd(a))

	return cmd
}

// setup loads settings and builds the logger and engine.
func (a *app) setup(stderr io.Writer) error {
	var err error
	if a.settingsPath != "" {
		a.settings, err = settings.Load(a.settingsPath)
	} else {
		a.settings, err = settings.FromEnv()
	}
	if err != nil {
		return err
	}

	a.logger = newLogger(stderr, a.verbose, a.quiet)
	a.settings.Pooling.Apply()

	a.engine, err = builtin.NewEngine(
		template.WithSettings(a.settings),
		template.WithLogger(a.logger),
	)
	return err
}

func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	switch {
	case quiet:
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	case verbose:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
}

// Execute runs the root command with signal handling.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "fmtkit:", err)
		os.Exit(1)
	}
}
