package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/rain/core"
	"github.com/lixenwraith/rain/rain"
	"github.com/lixenwraith/rain/render"
	"github.com/lixenwraith/rain/terminal"
)

var version = "dev"

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cmd, err := newRootCmd(run)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command; environment values become the flag defaults
func newRootCmd(runFn func(context.Context, Config, terminal.ColorMode) error) (*cobra.Command, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:   "rain",
		Short: "Falling character rain in the terminal",
		Long: `Draws columns of falling glyphs with fading green trails.
Runs until interrupted (Ctrl-C; Esc or q with the tcell backend).`,
		Example: `  rain
  rain --backend tcell --color 256
  RAIN_STATS=false rain -d`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := cfg.validate()
			if err != nil {
				return err
			}
			return runFn(cmd.Context(), cfg, mode)
		},
	}

	cmd.Flags().StringVar(&cfg.Backend, "backend", cfg.Backend, "Output backend: ansi or tcell")
	cmd.Flags().StringVar(&cfg.Color, "color", cfg.Color, "Color mode: auto, truecolor or 256")
	cmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", cfg.Debug, "Write debug logs to logs/rain.log")
	cmd.Flags().BoolVar(&cfg.Stats, "stats", cfg.Stats, "Show the stats overlay")

	return cmd, nil
}

func newTerminal(backend string, mode terminal.ColorMode) (terminal.Terminal, error) {
	if backend == backendTcell {
		return terminal.NewTcell()
	}
	return terminal.New(mode), nil
}

// run draws until ctx ends, an interrupt key arrives, or the terminal fails
func run(ctx context.Context, cfg Config, mode terminal.ColorMode) error {
	logFile, logger := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	term, err := newTerminal(cfg.Backend, mode)
	if err != nil {
		return err
	}
	if err := term.Init(); err != nil {
		return errors.Wrap(err, "initialize terminal")
	}
	core.SetCrashTerminal(term)
	defer core.SetCrashTerminal(nil)
	defer term.Fini()

	width, height, _ := term.Size()
	logger.Info("rain started", "backend", cfg.Backend, "color", mode, "width", width, "height", height)

	rcfg := rain.DefaultConfig()
	rcfg.ShowStats = cfg.Stats
	rcfg.Logger = logger
	driver := rain.NewDriver(render.NewSurface(term), rcfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(core.Recover(func() error {
		// Finalizing here also releases a watcher blocked on input
		defer term.Fini()
		return driver.Run(gctx)
	}))
	if w, ok := term.(terminal.InterruptWatcher); ok {
		g.Go(core.Recover(func() error {
			return w.WaitInterrupt(gctx)
		}))
	}

	err = g.Wait()
	stats := driver.Stats()
	logger.Info("rain stopped", "lines", stats.Lines, "fps", stats.FPS, "error", err)

	if errors.Is(err, terminal.ErrInterrupted) {
		return nil
	}
	return err
}
