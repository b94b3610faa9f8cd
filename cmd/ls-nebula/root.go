package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-nebula/internal/config"
	"github.com/litescript/ls-nebula/internal/logging"
	"github.com/litescript/ls-nebula/internal/sky"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFile    string
	fps        int

	cfg     *config.Config
	log     *logging.Logger
	logSink io.Closer

	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		log:    logging.Discard(),
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ls-nebula",
		Short: "Animated night sky for the terminal and desktop",
		Long: `ls-nebula paints a drifting starfield, a soft indigo galaxy band and
scripted pairs of shooting stars.

Without a subcommand it runs in the terminal using half-block cells.
  ls-nebula                     terminal view (q or esc to quit, i for stats)
  ls-nebula window              desktop window
  ls-nebula snapshot --out a.png  headless render of N frames`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE:              a.runTUI,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultPath(), "config file")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFile, "log-file", "", "append logs to this file")
	pf.IntVar(&a.fps, "fps", config.DefaultFPS, fmt.Sprintf("frames per second (%d-%d)", config.MinFPS, config.MaxFPS))

	root.AddCommand(
		a.tuiCmd(),
		a.windowCmd(),
		a.snapshotCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = a.fps
		cfg.Clamp()
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	a.cfg = cfg

	a.log = logging.New(logging.ParseLevel(cfg.LogLevel))
	a.log.SetOutput(a.stderr)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.log.SetOutput(f)
		a.logSink = f
	}

	a.log.Debug("config: fps=%d seed=%d", cfg.FPS, cfg.Seed)
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) {
	_ = a.log.Sync()
	if a.logSink != nil {
		_ = a.logSink.Close()
		a.logSink = nil
	}
}

// newEngine builds an engine; seed 0 seeds from the clock.
func (a *app) newEngine(seed int64, opts ...sky.Option) *sky.Engine {
	base := []sky.Option{sky.WithLogger(a.log)}
	if seed != 0 {
		base = append(base, sky.WithSeed(seed))
	}
	return sky.New(append(base, opts...)...)
}
