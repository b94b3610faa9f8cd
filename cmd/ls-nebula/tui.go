package main

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-nebula/internal/ui"
)

var errNotTerminal = errors.New("stdout is not a terminal (try `ls-nebula snapshot --ansi`)")

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Animate the sky in the terminal (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	if !a.isTerminal() {
		return errNotTerminal
	}
	// Log lines would tear the alt screen.
	if a.cfg.LogFile == "" {
		a.log.SetOutput(io.Discard)
	}

	engine := a.newEngine(a.cfg.Seed)
	defer engine.Stop()

	p := tea.NewProgram(
		ui.New(engine, a.cfg, a.log),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	a.log.Info("tui: exited after %d frames", engine.Stats().Frames)
	return nil
}
