package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/ls-nebula/internal/window"
)

func (a *app) windowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Animate the sky in a desktop window",
		Long: `Open a resizable window sized by window.width and window.height in the
config file. window.scale sets device pixels per engine pixel. Press esc or q
to close.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine := a.newEngine(a.cfg.Seed)
			defer engine.Stop()
			return window.Run(cmd.Context(), engine, a.cfg, a.log)
		},
	}
}
