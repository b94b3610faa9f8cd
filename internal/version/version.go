// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - ebiten window host, snapshot --ansi, YAML config
// 0.2.0 - Shooting-star sequencer state machine, stats footer
// 0.1.0 - Initial release: starfield, galaxy band, half-block TUI, PNG snapshots

// String returns the version line printed by the CLI.
func String() string {
	return "ls-nebula v" + Version
}
