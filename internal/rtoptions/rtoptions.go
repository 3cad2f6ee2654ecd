// Package rtoptions holds the session construction options and the TTY/CI
// detection that supplies their defaults.
package rtoptions

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rune-tui/rune/internal/termprofile"
)

// ciEnvVars are environment variables set by common CI providers; any one
// being set is treated as running under CI.
var ciEnvVars = []string{
	"CI", "CONTINUOUS_INTEGRATION", "GITHUB_ACTIONS", "GITLAB_CI",
	"CIRCLECI", "TRAVIS", "JENKINS_URL", "BUILDKITE", "AZURE_PIPELINES",
	"TEAMCITY_VERSION",
}

// IsCI reports whether any recognised CI environment variable is set.
func IsCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// Options configures a render session.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ExitOnCtrlC             bool
	PatchConsole            bool
	UseAltScreen            bool
	EnableRawMode           bool
	EnableBracketedPaste    bool
	FPSCap                  int
	TerminalProfileOverride *termprofile.Profile
}

const defaultFPSCap = 60

// Default returns an Options with TTY- and CI-aware defaults: raw mode,
// alternate screen, and bracketed paste are only enabled when stdout is a
// real terminal and the process is not running under CI.
func Default() Options {
	stdoutIsTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	interactive := stdoutIsTTY && !IsCI()

	return Options{
		Stdin:                os.Stdin,
		Stdout:               os.Stdout,
		Stderr:               os.Stderr,
		ExitOnCtrlC:          true,
		PatchConsole:         false,
		UseAltScreen:         interactive,
		EnableRawMode:        interactive,
		EnableBracketedPaste: interactive,
		FPSCap:               defaultFPSCap,
	}
}
