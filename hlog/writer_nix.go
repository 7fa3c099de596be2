//go:build !windows
// +build !windows

package hlog

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mattn/go-isatty"
)

func debugInit(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

func IsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// getLogDir follows the Stream Deck convention on macOS, XDG state otherwise.
func getLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "ShellyDeck")
	}

	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "shellydeck", "logs")
}
