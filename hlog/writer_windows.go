//go:build windows
// +build windows

package hlog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/windows/svc"
)

func debugInit(msg string) {
	fmt.Fprintf(os.Stderr, "ShellyDeck#Init: %s\n", msg)
}

func IsTerminal() bool {
	if isService, err := svc.IsWindowsService(); err == nil && isService {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// getLogDir uses %APPDATA%\Elgato\StreamDeck\Plugins logs next to the
// other plugin logs.
func getLogDir() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
	}
	return filepath.Join(appData, "Elgato", "StreamDeck", "logs", "ShellyDeck")
}
