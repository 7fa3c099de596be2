package debug

import (
	"os"
	"path/filepath"
	"strings"
)

var debuggerEnv = []string{"VSCODE_DEBUG_MODE", "DELVE_DEBUGGER", "SHELLYDECK_DEBUGGER"}

// IsDebuggerAttached reports whether the process seems to run under a
// debugger: one of the debugger environment variables is set, or the binary
// is a Delve build ("__debug_bin").
func IsDebuggerAttached() bool {
	for _, env := range debuggerEnv {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return strings.HasPrefix(filepath.Base(os.Args[0]), "__debug_bin")
}
