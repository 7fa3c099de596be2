package main

import "strings"

// Flags the Stream Deck application launches the plugin with, in Go flag
// style (single dash, multi-letter).
var launchFlags = map[string]bool{
	"-port":          true,
	"-pluginUUID":    true,
	"-registerEvent": true,
	"-info":          true,
}

// normalizeArgs rewrites a Stream Deck launch command line into a plugin
// subcommand call with double-dash flags. Other command lines are returned
// unchanged.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args)+1)
	launched := false
	for i, arg := range args {
		name, value, hasValue := strings.Cut(arg, "=")
		// values following a flag are left alone, -info carries JSON
		if launchFlags[name] && (i == 0 || !launchFlags[args[i-1]]) {
			launched = true
			arg = "-" + name
			if hasValue {
				arg += "=" + value
			}
		}
		out = append(out, arg)
	}
	if launched && (len(out) == 0 || out[0] != pluginCmd.Name()) {
		out = append([]string{pluginCmd.Name()}, out...)
	}
	return out
}
