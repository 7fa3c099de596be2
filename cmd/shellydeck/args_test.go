package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeArgs(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "stream deck launch",
			in:   []string{"-port", "28196", "-pluginUUID", "ABCD", "-registerEvent", "registerPlugin", "-info", `{"application":{}}`},
			want: []string{"plugin", "--port", "28196", "--pluginUUID", "ABCD", "--registerEvent", "registerPlugin", "--info", `{"application":{}}`},
		},
		{
			name: "equals form",
			in:   []string{"-port=28196", "-pluginUUID=ABCD"},
			want: []string{"plugin", "--port=28196", "--pluginUUID=ABCD"},
		},
		{
			name: "explicit subcommand",
			in:   []string{"plugin", "-port", "1", "-v"},
			want: []string{"plugin", "--port", "1", "-v"},
		},
		{
			name: "cli",
			in:   []string{"status", "192.168.1.20", "-v", "--id", "1"},
			want: []string{"status", "192.168.1.20", "-v", "--id", "1"},
		},
		{
			name: "empty",
			in:   []string{},
			want: []string{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, normalizeArgs(tc.in)); diff != "" {
				t.Errorf("unexpected args (-want +got):\n%s", diff)
			}
		})
	}
}
