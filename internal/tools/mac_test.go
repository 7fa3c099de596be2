package tools

import "testing"

func TestNormalizeMac(t *testing.T) {
	for in, want := range map[string]string{
		"E8E07EA60C6F":       "e8:e0:7e:a6:0c:6f",
		"e8-e0-7e-a6-0c-6f":  "e8:e0:7e:a6:0c:6f",
		" e8:e0:7e:a6:0c:6f": "e8:e0:7e:a6:0c:6f",
		"e8e0.7ea6.0c6f":     "e8:e0:7e:a6:0c:6f",
		"E8E07EA60C":         "e8e07ea60c",
		"shellyplus1-e8e0":   "shellyplus1-e8e0",
		"":                   "",
	} {
		if got := NormalizeMac(in); got != want {
			t.Errorf("NormalizeMac(%q) = %q, want %q", in, got, want)
		}
	}
}
