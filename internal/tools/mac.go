package tools

import "strings"

// NormalizeMac returns a MAC address as lower-case colon-separated pairs,
// whatever the separators of the input ("E8E07EA60C6F", "e8-e0-7e-a6-0c-6f").
// Input that does not hold exactly 12 hex digits is returned trimmed and
// lower-cased.
func NormalizeMac(in string) string {
	m := strings.ToLower(strings.TrimSpace(in))
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			return r
		}
		if r == ':' || r == '-' || r == '.' {
			return -1
		}
		// not a MAC address
		return '!'
	}, m)
	if len(digits) != 12 || strings.ContainsRune(digits, '!') {
		return m
	}
	pairs := make([]string, 0, 6)
	for i := 0; i < len(digits); i += 2 {
		pairs = append(pairs, digits[i:i+2])
	}
	return strings.Join(pairs, ":")
}
