package datasource

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// decimalLiteral matches a whole token such as "12", "-3.5", ".5", "5." or "1e-3"
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// leadingDecimal matches the longest numeric prefix of a string
var leadingDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseToken converts a whole text token to a number. Integer literals with
// a 0x, 0o or 0b prefix are accepted; anything else must be a plain decimal.
func parseToken(token string) (float64, bool) {
	lower := strings.ToLower(token)
	if len(lower) > 2 && lower[0] == '0' && (lower[1] == 'x' || lower[1] == 'o' || lower[1] == 'b') {
		n, err := strconv.ParseUint(lower, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	if !decimalLiteral.MatchString(token) {
		return 0, false
	}
	return toFinite(token)
}

// parseLeading converts the numeric prefix of s ("3.5abc" -> 3.5),
// ignoring leading whitespace. ok is false when s has no numeric prefix.
func parseLeading(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	prefix := leadingDecimal.FindString(s)
	if prefix == "" {
		return 0, false
	}
	return toFinite(prefix)
}

func toFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
