package fieldfmt

import (
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// ParseSize parses a human-readable size string into bytes. It accepts a
// bare integer or decimal number, optionally followed by a case-insensitive
// unit letter among B/K/M/G/T (powers of 1024). Surrounding whitespace is
// trimmed. Returns (0, false) for empty input, negative numbers, NaN,
// overflow, or an unrecognized trailing character.
func ParseSize(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	last := s[len(s)-1]
	var numStr string
	var mult uint64
	switch {
	case last == 'B' || last == 'b':
		numStr, mult = s[:len(s)-1], 1
	case last == 'K' || last == 'k':
		numStr, mult = s[:len(s)-1], 1024
	case last == 'M' || last == 'm':
		numStr, mult = s[:len(s)-1], 1024*1024
	case last == 'G' || last == 'g':
		numStr, mult = s[:len(s)-1], 1024*1024*1024
	case last == 'T' || last == 't':
		numStr, mult = s[:len(s)-1], 1024*1024*1024*1024
	case (last >= '0' && last <= '9') || last == '.':
		numStr, mult = s, 1
	default:
		return 0, false
	}
	if numStr == "" {
		return 0, false
	}
	if n, err := strconv.ParseUint(numStr, 10, 64); err == nil {
		hi, lo := bits.Mul64(n, mult)
		if hi != 0 {
			return 0, false
		}
		return lo, true
	}
	f, err := strconv.ParseFloat(numStr, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	result := f * float64(mult)
	if result > float64(math.MaxUint64) {
		return 0, false
	}
	return uint64(result), true
}
