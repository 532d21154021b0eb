package fieldfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

// mask replaces the value of any secret-tagged field.
const mask = "***"

// A suffixRule pairs a key suffix with a value formatter. The formatter
// doubles as the type guard: it reports false when the value does not
// satisfy the rule, in which case the field is left unprocessed.
type suffixRule struct {
	suffix string
	// strip overrides the default exact-case suffix strip. Used by the
	// generic currency rule, whose suffix spans two key tokens.
	strip  func(key string) (string, bool)
	format func(key string, value any) (string, bool)
}

// suffixRules is evaluated top to bottom; the first suffix match wins.
// Order is load-bearing: compound suffixes (_epoch_ms, _usd_cents) must
// precede the short suffixes (_ms, _s) they end in, or the short rule
// would shadow them and mis-format the value.
var suffixRules = []suffixRule{
	// Compound timestamps.
	{suffix: "_epoch_ms", format: epochFormatter(millisFromMillis)},
	{suffix: "_epoch_s", format: formatEpochSeconds},
	{suffix: "_epoch_ns", format: epochFormatter(millisFromNanos)},
	// Compound currencies. Known codes get their symbol; any other
	// _{code}_cents renders "D.DD CODE".
	{suffix: "_usd_cents", format: centsFormatter("$")},
	{suffix: "_eur_cents", format: centsFormatter("€")},
	{suffix: "_cents", strip: stripGenericCents, format: formatGenericCents},
	// Multi-character units.
	{suffix: "_rfc3339", format: formatRFC3339Passthrough},
	{suffix: "_minutes", format: unitFormatter(" minutes")},
	{suffix: "_hours", format: unitFormatter(" hours")},
	{suffix: "_days", format: unitFormatter(" days")},
	// Single units.
	{suffix: "_msats", format: unitFormatter("msats")},
	{suffix: "_sats", format: unitFormatter("sats")},
	{suffix: "_bytes", format: formatBytesField},
	{suffix: "_percent", format: unitFormatter("%")},
	{suffix: "_secret", format: formatSecret},
	// Short suffixes last to avoid false positives.
	{suffix: "_btc", format: unitFormatter(" BTC")},
	{suffix: "_jpy", format: formatYen},
	{suffix: "_ns", format: unitFormatter("ns")},
	{suffix: "_us", format: unitFormatter("μs")},
	{suffix: "_ms", format: formatMsField},
	{suffix: "_s", format: unitFormatter("s")},
}

func (r *suffixRule) stripKey(key string) (string, bool) {
	if r.strip != nil {
		return r.strip(key)
	}
	return stripExactCase(key, r.suffix)
}

// tryProcess applies the first matching suffix rule to a field.
// ok is false when no rule matched, or when a rule matched but its value
// guard rejected the value. A guard mismatch does not fall through to
// shorter suffixes: a string-valued "t_epoch_ms" stays raw rather than
// being retried against "_ms".
func tryProcess(key string, value any) (stripped, formatted string, ok bool) {
	for i := range suffixRules {
		r := &suffixRules[i]
		s, matched := r.stripKey(key)
		if !matched {
			continue
		}
		f, valid := r.format(key, value)
		if !valid {
			return "", "", false
		}
		return s, f, true
	}
	return "", "", false
}

// stripExactCase strips a suffix matching its exact lowercase or exact
// uppercase form. Mixed-case suffixes never match.
func stripExactCase(key, suffixLower string) (string, bool) {
	if strings.HasSuffix(key, suffixLower) {
		return key[:len(key)-len(suffixLower)], true
	}
	suffixUpper := strings.ToUpper(suffixLower)
	if strings.HasSuffix(key, suffixUpper) {
		return key[:len(key)-len(suffixUpper)], true
	}
	return "", false
}

// stripGenericCents strips _{code}_cents / _{CODE}_CENTS, requiring a
// non-empty code and a non-empty remaining key.
func stripGenericCents(key string) (string, bool) {
	code := currencyCode(key)
	if code == "" {
		return "", false
	}
	stripped := key[:len(key)-len(code)-len("_cents")-1]
	if stripped == "" {
		return "", false
	}
	return stripped, true
}

// currencyCode extracts the code token from a _{code}_cents key, or "".
func currencyCode(key string) string {
	if !strings.HasSuffix(key, "_cents") && !strings.HasSuffix(key, "_CENTS") {
		return ""
	}
	withoutCents := key[:len(key)-len("_cents")]
	idx := strings.LastIndex(withoutCents, "_")
	if idx < 0 {
		return ""
	}
	return withoutCents[idx+1:]
}

// --- Formatters ---

func millisFromMillis(n int64) int64 { return n }

// millisFromNanos divides with flooring so negative timestamps round down.
func millisFromNanos(n int64) int64 {
	ms := n / 1_000_000
	if n%1_000_000 < 0 {
		ms--
	}
	return ms
}

func epochFormatter(toMillis func(int64) int64) func(string, any) (string, bool) {
	return func(_ string, value any) (string, bool) {
		n, ok := asInt64(value)
		if !ok {
			return "", false
		}
		return formatEpochMillis(toMillis(n)), true
	}
}

// formatEpochSeconds converts seconds to milliseconds before rendering.
// When the millisecond count overflows int64 it renders the exact decimal
// value, the same raw form an in-range but out-of-calendar count takes.
func formatEpochSeconds(_ string, value any) (string, bool) {
	n, ok := asInt64(value)
	if !ok {
		return "", false
	}
	if n > math.MaxInt64/1000 || n < math.MinInt64/1000 {
		return strconv.FormatInt(n, 10) + "000", true
	}
	return formatEpochMillis(n * 1000), true
}

// formatEpochMillis renders a millisecond timestamp as
// YYYY-MM-DDTHH:MM:SS.mmmZ in UTC. Timestamps whose UTC year falls outside
// 1..9999 render as the raw integer.
func formatEpochMillis(ms int64) string {
	sec, rem := ms/1000, ms%1000
	if rem < 0 {
		sec--
		rem += 1000
	}
	t := time.Unix(sec, rem*int64(time.Millisecond)).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return strconv.FormatInt(ms, 10)
	}
	return strftime.Format("%Y-%m-%dT%H:%M:%S", t) + fmt.Sprintf(".%03dZ", rem)
}

func centsFormatter(symbol string) func(string, any) (string, bool) {
	return func(_ string, value any) (string, bool) {
		n, ok := asNonNegInt64(value)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s%d.%02d", symbol, n/100, n%100), true
	}
}

func formatGenericCents(key string, value any) (string, bool) {
	n, ok := asNonNegInt64(value)
	if !ok {
		return "", false
	}
	code := strings.ToUpper(currencyCode(key))
	return fmt.Sprintf("%d.%02d %s", n/100, n%100, code), true
}

func formatRFC3339Passthrough(_ string, value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func unitFormatter(unit string) func(string, any) (string, bool) {
	return func(_ string, value any) (string, bool) {
		if _, ok := asFloat64(value); !ok {
			return "", false
		}
		return plainScalar(value) + unit, true
	}
}

func formatBytesField(_ string, value any) (string, bool) {
	n, ok := asInt64(value)
	if !ok {
		return "", false
	}
	return formatBytesHuman(n), true
}

// formatBytesHuman renders a byte count with 1024-based units and one
// decimal place, preserving the sign. Values below 1KB stay integral.
func formatBytesHuman(bytes int64) string {
	const kb = 1024.0
	const mb = kb * 1024
	const gb = mb * 1024
	const tb = gb * 1024

	sign := ""
	b := float64(bytes)
	if b < 0 {
		sign = "-"
		b = -b
	}
	switch {
	case b >= tb:
		return fmt.Sprintf("%s%.1fTB", sign, b/tb)
	case b >= gb:
		return fmt.Sprintf("%s%.1fGB", sign, b/gb)
	case b >= mb:
		return fmt.Sprintf("%s%.1fMB", sign, b/mb)
	case b >= kb:
		return fmt.Sprintf("%s%.1fKB", sign, b/kb)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func formatSecret(_ string, _ any) (string, bool) {
	return mask, true
}

func formatYen(_ string, value any) (string, bool) {
	n, ok := asNonNegInt64(value)
	if !ok {
		return "", false
	}
	return "¥" + humanize.Comma(n), true
}

// formatMsField renders _ms values below one second as "{n}ms" and larger
// magnitudes as seconds.
func formatMsField(_ string, value any) (string, bool) {
	n, ok := asFloat64(value)
	if !ok {
		return "", false
	}
	if math.Abs(n) >= 1000 {
		return formatMsAsSeconds(n), true
	}
	return plainScalar(value) + "ms", true
}

// formatMsAsSeconds renders milliseconds as seconds: three decimal places,
// trailing zeros trimmed, never fewer than one decimal (1000 -> "1.0s").
func formatMsAsSeconds(ms float64) string {
	formatted := strconv.FormatFloat(ms/1000, 'f', 3, 64)
	trimmed := strings.TrimRight(formatted, "0")
	if strings.HasSuffix(trimmed, ".") {
		return trimmed + "0s"
	}
	return trimmed + "s"
}
