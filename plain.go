package fieldfmt

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// plainEscaper keeps the output single-line: newlines, carriage returns,
// and tabs inside values render as their escape sequences.
var plainEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// ToPlain renders a value as a single logfmt line: suffix-stripped dotted
// key paths, unit-formatted values, secrets masked, pairs in canonical key
// order. Values containing a space are double-quoted; newlines, carriage
// returns, and tabs are escaped. A non-mapping input produces the empty
// string.
func ToPlain(value any) string {
	var pairs [][2]string
	collectPlainPairs(normalize(value), "", &pairs)
	slices.SortFunc(pairs, func(a, b [2]string) int {
		return jcsCompare(a[0], b[0])
	})
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		v := plainEscaper.Replace(p[1])
		if strings.Contains(v, " ") {
			parts[i] = fmt.Sprintf("%s=\"%s\"", p[0], v)
		} else {
			parts[i] = p[0] + "=" + v
		}
	}
	return strings.Join(parts, " ")
}

func collectPlainPairs(value any, prefix string, pairs *[][2]string) {
	m, ok := value.(map[string]any)
	if !ok {
		return
	}
	for _, pf := range processFields(m) {
		fullKey := pf.key
		if prefix != "" {
			fullKey = prefix + "." + pf.key
		}
		if pf.ok {
			*pairs = append(*pairs, [2]string{fullKey, pf.formatted})
			continue
		}
		switch v := pf.value.(type) {
		case map[string]any:
			collectPlainPairs(v, fullKey, pairs)
		case []any:
			// Elements render as plain scalars, comma-joined. Mappings
			// inside a sequence stringify generically rather than
			// flattening further.
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = plainScalar(item)
			}
			*pairs = append(*pairs, [2]string{fullKey, strings.Join(parts, ",")})
		case nil:
			*pairs = append(*pairs, [2]string{fullKey, ""})
		default:
			*pairs = append(*pairs, [2]string{fullKey, plainScalar(pf.value)})
		}
	}
}

func plainScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1e15 {
			return fmt.Sprintf("%.0f", v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
