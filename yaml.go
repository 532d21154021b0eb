package fieldfmt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToYAML renders a value as an indented YAML document starting with a
// "---" marker line. Keys are suffix-stripped, values unit-formatted, and
// secrets masked. No trailing newline.
func ToYAML(value any) string {
	lines := []string{"---"}
	renderYAMLValue(normalize(value), 0, &lines)
	return strings.Join(lines, "\n")
}

func renderYAMLValue(value any, indent int, lines *[]string) {
	prefix := strings.Repeat("  ", indent)
	m, ok := value.(map[string]any)
	if !ok {
		*lines = append(*lines, prefix+yamlScalar(value))
		return
	}

	for _, pf := range processFields(m) {
		if pf.ok {
			*lines = append(*lines, fmt.Sprintf("%s%s: \"%s\"", prefix, pf.key, escapeString(pf.formatted)))
			continue
		}
		switch v := pf.value.(type) {
		case map[string]any:
			if len(v) > 0 {
				*lines = append(*lines, prefix+pf.key+":")
				renderYAMLValue(v, indent+1, lines)
			} else {
				*lines = append(*lines, prefix+pf.key+": {}")
			}
		case []any:
			if len(v) == 0 {
				*lines = append(*lines, prefix+pf.key+": []")
				continue
			}
			*lines = append(*lines, prefix+pf.key+":")
			for _, item := range v {
				if _, ok := item.(map[string]any); ok {
					*lines = append(*lines, prefix+"  -")
					renderYAMLValue(item, indent+2, lines)
				} else {
					*lines = append(*lines, prefix+"  - "+yamlScalar(item))
				}
			}
		default:
			*lines = append(*lines, fmt.Sprintf("%s%s: %s", prefix, pf.key, yamlScalar(pf.value)))
		}
	}
}

func yamlScalar(value any) string {
	switch v := value.(type) {
	case string:
		return `"` + escapeString(v) + `"`
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
		return fmt.Sprintf(`"%v"`, value)
	}
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
