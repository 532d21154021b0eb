package fieldfmt

import "encoding/json"

// Redact returns a copy of value with every secret-tagged field masked.
// A key is secret-tagged when it ends in "_secret" or "_SECRET" (mixed
// case never matches). Container values under a secret key are not masked
// wholesale; the walk recurses so their own nested secret keys get masked.
// The input is never mutated. Values that do not survive a JSON round-trip
// are returned unchanged.
func Redact(value any) any {
	b, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return value
	}
	RedactInPlace(v)
	return v
}

// RedactInPlace masks secret-tagged fields by mutating the given
// map/slice tree directly. Must not be called on a structure concurrently
// observed by another reader.
func RedactInPlace(value any) {
	switch v := value.(type) {
	case map[string]any:
		for k := range v {
			if isSecretKey(k) {
				switch v[k].(type) {
				case map[string]any, []any:
					RedactInPlace(v[k])
				default:
					v[k] = mask
				}
			} else {
				RedactInPlace(v[k])
			}
		}
	case []any:
		for _, item := range v {
			RedactInPlace(item)
		}
	}
}

func isSecretKey(key string) bool {
	_, ok := stripExactCase(key, "_secret")
	return ok
}
