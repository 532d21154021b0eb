package fieldfmt

import "encoding/json"

// ToJSON renders a value as compact single-line JSON with secrets redacted.
// Keys keep their original spelling and values stay raw; only redaction is
// applied. The input is never mutated: redaction runs on a decoded copy.
// Unencodable inputs degrade to "null" rather than failing.
func ToJSON(value any) string {
	b, _ := json.Marshal(value)
	var v any
	_ = json.Unmarshal(b, &v)
	RedactInPlace(v)
	out, _ := json.Marshal(v)
	return string(out)
}
