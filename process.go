package fieldfmt

import (
	"slices"
	"unicode/utf16"
)

// processedField is one rendered field of a single mapping level.
type processedField struct {
	key       string // display key, possibly suffix-stripped
	value     any    // original value
	formatted string // unit-formatted rendering, valid when ok
	ok        bool
}

// processFields applies the suffix rules to every field of one mapping
// level, resolves stripped-key collisions, and returns the fields in
// canonical order.
//
// Collision rule: when two or more original keys strip to the same display
// key, every entry that was actually stripped reverts to its original key
// with formatting discarded. Merging distinct fields (duration_ms and
// duration_s both stripping to duration) under one display key would lose
// information; reverting keeps both visible. Entries whose key was never
// stripped are unaffected.
func processFields(m map[string]any) []processedField {
	type entry struct {
		stripped  string
		original  string
		value     any
		formatted string
		ok        bool
	}

	entries := make([]entry, 0, len(m))
	for k, v := range m {
		if stripped, formatted, ok := tryProcess(k, v); ok {
			entries = append(entries, entry{stripped, k, v, formatted, true})
		} else {
			entries = append(entries, entry{k, k, v, "", false})
		}
	}

	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.stripped]++
	}

	fields := make([]processedField, len(entries))
	for i, e := range entries {
		if counts[e.stripped] > 1 && e.original != e.stripped {
			fields[i] = processedField{key: e.original, value: e.value}
			continue
		}
		fields[i] = processedField{e.stripped, e.value, e.formatted, e.ok}
	}

	slices.SortFunc(fields, func(a, b processedField) int {
		return jcsCompare(a.key, b.key)
	})
	return fields
}

// jcsCompare orders strings by UTF-16 code unit, the canonical JSON key
// order of RFC 8785. Not locale collation: output must be byte-identical
// across platforms.
func jcsCompare(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
