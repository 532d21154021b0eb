package fieldfmt

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// ErrUnsupportedFormat is returned for format strings outside the known set.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format represents an output format.
type Format string

const (
	// JSON is compact single-line JSON: secrets redacted, original keys,
	// raw values.
	JSON Format = "json"
	// YAML is multi-line indented block text: keys stripped, values
	// unit-formatted, secrets redacted.
	YAML Format = "yaml"
	// Plain is single-line logfmt: dotted key paths, keys stripped, values
	// unit-formatted, secrets redacted.
	Plain Format = "plain"
)

var formats = []Format{JSON, YAML, Plain}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Render formats a value and returns the result. The renderers themselves
// never fail on data; the only possible error is an unsupported format.
func Render(f Format, value any) (string, error) {
	switch f {
	case JSON:
		return ToJSON(value), nil
	case YAML:
		return ToYAML(value), nil
	case Plain:
		return ToPlain(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Write formats a value and writes it to w, followed by a newline.
func Write(w io.Writer, f Format, value any) error {
	s, err := Render(f, value)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}

// WriteSeq formats values from an iterator and writes them to w as they
// arrive, one document per value: one JSON line, one logfmt line, or one
// "---"-prefixed YAML block.
func WriteSeq(w io.Writer, f Format, seq iter.Seq[any]) error {
	switch f {
	case JSON, YAML, Plain:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	for value := range seq {
		if err := Write(w, f, value); err != nil {
			return err
		}
	}
	return nil
}

// WriteChan formats values from a channel and writes them to w.
// It is a thin wrapper around [WriteSeq].
func WriteChan(w io.Writer, f Format, ch <-chan any) error {
	return WriteSeq(w, f, chanToSeq(ch))
}

func chanToSeq(ch <-chan any) iter.Seq[any] {
	return func(yield func(any) bool) {
		for value := range ch {
			if !yield(value) {
				return
			}
		}
	}
}
