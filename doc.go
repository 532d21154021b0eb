// Package fieldfmt renders structured data in three textual forms —
// compact JSON, indented YAML-like blocks, and single-line logfmt —
// applying suffix-driven field transformation along the way.
//
// A field's key suffix determines how its value is displayed and whether
// the suffix is stripped from the rendered key: size_bytes renders as a
// human byte size under the key "size", duration_ms as "250ms" or "1.5s"
// under "duration", created_epoch_ms as an RFC 3339 timestamp under
// "created", price_usd_cents as "$4.99" under "price", and any *_secret
// field is masked. The JSON form keeps original keys and raw values and
// applies redaction only.
//
// # Formats
//
// The central entry points are [Render] and [Write], which accept a
// [Format] constant and a value of any type:
//
//	fieldfmt.Write(os.Stdout, fieldfmt.Plain, result)
//
// Each renderer is also exported directly as [ToJSON], [ToYAML], and
// [ToPlain]; all three accept any value and never fail. Use [ParseFormat]
// to convert a CLI flag string into a [Format]. [WriteSeq] and [WriteChan]
// stream one document per value.
//
// # Suffix rules
//
// Rules live in a fixed priority-ordered table: compound suffixes
// (_epoch_ms, _usd_cents) are matched before the short suffixes they end
// in (_ms, _s). A suffix matches only in its all-lowercase or all-uppercase
// form, and only formats the value when it satisfies the rule's type guard;
// otherwise the field renders raw under its original key. When two keys in
// one mapping strip to the same display key, both revert to their original
// keys rather than merging.
//
// Keys at each mapping level render in UTF-16 code-unit order (RFC 8785),
// so output is deterministic regardless of insertion order.
//
// # Redaction
//
// [Redact] returns a masked copy; [RedactInPlace] mutates a map/slice tree
// directly. Both replace the value of any key ending in _secret or _SECRET
// with "***", recursing into container values instead of masking them
// wholesale.
//
// # Envelopes and logging
//
// [Ok], [Error], [Startup], [Status], and friends build the fixed-shape
// protocol mappings used on agent-facing stdout. [Handler] is a
// [log/slog.Handler] that emits one fieldfmt document per record, with
// span fields via WithAttrs or [WithSpan]/[LoggerFrom].
//
// # Errors
//
// Renderers never fail on malformed data; degraded raw output is always
// preferred to refusing to print. The only sentinel is
// [ErrUnsupportedFormat], returned for unknown format strings.
package fieldfmt
