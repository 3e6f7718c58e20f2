package nftmeta

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	eng "github.com/reoring/nftmeta/internal/engine"
)

// Decoded carries a decoded value with the non-fatal issues (Warn severity)
// collected while decoding it.
type Decoded[T any] struct {
	Value    T
	Warnings Issues
}

// Decode is the primary entry point. It enforces size, depth, duplicate-key
// and unknown-key policies from opts, then decodes data into T. Shape errors
// reported by the records are returned as Issues.
func Decode[T any](data []byte, opts ...ParseOpt) (T, error) {
	d, err := DecodeWithMeta[T](data, opts...)
	return d.Value, err
}

// DecodeReader reads r fully (bounded by MaxBytes when set) and decodes it.
func DecodeReader[T any](r io.Reader, opts ...ParseOpt) (T, error) {
	var zero T
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return zero, fmt.Errorf("nftmeta: read input: %w", err)
	}
	return Decode[T](data, opts...)
}

// DecodeWithMeta is Decode that also returns warnings, such as duplicate keys
// under Strictness{OnDuplicateKey: Warn}.
func DecodeWithMeta[T any](data []byte, opts ...ParseOpt) (Decoded[T], error) {
	var out Decoded[T]
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return out, Root().Issues(CodeTooBig, "document exceeds max bytes", "max", opt.MaxBytes)
	}

	if opt.Strictness.OnDuplicateKey != Ignore || opt.MaxDepth > 0 {
		maxIssues := -1
		if opt.FailFast && opt.Strictness.OnDuplicateKey != Warn {
			maxIssues = 1
		}
		si, err := eng.Scan(data, eng.ScanOpt{
			OnDup:     toEngineDup(opt.Strictness.OnDuplicateKey),
			MaxDepth:  opt.MaxDepth,
			MaxIssues: maxIssues,
		})
		if err != nil {
			return out, Issues{Root().Issue(CodeParseError, err.Error()).WithCause(err)}
		}
		var fatal Issues
		for _, it := range fromEngineIssues(si) {
			if it.Code == CodeDuplicateKey && opt.Strictness.OnDuplicateKey == Warn {
				out.Warnings = AppendIssues(out.Warnings, it)
				continue
			}
			if it.Code == CodeTruncated && (len(fatal) == 0 || opt.FailFast) {
				continue
			}
			fatal = AppendIssues(fatal, it)
		}
		if len(fatal) > 0 {
			return out, fatal
		}
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return out, ToIssues(err)
	}

	if opt.Unknown == UnknownReject {
		canonical, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("nftmeta: re-encode for unknown key check: %w", err)
		}
		paths, err := eng.UnknownPaths(data, canonical)
		if err != nil {
			return out, Issues{Root().Issue(CodeParseError, err.Error()).WithCause(err)}
		}
		var iss Issues
		for _, p := range paths {
			iss = AppendIssues(iss, ParsePath(p).Issue(CodeUnknownKey, "no field consumes this key"))
			if opt.FailFast {
				break
			}
		}
		if len(iss) > 0 {
			return out, iss
		}
	}

	out.Value = v
	return out, nil
}

// Encode renders v as compact JSON.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// EncodeIndent renders v as indented JSON.
func EncodeIndent(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(v, prefix, indent)
}
