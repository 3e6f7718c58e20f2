package codec

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/reoring/nftmeta"
)

// jsDateLayout is the layout JavaScript's Date.prototype.toJSON produces.
const jsDateLayout = "2006-01-02T15:04:05.000Z"

// Timestamp returns a codec that converts between ISO-8601 wire strings and
// time.Time.
func Timestamp() TimestampCodec { return TimestampCodec{} }

// TimestampCodec is the wire(string) <-> domain(time.Time) codec used for mint
// stage dates.
type TimestampCodec struct{}

func (TimestampCodec) Decode(ctx context.Context, a string) (time.Time, error) {
	return ParseTimestamp(a)
}

func (TimestampCodec) Encode(ctx context.Context, b time.Time) (string, error) {
	return FormatTimestamp(b), nil
}

// ParseTimestamp accepts RFC3339 with optional fractional seconds (which
// covers the millisecond form JavaScript emits). Errors are Issues at "/".
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, nftmeta.Issues{nftmeta.Root().Issue(nftmeta.CodeInvalidFormat, "expected RFC3339 timestamp").WithCause(err)}
	}
	return t, nil
}

// FormatTimestamp normalises to UTC. Millisecond-aligned instants use the
// JavaScript Date layout; finer values fall back to RFC3339Nano so nothing is
// lost.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()%int(time.Millisecond) == 0 {
		return t.Format(jsDateLayout)
	}
	return t.Format(time.RFC3339Nano)
}

// DecodeTimestampJSON decodes a JSON timestamp: a string (see ParseTimestamp)
// or a number of milliseconds since the Unix epoch. Issue paths are rooted at
// at.
func DecodeTimestampJSON(raw []byte, at nftmeta.Path) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return time.Time{}, at.Issues(nftmeta.CodeRequired, "timestamp missing")
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, nftmeta.Issues{at.Issue(nftmeta.CodeParseError, err.Error()).WithCause(err)}
		}
		t, err := ParseTimestamp(s)
		if err != nil {
			return time.Time{}, nftmeta.Issues{at.Issue(nftmeta.CodeInvalidFormat, "expected RFC3339 timestamp", "got", s).WithCause(err)}
		}
		return t, nil
	case 'n':
		return time.Time{}, at.Issues(nftmeta.CodeInvalidType, "timestamp must not be null")
	default:
		ms, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return time.Time{}, nftmeta.Issues{at.Issue(nftmeta.CodeInvalidType, "expected RFC3339 string or epoch milliseconds").WithCause(err)}
		}
		return time.UnixMilli(ms).UTC(), nil
	}
}

// EncodeTimestampJSON renders t as a JSON string via FormatTimestamp.
func EncodeTimestampJSON(t time.Time) []byte {
	return []byte(strconv.Quote(FormatTimestamp(t)))
}
