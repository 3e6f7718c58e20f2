package codec

import (
	"context"
	"testing"
	"time"

	"github.com/reoring/nftmeta"
)

func TestTimestamp_Codec_Basic(t *testing.T) {
	c := Timestamp()
	ctx := context.Background()

	in := "2025-01-01T00:00:00Z"
	got, err := c.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}

	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != "2025-01-01T00:00:00.000Z" {
		t.Fatalf("expected JavaScript Date layout, got %s", out)
	}
}

func TestParseTimestamp_FractionOptional(t *testing.T) {
	for in, want := range map[string]time.Time{
		"2025-01-01T00:00:00Z":        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		"2025-01-01T00:00:00.5Z":      time.Date(2025, 1, 1, 0, 0, 0, 5e8, time.UTC),
		"2025-01-01T00:00:00.123456Z": time.Date(2025, 1, 1, 0, 0, 0, 123456e3, time.UTC),
	} {
		got, err := ParseTimestamp(in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: got %v want %v", in, got, want)
		}
	}
}

func TestTimestamp_OffsetNormalisedToUTC(t *testing.T) {
	got, err := ParseTimestamp("2025-01-01T09:00:00+09:00")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if s := FormatTimestamp(got); s != "2025-01-01T00:00:00.000Z" {
		t.Fatalf("unexpected format: %s", s)
	}
}

func TestTimestamp_SubMillisecondKept(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 1500, time.UTC)
	s := FormatTimestamp(ts)
	back, err := ParseTimestamp(s)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !back.Equal(ts) {
		t.Fatalf("roundtrip mismatch: %v != %v (%s)", back, ts, s)
	}
}

func TestTimestamp_Invalid(t *testing.T) {
	_, err := ParseTimestamp("yesterday")
	iss, ok := nftmeta.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != nftmeta.CodeInvalidFormat {
		t.Fatalf("expected invalid_format, got %v", err)
	}
}

func TestDecodeTimestampJSON_StringAndEpochMillis(t *testing.T) {
	at := nftmeta.Root().Field("startDate")
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := DecodeTimestampJSON([]byte(`"2025-01-01T00:00:00.000Z"`), at)
	if err != nil || !got.Equal(want) {
		t.Fatalf("string form: got %v err %v", got, err)
	}
	got, err = DecodeTimestampJSON([]byte(`1735689600000`), at)
	if err != nil || !got.Equal(want) {
		t.Fatalf("epoch form: got %v err %v", got, err)
	}
}

func TestDecodeTimestampJSON_IssuePaths(t *testing.T) {
	at := nftmeta.Root().Field("endDate")
	cases := map[string]string{
		`"not a date"`: nftmeta.CodeInvalidFormat,
		`null`:         nftmeta.CodeInvalidType,
		`true`:         nftmeta.CodeInvalidType,
		``:             nftmeta.CodeRequired,
	}
	for raw, code := range cases {
		_, err := DecodeTimestampJSON([]byte(raw), at)
		iss, ok := nftmeta.AsIssues(err)
		if !ok || len(iss) != 1 {
			t.Fatalf("%q: expected one issue, got %v", raw, err)
		}
		if iss[0].Code != code || iss[0].Path != "/endDate" {
			t.Fatalf("%q: got %s at %s", raw, iss[0].Code, iss[0].Path)
		}
	}
}

func TestEncodeTimestampJSON(t *testing.T) {
	b := EncodeTimestampJSON(time.Date(2025, 1, 2, 3, 4, 5, 6e6, time.UTC))
	if string(b) != `"2025-01-02T03:04:05.006Z"` {
		t.Fatalf("unexpected json: %s", b)
	}
}
