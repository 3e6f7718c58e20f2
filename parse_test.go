package nftmeta_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/metadata"
)

type trait struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

type token struct {
	Name   string  `json:"name"`
	Traits []trait `json:"traits"`
}

func TestDecode_Basic(t *testing.T) {
	v, err := nftmeta.Decode[token]([]byte(`{"name":"a","traits":[{"trait_type":"x","value":"y"}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Name != "a" || len(v.Traits) != 1 {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestDecode_DuplicateKeys(t *testing.T) {
	js := []byte(`{"name":"a","name":"b","traits":[]}`)

	if _, err := nftmeta.Decode[token](js); err != nil {
		t.Fatalf("duplicates are ignored by default: %v", err)
	}

	d, err := nftmeta.DecodeWithMeta[token](js, nftmeta.ParseOpt{Strictness: nftmeta.Strictness{OnDuplicateKey: nftmeta.Warn}})
	if err != nil {
		t.Fatalf("warn keeps decoding: %v", err)
	}
	if len(d.Warnings) != 1 || d.Warnings[0].Path != "/name" {
		t.Fatalf("expected one warning at /name, got %v", d.Warnings)
	}

	_, err = nftmeta.Decode[token](js, nftmeta.StrictParseOpt())
	iss, ok := nftmeta.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != nftmeta.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key error, got %v", err)
	}
}

func TestDecode_UnknownKeys(t *testing.T) {
	js := []byte(`{"name":"a","zzz":1,"traits":[{"trait_type":"x","value":"y","rarity":2}],"yyy":null}`)
	_, err := nftmeta.Decode[token](js, nftmeta.ParseOpt{Unknown: nftmeta.UnknownReject})
	iss, _ := nftmeta.AsIssues(err)
	if len(iss) != 2 {
		t.Fatalf("expected two unknown keys, got %v", iss)
	}
	// Sorted by path; null members are not unknown.
	if iss[0].Path != "/traits/0/rarity" || iss[1].Path != "/zzz" || iss[0].Code != nftmeta.CodeUnknownKey {
		t.Fatalf("unexpected issues: %v", iss)
	}

	_, err = nftmeta.Decode[token](js, nftmeta.ParseOpt{Unknown: nftmeta.UnknownReject, FailFast: true})
	if iss, _ := nftmeta.AsIssues(err); len(iss) != 1 {
		t.Fatalf("fail fast reports one unknown key, got %v", iss)
	}
}

func TestDecode_Limits(t *testing.T) {
	js := []byte(`{"name":"abcdefgh","traits":[]}`)
	_, err := nftmeta.Decode[token](js, nftmeta.ParseOpt{MaxBytes: 10})
	iss, _ := nftmeta.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != nftmeta.CodeTooBig || iss[0].Path != "/" {
		t.Fatalf("expected too_big at /, got %v", err)
	}

	_, err = nftmeta.Decode[token]([]byte(`{"name":"a","traits":[{"trait_type":"x","value":"y"}]}`), nftmeta.ParseOpt{MaxDepth: 2})
	iss, _ = nftmeta.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != nftmeta.CodeTooBig || iss[0].Path != "/traits/0" {
		t.Fatalf("expected too_big at /traits/0, got %v", err)
	}
}

func TestDecodeReader_MaxBytes(t *testing.T) {
	r := strings.NewReader(`{"name":"` + strings.Repeat("x", 100) + `","traits":[]}`)
	_, err := nftmeta.DecodeReader[token](r, nftmeta.ParseOpt{MaxBytes: 64})
	iss, _ := nftmeta.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != nftmeta.CodeTooBig {
		t.Fatalf("expected too_big, got %v", err)
	}
}

func TestDecode_SyntaxError(t *testing.T) {
	_, err := nftmeta.Decode[token]([]byte(`{"name":`))
	iss, ok := nftmeta.AsIssues(err)
	if !ok || iss[0].Code != nftmeta.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

// TestErrorModel_CollectVsFailFast compares collecting every shape issue with
// stopping at the first one, and exercises both AsIssues and errors.As.
func TestErrorModel_CollectVsFailFast(t *testing.T) {
	js := []byte(`{"name":1,"zzz":true}`)

	_, err := nftmeta.Decode[metadata.NftMetadata](js)
	var iss nftmeta.Issues
	if !errors.As(err, &iss) {
		t.Fatalf("expected errors.As to extract Issues, got: %v", err)
	}
	if len(iss) < 4 {
		t.Fatalf("expected issues for name, description, image, attributes and properties, got: %v", iss)
	}
	if !iss.HasCode(nftmeta.CodeInvalidType) || !iss.HasCode(nftmeta.CodeRequired) {
		t.Fatalf("expected invalid_type and required codes, got %v", iss)
	}
	if !strings.Contains(iss.Error(), "(total ") {
		t.Fatalf("summary should mention the total: %s", iss.Error())
	}

	_, err = nftmeta.Decode[metadata.NftMetadata]([]byte(`{"name":"a","name":"b"}`), nftmeta.ParseOpt{
		Strictness: nftmeta.Strictness{OnDuplicateKey: nftmeta.Error},
		FailFast:   true,
	})
	iss2, ok := nftmeta.AsIssues(err)
	if !ok || len(iss2) != 1 {
		t.Fatalf("expected a single fail-fast issue, got: %v", err)
	}
}

func TestEncodeIndent(t *testing.T) {
	b, err := nftmeta.EncodeIndent(token{Name: "a", Traits: []trait{}}, "", "  ")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "{\n  \"name\": \"a\",\n  \"traits\": []\n}"
	if string(b) != want {
		t.Fatalf("got %q want %q", b, want)
	}
}
