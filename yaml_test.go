package nftmeta_test

import (
	"strings"
	"testing"

	"github.com/reoring/nftmeta"
)

func TestDecodeYAML_SameRulesAsJSON(t *testing.T) {
	src := []byte("name: a\ntraits:\n  - trait_type: x\n    value: y\n    rarity: 2\n")
	v, err := nftmeta.DecodeYAML[token](src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Name != "a" || v.Traits[0].Value != "y" {
		t.Fatalf("unexpected value: %+v", v)
	}
	_, err = nftmeta.DecodeYAML[token](src, nftmeta.ParseOpt{Unknown: nftmeta.UnknownReject})
	iss, _ := nftmeta.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/traits/0/rarity" {
		t.Fatalf("expected unknown_key at /traits/0/rarity, got %v", err)
	}
}

func TestDecodeYAML_Errors(t *testing.T) {
	if _, err := nftmeta.DecodeYAML[token]([]byte("name: [unclosed")); err == nil {
		t.Fatalf("expected parse error")
	} else if iss, _ := nftmeta.AsIssues(err); iss[0].Code != nftmeta.CodeParseError {
		t.Fatalf("expected parse_error, got %v", iss)
	}
	_, err := nftmeta.DecodeYAML[token]([]byte("name: "+strings.Repeat("x", 64)), nftmeta.ParseOpt{MaxBytes: 16})
	if iss, _ := nftmeta.AsIssues(err); len(iss) != 1 || iss[0].Code != nftmeta.CodeTooBig {
		t.Fatalf("expected too_big, got %v", err)
	}
}

func TestEncodeYAML_KeepsKeyOrder(t *testing.T) {
	out, err := nftmeta.EncodeYAML(token{Name: "a", Traits: []trait{{TraitType: "x", Value: "blue"}}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := string(out)
	order := []string{"name: a", "traits:", "- trait_type: x", "value: blue"}
	last := -1
	for _, want := range order {
		i := strings.Index(s, want)
		if i <= last {
			t.Fatalf("expected %q after previous keys in:\n%s", want, s)
		}
		last = i
	}
	if strings.ContainsAny(s, "{}\"") {
		t.Fatalf("expected block style without quoting:\n%s", s)
	}
}
