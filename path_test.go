package nftmeta_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/i18n"
)

func TestPath_Pointer(t *testing.T) {
	cases := []struct {
		p    nftmeta.Path
		want string
	}{
		{nftmeta.Root(), "/"},
		{nftmeta.Root().Field("attributes").Index(2).Field("value"), "/attributes/2/value"},
		{nftmeta.Root().Field("a/b").Field("c~d"), "/a~1b/c~0d"},
		{nftmeta.ParsePath("/whitelist/1/address"), "/whitelist/1/address"},
		{nftmeta.ParsePath(""), "/"},
	}
	for _, c := range cases {
		if got := c.p.Pointer(); got != c.want {
			t.Fatalf("got %s want %s", got, c.want)
		}
	}
}

func TestPath_ChainDoesNotAlias(t *testing.T) {
	base := nftmeta.Root().Field("stages")
	a := base.Index(0)
	b := base.Index(1)
	if a.String() != "/stages/0" || b.String() != "/stages/1" {
		t.Fatalf("paths alias each other: %s %s", a, b)
	}
}

func TestPath_IssueMessage(t *testing.T) {
	i18n.SetLanguage("en")
	it := nftmeta.Root().Field("label").Issue(nftmeta.CodeTooLong, "", "max", 6, "got", 7)
	if it.Path != "/label" || it.Code != nftmeta.CodeTooLong {
		t.Fatalf("unexpected issue: %+v", it)
	}
	if it.Message != "too long (max 6 characters)" {
		t.Fatalf("unexpected message: %q", it.Message)
	}
	if it.Params["got"] != 7 {
		t.Fatalf("params: %v", it.Params)
	}
}

func TestIssues_Helpers(t *testing.T) {
	var none nftmeta.Issues
	if none.Err() != nil {
		t.Fatalf("empty issues are not an error")
	}
	iss := nftmeta.AppendIssues(nil,
		nftmeta.Root().Field("a").Issue(nftmeta.CodeRequired, ""),
		nftmeta.Root().Field("b").Issue(nftmeta.CodeInvalidType, ""),
	)
	if iss.Error() != "required at /a; invalid_type at /b" {
		t.Fatalf("unexpected summary: %s", iss.Error())
	}
	wrapped := fmt.Errorf("validate file: %w", iss.Err())
	got, ok := nftmeta.AsIssues(wrapped)
	if !ok || len(got.At("/b")) != 1 {
		t.Fatalf("AsIssues through wrapping: %v", got)
	}
	plain := nftmeta.ToIssues(errors.New("boom"))
	if len(plain) != 1 || plain[0].Code != nftmeta.CodeParseError || plain[0].Path != "/" {
		t.Fatalf("ToIssues: %v", plain)
	}
}
