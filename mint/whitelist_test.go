package mint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/mint"
)

const (
	addrA = "0x52908400098527886E0F7030069857D2E4169EE7"
	addrB = "0xde709f2102306220921060314715629080e2fb77"
)

func TestEvmStage_MixedWhitelist(t *testing.T) {
	js := []byte(`{"pricePerNFT":0.01,"startDate":"2025-01-01T00:00:00Z","whitelist":["` + addrA + `",{"address":"` + addrB + `","mintLimit":3}]}`)
	s, err := nftmeta.Decode[mint.EvmMintStage](js)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	wl, ok := s.Whitelist.Get()
	if !ok || len(wl) != 2 {
		t.Fatalf("expected two entries, got %+v", s.Whitelist)
	}
	if wl[0].Kind() != mint.EntryAddress || wl[0].Address() != addrA {
		t.Fatalf("entry 0: %v", wl[0])
	}
	if wl[1].Kind() != mint.EntryLimited {
		t.Fatalf("entry 1 kind: %v", wl[1].Kind())
	}
	if n, ok := wl[1].MintLimit(); !ok || n != 3 {
		t.Fatalf("entry 1 limit: %d %v", n, ok)
	}
	if _, ok := wl[0].MintLimit(); ok {
		t.Fatalf("bare address has no limit")
	}
	if wl.Shape() != mint.ShapeMixed {
		t.Fatalf("shape: %v", wl.Shape())
	}
}

func TestEvmStage_RoundTrip(t *testing.T) {
	in := mint.EvmMintStage{
		PricePerNFT: 0.01,
		StartDate:   day(1),
		Whitelist: nftmeta.Some(append(
			mint.AddressWhitelist(addrA),
			mint.LimitedEntry(mint.WhitelistWithLimit{Address: addrB, MintLimit: 3}),
		)),
	}
	b, err := nftmeta.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"pricePerNFT":0.01,"startDate":"2025-01-01T00:00:00.000Z","whitelist":["` + addrA + `",{"address":"` + addrB + `","mintLimit":3}]}`
	if string(b) != want {
		t.Fatalf("unexpected encoding:\n got: %s\nwant: %s", b, want)
	}
	out, err := nftmeta.Decode[mint.EvmMintStage](b, nftmeta.StrictParseOpt())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(in, out, cmp.AllowUnexported(mint.WhitelistEntry{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEvmStage_BadEntries(t *testing.T) {
	js := []byte(`{"pricePerNFT":1,"startDate":"2025-01-01T00:00:00Z","whitelist":[true,{"address":"` + addrA + `"},{"mintLimit":1}]}`)
	_, err := nftmeta.Decode[mint.EvmMintStage](js)
	iss, _ := nftmeta.AsIssues(err)
	for _, p := range []string{"/whitelist/0", "/whitelist/1/mintLimit", "/whitelist/2/address"} {
		if len(iss.At(p)) != 1 {
			t.Fatalf("expected an issue at %s, got %v", p, iss)
		}
	}
}

func TestWhitelist_Helpers(t *testing.T) {
	wl := mint.LimitWhitelist(
		mint.WhitelistWithLimit{Address: addrA, MintLimit: 1},
		mint.WhitelistWithLimit{Address: addrB, MintLimit: 5},
	)
	if wl.Shape() != mint.ShapeLimited {
		t.Fatalf("shape: %v", wl.Shape())
	}
	if diff := cmp.Diff([]string{addrA, addrB}, wl.Addresses()); diff != "" {
		t.Fatalf("addresses (-want +got):\n%s", diff)
	}
	e, ok := wl.Lookup("0xDE709F2102306220921060314715629080E2FB77")
	if !ok {
		t.Fatalf("lookup is case-insensitive")
	}
	if w, _ := e.WithLimit(); w.MintLimit != 5 {
		t.Fatalf("unexpected entry: %v", e)
	}
	if (mint.Whitelist{}).Shape() != mint.ShapeEmpty || mint.AddressWhitelist(addrA).Shape() != mint.ShapeAddresses {
		t.Fatalf("unexpected shapes")
	}
}

func TestEvmStages_Decode(t *testing.T) {
	js := []byte(`[{"pricePerNFT":0,"startDate":"2025-01-01T00:00:00Z"},{"pricePerNFT":0.02,"startDate":"2025-01-02T00:00:00Z","endDate":"2025-01-03T00:00:00Z"}]`)
	ss, err := nftmeta.Decode[mint.EvmStages](js)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ss) != 2 || !ss[1].EndDate.IsPresent() {
		t.Fatalf("unexpected stages: %+v", ss)
	}
	if s, _, ok := mint.Current(ss, day(2)); !ok || s.PricePerNFT != 0 {
		t.Fatalf("first stage has no end and starts first: %+v", s)
	}
}
