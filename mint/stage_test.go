package mint_test

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/mint"
)

func day(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

func TestMintStage_RoundTrip(t *testing.T) {
	in := mint.MintStage{
		Label:             "OG",
		PriceInSol:        0.5,
		StartDate:         day(1),
		EndDate:           nftmeta.Some(day(2)),
		MaxMintsPerWallet: nftmeta.Some(2),
		Whitelist:         nftmeta.Some([]string{"So11111111111111111111111111111111111111112"}),
	}
	b, err := nftmeta.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"label":"OG","priceInSol":0.5,"startDate":"2025-01-01T00:00:00.000Z","endDate":"2025-01-02T00:00:00.000Z","maxMintsPerWallet":2,"whitelist":["So11111111111111111111111111111111111111112"]}`
	if string(b) != want {
		t.Fatalf("unexpected encoding:\n got: %s\nwant: %s", b, want)
	}
	out, err := nftmeta.Decode[mint.MintStage](b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMintStage_OptionalAbsentAndEmptyWhitelist(t *testing.T) {
	in := mint.MintStage{Label: "pub", StartDate: day(3), Whitelist: nftmeta.Some([]string{})}
	b, err := nftmeta.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"label":"pub","priceInSol":0,"startDate":"2025-01-03T00:00:00.000Z","whitelist":[]}`
	if string(b) != want {
		t.Fatalf("unexpected encoding:\n got: %s\nwant: %s", b, want)
	}
	out, err := nftmeta.Decode[mint.MintStage](b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.EndDate.IsPresent() || out.MaxMintsPerWallet.IsPresent() {
		t.Fatalf("absent fields must stay absent: %+v", out)
	}
	if wl, ok := out.Whitelist.Get(); !ok || len(wl) != 0 {
		t.Fatalf("empty whitelist must stay present: %+v", out.Whitelist)
	}
}

func TestMintStage_DecodeIssues(t *testing.T) {
	js := []byte(`{"label":7,"priceInSol":"1","startDate":"tomorrow","maxMintsPerWallet":1.5,"whitelist":["a",3]}`)
	_, err := nftmeta.Decode[mint.MintStage](js)
	iss, ok := nftmeta.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	cases := map[string]string{
		"/label":             nftmeta.CodeInvalidType,
		"/priceInSol":        nftmeta.CodeInvalidType,
		"/startDate":         nftmeta.CodeInvalidFormat,
		"/maxMintsPerWallet": nftmeta.CodeInvalidType,
		"/whitelist/1":       nftmeta.CodeInvalidType,
	}
	for p, code := range cases {
		got := iss.At(p)
		if len(got) != 1 || got[0].Code != code {
			t.Fatalf("expected %s at %s, got %v", code, p, iss)
		}
	}
}

func TestMintStage_EpochMillis(t *testing.T) {
	js := []byte(`{"label":"a","priceInSol":1,"startDate":1735689600000}`)
	s, err := nftmeta.Decode[mint.MintStage](js)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !s.StartDate.Equal(day(1)) {
		t.Fatalf("unexpected start: %v", s.StartDate)
	}
}

func TestStages_IndexedPaths(t *testing.T) {
	js := []byte(`[{"label":"a","priceInSol":1,"startDate":"2025-01-01T00:00:00Z"},{"label":"b","priceInSol":1}]`)
	_, err := nftmeta.Decode[mint.Stages](js)
	iss, _ := nftmeta.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/1/startDate" || iss[0].Code != nftmeta.CodeRequired {
		t.Fatalf("expected required at /1/startDate, got %v", iss)
	}
}

func TestPriceLamports(t *testing.T) {
	cases := []struct {
		price float64
		want  uint64
		err   error
	}{
		{0.1, 100_000_000, nil},
		{1.5, 1_500_000_000, nil},
		{0, 0, nil},
		{0.0000000001, 0, mint.ErrPricePrecision},
		{-1, 0, mint.ErrInvalidPrice},
		{1e11, 0, mint.ErrPriceOverflow},
	}
	for _, c := range cases {
		got, err := mint.MintStage{PriceInSol: c.price}.PriceLamports()
		if !errors.Is(err, c.err) {
			t.Fatalf("price %v: err %v, want %v", c.price, err, c.err)
		}
		if got != c.want {
			t.Fatalf("price %v: got %d want %d", c.price, got, c.want)
		}
	}
}

func TestPriceWei(t *testing.T) {
	got, err := mint.EvmMintStage{PricePerNFT: 0.05}.PriceWei()
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	want, _ := new(big.Int).SetString("50000000000000000", 10)
	if got.Cmp(want) != 0 {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestSchedule(t *testing.T) {
	stages := []mint.MintStage{
		{Label: "og", StartDate: day(1), EndDate: nftmeta.Some(day(2))},
		{Label: "wl", StartDate: day(3), EndDate: nftmeta.Some(day(4))},
		{Label: "pub", StartDate: day(4)},
	}
	if !stages[0].ActiveAt(day(2)) {
		t.Fatalf("end bound is inclusive")
	}
	if stages[0].ActiveAt(day(2).Add(time.Millisecond)) {
		t.Fatalf("stage must close after its end date")
	}
	if got := mint.Active(stages, day(4)); len(got) != 2 {
		t.Fatalf("expected wl and pub active on day 4, got %v", got)
	}
	if s, i, ok := mint.Current(stages, day(4)); !ok || i != 1 || s.Label != "wl" {
		t.Fatalf("unexpected current: %v %d %v", s.Label, i, ok)
	}
	if _, _, ok := mint.Current(stages, day(2).Add(time.Hour)); ok {
		t.Fatalf("no stage runs between og and wl")
	}
	if s, _, ok := mint.Next(stages, day(2)); !ok || s.Label != "wl" {
		t.Fatalf("unexpected next: %v %v", s.Label, ok)
	}
	if !stages[1].Schedule().Overlaps(stages[2].Schedule()) {
		t.Fatalf("wl and pub share day 4")
	}
	if stages[0].Schedule().Overlaps(stages[1].Schedule()) {
		t.Fatalf("og and wl do not overlap")
	}
}
