package nftmeta_test

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/reoring/nftmeta"
)

func TestOptional_Basics(t *testing.T) {
	var o nftmeta.Optional[int]
	if o.IsPresent() || !o.IsZero() || o.OrElse(7) != 7 || o.Ptr() != nil {
		t.Fatalf("zero value must be absent: %+v", o)
	}
	o = nftmeta.Some(0)
	if v, ok := o.Get(); !ok || v != 0 {
		t.Fatalf("present zero must be distinguishable from absent")
	}
	n := 3
	if p := nftmeta.FromPtr(&n); p.OrElse(0) != 3 {
		t.Fatalf("FromPtr: %+v", p)
	}
	if nftmeta.FromPtr[int](nil).IsPresent() {
		t.Fatalf("nil pointer is absent")
	}
}

func TestOptional_Equal(t *testing.T) {
	a := nftmeta.Some(time.Date(2025, 1, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*3600)))
	b := nftmeta.Some(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if !a.Equal(b) {
		t.Fatalf("time values compare by instant")
	}
	if a.Equal(nftmeta.None[time.Time]()) {
		t.Fatalf("present and absent differ")
	}
	if diff := cmp.Diff(nftmeta.Some([]string{"x"}), nftmeta.Some([]string{"x"})); diff != "" {
		t.Fatalf("cmp uses Equal: %s", diff)
	}
}

func TestOptional_JSON(t *testing.T) {
	type doc struct {
		Limit nftmeta.Optional[int] `json:"limit"`
	}
	var d doc
	if err := json.Unmarshal([]byte(`{"limit":null}`), &d); err != nil || d.Limit.IsPresent() {
		t.Fatalf("null decodes as absent: %+v %v", d, err)
	}
	if err := json.Unmarshal([]byte(`{"limit":5}`), &d); err != nil || d.Limit.OrElse(0) != 5 {
		t.Fatalf("value decodes as present: %+v %v", d, err)
	}
	b, err := json.Marshal(doc{})
	if err != nil || string(b) != `{"limit":null}` {
		t.Fatalf("absent encodes as null: %s %v", b, err)
	}
}
