// Package mint defines the mint stage records for Solana (MintStage) and EVM
// (EvmMintStage) launches and the helpers that schedule and price them.
package mint

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/codec"
	"github.com/reoring/nftmeta/internal/wire"
)

// MaxLabelLength is the longest stage label, in characters.
const MaxLabelLength = 6

// MintStage is one phase of a Solana mint.
type MintStage struct {
	// Label identifies the stage; at most MaxLabelLength characters.
	Label      string
	PriceInSol float64
	StartDate  time.Time
	EndDate    nftmeta.Optional[time.Time]
	// MaxMintsPerWallet caps mints per wallet during the stage.
	MaxMintsPerWallet nftmeta.Optional[int]
	// Whitelist holds the base58 addresses allowed to mint in this stage.
	Whitelist nftmeta.Optional[[]string]
}

type stageOut struct {
	Label             string          `json:"label"`
	PriceInSol        float64         `json:"priceInSol"`
	StartDate         json.RawMessage `json:"startDate"`
	EndDate           json.RawMessage `json:"endDate,omitempty"`
	MaxMintsPerWallet *int            `json:"maxMintsPerWallet,omitempty"`
	Whitelist         *[]string       `json:"whitelist,omitempty"`
}

// Schedule returns the stage's time window.
func (s MintStage) Schedule() Window {
	return Window{Start: s.StartDate, End: s.EndDate}
}

// ActiveAt reports whether t falls inside the stage window.
func (s MintStage) ActiveAt(t time.Time) bool { return s.Schedule().Contains(t) }

// PriceLamports converts PriceInSol to lamports. Prices finer than one
// lamport, negative or non-finite prices, and prices beyond uint64 lamports
// are errors.
func (s MintStage) PriceLamports() (uint64, error) {
	n, err := scaleDecimal(s.PriceInSol, lamportsPerSol)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, ErrPriceOverflow
	}
	return n.Uint64(), nil
}

func (s MintStage) MarshalJSON() ([]byte, error) {
	out := stageOut{
		Label:             s.Label,
		PriceInSol:        s.PriceInSol,
		StartDate:         codec.EncodeTimestampJSON(s.StartDate),
		MaxMintsPerWallet: s.MaxMintsPerWallet.Ptr(),
	}
	if end, ok := s.EndDate.Get(); ok {
		out.EndDate = codec.EncodeTimestampJSON(end)
	}
	if wl, ok := s.Whitelist.Get(); ok {
		if wl == nil {
			wl = []string{}
		}
		out.Whitelist = &wl
	}
	return json.Marshal(out)
}

func (s *MintStage) UnmarshalJSON(b []byte) error {
	v, iss := decodeStage(b, nftmeta.Root())
	if len(iss) > 0 {
		return iss
	}
	*s = v
	return nil
}

func decodeStage(raw []byte, at nftmeta.Path) (MintStage, nftmeta.Issues) {
	o := wire.DecodeObject(raw, at)
	var s MintStage
	s.Label, _ = o.String("label", true)
	s.PriceInSol, _ = o.Number("priceInSol", true)
	s.StartDate, _ = o.Time("startDate", true)
	if t, ok := o.Time("endDate", false); ok {
		s.EndDate = nftmeta.Some(t)
	}
	if n, ok := o.Int("maxMintsPerWallet", false); ok {
		s.MaxMintsPerWallet = nftmeta.Some(n)
	}
	if elems, ok := o.Array("whitelist", false); ok {
		addrs := make([]string, 0, len(elems))
		for i, e := range elems {
			a, ok := wire.DecodeString(e)
			if !ok {
				o.Add(o.Path("whitelist").Index(i).Issue(nftmeta.CodeInvalidType, "expected address string", "got", wire.Kind(e)))
				continue
			}
			addrs = append(addrs, a)
		}
		s.Whitelist = nftmeta.Some(addrs)
	}
	return s, o.Issues()
}

// Stages is an ordered list of Solana mint stages. Decoding reports issues
// with indexed paths (/1/startDate).
type Stages []MintStage

func (ss *Stages) UnmarshalJSON(b []byte) error {
	v, err := decodeList(b, decodeStage)
	if err != nil {
		return err
	}
	*ss = v
	return nil
}

func decodeList[S any](raw []byte, one func([]byte, nftmeta.Path) (S, nftmeta.Issues)) ([]S, error) {
	elems, ok := wire.DecodeArray(raw)
	if !ok {
		return nil, nftmeta.Root().Issues(nftmeta.CodeInvalidType, "expected array of stages", "got", wire.Kind(raw))
	}
	out := make([]S, 0, len(elems))
	var all nftmeta.Issues
	for i, e := range elems {
		s, iss := one(e, nftmeta.Root().Index(i))
		all = append(all, iss...)
		out = append(out, s)
	}
	if len(all) > 0 {
		return nil, all
	}
	return out, nil
}
