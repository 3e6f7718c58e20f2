package mint

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/params"
	"github.com/goccy/go-json"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/codec"
	"github.com/reoring/nftmeta/internal/wire"
)

// EvmMintStage is one phase of an EVM mint. It has no label; stages are
// identified by position.
type EvmMintStage struct {
	// PricePerNFT is denominated in the chain's native unit (ETH).
	PricePerNFT       float64
	StartDate         time.Time
	EndDate           nftmeta.Optional[time.Time]
	MaxMintsPerWallet nftmeta.Optional[int]
	Whitelist         nftmeta.Optional[Whitelist]
}

type evmStageOut struct {
	PricePerNFT       float64         `json:"pricePerNFT"`
	StartDate         json.RawMessage `json:"startDate"`
	EndDate           json.RawMessage `json:"endDate,omitempty"`
	MaxMintsPerWallet *int            `json:"maxMintsPerWallet,omitempty"`
	Whitelist         *Whitelist      `json:"whitelist,omitempty"`
}

func (s EvmMintStage) Schedule() Window {
	return Window{Start: s.StartDate, End: s.EndDate}
}

// ActiveAt reports whether t falls inside the stage window.
func (s EvmMintStage) ActiveAt(t time.Time) bool { return s.Schedule().Contains(t) }

// PriceWei converts PricePerNFT to wei (1e18 per unit).
func (s EvmMintStage) PriceWei() (*big.Int, error) {
	return scaleDecimal(s.PricePerNFT, big.NewInt(params.Ether))
}

func (s EvmMintStage) MarshalJSON() ([]byte, error) {
	out := evmStageOut{
		PricePerNFT:       s.PricePerNFT,
		StartDate:         codec.EncodeTimestampJSON(s.StartDate),
		MaxMintsPerWallet: s.MaxMintsPerWallet.Ptr(),
	}
	if end, ok := s.EndDate.Get(); ok {
		out.EndDate = codec.EncodeTimestampJSON(end)
	}
	if wl, ok := s.Whitelist.Get(); ok {
		if wl == nil {
			wl = Whitelist{}
		}
		out.Whitelist = &wl
	}
	return json.Marshal(out)
}

func (s *EvmMintStage) UnmarshalJSON(b []byte) error {
	v, iss := decodeEvmStage(b, nftmeta.Root())
	if len(iss) > 0 {
		return iss
	}
	*s = v
	return nil
}

func decodeEvmStage(raw []byte, at nftmeta.Path) (EvmMintStage, nftmeta.Issues) {
	o := wire.DecodeObject(raw, at)
	var s EvmMintStage
	s.PricePerNFT, _ = o.Number("pricePerNFT", true)
	s.StartDate, _ = o.Time("startDate", true)
	if t, ok := o.Time("endDate", false); ok {
		s.EndDate = nftmeta.Some(t)
	}
	if n, ok := o.Int("maxMintsPerWallet", false); ok {
		s.MaxMintsPerWallet = nftmeta.Some(n)
	}
	if r, ok := o.Raw("whitelist", false); ok {
		wl, iss := decodeWhitelist(r, o.Path("whitelist"))
		o.Add(iss...)
		s.Whitelist = nftmeta.Some(wl)
	}
	return s, o.Issues()
}

// EvmStages is an ordered list of EVM mint stages.
type EvmStages []EvmMintStage

func (ss *EvmStages) UnmarshalJSON(b []byte) error {
	v, err := decodeList(b, decodeEvmStage)
	if err != nil {
		return err
	}
	*ss = v
	return nil
}
