package rules

import (
	"math"
	"mime"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/address"
	"github.com/reoring/nftmeta/metadata"
	"github.com/reoring/nftmeta/mint"
)

// Metadata validates an NftMetadata document.
func Metadata(m metadata.NftMetadata, opts ...Option) nftmeta.Issues {
	return Check(m, metadataRule, opts...)
}

// Collection validates collection info. It follows the NftMetadata rules.
func Collection(c metadata.CollectionInfo, opts ...Option) nftmeta.Issues {
	return Check(c, metadataRule, opts...)
}

// AiMetadata validates an AiNftMetadata document including its agent.
func AiMetadata(m metadata.AiNftMetadata, opts ...Option) nftmeta.Issues {
	return Check(m, aiMetadataRule, opts...)
}

// MintStage validates a single Solana stage.
func MintStage(s mint.MintStage, opts ...Option) nftmeta.Issues {
	return Check(s, stageRule, opts...)
}

// EvmMintStage validates a single EVM stage.
func EvmMintStage(s mint.EvmMintStage, opts ...Option) nftmeta.Issues {
	return Check(s, evmStageRule, opts...)
}

// MintStages validates every stage and requires labels to be unique.
func MintStages(stages []mint.MintStage, opts ...Option) nftmeta.Issues {
	return Check(stages, stagesRule, opts...)
}

// EvmMintStages validates every EVM stage.
func EvmMintStages(stages []mint.EvmMintStage, opts ...Option) nftmeta.Issues {
	return Check(stages, Each(evmStageRule), opts...)
}

// ---------- metadata ----------

var metadataRule = And(
	Field("name", func(m metadata.NftMetadata) string { return m.Name }, NonEmpty("name")),
	Field("image", func(m metadata.NftMetadata) string { return m.Image }, And(NonEmpty("image"), URI())),
	Optional("animation_url", func(m metadata.NftMetadata) nftmeta.Optional[string] { return m.AnimationURL }, URI()),
	Optional("external_url", func(m metadata.NftMetadata) nftmeta.Optional[string] { return m.ExternalURL }, URI()),
	Field("attributes", func(m metadata.NftMetadata) []metadata.Attribute { return m.Attributes }, Each(
		Field("trait_type", func(a metadata.Attribute) string { return a.TraitType }, NonEmpty("trait_type")),
	)),
	Field("properties", func(m metadata.NftMetadata) metadata.Properties { return m.Properties }, And(
		Field("files", func(p metadata.Properties) []metadata.File { return p.Files }, Each(And(
			Field("uri", func(f metadata.File) string { return f.URI }, And(NonEmpty("uri"), URI())),
			Field("type", func(f metadata.File) string { return f.Type }, MediaType()),
		))),
		Field("category", func(p metadata.Properties) string { return p.Category }, NonEmpty("category")),
	)),
)

var aiMetadataRule = And(
	func(c Ctx, m metadata.AiNftMetadata) nftmeta.Issues { return metadataRule(c, m.NftMetadata) },
	Optional("ai_agent", func(m metadata.AiNftMetadata) nftmeta.Optional[metadata.AiAgent] { return m.AiAgent }, aiAgentRule),
)

func aiAgentRule(c Ctx, a metadata.AiAgent) nftmeta.Issues {
	var out nftmeta.Issues
	if !a.Engine.Valid() {
		out = append(out, c.Field("engine").Issue("engine", nftmeta.CodeInvalidEnum, "unknown engine", "got", string(a.Engine)))
		if c.FailFast() {
			return out
		}
	}
	cc := c.Field("character")
	if a.Character.IsZero() {
		return append(out, cc.Issue("character", nftmeta.CodeRequired, "character file is required"))
	}
	p, err := a.Character.Profile()
	if err != nil {
		it := cc.Issue("character", nftmeta.CodeInvalidType, "character fields have unexpected types").WithCause(err)
		return append(out, it)
	}
	if strings.TrimSpace(p.Name) == "" {
		out = append(out, cc.Field("name").Issue("character", nftmeta.CodeRequired, "character name is required"))
	}
	return out
}

// ---------- mint stages ----------

var stageRule = And(
	Field("label", func(s mint.MintStage) string { return s.Label }, And(NonEmpty("label"), MaxRunes(mint.MaxLabelLength))),
	Field("priceInSol", func(s mint.MintStage) float64 { return s.PriceInSol }, Price()),
	dateRule(func(s mint.MintStage) mint.Window { return s.Schedule() }),
	Optional("maxMintsPerWallet", func(s mint.MintStage) nftmeta.Optional[int] { return s.MaxMintsPerWallet }, NonNegative()),
	Optional("whitelist", func(s mint.MintStage) nftmeta.Optional[[]string] { return s.Whitelist }, And(
		Each(addressRule(address.ChainSolana)),
		UniqueBy("", func(a string) (string, bool) { return address.Key(address.ChainSolana, a), a != "" }),
	)),
)

var stagesRule = And(
	Each(stageRule),
	UniqueBy("label", func(s mint.MintStage) (string, bool) { return s.Label, s.Label != "" }),
)

var evmStageRule = And(
	Field("pricePerNFT", func(s mint.EvmMintStage) float64 { return s.PricePerNFT }, Price()),
	dateRule(func(s mint.EvmMintStage) mint.Window { return s.Schedule() }),
	Optional("maxMintsPerWallet", func(s mint.EvmMintStage) nftmeta.Optional[int] { return s.MaxMintsPerWallet }, NonNegative()),
	Optional("whitelist", func(s mint.EvmMintStage) nftmeta.Optional[[]mint.WhitelistEntry] {
		wl, ok := s.Whitelist.Get()
		if !ok {
			return nftmeta.None[[]mint.WhitelistEntry]()
		}
		return nftmeta.Some([]mint.WhitelistEntry(wl))
	}, And(
		Each(entryRule),
		UniqueBy("", func(e mint.WhitelistEntry) (string, bool) {
			return address.Key(address.ChainEVM, e.Address()), e.Address() != ""
		}),
	)),
)

func entryRule(c Ctx, e mint.WhitelistEntry) nftmeta.Issues {
	if e.Kind() == mint.EntryAddress {
		return addressRule(address.ChainEVM)(c, e.Address())
	}
	out := addressRule(address.ChainEVM)(c.Field("address"), e.Address())
	if n, _ := e.MintLimit(); n < 0 {
		out = append(out, c.Field("mintLimit").Issue("min", nftmeta.CodeTooSmall, "mint limit must be >= 0", "min", 0, "got", n))
	}
	return out
}

// dateRule checks startDate is set and endDate does not precede it. The
// issue for an inverted window points at endDate.
func dateRule[T any](window func(T) mint.Window) Rule[T] {
	return func(c Ctx, v T) nftmeta.Issues {
		w := window(v)
		if w.Start.IsZero() {
			return nftmeta.Issues{c.Field("startDate").Issue("date", nftmeta.CodeRequired, "start date is required")}
		}
		if end, ok := w.End.Get(); ok && end.Before(w.Start) {
			return nftmeta.Issues{c.Field("endDate").Issue("date", nftmeta.CodeDateOrder, "endDate must not be before startDate",
				"start", w.Start.UTC().Format(time.RFC3339), "end", end.UTC().Format(time.RFC3339))}
		}
		return nil
	}
}

// ---------- leaf rules ----------

// NonEmpty requires a non-blank string.
func NonEmpty(name string) Rule[string] {
	return func(c Ctx, s string) nftmeta.Issues {
		if strings.TrimSpace(s) == "" {
			return nftmeta.Issues{c.Issue("required", nftmeta.CodeRequired, name+" must not be empty")}
		}
		return nil
	}
}

// MaxRunes bounds a string's length in characters.
func MaxRunes(max int) Rule[string] {
	return func(c Ctx, s string) nftmeta.Issues {
		if n := utf8.RuneCountInString(s); n > max {
			return nftmeta.Issues{c.Issue("maxLength", nftmeta.CodeTooLong, "", "max", max, "got", n)}
		}
		return nil
	}
}

// Price requires a finite number >= 0.
func Price() Rule[float64] {
	return func(c Ctx, f float64) nftmeta.Issues {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nftmeta.Issues{c.Issue("price", nftmeta.CodeInvalidFormat, "price must be finite")}
		}
		if f < 0 {
			return nftmeta.Issues{c.Issue("price", nftmeta.CodeTooSmall, "price must be >= 0", "min", 0, "got", f)}
		}
		return nil
	}
}

// NonNegative requires n >= 0.
func NonNegative() Rule[int] {
	return func(c Ctx, n int) nftmeta.Issues {
		if n < 0 {
			return nftmeta.Issues{c.Issue("min", nftmeta.CodeTooSmall, "", "min", 0, "got", n)}
		}
		return nil
	}
}

// URI requires an absolute URI such as https://, ipfs:// or ar://. Empty
// strings are left to NonEmpty.
func URI() Rule[string] {
	return func(c Ctx, s string) nftmeta.Issues {
		if s == "" {
			return nil
		}
		u, err := url.Parse(s)
		if err != nil || !u.IsAbs() || (u.Host == "" && u.Opaque == "" && u.Path == "") {
			it := c.Issue("uri", nftmeta.CodeInvalidFormat, "expected absolute URI", "got", s)
			if err != nil {
				it = it.WithCause(err)
			}
			return nftmeta.Issues{it}
		}
		return nil
	}
}

// MediaType requires a type/subtype media type such as image/png.
func MediaType() Rule[string] {
	return func(c Ctx, s string) nftmeta.Issues {
		mt, _, err := mime.ParseMediaType(s)
		if err != nil || !strings.Contains(mt, "/") {
			it := c.Issue("mediaType", nftmeta.CodeInvalidFormat, "expected media type like image/png", "got", s)
			if err != nil {
				it = it.WithCause(err)
			}
			return nftmeta.Issues{it}
		}
		return nil
	}
}

func addressRule(chain address.Chain) Rule[string] {
	return func(c Ctx, s string) nftmeta.Issues {
		if !c.CheckAddresses() {
			return nil
		}
		if err := address.Validate(chain, s); err != nil {
			return nftmeta.Issues{c.Issue("address", nftmeta.CodeInvalidAddress, chain.String()+" address", "got", s).WithCause(err)}
		}
		return nil
	}
}
