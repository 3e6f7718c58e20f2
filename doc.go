// Package nftmeta provides:
//
// - Schema records for NFT metadata, AI-agent NFT metadata, collection info and
// Solana/EVM mint stages (see metadata/ and mint/)
// - A stable error model via Issues (JSON Pointer, code, message)
// - An explicit present/absent container, Optional[T], for optional fields
// - JSON and YAML decoding with duplicate-key, unknown-key, depth and size enforcement
//
// Design policy:
// - Keep only shared APIs in the root package; records live under metadata/ and mint/.
// - Decoding checks shape only. Value constraints (label length, date order,
// non-negative prices, address formats) are checked by rules/.
// - Place the CLI under cmd/nftmeta.
//
// Typical usage:
//
//	md, err := nftmeta.Decode[metadata.NftMetadata](data)
//	if iss := rules.Metadata(md); len(iss) > 0 {
//		// report iss
//	}
//
//	st, err := nftmeta.DecodeYAML[mint.EvmStages](yamlData, nftmeta.StrictParseOpt())
//	wire, err := nftmeta.Encode(st)
package nftmeta
