// Package jsonschema exports JSON Schema (draft 2020-12) documents describing
// the wire shape of the metadata and mint stage records, for editors and
// non-Go producers.
package jsonschema

import (
	"github.com/reoring/nftmeta/metadata"
	"github.com/reoring/nftmeta/mint"
)

// Draft is the $schema URI of the exported documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	SchemaURI   string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Enum    []any  `json:"enum,omitempty"`
	Default any    `json:"default,omitempty"`

	// String
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func str(desc string) *Schema { return &Schema{Type: "string", Description: desc} }

func uri(desc string) *Schema { return &Schema{Type: "string", Format: "uri", Description: desc} }

func object(required []string, props map[string]*Schema) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

func array(items *Schema) *Schema { return &Schema{Type: "array", Items: items} }

func timestamp(desc string) *Schema {
	return &Schema{OneOf: []*Schema{
		{Type: "string", Format: "date-time"},
		{Type: "integer", Description: "milliseconds since the Unix epoch"},
	}, Description: desc}
}

func nonNegative(typ, desc string) *Schema {
	return &Schema{Type: typ, Minimum: ptr(0.0), Description: desc}
}

func root(title string, s *Schema) *Schema {
	s.SchemaURI = Draft
	s.Title = title
	return s
}

func metadataProps() map[string]*Schema {
	return map[string]*Schema{
		"name":          str("Name of the asset."),
		"description":   str("Description of the asset."),
		"image":         uri("URI pointing to the asset's logo."),
		"animation_url": uri("URI pointing to the asset's animation."),
		"external_url":  uri("URI pointing to an external URL defining the asset."),
		"attributes": array(object([]string{"trait_type", "value"}, map[string]*Schema{
			"trait_type": str(""),
			"value":      str(""),
		})),
		"properties": object([]string{"files", "category"}, map[string]*Schema{
			"files": array(object([]string{"uri", "type"}, map[string]*Schema{
				"uri":  uri(""),
				"type": str("Media type, e.g. image/png."),
				"cdn":  {Type: "boolean"},
			})),
			"category": str("Media category, e.g. image or video."),
		}),
	}
}

var metadataRequired = []string{"name", "description", "image", "attributes", "properties"}

// Metadata describes metadata.NftMetadata.
func Metadata() *Schema {
	return root("NftMetadata", object(metadataRequired, metadataProps()))
}

// Collection describes metadata.CollectionInfo.
func Collection() *Schema {
	return root("CollectionInfo", object(metadataRequired, metadataProps()))
}

// AiMetadata describes metadata.AiNftMetadata.
func AiMetadata() *Schema {
	engines := make([]any, 0, len(metadata.Engines()))
	for _, e := range metadata.Engines() {
		engines = append(engines, string(e))
	}
	props := metadataProps()
	props["ai_agent"] = object([]string{"character"}, map[string]*Schema{
		"engine":    {Type: "string", Enum: engines, Default: string(metadata.DefaultEngine)},
		"character": {Type: "object", Description: "Eliza character file."},
	})
	return root("AiNftMetadata", object(metadataRequired, props))
}

func stage() *Schema {
	return object([]string{"label", "priceInSol", "startDate"}, map[string]*Schema{
		"label":             {Type: "string", MinLength: ptr(1), MaxLength: ptr(mint.MaxLabelLength)},
		"priceInSol":        nonNegative("number", "Price per mint in SOL."),
		"startDate":         timestamp("Stage opens."),
		"endDate":           timestamp("Stage closes; open ended when absent."),
		"maxMintsPerWallet": nonNegative("integer", ""),
		"whitelist":         {Type: "array", Items: str("base58 public key"), UniqueItems: true},
	})
}

func evmStage() *Schema {
	entry := &Schema{OneOf: []*Schema{
		str("hex address"),
		object([]string{"address", "mintLimit"}, map[string]*Schema{
			"address":   str("hex address"),
			"mintLimit": nonNegative("integer", ""),
		}),
	}}
	return object([]string{"pricePerNFT", "startDate"}, map[string]*Schema{
		"pricePerNFT":       nonNegative("number", "Price per mint in the native unit."),
		"startDate":         timestamp("Stage opens."),
		"endDate":           timestamp("Stage closes; open ended when absent."),
		"maxMintsPerWallet": nonNegative("integer", ""),
		"whitelist":         array(entry),
	})
}

// MintStage describes mint.MintStage.
func MintStage() *Schema { return root("MintStage", stage()) }

// MintStages describes a list of mint.MintStage.
func MintStages() *Schema { return root("MintStages", array(stage())) }

// EvmMintStage describes mint.EvmMintStage.
func EvmMintStage() *Schema { return root("EvmMintStage", evmStage()) }

// EvmMintStages describes a list of mint.EvmMintStage.
func EvmMintStages() *Schema { return root("EvmMintStages", array(evmStage())) }
