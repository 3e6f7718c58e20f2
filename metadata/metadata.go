// Package metadata defines the off-chain NFT metadata records: the base
// token-standard document, collection info, and the AI-agent extension.
//
// Decoding checks shape only (required members, JSON types, enum membership)
// and reports every problem as nftmeta.Issues with JSON Pointer paths. Value
// rules such as URI syntax live in the rules package.
package metadata

import (
	"github.com/goccy/go-json"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/internal/wire"
)

// Attribute is a single trait of the asset.
// Example: {TraitType: "background", Value: "blue"}
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// File is an additional file bundled with the asset.
type File struct {
	URI string // the file's URI
	// Type is the media type, e.g. image/png or video/mp4.
	Type string
	// CDN reports whether the file is served from a CDN.
	CDN nftmeta.Optional[bool]
}

// Properties holds the additional properties of the asset.
type Properties struct {
	Files    []File
	Category string // media category, e.g. image or video
}

// NftMetadata is the off-chain metadata document of a single asset, following
// the Metaplex token standard so marketplaces and wallets can render it.
type NftMetadata struct {
	Name        string
	Description string
	// Image is the URI of the asset's logo.
	Image string
	// AnimationURL is the URI of the asset's animation.
	AnimationURL nftmeta.Optional[string]
	// ExternalURL points at an external site describing the asset, e.g. the
	// game's main site.
	ExternalURL nftmeta.Optional[string]
	// Attributes may be empty but is always encoded.
	Attributes []Attribute
	Properties Properties
}

// CollectionInfo describes a collection rather than a single asset. It has
// the same shape as NftMetadata.
type CollectionInfo = NftMetadata

type fileOut struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
	CDN  *bool  `json:"cdn,omitempty"`
}

type propertiesOut struct {
	Files    []File `json:"files"`
	Category string `json:"category"`
}

type metadataOut struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Image        string      `json:"image"`
	AnimationURL *string     `json:"animation_url,omitempty"`
	ExternalURL  *string     `json:"external_url,omitempty"`
	Attributes   []Attribute `json:"attributes"`
	Properties   Properties  `json:"properties"`
}

func (m NftMetadata) out() metadataOut {
	attrs := m.Attributes
	if attrs == nil {
		attrs = []Attribute{}
	}
	return metadataOut{
		Name:         m.Name,
		Description:  m.Description,
		Image:        m.Image,
		AnimationURL: m.AnimationURL.Ptr(),
		ExternalURL:  m.ExternalURL.Ptr(),
		Attributes:   attrs,
		Properties:   m.Properties,
	}
}

func (f File) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileOut{URI: f.URI, Type: f.Type, CDN: f.CDN.Ptr()})
}

func (f *File) UnmarshalJSON(b []byte) error {
	v, iss := decodeFile(b, nftmeta.Root())
	if len(iss) > 0 {
		return iss
	}
	*f = v
	return nil
}

func (p Properties) MarshalJSON() ([]byte, error) {
	files := p.Files
	if files == nil {
		files = []File{}
	}
	return json.Marshal(propertiesOut{Files: files, Category: p.Category})
}

func (p *Properties) UnmarshalJSON(b []byte) error {
	v, iss := decodeProperties(b, nftmeta.Root())
	if len(iss) > 0 {
		return iss
	}
	*p = v
	return nil
}

func (a *Attribute) UnmarshalJSON(b []byte) error {
	v, iss := decodeAttribute(b, nftmeta.Root())
	if len(iss) > 0 {
		return iss
	}
	*a = v
	return nil
}

func (m NftMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.out())
}

func (m *NftMetadata) UnmarshalJSON(b []byte) error {
	o := wire.DecodeObject(b, nftmeta.Root())
	v := decodeMetadataFields(o)
	if iss := o.Issues(); len(iss) > 0 {
		return iss
	}
	*m = v
	return nil
}

// decodeMetadataFields reads the NftMetadata members of o. AiNftMetadata
// shares it so both report identical paths.
func decodeMetadataFields(o *wire.Object) NftMetadata {
	var m NftMetadata
	m.Name, _ = o.String("name", true)
	m.Description, _ = o.String("description", true)
	m.Image, _ = o.String("image", true)
	if s, ok := o.String("animation_url", false); ok {
		m.AnimationURL = nftmeta.Some(s)
	}
	if s, ok := o.String("external_url", false); ok {
		m.ExternalURL = nftmeta.Some(s)
	}
	if elems, ok := o.Array("attributes", true); ok {
		m.Attributes = make([]Attribute, 0, len(elems))
		for i, raw := range elems {
			a, iss := decodeAttribute(raw, o.Path("attributes").Index(i))
			o.Add(iss...)
			m.Attributes = append(m.Attributes, a)
		}
	}
	if raw, ok := o.Raw("properties", true); ok {
		p, iss := decodeProperties(raw, o.Path("properties"))
		o.Add(iss...)
		m.Properties = p
	}
	return m
}

func decodeAttribute(raw []byte, at nftmeta.Path) (Attribute, nftmeta.Issues) {
	o := wire.DecodeObject(raw, at)
	var a Attribute
	a.TraitType, _ = o.String("trait_type", true)
	a.Value, _ = o.String("value", true)
	return a, o.Issues()
}

func decodeProperties(raw []byte, at nftmeta.Path) (Properties, nftmeta.Issues) {
	o := wire.DecodeObject(raw, at)
	var p Properties
	if elems, ok := o.Array("files", true); ok {
		p.Files = make([]File, 0, len(elems))
		for i, fr := range elems {
			f, iss := decodeFile(fr, o.Path("files").Index(i))
			o.Add(iss...)
			p.Files = append(p.Files, f)
		}
	}
	p.Category, _ = o.String("category", true)
	return p, o.Issues()
}

func decodeFile(raw []byte, at nftmeta.Path) (File, nftmeta.Issues) {
	o := wire.DecodeObject(raw, at)
	var f File
	f.URI, _ = o.String("uri", true)
	f.Type, _ = o.String("type", true)
	if b, ok := o.Bool("cdn", false); ok {
		f.CDN = nftmeta.Some(b)
	}
	return f, o.Issues()
}
