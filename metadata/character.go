package metadata

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"
)

// ErrCharacterNotObject is returned when a character file is not a JSON object.
var ErrCharacterNotObject = errors.New("metadata: character file must be a JSON object")

// Character is an opaque Eliza character file. The document is kept verbatim
// (compacted) so re-encoding never drops fields this package does not model.
// The zero value is an absent character.
type Character struct {
	raw []byte
}

// NewCharacter validates raw as a JSON object and wraps a compacted copy.
func NewCharacter(raw []byte) (Character, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' || !json.Valid(raw) {
		return Character{}, ErrCharacterNotObject
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return Character{}, err
	}
	return Character{raw: buf.Bytes()}, nil
}

// CharacterFrom encodes v (a struct or map) and wraps it as a Character.
func CharacterFrom(v any) (Character, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Character{}, err
	}
	return NewCharacter(b)
}

// MustCharacter is NewCharacter that panics on error; intended for literals.
func MustCharacter(raw string) Character {
	c, err := NewCharacter([]byte(raw))
	if err != nil {
		panic(err)
	}
	return c
}

// IsZero reports whether the character is absent.
func (c Character) IsZero() bool { return len(c.raw) == 0 }

// Raw returns a copy of the compacted document.
func (c Character) Raw() []byte { return append([]byte(nil), c.raw...) }

// Equal compares the compacted documents byte for byte.
func (c Character) Equal(d Character) bool { return bytes.Equal(c.raw, d.raw) }

// Decode unmarshals the character document into v.
func (c Character) Decode(v any) error {
	if c.IsZero() {
		return ErrCharacterNotObject
	}
	return json.Unmarshal(c.raw, v)
}

// Profile decodes the commonly used character fields.
func (c Character) Profile() (CharacterProfile, error) {
	var p CharacterProfile
	err := c.Decode(&p)
	return p, err
}

func (c Character) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return c.Raw(), nil
}

func (c *Character) UnmarshalJSON(b []byte) error {
	v, err := NewCharacter(b)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// CharacterProfile is the subset of the Eliza character schema this module
// reads. Fields not listed here stay in the Character document untouched.
type CharacterProfile struct {
	Name          string   `json:"name"`
	Username      string   `json:"username,omitempty"`
	System        string   `json:"system,omitempty"`
	ModelProvider string   `json:"modelProvider,omitempty"`
	Bio           Lines    `json:"bio,omitempty"`
	Lore          []string `json:"lore,omitempty"`
	Adjectives    []string `json:"adjectives,omitempty"`
	Topics        []string `json:"topics,omitempty"`
	Clients       []string `json:"clients,omitempty"`
}

// Lines is text given either as a single string or as a list of strings, as
// the character "bio" field allows.
type Lines []string

func (l *Lines) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Lines{s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(b, &ss); err != nil {
		return err
	}
	*l = ss
	return nil
}
