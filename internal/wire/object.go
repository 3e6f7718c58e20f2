// Package wire holds the shape-checking helpers the record packages use to
// decode JSON objects member by member, so every problem is reported with its
// JSON Pointer instead of failing on the first type mismatch.
package wire

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/reoring/nftmeta"
)

// Object is a decoded JSON object whose members are read lazily. Issues found
// while reading accumulate on the Object.
type Object struct {
	path    nftmeta.Path
	members map[string]json.RawMessage
	issues  nftmeta.Issues
	// failed is set when raw was not a readable object. Members then read as
	// absent without required issues.
	failed bool
}

// DecodeObject parses raw as a JSON object rooted at p. When raw is not an
// object the returned Object carries a single invalid_type issue and reads as
// empty.
func DecodeObject(raw []byte, p nftmeta.Path) *Object {
	o := &Object{path: p}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		o.Add(p.Issue(nftmeta.CodeInvalidType, "expected object", "got", Kind(raw)))
		o.failed = true
		return o
	}
	if err := json.Unmarshal(raw, &o.members); err != nil {
		o.Add(p.Issue(nftmeta.CodeParseError, err.Error()).WithCause(err))
		o.failed = true
	}
	return o
}

// Path returns the path of the member key.
func (o *Object) Path(key string) nftmeta.Path { return o.path.Field(key) }

// Add records issues against the object.
func (o *Object) Add(iss ...nftmeta.Issue) { o.issues = append(o.issues, iss...) }

// Issues returns everything collected so far.
func (o *Object) Issues() nftmeta.Issues { return o.issues }

// Raw returns the member's raw JSON. A null member reads as absent. When
// required and absent a required issue is recorded.
func (o *Object) Raw(key string, required bool) (json.RawMessage, bool) {
	raw, ok := o.members[key]
	if ok && isNull(raw) {
		ok = false
	}
	if !ok {
		if required && !o.failed {
			o.Add(o.Path(key).Issue(nftmeta.CodeRequired, "missing "+key))
		}
		return nil, false
	}
	return raw, true
}

// String reads a string member.
func (o *Object) String(key string, required bool) (string, bool) {
	raw, ok := o.Raw(key, required)
	if !ok {
		return "", false
	}
	s, ok := DecodeString(raw)
	if !ok {
		o.Add(o.Path(key).Issue(nftmeta.CodeInvalidType, "expected string", "got", Kind(raw)))
		return "", false
	}
	return s, true
}

// Bool reads a boolean member.
func (o *Object) Bool(key string, required bool) (bool, bool) {
	raw, ok := o.Raw(key, required)
	if !ok {
		return false, false
	}
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	o.Add(o.Path(key).Issue(nftmeta.CodeInvalidType, "expected boolean", "got", Kind(raw)))
	return false, false
}

// Number reads a numeric member as float64.
func (o *Object) Number(key string, required bool) (float64, bool) {
	raw, ok := o.Raw(key, required)
	if !ok {
		return 0, false
	}
	f, ok := ParseNumber(raw)
	if !ok {
		o.Add(o.Path(key).Issue(nftmeta.CodeInvalidType, "expected number", "got", Kind(raw)))
		return 0, false
	}
	return f, true
}

// Int reads an integral numeric member. JSON numbers with a zero fraction
// (3.0) are accepted because producers are often JavaScript.
func (o *Object) Int(key string, required bool) (int, bool) {
	raw, ok := o.Raw(key, required)
	if !ok {
		return 0, false
	}
	n, ok := ParseInt(raw)
	if !ok {
		o.Add(o.Path(key).Issue(nftmeta.CodeInvalidType, "expected integer", "got", Kind(raw)))
		return 0, false
	}
	return n, true
}

// Array reads an array member as raw elements.
func (o *Object) Array(key string, required bool) ([]json.RawMessage, bool) {
	raw, ok := o.Raw(key, required)
	if !ok {
		return nil, false
	}
	elems, ok := DecodeArray(raw)
	if !ok {
		o.Add(o.Path(key).Issue(nftmeta.CodeInvalidType, "expected array", "got", Kind(raw)))
		return nil, false
	}
	return elems, true
}

// DecodeArray splits a JSON array into its raw elements.
func DecodeArray(raw []byte) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	if elems == nil {
		elems = []json.RawMessage{}
	}
	return elems, true
}

// DecodeString parses raw as a JSON string.
func DecodeString(raw []byte) (string, bool) {
	raw = bytes.TrimSpace(raw)
	var s string
	if len(raw) == 0 || raw[0] != '"' || json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

// ParseNumber parses a raw JSON number.
func ParseNumber(raw []byte) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInt parses a raw JSON number holding an integral value.
func ParseInt(raw []byte) (int, bool) {
	f, ok := ParseNumber(raw)
	// 2^53 bounds the integers a JavaScript producer can represent exactly.
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	if n, err := strconv.Atoi(string(bytes.TrimSpace(raw))); err == nil {
		return n, true
	}
	return int(f), true
}

// Kind names the JSON type of raw for issue params.
func Kind(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "nothing"
	}
	switch c := raw[0]; {
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == '"':
		return "string"
	case c == 't' || c == 'f':
		return "boolean"
	case c == 'n':
		return "null"
	default:
		return "number"
	}
}

func isNull(raw []byte) bool { return bytes.Equal(bytes.TrimSpace(raw), []byte("null")) }
