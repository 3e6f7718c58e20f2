package mint

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/internal/wire"
)

// WhitelistWithLimit is an address with its own mint cap.
type WhitelistWithLimit struct {
	Address   string `json:"address"`
	MintLimit int    `json:"mintLimit"`
}

// EntryKind tags the variant of a WhitelistEntry.
type EntryKind int

const (
	// EntryAddress is a bare address string.
	EntryAddress EntryKind = iota
	// EntryLimited is an {address, mintLimit} object.
	EntryLimited
)

func (k EntryKind) String() string {
	switch k {
	case EntryAddress:
		return "address"
	case EntryLimited:
		return "limited"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// WhitelistEntry is one EVM whitelist element: either a bare address or an
// address with a mint limit.
type WhitelistEntry struct {
	kind    EntryKind
	address string
	limit   int
}

// AddressEntry returns a bare address entry.
func AddressEntry(addr string) WhitelistEntry {
	return WhitelistEntry{kind: EntryAddress, address: addr}
}

// LimitedEntry returns an entry carrying its own mint limit.
func LimitedEntry(w WhitelistWithLimit) WhitelistEntry {
	return WhitelistEntry{kind: EntryLimited, address: w.Address, limit: w.MintLimit}
}

func (e WhitelistEntry) Kind() EntryKind { return e.kind }

func (e WhitelistEntry) Address() string { return e.address }

// MintLimit returns the entry's limit; ok is false for bare addresses.
func (e WhitelistEntry) MintLimit() (limit int, ok bool) {
	return e.limit, e.kind == EntryLimited
}

// WithLimit returns the limited form; ok is false for bare addresses.
func (e WhitelistEntry) WithLimit() (WhitelistWithLimit, bool) {
	if e.kind != EntryLimited {
		return WhitelistWithLimit{}, false
	}
	return WhitelistWithLimit{Address: e.address, MintLimit: e.limit}, true
}

func (e WhitelistEntry) Equal(f WhitelistEntry) bool { return e == f }

func (e WhitelistEntry) String() string {
	if e.kind == EntryLimited {
		return fmt.Sprintf("%s (limit %d)", e.address, e.limit)
	}
	return e.address
}

func (e WhitelistEntry) MarshalJSON() ([]byte, error) {
	if w, ok := e.WithLimit(); ok {
		return json.Marshal(w)
	}
	return json.Marshal(e.address)
}

func (e *WhitelistEntry) UnmarshalJSON(b []byte) error {
	v, iss := decodeEntry(b, nftmeta.Root())
	if len(iss) > 0 {
		return iss
	}
	*e = v
	return nil
}

func decodeEntry(raw []byte, at nftmeta.Path) (WhitelistEntry, nftmeta.Issues) {
	if s, ok := wire.DecodeString(raw); ok {
		return AddressEntry(s), nil
	}
	if wire.Kind(raw) != "object" {
		return WhitelistEntry{}, at.Issues(nftmeta.CodeInvalidType, "expected address string or {address, mintLimit}", "got", wire.Kind(raw))
	}
	o := wire.DecodeObject(raw, at)
	var w WhitelistWithLimit
	w.Address, _ = o.String("address", true)
	w.MintLimit, _ = o.Int("mintLimit", true)
	return LimitedEntry(w), o.Issues()
}

// Shape summarises which variants a whitelist holds.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeAddresses
	ShapeLimited
	ShapeMixed
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeAddresses:
		return "addresses"
	case ShapeLimited:
		return "limited"
	case ShapeMixed:
		return "mixed"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Whitelist is the EVM stage whitelist. Entries keep their input order.
type Whitelist []WhitelistEntry

// AddressWhitelist builds a whitelist of bare addresses.
func AddressWhitelist(addrs ...string) Whitelist {
	wl := make(Whitelist, 0, len(addrs))
	for _, a := range addrs {
		wl = append(wl, AddressEntry(a))
	}
	return wl
}

// LimitWhitelist builds a whitelist of limited entries.
func LimitWhitelist(ws ...WhitelistWithLimit) Whitelist {
	wl := make(Whitelist, 0, len(ws))
	for _, w := range ws {
		wl = append(wl, LimitedEntry(w))
	}
	return wl
}

// Shape reports whether the list holds bare addresses, limited entries or
// both.
func (wl Whitelist) Shape() Shape {
	var addr, lim bool
	for _, e := range wl {
		switch e.kind {
		case EntryAddress:
			addr = true
		case EntryLimited:
			lim = true
		}
	}
	switch {
	case addr && lim:
		return ShapeMixed
	case addr:
		return ShapeAddresses
	case lim:
		return ShapeLimited
	default:
		return ShapeEmpty
	}
}

// Addresses returns every entry's address in order.
func (wl Whitelist) Addresses() []string {
	out := make([]string, 0, len(wl))
	for _, e := range wl {
		out = append(out, e.address)
	}
	return out
}

// Lookup finds the first entry for addr. Hex addresses compare
// case-insensitively.
func (wl Whitelist) Lookup(addr string) (WhitelistEntry, bool) {
	for _, e := range wl {
		if strings.EqualFold(e.address, addr) {
			return e, true
		}
	}
	return WhitelistEntry{}, false
}

func (wl Whitelist) Equal(other Whitelist) bool {
	if len(wl) != len(other) {
		return false
	}
	for i := range wl {
		if wl[i] != other[i] {
			return false
		}
	}
	return true
}

func (wl *Whitelist) UnmarshalJSON(b []byte) error {
	v, iss := decodeWhitelist(b, nftmeta.Root())
	if len(iss) > 0 {
		return iss
	}
	*wl = v
	return nil
}

func decodeWhitelist(raw []byte, at nftmeta.Path) (Whitelist, nftmeta.Issues) {
	elems, ok := wire.DecodeArray(raw)
	if !ok {
		return nil, at.Issues(nftmeta.CodeInvalidType, "expected array", "got", wire.Kind(raw))
	}
	wl := make(Whitelist, 0, len(elems))
	var all nftmeta.Issues
	for i, e := range elems {
		entry, iss := decodeEntry(e, at.Index(i))
		all = append(all, iss...)
		wl = append(wl, entry)
	}
	return wl, all
}
