package nftmeta

import (
	"bytes"
	"reflect"

	"github.com/goccy/go-json"
)

// Optional is an explicit present/absent container for optional record
// fields. The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// FromPtr converts a nil-able pointer into an Optional; nil is absent.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsPresent reports whether a value is present.
func (o Optional[T]) IsPresent() bool { return o.ok }

// IsZero reports absence. Encoders honoring IsZero (omitzero, yaml.v3
// omitempty) drop absent fields.
func (o Optional[T]) IsZero() bool { return !o.ok }

// OrElse returns the value when present, def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Optional[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// Equal reports whether both Optionals are absent, or both present with equal
// values. Values providing Equal(T) bool (time.Time, records) use it.
func (o Optional[T]) Equal(p Optional[T]) bool {
	if o.ok != p.ok {
		return false
	}
	if !o.ok {
		return true
	}
	if eq, ok := any(o.value).(interface{ Equal(T) bool }); ok {
		return eq.Equal(p.value)
	}
	return reflect.DeepEqual(o.value, p.value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON treats a JSON null as absent.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
