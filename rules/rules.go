// Package rules validates decoded records. Decoding only checks shape; the
// value constraints (label length, date order, address syntax, URI syntax)
// are expressed here as composable Rule values.
package rules

import (
	"github.com/reoring/nftmeta"
)

// Option configures a validation run.
type Option func(*options)

type options struct {
	failFast    bool
	skipAddress bool
}

// FailFast stops at the first issue.
func FailFast() Option { return func(o *options) { o.failFast = true } }

// WithoutAddressCheck skips whitelist address syntax checks. Uniqueness is
// still enforced.
func WithoutAddressCheck() Option { return func(o *options) { o.skipAddress = true } }

// Ctx is passed to every rule. At is the path of the value under test.
type Ctx struct {
	At  nftmeta.Path
	opt *options
}

// FailFast reports whether the run stops at the first issue.
func (c Ctx) FailFast() bool { return c.opt != nil && c.opt.failFast }

// CheckAddresses reports whether address syntax should be validated.
func (c Ctx) CheckAddresses() bool { return c.opt == nil || !c.opt.skipAddress }

// Field returns a Ctx for member name of the current value.
func (c Ctx) Field(name string) Ctx { return Ctx{At: c.At.Field(name), opt: c.opt} }

// Index returns a Ctx for element i of the current value.
func (c Ctx) Index(i int) Ctx { return Ctx{At: c.At.Index(i), opt: c.opt} }

// Issue creates an issue at the current path tagged with rule.
func (c Ctx) Issue(rule, code, hint string, kv ...any) nftmeta.Issue {
	it := c.At.Issue(code, hint, kv...)
	it.Rule = rule
	return it
}

// Rule is a typed validation function.
type Rule[T any] func(Ctx, T) nftmeta.Issues

// Check runs r against v from the document root.
func Check[T any](v T, r Rule[T], opts ...Option) nftmeta.Issues {
	o := &options{}
	for _, fn := range opts {
		fn(o)
	}
	iss := r(Ctx{At: nftmeta.Root(), opt: o}, v)
	if len(iss) == 0 {
		return nil
	}
	if o.failFast {
		return iss[:1]
	}
	return iss
}

// And executes all rules and concatenates Issues, short-circuiting under
// FailFast.
func And[T any](rules ...Rule[T]) Rule[T] {
	return func(c Ctx, v T) nftmeta.Issues {
		var out nftmeta.Issues
		for _, r := range rules {
			if r == nil {
				continue
			}
			if iss := r(c, v); len(iss) > 0 {
				out = append(out, iss...)
				if c.FailFast() {
					return out
				}
			}
		}
		return out
	}
}

// Or succeeds if any rule returns no Issues. When every branch fails the
// branch with the fewest issues is returned.
func Or[T any](rules ...Rule[T]) Rule[T] {
	return func(c Ctx, v T) nftmeta.Issues {
		var best nftmeta.Issues
		bestSet := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			iss := r(c, v)
			if len(iss) == 0 {
				return nil
			}
			if !bestSet || len(iss) < len(best) {
				best = iss
				bestSet = true
			}
		}
		return best
	}
}

// When runs rules only if pred holds for the value.
func When[T any](pred func(T) bool, rules ...Rule[T]) Rule[T] {
	inner := And(rules...)
	return func(c Ctx, v T) nftmeta.Issues {
		if !pred(v) {
			return nil
		}
		return inner(c, v)
	}
}

// Field applies r to the member selected by get, under path segment name.
func Field[T, F any](name string, get func(T) F, r Rule[F]) Rule[T] {
	return func(c Ctx, v T) nftmeta.Issues {
		return r(c.Field(name), get(v))
	}
}

// Optional applies r to the member selected by get when it is present.
func Optional[T, F any](name string, get func(T) nftmeta.Optional[F], r Rule[F]) Rule[T] {
	return func(c Ctx, v T) nftmeta.Issues {
		f, ok := get(v).Get()
		if !ok {
			return nil
		}
		return r(c.Field(name), f)
	}
}

// Each applies r to every element with indexed paths.
func Each[E any](r Rule[E]) Rule[[]E] {
	return func(c Ctx, elems []E) nftmeta.Issues {
		var out nftmeta.Issues
		for i, e := range elems {
			if iss := r(c.Index(i), e); len(iss) > 0 {
				out = append(out, iss...)
				if c.FailFast() {
					return out
				}
			}
		}
		return out
	}
}

// UniqueBy ensures elements have distinct keys. field is the path segment
// inside each element the issue points at ("" for the element itself); key
// returns false to skip an element. Issues are reported on the later
// duplicate and carry the index of the first occurrence.
func UniqueBy[E any, K comparable](field string, key func(E) (K, bool)) Rule[[]E] {
	return func(c Ctx, elems []E) nftmeta.Issues {
		seen := make(map[K]int, len(elems))
		var out nftmeta.Issues
		for i, e := range elems {
			k, ok := key(e)
			if !ok {
				continue
			}
			if j, dup := seen[k]; dup {
				out = append(out, c.Index(i).Field(field).Issue("unique", nftmeta.CodeUniqueness, "duplicate value", "first", j, "dup", i))
				if c.FailFast() {
					return out
				}
				continue
			}
			seen[k] = i
		}
		return out
	}
}
