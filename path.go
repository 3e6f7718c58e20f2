package nftmeta

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/nftmeta/i18n"
)

// Path builds JSON Pointer paths in a chain-safe way and creates Issues.
// The zero value is the document root.
type Path struct {
	parts []string
}

// Root returns the document root path ("/").
func Root() Path { return Path{} }

// ParsePath splits a JSON Pointer into a Path. Segments are kept escaped.
func ParsePath(p string) Path {
	if p == "" || p == "/" {
		return Root()
	}
	parts := []string{}
	for _, s := range strings.Split(p, "/") {
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return Path{parts: parts}
}

// Field appends an object key, escaping '~' and '/' per RFC6901.
func (p Path) Field(name string) Path {
	if name == "" {
		return p
	}
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return Path{parts: append(append([]string{}, p.parts...), esc)}
}

// Index appends an array index.
func (p Path) Index(i int) Path {
	return Path{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Pointer renders the path as a JSON Pointer.
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p Path) String() string { return p.Pointer() }

// Issue creates an Issue at p. The message is resolved through i18n; kv pairs
// become Params and are also passed to the translator.
func (p Path) Issue(code, hint string, kv ...any) Issue {
	var params map[string]any
	var data map[string]string
	if len(kv) >= 2 {
		params = make(map[string]any, len(kv)/2)
		data = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			k := fmt.Sprint(kv[i])
			params[k] = kv[i+1]
			data[k] = fmt.Sprint(kv[i+1])
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, data), Hint: hint, Params: params}
}

// Issues wraps a single Issue at p into Issues.
func (p Path) Issues(code, hint string, kv ...any) Issues {
	return Issues{p.Issue(code, hint, kv...)}
}
