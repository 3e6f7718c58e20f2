package engine

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// ScanOpt configures Scan.
type ScanOpt struct {
	OnDup    DuplicateStrictness
	MaxDepth int // 0 means unlimited.
	// MaxIssues < 0 means unlimited; 0 means disabled; >0 sets limit.
	MaxIssues int
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	path         string
	keys         map[string]struct{}
	expectingKey bool
	pendingKey   string
	nextIndex    int
}

type walker struct {
	opt      ScanOpt
	stack    []frame
	issues   []SimpleIssue
	stop     bool
	keyPaths map[string]bool // member path -> value was null
}

// Scan walks a JSON document token by token and reports duplicate object
// keys and nesting beyond MaxDepth. Issue paths are JSON Pointers.
func Scan(data []byte, opt ScanOpt) ([]SimpleIssue, error) {
	return ScanReader(bytes.NewReader(data), opt)
}

// ScanReader is Scan over an io.Reader. It consumes the reader fully.
func ScanReader(r io.Reader, opt ScanOpt) ([]SimpleIssue, error) {
	if opt.OnDup == DupIgnore && opt.MaxDepth <= 0 {
		return nil, nil
	}
	w := &walker{opt: opt}
	if err := w.run(r); err != nil {
		return w.issues, err
	}
	return w.issues, nil
}

// KeyPaths returns the JSON Pointer of every object member in the document,
// mapped to whether the member's value was null.
func KeyPaths(data []byte) (map[string]bool, error) {
	w := &walker{opt: ScanOpt{MaxIssues: 0}, keyPaths: map[string]bool{}}
	if err := w.run(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return w.keyPaths, nil
}

// UnknownPaths compares the member paths of an input document with those of
// its canonical re-encoding and returns, sorted, the topmost input members
// that have no counterpart. Null members are skipped because they decode to
// absent values.
func UnknownPaths(input, canonical []byte) ([]string, error) {
	in, err := KeyPaths(input)
	if err != nil {
		return nil, err
	}
	out, err := KeyPaths(canonical)
	if err != nil {
		return nil, err
	}
	var missing []string
	for p, isNull := range in {
		if isNull {
			continue
		}
		if _, ok := out[p]; !ok {
			missing = append(missing, p)
		}
	}
	sort.Strings(missing)
	var top []string
	for _, p := range missing {
		if n := len(top); n > 0 && strings.HasPrefix(p, top[n-1]+"/") {
			continue
		}
		top = append(top, p)
	}
	return top, nil
}

func (w *walker) run(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	for !w.stop {
		tok, err := dec.Token()
		if err == io.EOF {
			if len(w.stack) > 0 {
				return io.ErrUnexpectedEOF
			}
			return nil
		}
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				p := w.valuePath(false)
				f := frame{kind: kindArray, path: p}
				if v == '{' {
					f = frame{kind: kindObject, path: p, keys: make(map[string]struct{}), expectingKey: true}
				}
				w.stack = append(w.stack, f)
				if w.opt.MaxDepth > 0 && len(w.stack) > w.opt.MaxDepth {
					w.add(SimpleIssue{Code: "too_big", Path: pointer(p), Message: "max depth exceeded"})
					w.stop = true
				}
			case '}', ']':
				if n := len(w.stack); n > 0 {
					w.stack = w.stack[:n-1]
				}
				w.valueDone()
			}
		case string:
			if n := len(w.stack); n > 0 {
				top := &w.stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					w.key(top, v)
					continue
				}
			}
			w.valuePath(false)
			w.valueDone()
		default:
			w.valuePath(tok == nil)
			w.valueDone()
		}
	}
	return nil
}

func (w *walker) key(top *frame, k string) {
	if w.opt.OnDup != DupIgnore {
		if _, dup := top.keys[k]; dup {
			w.add(SimpleIssue{Code: "duplicate_key", Path: pointer(join(top.path, escape(k))), Message: "key '" + k + "' duplicated"})
			if w.opt.OnDup == DupError {
				w.stop = true
			}
		}
		top.keys[k] = struct{}{}
	}
	top.pendingKey = k
	top.expectingKey = false
}

// valuePath returns the path of the value that starts now and records it as a
// member path when the parent is an object.
func (w *walker) valuePath(isNull bool) string {
	n := len(w.stack)
	if n == 0 {
		return ""
	}
	top := &w.stack[n-1]
	if top.kind == kindObject {
		p := join(top.path, escape(top.pendingKey))
		if w.keyPaths != nil {
			w.keyPaths[p] = isNull
		}
		return p
	}
	p := join(top.path, strconv.Itoa(top.nextIndex))
	top.nextIndex++
	return p
}

func (w *walker) valueDone() {
	if n := len(w.stack); n > 0 {
		top := &w.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (w *walker) add(i SimpleIssue) {
	if w.opt.MaxIssues == 0 {
		return
	}
	w.issues = append(w.issues, i)
	if w.opt.MaxIssues > 0 && len(w.issues) >= w.opt.MaxIssues {
		w.issues = append(w.issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached"})
		w.stop = true
	}
}

func join(parent, seg string) string { return parent + "/" + seg }

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// escape applies RFC6901 escaping ('~' -> '~0', '/' -> '~1').
func escape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
