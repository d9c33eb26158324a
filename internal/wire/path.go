package wire

import "strings"

// MaxPathLen is the maximum encoded path length in bytes.
const MaxPathLen = 1024

// Element is a single non-empty path segment over
// [A-Za-z0-9_\-@].
type Element string

// Path is an ordered sequence of Elements. The empty path denotes the
// root.
type Path []Element

func isPathChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-' || b == '@':
		return true
	default:
		return false
	}
}

// ParsePath parses a path string, absolute or relative. An all-slash
// "/" parses to the empty absolute path; ParsePath itself does not
// track absoluteness (see ParseName), it only validates and splits
// segments.
func ParsePath(s string) (Path, error) {
	if len(s) == 0 {
		return nil, &InvalidPathError{Path: s, Reason: "path must not be empty"}
	}
	if len(s) > MaxPathLen {
		return nil, &InvalidPathError{Path: s, Reason: "path exceeds maximum encoded length"}
	}

	trimmed := s
	if trimmed[0] == '/' {
		trimmed = trimmed[1:]
	}
	if trimmed == "" {
		return Path{}, nil
	}

	segments := strings.Split(trimmed, "/")
	path := make(Path, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, &InvalidPathError{Path: s, Reason: "empty path element"}
		}
		for i := 0; i < len(seg); i++ {
			if !isPathChar(seg[i]) {
				return nil, &InvalidCharError{Path: s, Char: seg[i]}
			}
		}
		path = append(path, Element(seg))
	}
	return path, nil
}

// String renders the path as a relative, slash-joined string. The
// empty path renders as the empty string.
func (p Path) String() string {
	segs := make([]string, len(p))
	for i, e := range p {
		segs[i] = string(e)
	}
	return strings.Join(segs, "/")
}

// Dirname drops the last element; the empty path returns itself.
func (p Path) Dirname() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// Basename returns the last element, or the empty string for the root.
func (p Path) Basename() Element {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Walk folds fn left-to-right over the path's elements.
func Walk[T any](p Path, init T, fn func(acc T, e Element) T) T {
	acc := init
	for _, e := range p {
		acc = fn(acc, e)
	}
	return acc
}

// Fold folds fn over every non-empty prefix of p in increasing length.
func Fold[T any](p Path, init T, fn func(acc T, prefix Path) T) T {
	acc := init
	for i := 1; i <= len(p); i++ {
		acc = fn(acc, p[:i])
	}
	return acc
}

// Iter calls fn for every non-empty prefix of p in increasing length.
func Iter(p Path, fn func(prefix Path)) {
	Fold(p, struct{}{}, func(acc struct{}, prefix Path) struct{} {
		fn(prefix)
		return acc
	})
}

// CommonPrefix returns the longest shared prefix of a and b.
func CommonPrefix(a, b Path) Path {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
