package wire

import (
	"strconv"
	"strings"
)

// Perm is an ACL permission level, with a single-character wire code.
type Perm int

const (
	PermNone Perm = iota
	PermRead
	PermWrite
	PermRDWR
)

func (p Perm) code() byte {
	switch p {
	case PermRead:
		return 'r'
	case PermWrite:
		return 'w'
	case PermRDWR:
		return 'b'
	default:
		return 'n'
	}
}

func permFromCode(c byte) (Perm, bool) {
	switch c {
	case 'n':
		return PermNone, true
	case 'r':
		return PermRead, true
	case 'w':
		return PermWrite, true
	case 'b':
		return PermRDWR, true
	default:
		return 0, false
	}
}

// PermEntry is a per-domain permission override.
type PermEntry struct {
	Domid uint32
	Perm  Perm
}

// ACL is owner + default + per-domain overrides attached to a store
// node.
type ACL struct {
	Owner   uint32
	Other   Perm
	Entries []PermEntry
}

// Marshal emits "<char><domid>" entries, NUL-separated, owner-first
// with the default permission as the owner entry's permission
// character, followed by per-domain overrides.
func (a ACL) Marshal() string {
	parts := make([]string, 0, len(a.Entries)+1)
	parts = append(parts, string(a.Other.code())+strconv.FormatUint(uint64(a.Owner), 10))
	for _, e := range a.Entries {
		parts = append(parts, string(e.Perm.code())+strconv.FormatUint(uint64(e.Domid), 10))
	}
	return strings.Join(parts, "\x00")
}

// UnmarshalACL splits s on NUL and parses each "<char><digits>" entry.
// Empty entries after the first (from doubled or trailing NULs) are
// skipped; any other entry shorter than 2 bytes or with an unknown
// permission character causes the whole string to be rejected. Zero
// entries yields the zero-value ACL (owner 0, other NONE, no
// overrides).
func UnmarshalACL(s string) (ACL, bool) {
	if s == "" {
		return ACL{}, true
	}
	entries := strings.Split(s, "\x00")

	first := entries[0]
	perm, ok := parseEntry(first)
	if !ok {
		return ACL{}, false
	}
	acl := ACL{Owner: perm.Domid, Other: perm.Perm}

	for _, raw := range entries[1:] {
		if raw == "" {
			continue
		}
		e, ok := parseEntry(raw)
		if !ok {
			return ACL{}, false
		}
		acl.Entries = append(acl.Entries, e)
	}
	return acl, true
}

func parseEntry(s string) (PermEntry, bool) {
	if len(s) < 2 {
		return PermEntry{}, false
	}
	p, ok := permFromCode(s[0])
	if !ok {
		return PermEntry{}, false
	}
	domid, err := strconv.ParseUint(s[1:], 10, 32)
	if err != nil {
		return PermEntry{}, false
	}
	return PermEntry{Domid: uint32(domid), Perm: p}, true
}
