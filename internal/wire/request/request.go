// Package request renders typed XenStore request payloads to and from
// wire Packets.
package request

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/xenwire/xenwire/internal/wire"
	"github.com/xenwire/xenwire/internal/wire/packet"
)

// Payload is the marker interface implemented by every request
// variant in this package's closed set.
type Payload interface {
	isRequestPayload()
}

// PathMode selects which path-shaped operation a PathOp performs.
type PathMode int

const (
	PathRead PathMode = iota
	PathDirectory
	PathGetperms
	PathMkdir
	PathRm
	PathWrite
	PathSetperms
)

// PathOp is every request whose payload starts with a path: Read,
// Directory, Getperms, Mkdir, Rm, Write and Setperms.
type PathOp struct {
	Mode  PathMode
	Path  string
	Value []byte   // only used when Mode == PathWrite
	ACL   wire.ACL // only used when Mode == PathSetperms
}

func (PathOp) isRequestPayload() {}

// Getdomainpath requests the store path for a domain.
type Getdomainpath struct{ Domid uint32 }

func (Getdomainpath) isRequestPayload() {}

// TransactionStart begins a transaction.
type TransactionStart struct{}

func (TransactionStart) isRequestPayload() {}

// TransactionEnd commits or aborts the current transaction.
type TransactionEnd struct{ Commit bool }

func (TransactionEnd) isRequestPayload() {}

// Watch registers a watch on Path, tagged with Token.
type Watch struct {
	Path  string
	Token wire.Token
}

func (Watch) isRequestPayload() {}

// Unwatch removes a previously registered watch.
type Unwatch struct {
	Path  string
	Token wire.Token
}

func (Unwatch) isRequestPayload() {}

// Debug carries a list of debug command items.
type Debug struct{ Items []string }

func (Debug) isRequestPayload() {}

// Introduce announces a new domain to the store.
type Introduce struct {
	Domid uint32
	Mfn   uint32
	Port  uint32
}

func (Introduce) isRequestPayload() {}

// Resume resumes a previously suspended domain.
type Resume struct{ Domid uint32 }

func (Resume) isRequestPayload() {}

// Release releases a domain's store state.
type Release struct{ Domid uint32 }

func (Release) isRequestPayload() {}

// Restrict restricts the calling connection to a domain.
type Restrict struct{ Domid uint32 }

func (Restrict) isRequestPayload() {}

// Isintroduced asks whether a domain has been introduced.
type Isintroduced struct{ Domid uint32 }

func (Isintroduced) isRequestPayload() {}

// SetTarget reassigns which domain a stub domain's permissions act
// as.
type SetTarget struct {
	Mine  uint32
	Yours uint32
}

func (SetTarget) isRequestPayload() {}

const nul = "\x00"

func pathModeOp(m PathMode) wire.Op {
	switch m {
	case PathRead:
		return wire.OpRead
	case PathDirectory:
		return wire.OpDirectory
	case PathGetperms:
		return wire.OpGetperms
	case PathMkdir:
		return wire.OpMkdir
	case PathRm:
		return wire.OpRm
	case PathWrite:
		return wire.OpWrite
	case PathSetperms:
		return wire.OpSetperms
	default:
		return wire.OpRead
	}
}

// Marshal chooses an Op from the payload's shape, builds the wire
// payload, and emits a Packet. Non-transactional payloads (anything
// other than PathOp or TransactionEnd) get tid forced to 0 regardless
// of the tid argument. Watchevent and Error payloads are not request
// variants and cannot reach this function; attempting to marshal them
// would be a compile error, not a runtime one.
func Marshal(p Payload, tid, rid uint32) packet.Packet {
	switch v := p.(type) {
	case PathOp:
		return packet.New(tid, rid, pathModeOp(v.Mode), marshalPathOp(v))
	case Getdomainpath:
		return packet.New(0, rid, wire.OpGetdomainpath, []byte(domidString(v.Domid)+nul))
	case TransactionStart:
		return packet.New(0, rid, wire.OpTransactionStart, nil)
	case TransactionEnd:
		return packet.New(tid, rid, wire.OpTransactionEnd, []byte(boolString(v.Commit)+nul))
	case Watch:
		return packet.New(0, rid, wire.OpWatch, []byte(v.Path+nul+string(v.Token)+nul))
	case Unwatch:
		return packet.New(0, rid, wire.OpUnwatch, []byte(v.Path+nul+string(v.Token)+nul))
	case Debug:
		return packet.New(0, rid, wire.OpDebug, []byte(strings.Join(v.Items, nul)+nul))
	case Introduce:
		payload := domidString(v.Domid) + nul + domidString(v.Mfn) + nul + domidString(v.Port) + nul
		return packet.New(0, rid, wire.OpIntroduce, []byte(payload))
	case Resume:
		return packet.New(0, rid, wire.OpResume, []byte(domidString(v.Domid)+nul))
	case Release:
		return packet.New(0, rid, wire.OpRelease, []byte(domidString(v.Domid)+nul))
	case Restrict:
		return packet.New(0, rid, wire.OpRestrict, []byte(domidString(v.Domid)+nul))
	case Isintroduced:
		return packet.New(0, rid, wire.OpIsintroduced, []byte(domidString(v.Domid)+nul))
	case SetTarget:
		payload := domidString(v.Mine) + nul + domidString(v.Yours) + nul
		return packet.New(0, rid, wire.OpSetTarget, []byte(payload))
	default:
		panic("request: unhandled payload type")
	}
}

func marshalPathOp(v PathOp) []byte {
	switch v.Mode {
	case PathWrite:
		return append([]byte(v.Path+nul), v.Value...)
	case PathSetperms:
		return []byte(v.Path + nul + v.ACL.Marshal() + nul)
	default:
		return []byte(v.Path + nul)
	}
}

func domidString(d uint32) string {
	return strconv.FormatUint(uint64(d), 10)
}

func boolString(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

// ParseRequest decodes a request Packet back into its typed payload,
// dispatching on the packet's Op.
func ParseRequest(pkt packet.Packet) (Payload, error) {
	data := pkt.DataRaw()
	switch pkt.Ty {
	case wire.OpRead:
		s, err := oneString(data)
		return PathOp{Mode: PathRead, Path: s}, err
	case wire.OpDirectory:
		s, err := oneString(data)
		return PathOp{Mode: PathDirectory, Path: s}, err
	case wire.OpGetperms:
		s, err := oneString(data)
		return PathOp{Mode: PathGetperms, Path: s}, err
	case wire.OpMkdir:
		s, err := oneString(data)
		return PathOp{Mode: PathMkdir, Path: s}, err
	case wire.OpRm:
		s, err := oneString(data)
		return PathOp{Mode: PathRm, Path: s}, err
	case wire.OpWrite:
		p, v, err := pathAndRest(data)
		return PathOp{Mode: PathWrite, Path: p, Value: v}, err
	case wire.OpSetperms:
		p, rest, err := twoStrings(data)
		if err != nil {
			return nil, err
		}
		acl, ok := wire.UnmarshalACL(rtrimNul(rest))
		if !ok {
			return nil, wire.ErrParseFailure
		}
		return PathOp{Mode: PathSetperms, Path: p, ACL: acl}, nil
	case wire.OpGetdomainpath:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, err := domid(s)
		return Getdomainpath{Domid: d}, err
	case wire.OpTransactionStart:
		return TransactionStart{}, nil
	case wire.OpTransactionEnd:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		b, err := parseBool(s)
		return TransactionEnd{Commit: b}, err
	case wire.OpWatch:
		p, tok, err := twoStrings(data)
		return Watch{Path: p, Token: wire.Token(rtrimNul(tok))}, err
	case wire.OpUnwatch:
		p, tok, err := twoStrings(data)
		return Unwatch{Path: p, Token: wire.Token(rtrimNul(tok))}, err
	case wire.OpDebug:
		return Debug{Items: splitItems(data)}, nil
	case wire.OpIntroduce:
		parts, err := splitN(data, 3)
		if err != nil {
			return nil, err
		}
		d, err1 := domid(parts[0])
		mfn, err2 := domid(parts[1])
		port, err3 := domid(parts[2])
		if err1 != nil {
			return nil, err1
		}
		if err2 != nil {
			return nil, err2
		}
		if err3 != nil {
			return nil, err3
		}
		return Introduce{Domid: d, Mfn: mfn, Port: port}, nil
	case wire.OpResume:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, err := domid(s)
		return Resume{Domid: d}, err
	case wire.OpRelease:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, err := domid(s)
		return Release{Domid: d}, err
	case wire.OpRestrict:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, err := domid(s)
		return Restrict{Domid: d}, err
	case wire.OpIsintroduced:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, err := domid(s)
		return Isintroduced{Domid: d}, err
	case wire.OpSetTarget:
		mine, yours, err := twoStrings(data)
		if err != nil {
			return nil, err
		}
		m, err1 := domid(mine)
		y, err2 := domid(rtrimNul(yours))
		if err1 != nil {
			return nil, err1
		}
		return SetTarget{Mine: m, Yours: y}, err2
	default:
		return nil, wire.ErrParseFailure
	}
}

func oneString(data []byte) (string, error) {
	if len(data) == 0 || data[len(data)-1] != 0 {
		return "", wire.ErrParseFailure
	}
	body := data[:len(data)-1]
	if bytes.IndexByte(body, 0) != -1 {
		return "", wire.ErrParseFailure
	}
	return string(body), nil
}

func twoStrings(data []byte) (string, string, error) {
	i := bytes.IndexByte(data, 0)
	if i == -1 {
		return "", "", wire.ErrParseFailure
	}
	return string(data[:i]), string(data[i+1:]), nil
}

func pathAndRest(data []byte) (string, []byte, error) {
	i := bytes.IndexByte(data, 0)
	if i == -1 {
		return "", nil, wire.ErrParseFailure
	}
	return string(data[:i]), data[i+1:], nil
}

func splitN(data []byte, n int) ([]string, error) {
	parts := make([]string, 0, n)
	rest := data
	for i := 0; i < n; i++ {
		j := bytes.IndexByte(rest, 0)
		if j == -1 {
			return nil, wire.ErrParseFailure
		}
		parts = append(parts, string(rest[:j]))
		rest = rest[j+1:]
	}
	return parts, nil
}

func splitItems(data []byte) []string {
	s := string(data)
	s = strings.TrimSuffix(s, nul)
	if s == "" {
		return nil
	}
	return strings.Split(s, nul)
}

// rtrimNul right-trims every trailing NUL, tolerating producers that
// double-terminate the token/perm portion of Setperms and Watch.
func rtrimNul(s string) string {
	return strings.TrimRight(s, nul)
}

// domid is a permissive decimal parser: it skips leading non-digits,
// then reads digits.
func domid(s string) (uint32, error) {
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if i == j {
		return 0, wire.ErrParseFailure
	}
	v, err := strconv.ParseUint(s[i:j], 10, 32)
	if err != nil {
		return 0, wire.ErrParseFailure
	}
	return uint32(v), nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "T":
		return true, nil
	case "F":
		return false, nil
	default:
		return false, wire.ErrParseFailure
	}
}
