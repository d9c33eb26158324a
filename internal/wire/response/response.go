// Package response renders typed XenStore response payloads to and
// from wire Packets, and correlates a reply Packet with the request
// that produced it.
package response

import (
	"strconv"
	"strings"

	"github.com/xenwire/xenwire/internal/wire"
	"github.com/xenwire/xenwire/internal/wire/packet"
)

// Payload is the marker interface implemented by every response
// variant in this package's closed set.
type Payload interface {
	isResponsePayload()
}

// Read is the reply to Op.Read: the raw value, not NUL-terminated on
// the wire.
type Read struct{ Value string }

func (Read) isResponsePayload() {}

// Directory is the reply to Op.Directory: a possibly-empty list of
// child names.
type Directory struct{ Entries []string }

func (Directory) isResponsePayload() {}

// Getperms is the reply to Op.Getperms.
type Getperms struct{ ACL wire.ACL }

func (Getperms) isResponsePayload() {}

// Getdomainpath is the reply to Op.Getdomainpath.
type Getdomainpath struct{ Path string }

func (Getdomainpath) isResponsePayload() {}

// TransactionStart is the reply to Op.Transaction_start, carrying the
// newly allocated transaction id.
type TransactionStart struct{ Tid uint32 }

func (TransactionStart) isResponsePayload() {}

// Isintroduced is the reply to Op.Isintroduced.
type Isintroduced struct{ Value bool }

func (Isintroduced) isResponsePayload() {}

// Watchevent is an unsolicited notification delivered when a watched
// path changes.
type Watchevent struct {
	Path  string
	Token wire.Token
}

func (Watchevent) isResponsePayload() {}

// Error is a server-reported error payload.
type Error struct{ Msg string }

func (Error) isResponsePayload() {}

// Debug is the reply to Op.Debug.
type Debug struct{ Items []string }

func (Debug) isResponsePayload() {}

// Ack is the literal "OK" reply shared by Write, Mkdir, Rm, Setperms,
// Watch, Unwatch, Transaction_end, Introduce, Resume, Release,
// Set_target and Restrict. For carries the op it acknowledges so
// TyOfPayload can report the correct wire op.
type Ack struct{ For wire.Op }

func (Ack) isResponsePayload() {}

const nul = "\x00"

// okLiteral is the three-byte payload "O", "K", NUL indicating
// success for ack-only replies.
var okLiteral = []byte("OK\x00")

// TyOfPayload reports the Op a given response payload marshals to.
func TyOfPayload(p Payload) wire.Op {
	switch v := p.(type) {
	case Read:
		return wire.OpRead
	case Directory:
		return wire.OpDirectory
	case Getperms:
		return wire.OpGetperms
	case Getdomainpath:
		return wire.OpGetdomainpath
	case TransactionStart:
		return wire.OpTransactionStart
	case Isintroduced:
		return wire.OpIsintroduced
	case Watchevent:
		return wire.OpWatchevent
	case Error:
		return wire.OpError
	case Debug:
		return wire.OpDebug
	case Ack:
		return v.For
	default:
		panic("response: unhandled payload type")
	}
}

// Marshal builds the Packet prescribed by the wire payload table for
// v, carrying tid and rid verbatim.
func Marshal(v Payload, tid, rid uint32) packet.Packet {
	ty := TyOfPayload(v)
	switch p := v.(type) {
	case Read:
		return packet.New(tid, rid, ty, []byte(p.Value))
	case Directory:
		return packet.New(tid, rid, ty, encodeDirectory(p.Entries))
	case Getperms:
		return packet.New(tid, rid, ty, []byte(p.ACL.Marshal()+nul))
	case Getdomainpath:
		return packet.New(tid, rid, ty, []byte(p.Path+nul))
	case TransactionStart:
		return packet.New(tid, rid, ty, []byte(strconv.FormatUint(uint64(p.Tid), 10)+nul))
	case Isintroduced:
		return packet.New(tid, rid, ty, []byte(boolString(p.Value)+nul))
	case Watchevent:
		return packet.New(tid, rid, ty, []byte(p.Path+nul+string(p.Token)+nul))
	case Error:
		return packet.New(tid, rid, ty, []byte(p.Msg+nul))
	case Debug:
		return packet.New(tid, rid, ty, encodeDebug(p.Items))
	case Ack:
		return packet.New(tid, rid, ty, okLiteral)
	default:
		panic("response: unhandled payload type")
	}
}

func encodeDirectory(entries []string) []byte {
	if len(entries) == 0 {
		return nil
	}
	return []byte(strings.Join(entries, nul) + nul)
}

func encodeDebug(items []string) []byte {
	return []byte(strings.Join(items, nul) + nul)
}

func boolString(b bool) string {
	if b {
		return "T"
	}
	return "F"
}
