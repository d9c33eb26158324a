// Package packet owns the framed wire unit (Packet) and the
// incremental parser that turns arbitrary byte fragments into
// Packets.
package packet

import (
	"encoding/binary"

	"github.com/xenwire/xenwire/internal/wire"
)

// HeaderSize is the fixed 16-byte header: op(u32), rid(u32), tid(u32),
// len(u32), all little-endian.
const HeaderSize = 16

// PayloadMax is the payload ceiling in bytes.
const PayloadMax = 4096

// Packet is a framed unit: header fields plus an opaque payload.
type Packet struct {
	Ty   wire.Op
	Rid  uint32
	Tid  uint32
	data []byte
}

// New constructs a Packet from fields and payload, copying data and
// setting Len implicitly to len(data).
func New(tid, rid uint32, ty wire.Op, data []byte) Packet {
	buf := make([]byte, len(data))
	copy(buf, data)
	return Packet{Ty: ty, Rid: rid, Tid: tid, data: buf}
}

// Len is the payload length in bytes.
func (p Packet) Len() uint32 {
	return uint32(len(p.data))
}

// DataRaw returns the payload bytes verbatim.
func (p Packet) DataRaw() []byte {
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

// Data returns the payload with a single trailing NUL byte stripped,
// if present. Many payloads are C-string-terminated on the wire, but
// higher layers want logical strings.
func (p Packet) Data() []byte {
	if n := len(p.data); n > 0 && p.data[n-1] == 0 {
		return p.DataRaw()[:n-1]
	}
	return p.DataRaw()
}

// Marshal emits the header fields followed by the payload.
func (p Packet) Marshal() []byte {
	buf := make([]byte, HeaderSize+len(p.data))
	binary.LittleEndian.PutUint32(buf[0:4], wire.ToInt(p.Ty))
	binary.LittleEndian.PutUint32(buf[4:8], p.Rid)
	binary.LittleEndian.PutUint32(buf[8:12], p.Tid)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(p.data)))
	copy(buf[HeaderSize:], p.data)
	return buf
}

func clampLen(n uint32) uint32 {
	if n > PayloadMax {
		return PayloadMax
	}
	return n
}
