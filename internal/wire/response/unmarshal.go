package response

import (
	"strconv"
	"strings"

	"github.com/xenwire/xenwire/internal/wire"
	"github.com/xenwire/xenwire/internal/wire/packet"
)

// Unmarshal groups the typed accessors that decode a reply Packet's
// payload. Each accessor returns ok=false rather than an error, since
// these feed directly into Correlate's decode callback shape.
var Unmarshal unmarshal

type unmarshal struct{}

// String returns the raw payload with a trailing NUL trimmed.
func (unmarshal) String(pkt packet.Packet) (string, bool) {
	return string(pkt.Data()), true
}

// List splits the payload on NUL, dropping a single trailing empty
// element produced by a trailing NUL terminator.
func (unmarshal) List(pkt packet.Packet) ([]string, bool) {
	data := string(pkt.DataRaw())
	data = strings.TrimSuffix(data, nul)
	if data == "" {
		return nil, true
	}
	return strings.Split(data, nul), true
}

// ACL decodes the payload as an ACL.
func (unmarshal) ACL(pkt packet.Packet) (wire.ACL, bool) {
	return wire.UnmarshalACL(string(pkt.Data()))
}

// Int decodes the payload as a base-10 integer.
func (unmarshal) Int(pkt packet.Packet) (int, bool) {
	v, err := strconv.Atoi(string(pkt.Data()))
	return v, err == nil
}

// Int32 decodes the payload as a base-10 32-bit integer.
func (unmarshal) Int32(pkt packet.Packet) (int32, bool) {
	v, err := strconv.ParseInt(string(pkt.Data()), 10, 32)
	return int32(v), err == nil
}

// Unit succeeds only for an empty payload.
func (unmarshal) Unit(pkt packet.Packet) (struct{}, bool) {
	return struct{}{}, pkt.Len() == 0
}

// OK succeeds only if the payload is exactly the "OK" literal.
func (unmarshal) OK(pkt packet.Packet) (struct{}, bool) {
	raw := pkt.DataRaw()
	return struct{}{}, string(raw) == "OK\x00"
}

// Bool decodes the payload as the "T"/"F" convention.
func (unmarshal) Bool(pkt packet.Packet) (bool, bool) {
	switch string(pkt.Data()) {
	case "T":
		return true, true
	case "F":
		return false, true
	default:
		return false, false
	}
}

// Watchevent decodes a Watch_event payload into its path and token.
func (unmarshal) Watchevent(pkt packet.Packet) (Watchevent, bool) {
	raw := pkt.DataRaw()
	i := indexByte(raw, 0)
	if i == -1 {
		return Watchevent{}, false
	}
	rest := raw[i+1:]
	j := indexByte(rest, 0)
	if j == -1 {
		return Watchevent{}, false
	}
	return Watchevent{Path: string(raw[:i]), Token: wire.Token(rest[:j])}, true
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
