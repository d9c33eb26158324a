package response

import (
	"github.com/xenwire/xenwire/internal/wire"
	"github.com/xenwire/xenwire/internal/wire/packet"
)

// Correlate decodes received against the request that produced it
// (sent), raising a classified error instead of a decoded value when:
// the reply is an Op.Error packet (classified by its canonical error
// token), the reply's op doesn't match the request's op, or decode
// reports failure.
func Correlate[T any](hint string, sent, received packet.Packet, decode func(packet.Packet) (T, bool)) (T, error) {
	var zero T

	if received.Ty == wire.OpError {
		msg, _ := Unmarshal.String(received)
		return zero, classifyServerError(hint, msg)
	}

	if sent.Ty != received.Ty {
		return zero, &wire.PacketMismatchError{Sent: sent.Ty, Received: received.Ty}
	}

	v, ok := decode(received)
	if !ok {
		return zero, &wire.ParseError{Hint: hint, Raw: received.DataRaw()}
	}
	return v, nil
}

func classifyServerError(hint, msg string) error {
	switch msg {
	case "ENOENT":
		return &wire.EnoentError{Hint: hint}
	case "EAGAIN":
		return wire.ErrEagain
	case "EINVAL":
		return wire.ErrInvalid
	default:
		return &wire.GenericError{Hint: hint, Msg: msg}
	}
}
