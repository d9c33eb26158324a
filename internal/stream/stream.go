// Package stream provides a thin framing layer over any full-duplex
// byte channel, driving internal/wire/packet's incremental Parser.
//
// The core is concurrency-discipline-agnostic: callers must serialize
// their own Send calls and their own Recv calls (at most one
// outstanding of each per Stream), exactly as spec'd for the abstract
// IO capability set this package stands in for.
package stream

import (
	"io"
	"net"

	"github.com/xenwire/xenwire/internal/wire"
	"github.com/xenwire/xenwire/internal/wire/packet"
)

// Stream pairs an abstract byte channel with its own Parser. It does
// not own the channel's lifetime; the caller closes the channel
// independently.
type Stream struct {
	conn   io.ReadWriter
	parser *packet.Parser

	sent     uint64
	received uint64
	lastErr  error
}

// New wraps any io.ReadWriter as a PacketStream.
func New(conn io.ReadWriter) *Stream {
	return &Stream{conn: conn, parser: packet.NewParser()}
}

// Dial opens a net.Conn to addr over network and wraps it as a
// Stream.
func Dial(network, addr string) (*Stream, net.Conn, error) {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, nil, err
	}
	return New(conn), conn, nil
}

// Send writes marshal(pkt) in full. There is no internal buffering
// and no ordering guarantee beyond what the underlying channel
// provides.
func (s *Stream) Send(pkt packet.Packet) error {
	_, err := s.conn.Write(pkt.Marshal())
	if err != nil {
		s.lastErr = err
		return err
	}
	s.sent++
	return nil
}

// Recv reads and reassembles the next frame, reading exactly
// Continue(n) bytes at a time until the parser reports Done. A read
// returning zero bytes with no error is treated as end of stream.
func (s *Stream) Recv() (packet.Packet, error) {
	for {
		st := s.parser.State()
		if pkt, err, ok := st.Result(); ok {
			s.parser = packet.NewParser()
			if err != nil {
				s.lastErr = err
				return packet.Packet{}, err
			}
			s.received++
			return pkt, nil
		}

		need, _ := st.Continue()
		buf := make([]byte, need)
		n, err := s.conn.Read(buf)
		if n == 0 {
			if err == nil || err == io.EOF {
				s.lastErr = wire.ErrEndOfStream
				return packet.Packet{}, wire.ErrEndOfStream
			}
			s.lastErr = err
			return packet.Packet{}, err
		}
		s.parser.Input(buf[:n])
	}
}

// Stats is a point-in-time snapshot of a Stream's traffic counters.
type Stats struct {
	Sent     uint64
	Received uint64
	LastErr  error
}

// Stats reports packets sent/received so far and the last error
// observed on the channel, if any.
func (s *Stream) Stats() Stats {
	return Stats{Sent: s.sent, Received: s.received, LastErr: s.lastErr}
}
