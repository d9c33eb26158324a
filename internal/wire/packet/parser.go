package packet

import (
	"encoding/binary"

	"github.com/xenwire/xenwire/internal/wire"
)

type stage int

const (
	stageHeader stage = iota
	stageBody
	stageFinished
)

// State reports the parser's current progress: either Continue(n),
// meaning n more bytes are needed before the next transition, or
// Done, meaning a Packet (or a parse error) is ready to be collected.
type State struct {
	Finished bool
	Need     int
	Packet   Packet
	Err      error
}

// Continue reports the number of bytes still needed and whether the
// parser is still accepting input.
func (s State) Continue() (need int, more bool) {
	return s.Need, !s.Finished
}

// Result reports the finished packet or error. ok is false while the
// parser is still mid-frame.
func (s State) Result() (pkt Packet, err error, ok bool) {
	return s.Packet, s.Err, s.Finished
}

// Parser is a single-owner, incremental state machine: ReadingHeader,
// ReadingBody, or Finished. It never blocks, never allocates unbounded
// memory, and never mutates the caller's buffer. Once Finished, a
// Parser is terminal; allocate a new one (NewParser) for the next frame.
type Parser struct {
	st stage

	headerBuf []byte

	ty     wire.Op
	rid    uint32
	tid    uint32
	needed uint32
	body   []byte

	result Packet
	err    error
}

// NewParser creates a fresh parser in the ReadingHeader state.
func NewParser() *Parser {
	return &Parser{st: stageHeader, headerBuf: make([]byte, 0, HeaderSize)}
}

// State reports the parser's current state, as described on State.
func (p *Parser) State() State {
	switch p.st {
	case stageHeader:
		return State{Need: HeaderSize - len(p.headerBuf)}
	case stageBody:
		return State{Need: int(p.needed) - len(p.body)}
	default:
		return State{Finished: true, Packet: p.result, Err: p.err}
	}
}

// Input feeds the next fragment of bytes into the parser. Once
// Finished, further input is silently ignored. Callers should size
// reads to State().Continue()'s need, but Input tolerates a fragment
// that overruns a stage boundary (e.g. a single read that completes
// the header and starts the body) by carrying the remainder forward.
func (p *Parser) Input(b []byte) {
	for len(b) > 0 && p.st != stageFinished {
		switch p.st {
		case stageHeader:
			n := HeaderSize - len(p.headerBuf)
			if n > len(b) {
				n = len(b)
			}
			p.headerBuf = append(p.headerBuf, b[:n]...)
			b = b[n:]
			if len(p.headerBuf) == HeaderSize {
				p.parseHeader()
			}
		case stageBody:
			n := int(p.needed) - len(p.body)
			if n > len(b) {
				n = len(b)
			}
			p.body = append(p.body, b[:n]...)
			b = b[n:]
			if len(p.body) == int(p.needed) {
				p.finish(New(p.tid, p.rid, p.ty, p.body), nil)
			}
		}
	}
}

func (p *Parser) parseHeader() {
	opCode := binary.LittleEndian.Uint32(p.headerBuf[0:4])
	rid := binary.LittleEndian.Uint32(p.headerBuf[4:8])
	tid := binary.LittleEndian.Uint32(p.headerBuf[8:12])
	length := clampLen(binary.LittleEndian.Uint32(p.headerBuf[12:16]))

	op, err := wire.FromInt(opCode)
	if err != nil {
		p.finish(Packet{}, err)
		return
	}

	p.ty, p.rid, p.tid, p.needed = op, rid, tid, length
	if length == 0 {
		p.finish(New(tid, rid, op, nil), nil)
		return
	}
	p.body = make([]byte, 0, length)
	p.st = stageBody
}

func (p *Parser) finish(pkt Packet, err error) {
	p.result = pkt
	p.err = err
	p.st = stageFinished
}
