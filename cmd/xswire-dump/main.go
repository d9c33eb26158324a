// Command xswire-dump reads a stream of framed XenStore packets from
// a file or stdin and prints one JSON object per packet to stdout.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/xenwire/xenwire/internal/logging"
	"github.com/xenwire/xenwire/internal/metrics"
	"github.com/xenwire/xenwire/internal/wire"
	"github.com/xenwire/xenwire/internal/wire/packet"
	"github.com/xenwire/xenwire/internal/wire/request"
)

type dumpedPacket struct {
	Op      string      `json:"op"`
	Tid     uint32      `json:"tid"`
	Rid     uint32      `json:"rid"`
	Len     uint32      `json:"len"`
	Request interface{} `json:"request,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "path to a file of framed packets (default: stdin)")
	flag.Parse()

	logging.ConfigureRuntime("xswire-dump")
	log := logging.Logger

	in := io.Reader(os.Stdin)
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "xswire-dump: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if err := dump(in, os.Stdout); err != nil {
		log.Error().Err(err).Msg("xswire-dump failed")
		os.Exit(1)
	}
}

// dump decodes consecutive frames from r, reading exactly
// Continue(n) bytes at a time so a single read spanning more than one
// frame never drops a packet.
func dump(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	enc := json.NewEncoder(w)
	p := packet.NewParser()

	for {
		st := p.State()
		if pkt, perr, ok := st.Result(); ok {
			if encErr := enc.Encode(toDumped(pkt, perr)); encErr != nil {
				return encErr
			}
			p = packet.NewParser()
			continue
		}

		need, _ := st.Continue()
		buf := make([]byte, need)
		n, err := io.ReadFull(reader, buf)
		if n > 0 {
			p.Input(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("xswire-dump: read: %w", err)
		}
	}
}

func toDumped(pkt packet.Packet, perr error) dumpedPacket {
	d := dumpedPacket{Op: pkt.Ty.String(), Tid: pkt.Tid, Rid: pkt.Rid, Len: pkt.Len()}
	if perr != nil {
		metrics.RecordParseFailure(classify(perr))
		d.Error = perr.Error()
		return d
	}
	metrics.RecordReceived(pkt.Ty.String(), int(pkt.Len()))
	if payload, err := request.ParseRequest(pkt); err == nil {
		d.Request = payload
	}
	return d
}

func classify(err error) string {
	switch {
	case errors.Is(err, wire.ErrUnknownOp):
		return "unknown_op"
	case errors.Is(err, wire.ErrParseFailure):
		return "parse_failure"
	default:
		return "other"
	}
}
