// Package wiretest provides small test helpers: a once-per-process
// test-logging bootstrap and a byte-fragmenting io.Reader (used by
// internal/stream's tests) for exercising Parser's fragmentation
// tolerance.
package wiretest

import (
	"io"
	"testing"

	"github.com/xenwire/xenwire/internal/logging"
)

// Start configures test logging once per process and logs the
// calling test's name.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests("xenwire-test")
	logging.Logger.Debug().Str("test", t.Name()).Msg("test start")
}

// FragmentingReader yields data in fixed-size chunks, simulating a
// transport that never delivers a whole frame in one read.
type FragmentingReader struct {
	data      []byte
	chunkSize int
}

// NewFragmentingReader returns a reader over data that hands back at
// most chunkSize bytes per Read call.
func NewFragmentingReader(data []byte, chunkSize int) *FragmentingReader {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	return &FragmentingReader{data: data, chunkSize: chunkSize}
}

func (r *FragmentingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.chunkSize
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.data) {
		n = len(r.data)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}
