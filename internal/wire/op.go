package wire

import "fmt"

// Op is the closed set of XenStore operation tags. The wire code is the
// zero-based index in opOrder below; this order must never change.
type Op int

const (
	OpDebug Op = iota
	OpDirectory
	OpRead
	OpGetperms
	OpWatch
	OpUnwatch
	OpTransactionStart
	OpTransactionEnd
	OpIntroduce
	OpRelease
	OpGetdomainpath
	OpWrite
	OpMkdir
	OpRm
	OpSetperms
	OpWatchevent
	OpError
	OpIsintroduced
	OpResume
	OpSetTarget
	OpRestrict
)

var opOrder = [...]Op{
	OpDebug,
	OpDirectory,
	OpRead,
	OpGetperms,
	OpWatch,
	OpUnwatch,
	OpTransactionStart,
	OpTransactionEnd,
	OpIntroduce,
	OpRelease,
	OpGetdomainpath,
	OpWrite,
	OpMkdir,
	OpRm,
	OpSetperms,
	OpWatchevent,
	OpError,
	OpIsintroduced,
	OpResume,
	OpSetTarget,
	OpRestrict,
}

var opNames = [...]string{
	"DEBUG",
	"DIRECTORY",
	"READ",
	"GETPERMS",
	"WATCH",
	"UNWATCH",
	"TRANSACTION_START",
	"TRANSACTION_END",
	"INTRODUCE",
	"RELEASE",
	"GETDOMAINPATH",
	"WRITE",
	"MKDIR",
	"RM",
	"SETPERMS",
	"WATCH_EVENT",
	"ERROR",
	"ISINTRODUCED",
	"RESUME",
	"SET_TARGET",
	"RESTRICT",
}

// String renders the op's canonical name, used in error messages and
// packet-mismatch diagnostics.
func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// ToInt returns the op's wire code.
func ToInt(o Op) uint32 {
	return uint32(o)
}

// FromInt decodes a wire code into an Op. It fails with a message naming
// the offending integer when the code is out of the 21-tag registry; this
// is the only signal that a peer is speaking an unknown protocol version.
func FromInt(i uint32) (Op, error) {
	if i >= uint32(len(opOrder)) {
		return 0, fmt.Errorf("%w: Unknown xenstore operation id: %d", ErrUnknownOp, i)
	}
	return opOrder[i], nil
}

// AllOps returns the 21 tags in wire order.
func AllOps() []Op {
	out := make([]Op, len(opOrder))
	copy(out, opOrder[:])
	return out
}
