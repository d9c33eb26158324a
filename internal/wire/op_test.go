package wire

import (
	"errors"
	"testing"
)

func TestOpBijection(t *testing.T) {
	for _, tag := range AllOps() {
		code := ToInt(tag)
		got, err := FromInt(code)
		if err != nil {
			t.Fatalf("FromInt(%d): %v", code, err)
		}
		if got != tag {
			t.Fatalf("FromInt(ToInt(%v)) = %v, want %v", tag, got, tag)
		}
	}

	for i := uint32(0); i < uint32(len(opOrder)); i++ {
		tag, err := FromInt(i)
		if err != nil {
			t.Fatalf("FromInt(%d): %v", i, err)
		}
		if ToInt(tag) != i {
			t.Fatalf("ToInt(FromInt(%d)) = %d, want %d", i, ToInt(tag), i)
		}
	}
}

func TestOpFromIntOutOfRange(t *testing.T) {
	for _, i := range []uint32{21, 22, 1000, ^uint32(0)} {
		_, err := FromInt(i)
		if err == nil {
			t.Fatalf("FromInt(%d): expected error, got nil", i)
		}
		if !errors.Is(err, ErrUnknownOp) {
			t.Fatalf("FromInt(%d): expected ErrUnknownOp, got %v", i, err)
		}
	}
}

func TestOpOrderFixed(t *testing.T) {
	want := []Op{
		OpDebug, OpDirectory, OpRead, OpGetperms, OpWatch, OpUnwatch,
		OpTransactionStart, OpTransactionEnd, OpIntroduce, OpRelease,
		OpGetdomainpath, OpWrite, OpMkdir, OpRm, OpSetperms, OpWatchevent,
		OpError, OpIsintroduced, OpResume, OpSetTarget, OpRestrict,
	}
	if len(want) != 21 {
		t.Fatalf("test table has %d entries, want 21", len(want))
	}
	for i, op := range want {
		if ToInt(op) != uint32(i) {
			t.Fatalf("%v: ToInt = %d, want %d", op, ToInt(op), i)
		}
	}
}
