package request

import (
	"reflect"
	"testing"

	"github.com/xenwire/xenwire/internal/wire"
	"github.com/xenwire/xenwire/internal/wire/packet"
)

func TestRequestRoundTrip(t *testing.T) {
	cases := []Payload{
		PathOp{Mode: PathRead, Path: "/foo/bar"},
		PathOp{Mode: PathDirectory, Path: "/a/b"},
		PathOp{Mode: PathGetperms, Path: "/a"},
		PathOp{Mode: PathMkdir, Path: "/new/dir"},
		PathOp{Mode: PathRm, Path: "/old"},
		PathOp{Mode: PathWrite, Path: "/a/b", Value: []byte("payload-value")},
		PathOp{Mode: PathSetperms, Path: "/a/b", ACL: wire.ACL{Owner: 1, Other: wire.PermRead}},
		Getdomainpath{Domid: 3},
		TransactionStart{},
		TransactionEnd{Commit: true},
		TransactionEnd{Commit: false},
		Watch{Path: "/a/b", Token: wire.NewToken(1, "tok")},
		Unwatch{Path: "/a/b", Token: wire.NewToken(1, "tok")},
		Debug{Items: []string{"a", "b", "c"}},
		Introduce{Domid: 3, Mfn: 0x1234, Port: 5},
		Resume{Domid: 2},
		Release{Domid: 2},
		Restrict{Domid: 2},
		Isintroduced{Domid: 2},
		SetTarget{Mine: 1, Yours: 2},
	}

	for _, payload := range cases {
		pkt := Marshal(payload, 42, 7)
		got, err := ParseRequest(pkt)
		if err != nil {
			t.Fatalf("%#v: ParseRequest failed: %v", payload, err)
		}
		if !reflect.DeepEqual(got, payload) {
			t.Fatalf("round trip mismatch: got %#v, want %#v", got, payload)
		}
	}
}

func TestRequestNonTransactionalTidZeroed(t *testing.T) {
	pkt := Marshal(Watch{Path: "/a", Token: "tok"}, 99, 1)
	if pkt.Tid != 0 {
		t.Fatalf("Tid = %d, want 0 for non-transactional payload", pkt.Tid)
	}
}

func TestRequestTransactionalTidPreserved(t *testing.T) {
	pkt := Marshal(PathOp{Mode: PathRead, Path: "/a"}, 42, 1)
	if pkt.Tid != 42 {
		t.Fatalf("Tid = %d, want 42 for PathOp", pkt.Tid)
	}

	pkt2 := Marshal(TransactionEnd{Commit: true}, 42, 1)
	if pkt2.Tid != 42 {
		t.Fatalf("Tid = %d, want 42 for TransactionEnd", pkt2.Tid)
	}
}

// S1 from the spec.
func TestScenarioS1ReadRequest(t *testing.T) {
	pkt := Marshal(PathOp{Mode: PathRead, Path: "/foo/bar"}, 0, 7)
	got := pkt.Marshal()
	want := []byte{
		0x02, 0x00, 0x00, 0x00,
		0x07, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x09, 0x00, 0x00, 0x00,
	}
	want = append(want, []byte("/foo/bar\x00")...)
	if string(got) != string(want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

// S5 from the spec.
func TestScenarioS5Introduce(t *testing.T) {
	pkt := Marshal(Introduce{Domid: 3, Mfn: 0x1234, Port: 5}, 0, 1)
	if pkt.Ty != wire.OpIntroduce {
		t.Fatalf("Ty = %v, want OpIntroduce", pkt.Ty)
	}
	if string(pkt.DataRaw()) != "3\x004660\x005\x00" {
		t.Fatalf("payload = %q, want %q", pkt.DataRaw(), "3\x004660\x005\x00")
	}
}

func TestSetpermsAndWatchTolerateDoubleTermination(t *testing.T) {
	pkt := packet.New(0, 1, wire.OpWatch, []byte("/a/b\x00tok\x00\x00"))
	got, err := ParseRequest(pkt)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	w, ok := got.(Watch)
	if !ok {
		t.Fatalf("got %T, want Watch", got)
	}
	if w.Token != "tok" {
		t.Fatalf("Token = %q, want tok", w.Token)
	}
}

func TestDomidParserIsPermissive(t *testing.T) {
	d, err := domid("garbage123")
	if err != nil {
		t.Fatalf("domid: %v", err)
	}
	if d != 123 {
		t.Fatalf("domid = %d, want 123", d)
	}
}
