package wire

import "testing"

func TestACLRoundTrip(t *testing.T) {
	tests := []ACL{
		{Owner: 0, Other: PermNone},
		{Owner: 1, Other: PermRead, Entries: []PermEntry{{Domid: 2, Perm: PermWrite}}},
		{Owner: 7, Other: PermRDWR, Entries: []PermEntry{
			{Domid: 1, Perm: PermRead},
			{Domid: 2, Perm: PermNone},
			{Domid: 9, Perm: PermRDWR},
		}},
	}
	for _, acl := range tests {
		s := acl.Marshal()
		got, ok := UnmarshalACL(s)
		if !ok {
			t.Fatalf("UnmarshalACL(%q) failed", s)
		}
		if got.Owner != acl.Owner || got.Other != acl.Other || len(got.Entries) != len(acl.Entries) {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, acl)
		}
		for i := range acl.Entries {
			if got.Entries[i] != acl.Entries[i] {
				t.Fatalf("entry %d mismatch: got %+v, want %+v", i, got.Entries[i], acl.Entries[i])
			}
		}
	}
}

func TestACLEmptyStringYieldsZeroValue(t *testing.T) {
	acl, ok := UnmarshalACL("")
	if !ok {
		t.Fatal("UnmarshalACL(\"\") should succeed")
	}
	if acl.Owner != 0 || acl.Other != PermNone || len(acl.Entries) != 0 {
		t.Fatalf("got %+v, want zero value", acl)
	}
}

func TestACLRejectsShortEntry(t *testing.T) {
	if _, ok := UnmarshalACL("r"); ok {
		t.Fatal("expected rejection of a 1-byte entry")
	}
}

func TestACLRejectsUnknownPermChar(t *testing.T) {
	if _, ok := UnmarshalACL("x5"); ok {
		t.Fatal("expected rejection of unknown perm char")
	}
}

func TestACLMarshalOwnerFirst(t *testing.T) {
	acl := ACL{Owner: 3, Other: PermWrite, Entries: []PermEntry{{Domid: 9, Perm: PermRead}}}
	s := acl.Marshal()
	if s != "w3\x00r9" {
		t.Fatalf("Marshal() = %q, want %q", s, "w3\x00r9")
	}
}
