package wire

import "testing"

func TestPathRoundTrip(t *testing.T) {
	tests := []string{
		"foo",
		"foo/bar",
		"/foo/bar",
		"a/b/c-d_e@f",
	}
	for _, s := range tests {
		p, err := ParsePath(s)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", s, err)
		}
		got := p.String()
		want := s
		if want[0] == '/' {
			want = want[1:]
		}
		if got != want {
			t.Fatalf("ParsePath(%q).String() = %q, want %q", s, got, want)
		}
	}
}

func TestPathAllSlashIsEmptyAbsolute(t *testing.T) {
	p, err := ParsePath("/")
	if err != nil {
		t.Fatalf("ParsePath(\"/\"): %v", err)
	}
	if len(p) != 0 {
		t.Fatalf("ParsePath(\"/\") = %v, want empty path", p)
	}
	if p.String() != "" {
		t.Fatalf("ParsePath(\"/\").String() = %q, want \"\"", p.String())
	}
}

func TestPathRejectsEmpty(t *testing.T) {
	if _, err := ParsePath(""); err == nil {
		t.Fatal("ParsePath(\"\"): expected error")
	}
}

func TestPathRejectsTooLong(t *testing.T) {
	long := make([]byte, MaxPathLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := ParsePath(string(long)); err == nil {
		t.Fatal("ParsePath(long): expected error")
	}
}

func TestPathRejectsBadChar(t *testing.T) {
	_, err := ParsePath("foo/b ar")
	if err == nil {
		t.Fatal("ParsePath(\"foo/b ar\"): expected error")
	}
	var charErr *InvalidCharError
	if ce, ok := err.(*InvalidCharError); ok {
		charErr = ce
	}
	if charErr == nil {
		t.Fatalf("expected *InvalidCharError, got %T: %v", err, err)
	}
	if charErr.Char != ' ' {
		t.Fatalf("InvalidCharError.Char = %q, want ' '", charErr.Char)
	}
}

func TestDirnameBasename(t *testing.T) {
	p, err := ParsePath("a/b/c")
	if err != nil {
		t.Fatal(err)
	}
	if p.Dirname().String() != "a/b" {
		t.Fatalf("Dirname = %q, want a/b", p.Dirname().String())
	}
	if p.Basename() != "c" {
		t.Fatalf("Basename = %q, want c", p.Basename())
	}

	root := Path{}
	if root.Dirname().String() != "" {
		t.Fatalf("root Dirname = %q, want empty", root.Dirname().String())
	}
	if root.Basename() != "" {
		t.Fatalf("root Basename = %q, want empty", root.Basename())
	}
}

func TestFoldIterPrefixes(t *testing.T) {
	p, _ := ParsePath("a/b/c")
	var prefixes []string
	Iter(p, func(prefix Path) {
		prefixes = append(prefixes, prefix.String())
	})
	want := []string{"a", "a/b", "a/b/c"}
	if len(prefixes) != len(want) {
		t.Fatalf("got %v, want %v", prefixes, want)
	}
	for i := range want {
		if prefixes[i] != want[i] {
			t.Fatalf("got %v, want %v", prefixes, want)
		}
	}
}

func TestCommonPrefix(t *testing.T) {
	a, _ := ParsePath("a/b/c")
	b, _ := ParsePath("a/b/d")
	cp := CommonPrefix(a, b)
	if cp.String() != "a/b" {
		t.Fatalf("CommonPrefix = %q, want a/b", cp.String())
	}

	c, _ := ParsePath("x/y")
	if CommonPrefix(a, c).String() != "" {
		t.Fatalf("CommonPrefix with no overlap should be empty")
	}
}
