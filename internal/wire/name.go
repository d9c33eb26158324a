package wire

// Predefined is a sentinel name referring to a domain lifecycle event
// rather than a store path.
type Predefined int

const (
	IntroduceDomain Predefined = iota
	ReleaseDomain
)

func (p Predefined) String() string {
	switch p {
	case IntroduceDomain:
		return "@introduceDomain"
	case ReleaseDomain:
		return "@releaseDomain"
	default:
		return "@unknown"
	}
}

// NameKind discriminates the three Name variants.
type NameKind int

const (
	NamePredefined NameKind = iota
	NameAbsolute
	NameRelative
)

// Name is a sum of Predefined, Absolute(Path), Relative(Path).
type Name struct {
	Kind       NameKind
	Predefined Predefined
	Path       Path
}

// ParseName recognizes the two predefined sentinels exactly; a leading
// "/" selects Absolute; otherwise Relative.
func ParseName(s string) (Name, error) {
	switch s {
	case "@introduceDomain":
		return Name{Kind: NamePredefined, Predefined: IntroduceDomain}, nil
	case "@releaseDomain":
		return Name{Kind: NamePredefined, Predefined: ReleaseDomain}, nil
	}

	p, err := ParsePath(s)
	if err != nil {
		return Name{}, err
	}
	if len(s) > 0 && s[0] == '/' {
		return Name{Kind: NameAbsolute, Path: p}, nil
	}
	return Name{Kind: NameRelative, Path: p}, nil
}

// String renders the Name back to its canonical wire form.
func (n Name) String() string {
	switch n.Kind {
	case NamePredefined:
		return n.Predefined.String()
	case NameAbsolute:
		return "/" + n.Path.String()
	default:
		return n.Path.String()
	}
}

// Resolve: when n is Relative and relativeTo is Absolute, returns
// Absolute(relativeTo ++ n); otherwise returns n unchanged.
func Resolve(n, relativeTo Name) Name {
	if n.Kind != NameRelative || relativeTo.Kind != NameAbsolute {
		return n
	}
	joined := make(Path, 0, len(relativeTo.Path)+len(n.Path))
	joined = append(joined, relativeTo.Path...)
	joined = append(joined, n.Path...)
	return Name{Kind: NameAbsolute, Path: joined}
}

// RelativeTo: when both n and base are Absolute and base is a prefix of
// n, returns Relative(n - base); otherwise returns n unchanged.
func RelativeTo(n, base Name) Name {
	if n.Kind != NameAbsolute || base.Kind != NameAbsolute {
		return n
	}
	if len(base.Path) > len(n.Path) {
		return n
	}
	for i, e := range base.Path {
		if n.Path[i] != e {
			return n
		}
	}
	return Name{Kind: NameRelative, Path: n.Path[len(base.Path):]}
}
