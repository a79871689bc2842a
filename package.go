package eloquent

// Package is a named namespace of interned symbols with a search list
// of other packages to fall back to (spec §3.2). The Lisp package
// holds the language's own symbols (special form heads, primitive
// names); User, which uses Lisp, is where a fresh Universe starts
// reading and compiling forms into.
type Package struct {
	Name    string
	table   map[string]*Symbol
	Uses    []*Package
}

func (*Package) Kind() Kind { return KindPackage }

func newPackage(name string) *Package {
	return &Package{Name: name, table: make(map[string]*Symbol)}
}

// Use appends pkg to the list of packages consulted by FindSymbol
// after this package's own table comes up empty.
func (p *Package) Use(pkg *Package) {
	p.Uses = append(p.Uses, pkg)
}

// Intern returns the symbol named name in p, creating and interning
// it lazily on first use (spec §3.4 "Symbols are created lazily on
// first intern per package").
func (p *Package) Intern(name string) *Symbol {
	if sym, ok := p.table[name]; ok {
		return sym
	}
	sym := newSymbol(name, p)
	p.table[name] = sym
	return sym
}

// FindSymbol looks up name in p's own table first, then recursively in
// each used package, depth-first in Use order (spec §3.2).
func (p *Package) FindSymbol(name string) (*Symbol, bool) {
	if sym, ok := p.table[name]; ok {
		return sym, true
	}
	for _, used := range p.Uses {
		if sym, ok := used.FindSymbol(name); ok {
			return sym, true
		}
	}
	return nil, false
}
