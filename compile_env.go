package eloquent

// CompileEnv mirrors the runtime Environment's frame structure at
// compile time (spec §4.2): one frame of parameter symbols per
// enclosing lambda, so the compiler can resolve a symbol reference to
// an (i, j) lexical address instead of emitting a global lookup.
// Identity, not name, is what Lookup compares against, matching
// interning's guarantee that the same name in the same package is
// always the same *Symbol.
type CompileEnv struct {
	frame []*Symbol
	next  *CompileEnv
}

// Extend returns a new compile-time frame listing syms, enclosed by
// ce. A nil ce is valid: it's the outermost (global) scope, where
// every reference falls through to GVAR.
func (ce *CompileEnv) Extend(syms []*Symbol) *CompileEnv {
	return &CompileEnv{frame: syms, next: ce}
}

// Lookup searches outward for sym, returning the frame count i and
// position j if found.
func (ce *CompileEnv) Lookup(sym *Symbol) (i, j int, ok bool) {
	for frame := ce; frame != nil; frame = frame.next {
		for pos, s := range frame.frame {
			if s == sym {
				return i, pos, true
			}
		}
		i++
	}
	return 0, 0, false
}

// gotoScope threads tagbody tag bindings through nested compilation
// the same way CompileEnv threads lexical variables, so a goto nested
// inside an if or begin can still resolve a tag bound by an enclosing
// tagbody.
type gotoScope struct {
	tags map[*Symbol]Label
	next *gotoScope
}

func (gs *gotoScope) lookup(tag *Symbol) (Label, bool) {
	for s := gs; s != nil; s = s.next {
		if l, ok := s.tags[tag]; ok {
			return l, true
		}
	}
	return Label{}, false
}
