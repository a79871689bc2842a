package eloquent

// binding pairs a symbol with its current value inside one lexical
// frame (spec §3.2). Sym may be nil for a frame extended without
// compile-time names available; LVAR/LSET never consult it, it is
// kept for introspection only.
type binding struct {
	Sym *Symbol
	Val Value
}

// Environment is one frame of the lexical cactus stack (spec §2.4,
// §4.2): an ordered binding list plus a link to the enclosing frame.
// The distinguished null environment has Next pointing at itself
// (spec §3.2), so walking outward from any chain always terminates by
// revisiting the same node rather than hitting a nil check.
type Environment struct {
	Bindings []binding
	Next     *Environment
}

func (*Environment) Kind() Kind { return KindEnvironment }

// NewNullEnvironment returns a fresh null environment: Next == self.
func NewNullEnvironment() *Environment {
	e := &Environment{}
	e.Next = e
	return e
}

func (e *Environment) isNull() bool { return e.Next == e }

// Extend pushes a new frame of len(values) bindings in front of e.
// syms may be nil or shorter than values; missing names leave Sym nil
// for that slot. This backs the EXTENV instruction (spec §4.2).
func (e *Environment) Extend(values []Value, syms []*Symbol) *Environment {
	bindings := make([]binding, len(values))
	for i, v := range values {
		var sym *Symbol
		if i < len(syms) {
			sym = syms[i]
		}
		bindings[i] = binding{Sym: sym, Val: v}
	}
	return &Environment{Bindings: bindings, Next: e}
}

// Pop discards the topmost frame (POPENV), returning the environment
// that was current before the matching Extend.
func (e *Environment) Pop() *Environment {
	if e.isNull() {
		return e
	}
	return e.Next
}

// Ref reads bindings[i][j].value, where i counts outward frames (0 =
// the current frame) as described in spec §4.2.
func (e *Environment) Ref(i, j int) (Value, bool) {
	frame := e.frameAt(i)
	if frame == nil || j < 0 || j >= len(frame.Bindings) {
		return nil, false
	}
	return frame.Bindings[j].Val, true
}

// Set writes bindings[i][j].value in place, mutating the shared frame
// so closures that captured it observe the change.
func (e *Environment) Set(i, j int, v Value) bool {
	frame := e.frameAt(i)
	if frame == nil || j < 0 || j >= len(frame.Bindings) {
		return false
	}
	frame.Bindings[j].Val = v
	return true
}

func (e *Environment) frameAt(i int) *Environment {
	cur := e
	for n := 0; n < i; n++ {
		if cur.isNull() {
			return nil
		}
		cur = cur.Next
	}
	return cur
}
