package eloquent

// Symbol is an interned name, unique within its owning Package (spec
// §3.3). Value and Macro are cells rather than plain fields so GVAR,
// GSET, and the macro expander can distinguish "bound to nil" from
// "never bound": an unbound cell holds Undefined.
type Symbol struct {
	Name    string
	value   Value
	macro   Value
	Package *Package
}

func (*Symbol) Kind() Kind { return KindSymbol }

// Bound reports whether the symbol's value cell holds anything other
// than Undefined.
func (s *Symbol) Bound() bool { return s.value != Undefined }

func (s *Symbol) Value() Value { return s.value }

func (s *Symbol) SetValue(v Value) { s.value = v }

// HasMacro reports whether this symbol names a macro, the trigger the
// compiler uses to decide whether a call's head needs expanding
// (spec §4.3 "Macro call").
func (s *Symbol) HasMacro() bool { return s.macro != nil && s.macro != Undefined }

func (s *Symbol) Macro() Value { return s.macro }

func (s *Symbol) SetMacro(v Value) { s.macro = v }

func newSymbol(name string, pkg *Package) *Symbol {
	return &Symbol{Name: name, value: Undefined, macro: Undefined, Package: pkg}
}
