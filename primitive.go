package eloquent

// PrimitiveFn is the native-function shape spec §6 describes: it
// receives a fixed number of already-evaluated arguments (rest
// arguments, if any, pre-packed into a list by the caller) and
// returns either a value or an error. Returning an EloquentError (or
// any error) is how a primitive signals a raised exception; the VM
// turns it into an Exception value and looks for a handler (spec
// §4.5).
type PrimitiveFn func(u *Universe, args []Value) (Value, error)

// Primitive is a registered native function (spec §6 "Primitive
// registration API"). Signature, when non-nil, lists the expected
// Type of each positional argument; the VM checks each argument
// against it before calling Fn while vm.check-types is on. The
// compiler emits no CHKTYPE instructions from it.
type Primitive struct {
	Name      string
	Arity     int
	Rest      bool
	Fn        PrimitiveFn
	Signature []*Type
}

func (*Primitive) Kind() Kind { return KindPrimitive }

// opcodeShortcut holds the constructor of the fused opcode the
// compiler may emit in place of a general CALL to this primitive (spec §4.3
// "Primitive call with opcode shortcut", §9 "Opcode shortcuts").
type opcodeShortcut struct {
	make func() Instruction
}
