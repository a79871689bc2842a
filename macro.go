package eloquent

import "fmt"

// Expand fully macro-expands a macro-headed call form, iterating until
// the result's head is no longer a macro symbol (spec §4.6). Each
// round reuses the VM itself to run the macro: the unevaluated
// argument forms are pushed as literal constants, the macro's own
// function value is called against them, and whatever it returns
// becomes the next form to inspect.
func Expand(u *Universe, form *Pair) (Value, error) {
	headSym, ok := form.Head.(*Symbol)
	if !ok {
		return nil, fmt.Errorf("compile: macro call must start with a symbol")
	}
	macroFn := headSym.Macro()
	args, tail := listToSlice(form.Tail)
	if tail != EmptyList {
		return nil, fmt.Errorf("compile: improper argument list in macro call to `%s`", headSym.Name)
	}

	for {
		expanded, err := expandOnce(u, macroFn, args)
		if err != nil {
			return nil, err
		}
		p, ok := expanded.(*Pair)
		if !ok {
			return expanded, nil
		}
		sym, ok := p.Head.(*Symbol)
		if !ok || !sym.HasMacro() {
			return expanded, nil
		}
		macroFn = sym.Macro()
		args, tail = listToSlice(p.Tail)
		if tail != EmptyList {
			return nil, fmt.Errorf("compile: improper argument list in macro call to `%s`", sym.Name)
		}
	}
}

// expandOnce runs one macro application: CONST each unevaluated
// argument form, CONST the callee, CALL, RETURN -- the callee lands on
// top of the stack directly under CALL, same as any other call
// (spec §4.3/§4.4).
func expandOnce(u *Universe, macroFn Value, args []Value) (Value, error) {
	instrs := make([]Instruction, 0, len(args)+3)
	for _, a := range args {
		instrs = append(instrs, IConst{Value: a})
	}
	instrs = append(instrs, IConst{Value: macroFn})
	instrs = append(instrs, ICall{N: len(args)})
	instrs = append(instrs, IReturn{})

	code, err := Assemble(instrs)
	if err != nil {
		return nil, err
	}
	fn := &Function{Code: code, Env: NewNullEnvironment(), Name: "<macro-expansion>"}
	return u.Run(fn)
}
