package eloquent

import "fmt"

// Compiler turns a read form into a flat, unassembled instruction
// stream (spec §4.3). It is stateless across calls beyond the
// Universe it compiles against — labels are resolved afterward by
// Assemble, splitting visitor-style emission (which only ever needs
// forward-referenced placeholders) from the backpatching pass that
// resolves them to absolute addresses.
type Compiler struct {
	u *Universe
}

func NewCompiler(u *Universe) *Compiler { return &Compiler{u: u} }

// Compile compiles a single top-level form into a ready-to-run
// Function of no arguments, the host-facing entry point spec §6
// describes as "compile(form) -> Function".
func (c *Compiler) Compile(form Value) (*Function, error) {
	body, err := c.compileForm(form, nil, nil, true)
	if err != nil {
		return nil, err
	}
	body = append(body, IReturn{})
	code, err := Assemble(body)
	if err != nil {
		return nil, err
	}
	return &Function{Code: code, Env: NewNullEnvironment(), Name: "<toplevel>"}, nil
}

// compileForm is the per-form visitor: special forms are dispatched
// by symbol identity against c.u.specials, a macro-headed call is
// expanded and recompiled, everything else is either a variable
// reference, a self-evaluating constant, or a call. tail reports
// whether form's value is the value its enclosing function returns;
// only compileCall consults it, to fuse a CALL immediately followed by
// RETURN and so avoid growing the retaddr stack for a self-recursive
// loop (spec §4.4's tail-call elimination).
func (c *Compiler) compileForm(form Value, cenv *CompileEnv, gs *gotoScope, tail bool) ([]Instruction, error) {
	switch v := form.(type) {
	case *Symbol:
		return c.compileVarRef(v, cenv), nil
	case *Pair:
		return c.compilePair(v, cenv, gs, tail)
	default:
		return []Instruction{IConst{Value: form}}, nil
	}
}

func (c *Compiler) compileVarRef(sym *Symbol, cenv *CompileEnv) []Instruction {
	if i, j, ok := cenv.Lookup(sym); ok {
		return []Instruction{ILVar{I: i, J: j, Sym: sym}}
	}
	return []Instruction{IGVar{Sym: sym}}
}

func (c *Compiler) compilePair(p *Pair, cenv *CompileEnv, gs *gotoScope, tail bool) ([]Instruction, error) {
	if headSym, ok := p.Head.(*Symbol); ok {
		s := &c.u.specials
		switch headSym {
		case s.quote:
			return c.compileQuote(p.Tail)
		case s.set:
			return c.compileSet(p.Tail, cenv, gs)
		case s.iff:
			return c.compileIf(p.Tail, cenv, gs, tail)
		case s.lambda:
			return c.compileLambda(p.Tail, cenv)
		case s.begin:
			return c.compileBegin(p.Tail, cenv, gs, tail)
		case s.catch:
			return c.compileCatch(p.Tail, cenv, gs)
		case s.tagbody:
			return c.compileTagbody(p.Tail, cenv, gs)
		case s.goTo:
			return c.compileGoto(p.Tail, gs)
		}
		if _, _, bound := cenv.Lookup(headSym); !bound && headSym.HasMacro() {
			expanded, err := Expand(c.u, p)
			if err != nil {
				return nil, err
			}
			return c.compileForm(expanded, cenv, gs, tail)
		}
	}
	return c.compileCall(p, cenv, gs, tail)
}

func listToSlice(v Value) (items []Value, tail Value) {
	tail = v
	for {
		pair, ok := tail.(*Pair)
		if !ok {
			return items, tail
		}
		items = append(items, pair.Head)
		tail = pair.Tail
	}
}

func properListToSlice(v Value, what string) ([]Value, error) {
	items, tail := listToSlice(v)
	if tail != EmptyList {
		return nil, fmt.Errorf("compile: %s: improper list", what)
	}
	return items, nil
}

func (c *Compiler) compileQuote(tail Value) ([]Instruction, error) {
	args, err := properListToSlice(tail, "quote")
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("compile: quote takes exactly one argument")
	}
	return []Instruction{IConst{Value: args[0]}}, nil
}

// compileSet always compiles its value expression in non-tail
// position: even when the set form itself sits in tail position, the
// LSET/GSET instruction still has to run afterward, so a tail call
// there can't be fused with RETURN.
func (c *Compiler) compileSet(tail Value, cenv *CompileEnv, gs *gotoScope) ([]Instruction, error) {
	args, err := properListToSlice(tail, "set")
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("compile: set takes exactly two arguments")
	}
	sym, ok := args[0].(*Symbol)
	if !ok {
		return nil, fmt.Errorf("compile: set's first argument must be a symbol")
	}
	valCode, err := c.compileForm(args[1], cenv, gs, false)
	if err != nil {
		return nil, err
	}
	var setInst Instruction
	if i, j, ok := cenv.Lookup(sym); ok {
		setInst = ILSet{I: i, J: j, Sym: sym}
	} else {
		setInst = IGSet{Sym: sym}
	}
	return append(valCode, setInst), nil
}

func (c *Compiler) compileIf(tail Value, cenv *CompileEnv, gs *gotoScope, isTail bool) ([]Instruction, error) {
	args, err := properListToSlice(tail, "if")
	if err != nil {
		return nil, err
	}
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("compile: if takes two or three arguments")
	}
	testCode, err := c.compileForm(args[0], cenv, gs, false)
	if err != nil {
		return nil, err
	}
	thenCode, err := c.compileForm(args[1], cenv, gs, isTail)
	if err != nil {
		return nil, err
	}
	var elseCode []Instruction
	if len(args) == 3 {
		elseCode, err = c.compileForm(args[2], cenv, gs, isTail)
		if err != nil {
			return nil, err
		}
	} else {
		elseCode = []Instruction{IConst{Value: Undefined}}
	}

	lelse, lend := NewLabel(), NewLabel()
	out := append([]Instruction{}, testCode...)
	out = append(out, IFJump{Label: lelse})
	out = append(out, thenCode...)
	out = append(out, IJump{Label: lend})
	out = append(out, lelse)
	out = append(out, elseCode...)
	out = append(out, lend)
	return out, nil
}

// compileBegin compiles a sequence of forms, popping the value of
// every form but the last.
func (c *Compiler) compileBegin(tail Value, cenv *CompileEnv, gs *gotoScope, isTail bool) ([]Instruction, error) {
	forms, err := properListToSlice(tail, "begin")
	if err != nil {
		return nil, err
	}
	return c.compileSequence(forms, cenv, gs, isTail)
}

// compileSequence compiles forms in order, discarding every value but
// the last; only the last form, if isTail, is compiled in tail
// position, since every earlier form's value is dead anyway.
func (c *Compiler) compileSequence(forms []Value, cenv *CompileEnv, gs *gotoScope, isTail bool) ([]Instruction, error) {
	if len(forms) == 0 {
		return []Instruction{IConst{Value: Undefined}}, nil
	}
	var out []Instruction
	for i, f := range forms {
		last := i == len(forms)-1
		code, err := c.compileForm(f, cenv, gs, last && isTail)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
		if !last {
			out = append(out, IPop{})
		}
	}
	return out, nil
}

// compileLambda implements spec §4.3's lambda prologue: CHKARITY
// checks the call's actual argument count against the parameter list,
// then MOVEARGS (fixed arity) or RESTARGS (dotted tail) pops the
// arguments CALL left on the operand stack and builds the new frame.
// The body's last form compiles in tail position, so a self (or
// mutually) recursive call there is eligible for tail-call
// elimination.
func (c *Compiler) compileLambda(tail Value, cenv *CompileEnv) ([]Instruction, error) {
	pair, ok := tail.(*Pair)
	if !ok {
		return nil, fmt.Errorf("compile: lambda requires a parameter list and body")
	}
	params, rest, err := parseParamList(pair.Head)
	if err != nil {
		return nil, err
	}
	bodyForms, err := properListToSlice(pair.Tail, "lambda body")
	if err != nil {
		return nil, err
	}

	frameSyms := append(append([]*Symbol{}, params...), rest...)
	innerEnv := cenv.Extend(frameSyms)

	var restSym *Symbol
	if len(rest) == 1 {
		restSym = rest[0]
	}

	var body []Instruction
	body = append(body, IChkArity{N: len(params), HasRest: restSym != nil})
	if restSym != nil {
		body = append(body, IRestArgs{N: len(params), Syms: params, Rest: restSym})
	} else {
		body = append(body, IMoveArgs{N: len(params), Syms: params})
	}
	seq, err := c.compileSequence(bodyForms, innerEnv, nil, true)
	if err != nil {
		return nil, err
	}
	body = append(body, seq...)
	body = append(body, IReturn{})

	code, err := Assemble(body)
	if err != nil {
		return nil, err
	}

	fn := &Function{CompileEnv: innerEnv, Params: params, Rest: restSym, Code: code, Name: "<lambda>"}
	return []Instruction{IFn{Fn: fn}}, nil
}

// parseParamList reads a lambda parameter list, which is either a
// proper list of symbols or a dotted list ending in a single rest
// symbol (spec §4.1/§4.3).
func parseParamList(v Value) (params []*Symbol, rest []*Symbol, err error) {
	items, tail := listToSlice(v)
	for _, item := range items {
		sym, ok := item.(*Symbol)
		if !ok {
			return nil, nil, fmt.Errorf("compile: lambda parameter must be a symbol")
		}
		params = append(params, sym)
	}
	switch t := tail.(type) {
	case *Singleton:
		if t != EmptyList {
			return nil, nil, fmt.Errorf("compile: malformed lambda parameter list")
		}
	case *Symbol:
		rest = []*Symbol{t}
	default:
		return nil, nil, fmt.Errorf("compile: malformed lambda parameter list")
	}
	return params, rest, nil
}

// compileCatch compiles (catch tag-expr body...) per spec §4.3: tag-expr
// is compiled and run first, ahead of the handler install, then CATCH
// is emitted, then body runs with a handler installed that, on a
// raised exception, lands execution at the handler label with the
// Exception value on top of the operand stack in place of whatever
// the body would have produced (spec §4.4/§4.5). tag-expr's value
// isn't otherwise consulted (CATCH's only operand is the handler
// label), so it's popped immediately after evaluating it. The body is
// always compiled in non-tail position: a tail call there that fused
// straight into RETURN would skip IPopCatch, leaving a stale handler
// frame on the stack pointing at code that already returned.
func (c *Compiler) compileCatch(tail Value, cenv *CompileEnv, gs *gotoScope) ([]Instruction, error) {
	pair, ok := tail.(*Pair)
	if !ok {
		return nil, fmt.Errorf("compile: catch requires a tag expression and a body")
	}
	tagCode, err := c.compileForm(pair.Head, cenv, gs, false)
	if err != nil {
		return nil, err
	}
	forms, err := properListToSlice(pair.Tail, "catch")
	if err != nil {
		return nil, err
	}
	bodyCode, err := c.compileSequence(forms, cenv, gs, false)
	if err != nil {
		return nil, err
	}
	lhandler, lend := NewLabel(), NewLabel()
	var out []Instruction
	out = append(out, tagCode...)
	out = append(out, IPop{})
	out = append(out, ICatch{Handler: lhandler})
	out = append(out, bodyCode...)
	out = append(out, IPopCatch{})
	out = append(out, IJump{Label: lend})
	out = append(out, lhandler)
	out = append(out, lend)
	return out, nil
}

// compileTagbody implements spec §4.3's tagbody/goto: forms run in
// sequence for effect only (their values are discarded), and a bare
// symbol among them is a label a nested goto can jump to instead of
// falling through. tagbody itself evaluates to Undefined.
func (c *Compiler) compileTagbody(tail Value, cenv *CompileEnv, gs *gotoScope) ([]Instruction, error) {
	forms, err := properListToSlice(tail, "tagbody")
	if err != nil {
		return nil, err
	}
	tags := map[*Symbol]Label{}
	for _, f := range forms {
		if sym, ok := f.(*Symbol); ok {
			tags[sym] = NewLabel()
		}
	}
	innerGs := &gotoScope{tags: tags, next: gs}

	var out []Instruction
	for _, f := range forms {
		if sym, ok := f.(*Symbol); ok {
			out = append(out, tags[sym])
			continue
		}
		code, err := c.compileForm(f, cenv, innerGs, false)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
		out = append(out, IPop{})
	}
	out = append(out, IConst{Value: Undefined})
	return out, nil
}

func (c *Compiler) compileGoto(tail Value, gs *gotoScope) ([]Instruction, error) {
	args, err := properListToSlice(tail, "goto")
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("compile: goto takes exactly one argument")
	}
	tag, ok := args[0].(*Symbol)
	if !ok {
		return nil, fmt.Errorf("compile: goto's argument must be a symbol")
	}
	label, ok := gs.lookup(tag)
	if !ok {
		return nil, fmt.Errorf("compile: goto refers to unknown tag `%s`", tag.Name)
	}
	return []Instruction{IJump{Label: label}}, nil
}

// compileCall compiles a general application, substituting a fused
// opcode shortcut (spec §4.3/§9) when the operator is a symbol bound
// to a primitive that registered one and the call's argument count
// matches the shortcut's fixed arity of two, while the compiler.optimize
// setting is above zero. Otherwise it follows spec
// §4.3's literal order: each argument compiles left-to-right, then the
// operator, so the callee ends up on top of the operand stack directly
// under CALL (spec §4.4 "top of stack is the callee; beneath it are n
// arguments with the first argument deepest"). When isTail, the ICall
// is followed immediately by IReturn, the shape the VM's call dispatch
// recognizes as eligible for tail-call elimination.
func (c *Compiler) compileCall(p *Pair, cenv *CompileEnv, gs *gotoScope, isTail bool) ([]Instruction, error) {
	args, err := properListToSlice(p.Tail, "call")
	if err != nil {
		return nil, err
	}

	if headSym, ok := p.Head.(*Symbol); ok && len(args) == 2 && c.u.Config.GetInt("compiler.optimize") > 0 {
		if _, _, lexical := cenv.Lookup(headSym); !lexical {
			if shortcut, ok := c.u.ShortcutFor(headSym.Name); ok {
				lhs, err := c.compileForm(args[0], cenv, gs, false)
				if err != nil {
					return nil, err
				}
				rhs, err := c.compileForm(args[1], cenv, gs, false)
				if err != nil {
					return nil, err
				}
				out := append(append([]Instruction{}, lhs...), rhs...)
				out = append(out, shortcut())
				return out, nil
			}
		}
	}

	var out []Instruction
	for _, a := range args {
		argCode, err := c.compileForm(a, cenv, gs, false)
		if err != nil {
			return nil, err
		}
		out = append(out, argCode...)
	}
	opCode, err := c.compileForm(p.Head, cenv, gs, false)
	if err != nil {
		return nil, err
	}
	out = append(out, opCode...)
	out = append(out, ICall{N: len(args)})
	if isTail {
		out = append(out, IReturn{})
	}
	return out, nil
}
