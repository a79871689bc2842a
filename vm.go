package eloquent

// catchFrame is the handler-stack entry ICatch pushes: enough state to
// unwind both the operand and call stacks back to exactly where the
// protected body started, then resume at Addr with the Exception value
// sitting on top of the operand stack (spec §4.4/§4.5).
type catchFrame struct {
	Addr       int
	Code       []Instruction
	Env        *Environment
	ValueDepth int
	CallDepth  int
}

// vm is one execution of a code vector. It's created fresh per Run
// call; nothing about it is reused across calls, so concurrent Run
// calls against the same Universe (e.g. from nested macro expansion)
// don't interfere with each other beyond the Universe's own shared
// state (packages, ports, config).
type vm struct {
	u    *Universe
	code []Instruction
	pc   int
	env  *Environment
	fn   *Function

	// argc is the argument count of the call currently being entered,
	// set by call() right before jumping into a compiled function and
	// consumed by that function's own CHKARITY/MOVEARGS/RESTARGS
	// prologue before anything else can overwrite it.
	argc int

	values   []Value
	calls    []Retaddr
	handlers []catchFrame
}

func (u *Universe) Run(fn *Function) (Value, error) {
	m := &vm{u: u, code: fn.Code, env: fn.Env, fn: fn}
	return m.run()
}

// Eval compiles and runs a single form, the host-facing "eval" of
// spec §6.
func (u *Universe) Eval(form Value) (Value, error) {
	fn, err := NewCompiler(u).Compile(form)
	if err != nil {
		return nil, err
	}
	return u.Run(fn)
}

func (m *vm) push(v Value) { m.values = append(m.values, v) }

func (m *vm) pop() Value {
	n := len(m.values) - 1
	v := m.values[n]
	m.values = m.values[:n]
	return v
}

func (m *vm) run() (Value, error) {
	for {
		if m.pc < 0 || m.pc >= len(m.code) {
			return nil, faultf("program counter %d out of range", m.pc)
		}
		inst := m.code[m.pc]
		m.pc++

		var stepErr error
		switch in := inst.(type) {
		case IConst:
			m.push(in.Value)
		case ILVar:
			v, ok := m.env.Ref(in.I, in.J)
			if !ok {
				stepErr = faultf("lexical address (%d,%d) out of range", in.I, in.J)
				break
			}
			m.push(v)
		case ILSet:
			v := m.pop()
			if !m.env.Set(in.I, in.J, v) {
				stepErr = faultf("lexical address (%d,%d) out of range", in.I, in.J)
				break
			}
			m.push(v)
		case IGVar:
			if !in.Sym.Bound() {
				stepErr = NewError(TagUnbound, "unbound variable `%s`", in.Sym.Name)
				break
			}
			m.push(in.Sym.Value())
		case IGSet:
			v := m.pop()
			in.Sym.SetValue(v)
			m.push(v)
		case IFJumpAddr:
			if !Truthy(m.pop()) {
				m.pc = in.Addr
			}
		case IJumpAddr:
			m.pc = in.Addr
		case IPop:
			m.pop()
		case IFn:
			closure := *in.Fn
			closure.Env = m.env
			m.push(&closure)
		case ICall:
			callee := m.pop()
			stepErr = m.call(callee, in.N)
		case IPrim:
			callee := m.pop()
			prim, ok := callee.(*Primitive)
			if !ok {
				stepErr = NewError(TagTypeError, "PRIM operand is not a primitive")
				break
			}
			n := in.N
			args := make([]Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = m.pop()
			}
			stepErr = m.callPrimitive(prim, args)
		case IReturn:
			if len(m.calls) == 0 {
				return m.pop(), nil
			}
			val := m.pop()
			ret := m.calls[len(m.calls)-1]
			m.calls = m.calls[:len(m.calls)-1]
			m.code, m.env, m.fn, m.pc = ret.Code, ret.Env, ret.Caller, ret.PC
			m.push(val)
		case IChkArity:
			ok := m.argc == in.N || (in.HasRest && m.argc >= in.N)
			if !ok {
				stepErr = NewError(TagArityError, "expected %d argument(s)%s, got %d", in.N, restSuffix(in.HasRest), m.argc)
			}
		case IExtEnv:
			stepErr = m.extendEnv(in.N, in.Syms)
		case IPopEnv:
			m.env = m.env.Pop()
		case IMoveArgs:
			stepErr = m.extendEnv(in.N, in.Syms)
		case IRestArgs:
			stepErr = m.restArgs(in.N, in.Syms, in.Rest)
		case IChkType:
			stepErr = m.chkType(in)
		case ICatchAddr:
			m.handlers = append(m.handlers, catchFrame{
				Addr: in.Addr, Code: m.code, Env: m.env,
				ValueDepth: len(m.values), CallDepth: len(m.calls),
			})
		case IPopCatch:
			if len(m.handlers) == 0 {
				stepErr = faultf("POPCATCH with no active handler")
				break
			}
			m.handlers = m.handlers[:len(m.handlers)-1]
		case ICheckEx:
			if m.u.Config.GetBool("vm.check-exceptions") {
				if len(m.values) > 0 {
					if exc, ok := m.values[len(m.values)-1].(*Exception); ok && exc.Flag {
						m.pop()
						stepErr = exc
					}
				}
			}
		case IAddI, ISubI, IMulI, IDivI:
			stepErr = m.arith(inst)
		case ICons:
			b, a := m.pop(), m.pop()
			m.push(Cons(a, b))
		default:
			return nil, faultf("unhandled instruction %s", inst.Mnemonic())
		}

		if stepErr != nil {
			if handled, err := m.raise(stepErr); err != nil {
				return nil, err
			} else if !handled {
				return nil, stepErr
			}
		}
	}
}

func restSuffix(hasRest bool) string {
	if hasRest {
		return " or more"
	}
	return ""
}

// call dispatches CALL to either a compiled Function or a Primitive,
// eliminating the call frame entirely when the instruction right
// after CALL is RETURN (spec §4.4 "tail-call elimination"): the
// currently executing call, if any, is simply reused instead of
// pushing a fresh one, so a self-recursive tail loop runs in O(1)
// retaddr depth.
func (m *vm) call(callee Value, n int) error {
	switch fn := callee.(type) {
	case *Function:
		tailCall := m.pc < len(m.code)
		if tailCall {
			_, tailCall = m.code[m.pc].(IReturn)
		}
		if !tailCall {
			m.calls = append(m.calls, Retaddr{Code: m.code, Env: m.env, Caller: m.fn, PC: m.pc})
		}
		// The n arguments stay on the operand stack; CALL never pops or
		// extends env itself (spec §4.4) -- fn's own CHKARITY/MOVEARGS or
		// RESTARGS prologue consumes them once execution resumes there.
		m.code, m.env, m.fn, m.pc = fn.Code, fn.Env, fn, 0
		m.argc = n
		return nil
	case *Primitive:
		args := make([]Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = m.pop()
		}
		return m.callPrimitive(fn, args)
	default:
		return faultf("%s is not callable", TypeOf(callee).Name)
	}
}

func (m *vm) callPrimitive(p *Primitive, args []Value) error {
	ok := len(args) == p.Arity || (p.Rest && len(args) >= p.Arity)
	if !ok {
		return NewError(TagArityError, "`%s' expected %d argument(s)%s, got %d", p.Name, p.Arity, restSuffix(p.Rest), len(args))
	}
	if p.Rest {
		var rest Value = EmptyList
		for i := len(args) - 1; i >= p.Arity; i-- {
			rest = Cons(args[i], rest)
		}
		args = append(append([]Value{}, args[:p.Arity]...), rest)
	}
	if p.Signature != nil && m.u.Config.GetBool("vm.check-types") {
		for i, t := range p.Signature {
			if i >= len(args) {
				break
			}
			if t != nil && !t.Accepts(args[i]) {
				return NewError(TagTypeError, "`%s' expected %s for argument %d, got %s", p.Name, t.Name, i+1, TypeOf(args[i]).Name)
			}
		}
	}
	result, err := p.Fn(m.u, args)
	if err != nil {
		return err
	}
	m.push(result)
	return nil
}

// extendEnv pops N values off the operand stack (deepest first) and
// pushes a new frame binding them to syms, implementing EXTENV and
// MOVEARGS alike (spec §4.2/§4.4) -- the two differ only in which
// prologue emits them, not in what they do at runtime.
func (m *vm) extendEnv(n int, syms []*Symbol) error {
	if len(m.values) < n {
		return faultf("EXTENV/MOVEARGS %d: only %d values on the operand stack", n, len(m.values))
	}
	values := make([]Value, n)
	for i := n - 1; i >= 0; i-- {
		values[i] = m.pop()
	}
	m.env = m.env.Extend(values, syms)
	return nil
}

// restArgs implements RESTARGS (spec §4.3/§4.4): like extendEnv, but
// it pops all of the call's actual arguments -- m.argc of them, which
// CHKARITY has already confirmed is at least n -- binding the first n
// to syms and packing the remainder into a list bound to rest.
func (m *vm) restArgs(n int, syms []*Symbol, rest *Symbol) error {
	total := m.argc
	if len(m.values) < total {
		return faultf("RESTARGS %d: only %d values on the operand stack, need %d", n, len(m.values), total)
	}
	raw := make([]Value, total)
	for i := total - 1; i >= 0; i-- {
		raw[i] = m.pop()
	}
	var tail Value = EmptyList
	for i := total - 1; i >= n; i-- {
		tail = Cons(raw[i], tail)
	}
	values := append(append([]Value{}, raw[:n]...), tail)
	allSyms := append(append([]*Symbol{}, syms...), rest)
	m.env = m.env.Extend(values, allSyms)
	return nil
}

// arith implements the fused arithmetic shortcuts (spec §4.3/§9): a
// direct two-operand opcode in place of CONST-pushing a primitive and
// CALLing it, for the handful of operators hot enough to earn one.
// Fixnum+Fixnum stays exact; either operand being a Float promotes the
// whole operation to floating point, matching the `fx+`/`fp+` split in
// the primitive catalogue.
func (m *vm) arith(inst Instruction) error {
	b := m.pop()
	a := m.pop()
	switch inst.(type) {
	case IAddI:
		return m.pushArith(a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y })
	case ISubI:
		return m.pushArith(a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y })
	case IMulI:
		return m.pushArith(a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y })
	case IDivI:
		if isZero(b) {
			return NewError(TagArith, "division by zero")
		}
		return m.pushArith(a, b, func(x, y int64) int64 { return x / y }, func(x, y float64) float64 { return x / y })
	}
	return faultf("arith: unreachable instruction %s", inst.Mnemonic())
}

func isZero(v Value) bool {
	switch n := v.(type) {
	case Fixnum:
		return n == 0
	case *Float:
		return n.Value == 0
	}
	return false
}

func (m *vm) pushArith(a, b Value, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) error {
	ai, aIsInt := a.(Fixnum)
	bi, bIsInt := b.(Fixnum)
	if aIsInt && bIsInt {
		m.push(Fixnum(intOp(int64(ai), int64(bi))))
		return nil
	}
	af, aok := asNumber(a)
	if !aok {
		return NewError(TagTypeError, "arithmetic expected a number, got %s", TypeOf(a).Name)
	}
	bf, bok := asNumber(b)
	if !bok {
		return NewError(TagTypeError, "arithmetic expected a number, got %s", TypeOf(b).Name)
	}
	m.push(&Float{Value: floatOp(af, bf)})
	return nil
}

func asNumber(v Value) (float64, bool) {
	switch n := v.(type) {
	case Fixnum:
		return float64(n), true
	case *Float:
		return n.Value, true
	}
	return 0, false
}

func (m *vm) chkType(in IChkType) error {
	v, ok := m.env.Ref(0, in.Pos)
	if !ok {
		return faultf("CHKTYPE position %d out of range", in.Pos)
	}
	if in.Type != nil && !in.Type.Accepts(v) {
		return NewError(TagTypeError, "expected %s for argument %d, got %s", in.Type.Name, in.Pos+1, TypeOf(v).Name)
	}
	return nil
}

// raise converts a Go error surfaced mid-instruction into the nearest
// enclosing CATCH, if any (spec §4.5). A vmFault is never catchable:
// it marks a condition the compiler is supposed to have prevented, so
// it always propagates out of run() as a Go error.
func (m *vm) raise(stepErr error) (handled bool, fatal error) {
	exc, catchable := toException(m.u, stepErr)
	if !catchable {
		return false, stepErr
	}
	if len(m.handlers) == 0 {
		if m.fn != nil {
			exc.Backtrace = append(exc.Backtrace, m.fn)
		}
		for i := len(m.calls) - 1; i >= 0; i-- {
			if caller := m.calls[i].Caller; caller != nil {
				exc.Backtrace = append(exc.Backtrace, caller)
			}
		}
		return false, exc
	}
	h := m.handlers[len(m.handlers)-1]
	m.handlers = m.handlers[:len(m.handlers)-1]
	m.values = m.values[:h.ValueDepth]
	m.calls = m.calls[:h.CallDepth]
	m.code, m.env, m.pc = h.Code, h.Env, h.Addr
	exc.Flag = false
	m.push(exc)
	return true, nil
}

// toException turns a Go error into the first-class Exception value
// Lisp code sees once caught, or reports it as uncatchable (a *vmFault*
// compiler-internal condition).
func toException(u *Universe, err error) (*Exception, bool) {
	switch e := err.(type) {
	case *Exception:
		return e, true
	case EloquentError:
		return &Exception{Message: e.Message, Flag: true, Tag: u.PkgLisp.Intern(string(e.Tag))}, true
	case vmFault:
		return nil, false
	default:
		return &Exception{Message: err.Error(), Flag: true, Tag: u.PkgLisp.Intern(string(TagUser))}, true
	}
}
