package eloquent

// registerArithmetic mirrors init_prim_arithmetic in prims.c: exact
// fixnum operators (fx-prefixed), exact float operators (fp-prefixed),
// and polymorphic operators (+, -, *, /, comparisons) that promote to
// float when either operand is one. The polymorphic four get a fused
// opcode shortcut (spec §4.3/§9); the fx/fp variants and comparisons
// don't, since they're not hot enough in practice to earn one and the
// spec only asks for "a handful".
func registerArithmetic(u *Universe) {
	fixnumSig := []*Type{Types[KindFixnum], Types[KindFixnum]}
	floatSig := []*Type{Types[KindFloat], Types[KindFloat]}

	u.DefinePrimitive("fx+", 2, false, fxBinop(func(a, b int64) int64 { return a + b }), fixnumSig, nil)
	u.DefinePrimitive("fx-", 2, false, fxBinop(func(a, b int64) int64 { return a - b }), fixnumSig, nil)
	u.DefinePrimitive("fx*", 2, false, fxBinop(func(a, b int64) int64 { return a * b }), fixnumSig, nil)
	u.DefinePrimitive("fx/", 2, false, fxDivop, fixnumSig, nil)
	u.DefinePrimitive("fx=", 2, false, fxCmp(func(a, b int64) bool { return a == b }), fixnumSig, nil)
	u.DefinePrimitive("fx<", 2, false, fxCmp(func(a, b int64) bool { return a < b }), fixnumSig, nil)
	u.DefinePrimitive("fx>", 2, false, fxCmp(func(a, b int64) bool { return a > b }), fixnumSig, nil)

	u.DefinePrimitive("fp+", 2, false, fpBinop(func(a, b float64) float64 { return a + b }), floatSig, nil)
	u.DefinePrimitive("fp-", 2, false, fpBinop(func(a, b float64) float64 { return a - b }), floatSig, nil)
	u.DefinePrimitive("fp*", 2, false, fpBinop(func(a, b float64) float64 { return a * b }), floatSig, nil)
	u.DefinePrimitive("fp/", 2, false, fpDivop, floatSig, nil)
	u.DefinePrimitive("fp=", 2, false, fpCmp(func(a, b float64) bool { return a == b }), floatSig, nil)

	u.DefinePrimitive("+", 2, false, polyBinop(func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }), nil, func() Instruction { return IAddI{} })
	u.DefinePrimitive("-", 2, false, polyBinop(func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }), nil, func() Instruction { return ISubI{} })
	u.DefinePrimitive("*", 2, false, polyBinop(func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }), nil, func() Instruction { return IMulI{} })
	u.DefinePrimitive("/", 2, false, polyDivop, nil, func() Instruction { return IDivI{} })

	u.DefinePrimitive("=", 2, false, polyCmp(func(a, b float64) bool { return a == b }), nil, nil)
	u.DefinePrimitive("<", 2, false, polyCmp(func(a, b float64) bool { return a < b }), nil, nil)
	u.DefinePrimitive(">", 2, false, polyCmp(func(a, b float64) bool { return a > b }), nil, nil)
	u.DefinePrimitive("<=", 2, false, polyCmp(func(a, b float64) bool { return a <= b }), nil, nil)
	u.DefinePrimitive(">=", 2, false, polyCmp(func(a, b float64) bool { return a >= b }), nil, nil)

	u.DefinePrimitive("fixnum->float", 1, false, func(u *Universe, args []Value) (Value, error) {
		n, ok := args[0].(Fixnum)
		if !ok {
			return nil, NewError(TagTypeError, "fixnum->float expected a fixnum")
		}
		return &Float{Value: float64(n)}, nil
	}, []*Type{Types[KindFixnum]}, nil)

	u.DefinePrimitive("float->fixnum", 1, false, func(u *Universe, args []Value) (Value, error) {
		f, ok := args[0].(*Float)
		if !ok {
			return nil, NewError(TagTypeError, "float->fixnum expected a float")
		}
		return Fixnum(int64(f.Value)), nil
	}, []*Type{Types[KindFloat]}, nil)
}

func fxBinop(op func(a, b int64) int64) PrimitiveFn {
	return func(u *Universe, args []Value) (Value, error) {
		a, b := args[0].(Fixnum), args[1].(Fixnum)
		return Fixnum(op(int64(a), int64(b))), nil
	}
}

func fxDivop(u *Universe, args []Value) (Value, error) {
	a, b := args[0].(Fixnum), args[1].(Fixnum)
	if b == 0 {
		return nil, NewError(TagArith, "division by zero")
	}
	return Fixnum(int64(a) / int64(b)), nil
}

func fxCmp(op func(a, b int64) bool) PrimitiveFn {
	return func(u *Universe, args []Value) (Value, error) {
		a, b := args[0].(Fixnum), args[1].(Fixnum)
		return Bool(op(int64(a), int64(b))), nil
	}
}

func fpBinop(op func(a, b float64) float64) PrimitiveFn {
	return func(u *Universe, args []Value) (Value, error) {
		a, b := args[0].(*Float), args[1].(*Float)
		return &Float{Value: op(a.Value, b.Value)}, nil
	}
}

func fpDivop(u *Universe, args []Value) (Value, error) {
	a, b := args[0].(*Float), args[1].(*Float)
	if b.Value == 0 {
		return nil, NewError(TagArith, "division by zero")
	}
	return &Float{Value: a.Value / b.Value}, nil
}

func fpCmp(op func(a, b float64) bool) PrimitiveFn {
	return func(u *Universe, args []Value) (Value, error) {
		a, b := args[0].(*Float), args[1].(*Float)
		return Bool(op(a.Value, b.Value)), nil
	}
}

func polyBinop(intOp func(a, b int64) int64, floatOp func(a, b float64) float64) PrimitiveFn {
	return func(u *Universe, args []Value) (Value, error) {
		ai, aIsInt := args[0].(Fixnum)
		bi, bIsInt := args[1].(Fixnum)
		if aIsInt && bIsInt {
			return Fixnum(intOp(int64(ai), int64(bi))), nil
		}
		af, ok := asNumber(args[0])
		if !ok {
			return nil, NewError(TagTypeError, "expected a number, got %s", TypeOf(args[0]).Name)
		}
		bf, ok := asNumber(args[1])
		if !ok {
			return nil, NewError(TagTypeError, "expected a number, got %s", TypeOf(args[1]).Name)
		}
		return &Float{Value: floatOp(af, bf)}, nil
	}
}

func polyDivop(u *Universe, args []Value) (Value, error) {
	ai, aIsInt := args[0].(Fixnum)
	bi, bIsInt := args[1].(Fixnum)
	if aIsInt && bIsInt {
		if bi == 0 {
			return nil, NewError(TagArith, "division by zero")
		}
		return Fixnum(int64(ai) / int64(bi)), nil
	}
	af, ok := asNumber(args[0])
	if !ok {
		return nil, NewError(TagTypeError, "expected a number, got %s", TypeOf(args[0]).Name)
	}
	bf, ok := asNumber(args[1])
	if !ok {
		return nil, NewError(TagTypeError, "expected a number, got %s", TypeOf(args[1]).Name)
	}
	if bf == 0 {
		return nil, NewError(TagArith, "division by zero")
	}
	return &Float{Value: af / bf}, nil
}

func polyCmp(op func(a, b float64) bool) PrimitiveFn {
	return func(u *Universe, args []Value) (Value, error) {
		af, ok := asNumber(args[0])
		if !ok {
			return nil, NewError(TagTypeError, "expected a number, got %s", TypeOf(args[0]).Name)
		}
		bf, ok := asNumber(args[1])
		if !ok {
			return nil, NewError(TagTypeError, "expected a number, got %s", TypeOf(args[1]).Name)
		}
		return Bool(op(af, bf)), nil
	}
}
