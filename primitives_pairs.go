package eloquent

// registerPairs mirrors init_prim_list in prims.c. Open Question (a)
// (spec §9): prims.c's lt_raw_nth raises on a too-short list while
// lt_raw_nthtail calls exit(1); both nth and nthtail here raise a
// catchable exception uniformly instead.
func registerPairs(u *Universe) {
	u.DefinePrimitive("cons", 2, false, func(u *Universe, args []Value) (Value, error) {
		return Cons(args[0], args[1]), nil
	}, nil, func() Instruction { return ICons{} })

	u.DefinePrimitive("car", 1, false, func(u *Universe, args []Value) (Value, error) {
		p, ok := args[0].(*Pair)
		if !ok {
			return nil, NewError(TagTypeError, "car: expected a pair, got %s", TypeOf(args[0]).Name)
		}
		return p.Head, nil
	}, nil, nil)

	u.DefinePrimitive("cdr", 1, false, func(u *Universe, args []Value) (Value, error) {
		p, ok := args[0].(*Pair)
		if !ok {
			return nil, NewError(TagTypeError, "cdr: expected a pair, got %s", TypeOf(args[0]).Name)
		}
		return p.Tail, nil
	}, nil, nil)

	u.DefinePrimitive("set-car!", 2, false, func(u *Universe, args []Value) (Value, error) {
		p, ok := args[0].(*Pair)
		if !ok {
			return nil, NewError(TagTypeError, "set-car!: expected a pair, got %s", TypeOf(args[0]).Name)
		}
		p.Head = args[1]
		return args[1], nil
	}, nil, nil)

	u.DefinePrimitive("set-cdr!", 2, false, func(u *Universe, args []Value) (Value, error) {
		p, ok := args[0].(*Pair)
		if !ok {
			return nil, NewError(TagTypeError, "set-cdr!: expected a pair, got %s", TypeOf(args[0]).Name)
		}
		p.Tail = args[1]
		return args[1], nil
	}, nil, nil)

	u.DefinePrimitive("pair?", 1, false, func(u *Universe, args []Value) (Value, error) {
		_, ok := args[0].(*Pair)
		return Bool(ok), nil
	}, nil, nil)

	u.DefinePrimitive("null?", 1, false, func(u *Universe, args []Value) (Value, error) {
		return Bool(args[0] == EmptyList), nil
	}, nil, nil)

	u.DefinePrimitive("list", 0, true, func(u *Universe, args []Value) (Value, error) {
		return args[0], nil
	}, nil, nil)

	u.DefinePrimitive("length", 1, false, func(u *Universe, args []Value) (Value, error) {
		items, tail := listToSlice(args[0])
		if tail != EmptyList {
			return nil, NewError(TagTypeError, "length: improper list")
		}
		return Fixnum(len(items)), nil
	}, nil, nil)

	u.DefinePrimitive("reverse", 1, false, func(u *Universe, args []Value) (Value, error) {
		items, tail := listToSlice(args[0])
		if tail != EmptyList {
			return nil, NewError(TagTypeError, "reverse: improper list")
		}
		var result Value = EmptyList
		for _, it := range items {
			result = Cons(it, result)
		}
		return result, nil
	}, nil, nil)

	u.DefinePrimitive("append", 0, true, func(u *Universe, args []Value) (Value, error) {
		parts, _ := listToSlice(args[0])
		if len(parts) == 0 {
			return EmptyList, nil
		}
		result := parts[len(parts)-1]
		for i := len(parts) - 2; i >= 0; i-- {
			items, tail := listToSlice(parts[i])
			if tail != EmptyList {
				return nil, NewError(TagTypeError, "append: improper list argument")
			}
			for j := len(items) - 1; j >= 0; j-- {
				result = Cons(items[j], result)
			}
		}
		return result, nil
	}, nil, nil)

	u.DefinePrimitive("nth", 2, false, func(u *Universe, args []Value) (Value, error) {
		n, ok := args[0].(Fixnum)
		if !ok {
			return nil, NewError(TagTypeError, "nth: expected a fixnum index")
		}
		items, _ := listToSlice(args[1])
		if int(n) < 0 || int(n) >= len(items) {
			return nil, NewError(TagUser, "nth: index %d out of range", n)
		}
		return items[int(n)], nil
	}, nil, nil)

	u.DefinePrimitive("nthtail", 2, false, func(u *Universe, args []Value) (Value, error) {
		n, ok := args[0].(Fixnum)
		if !ok {
			return nil, NewError(TagTypeError, "nthtail: expected a fixnum index")
		}
		cur := args[1]
		for i := Fixnum(0); i < n; i++ {
			p, ok := cur.(*Pair)
			if !ok {
				return nil, NewError(TagUser, "nthtail: index %d out of range", n)
			}
			cur = p.Tail
		}
		return cur, nil
	}, nil, nil)

	u.DefinePrimitive("equal?", 2, false, func(u *Universe, args []Value) (Value, error) {
		return Bool(equalValue(args[0], args[1])), nil
	}, nil, nil)

	u.DefinePrimitive("eq?", 2, false, func(u *Universe, args []Value) (Value, error) {
		return Bool(args[0] == args[1]), nil
	}, nil, nil)
}
