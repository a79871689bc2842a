package eloquent

// registerVectors mirrors init_prim_vector in prims.c.
func registerVectors(u *Universe) {
	u.DefinePrimitive("vector", 0, true, func(u *Universe, args []Value) (Value, error) {
		items, _ := listToSlice(args[0])
		v := NewVector(len(items))
		for _, a := range items {
			v.Push(a)
		}
		return v, nil
	}, nil, nil)

	u.DefinePrimitive("make-vector", 1, true, func(u *Universe, args []Value) (Value, error) {
		n, ok := args[0].(Fixnum)
		if !ok {
			return nil, NewError(TagTypeError, "make-vector: expected a fixnum length")
		}
		var fill Value = False
		if len(args) == 2 {
			if lst, ok := args[1].(*Pair); ok {
				fill = lst.Head
			} else if args[1] != EmptyList {
				fill = args[1]
			}
		}
		v := NewVector(int(n))
		for i := Fixnum(0); i < n; i++ {
			v.Push(fill)
		}
		return v, nil
	}, nil, nil)

	u.DefinePrimitive("vector?", 1, false, func(u *Universe, args []Value) (Value, error) {
		_, ok := args[0].(*Vector)
		return Bool(ok), nil
	}, nil, nil)

	u.DefinePrimitive("vector-length", 1, false, func(u *Universe, args []Value) (Value, error) {
		v, ok := args[0].(*Vector)
		if !ok {
			return nil, NewError(TagTypeError, "vector-length: expected a vector")
		}
		return Fixnum(v.Len()), nil
	}, nil, nil)

	u.DefinePrimitive("vector-ref", 2, false, func(u *Universe, args []Value) (Value, error) {
		v, ok := args[0].(*Vector)
		if !ok {
			return nil, NewError(TagTypeError, "vector-ref: expected a vector")
		}
		i, ok := args[1].(Fixnum)
		if !ok {
			return nil, NewError(TagTypeError, "vector-ref: expected a fixnum index")
		}
		val, ok := v.Ref(int(i))
		if !ok {
			return nil, NewError(TagUser, "vector-ref: index %d out of range", i)
		}
		return val, nil
	}, nil, nil)

	u.DefinePrimitive("vector-set!", 3, false, func(u *Universe, args []Value) (Value, error) {
		v, ok := args[0].(*Vector)
		if !ok {
			return nil, NewError(TagTypeError, "vector-set!: expected a vector")
		}
		i, ok := args[1].(Fixnum)
		if !ok {
			return nil, NewError(TagTypeError, "vector-set!: expected a fixnum index")
		}
		if !v.Set(int(i), args[2]) {
			return nil, NewError(TagUser, "vector-set!: index %d out of range", i)
		}
		return args[2], nil
	}, nil, nil)

	u.DefinePrimitive("vector-push-extend", 2, false, func(u *Universe, args []Value) (Value, error) {
		v, ok := args[0].(*Vector)
		if !ok {
			return nil, NewError(TagTypeError, "vector-push-extend: expected a vector")
		}
		v.Push(args[1])
		return Fixnum(v.Len() - 1), nil
	}, nil, nil)

	u.DefinePrimitive("vector->list", 1, false, func(u *Universe, args []Value) (Value, error) {
		v, ok := args[0].(*Vector)
		if !ok {
			return nil, NewError(TagTypeError, "vector->list: expected a vector")
		}
		items := make([]Value, v.Len())
		for i := 0; i < v.Len(); i++ {
			items[i], _ = v.Ref(i)
		}
		return sliceToList(items), nil
	}, nil, nil)

	u.DefinePrimitive("list->vector", 1, false, func(u *Universe, args []Value) (Value, error) {
		items, tail := listToSlice(args[0])
		if tail != EmptyList {
			return nil, NewError(TagTypeError, "list->vector: improper list")
		}
		v := NewVector(len(items))
		for _, it := range items {
			v.Push(it)
		}
		return v, nil
	}, nil, nil)

	u.DefinePrimitive("vector-equal?", 2, false, func(u *Universe, args []Value) (Value, error) {
		return Bool(equalValue(args[0], args[1])), nil
	}, nil, nil)
}
