package eloquent

// registerSymbols mirrors init_prim_symbol in prims.c, plus the
// set-symbol-macro!/symbol-macro pair that's how this implementation
// installs macros (grounded on lt_set_symbol_macro/lt_symbol_macro,
// prims.c) rather than through a dedicated compiler special form.
func registerSymbols(u *Universe) {
	u.DefinePrimitive("symbol?", 1, false, func(u *Universe, args []Value) (Value, error) {
		_, ok := args[0].(*Symbol)
		return Bool(ok), nil
	}, nil, nil)

	u.DefinePrimitive("intern", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "intern: expected a string")
		}
		return u.Current.Intern(string(s.Data)), nil
	}, nil, nil)

	u.DefinePrimitive("gensym", 0, true, func(u *Universe, args []Value) (Value, error) {
		prefix := "G"
		if rest, ok := args[0].(*Pair); ok {
			s, ok := rest.Head.(*String)
			if !ok {
				return nil, NewError(TagTypeError, "gensym: expected a string prefix")
			}
			prefix = string(s.Data)
		}
		return u.Gensym(prefix), nil
	}, nil, nil)

	u.DefinePrimitive("bound?", 1, false, func(u *Universe, args []Value) (Value, error) {
		sym, ok := args[0].(*Symbol)
		if !ok {
			return nil, NewError(TagTypeError, "bound?: expected a symbol")
		}
		return Bool(sym.Bound()), nil
	}, nil, nil)

	u.DefinePrimitive("symbol-value", 1, false, func(u *Universe, args []Value) (Value, error) {
		sym, ok := args[0].(*Symbol)
		if !ok {
			return nil, NewError(TagTypeError, "symbol-value: expected a symbol")
		}
		if !sym.Bound() {
			return nil, NewError(TagUnbound, "unbound variable `%s`", sym.Name)
		}
		return sym.Value(), nil
	}, nil, nil)

	u.DefinePrimitive("symbol-name", 1, false, func(u *Universe, args []Value) (Value, error) {
		sym, ok := args[0].(*Symbol)
		if !ok {
			return nil, NewError(TagTypeError, "symbol-name: expected a symbol")
		}
		return NewString(sym.Name), nil
	}, nil, nil)

	u.DefinePrimitive("symbol-package", 1, false, func(u *Universe, args []Value) (Value, error) {
		sym, ok := args[0].(*Symbol)
		if !ok {
			return nil, NewError(TagTypeError, "symbol-package: expected a symbol")
		}
		return sym.Package, nil
	}, nil, nil)

	u.DefinePrimitive("set-symbol-macro!", 2, false, func(u *Universe, args []Value) (Value, error) {
		sym, ok := args[0].(*Symbol)
		if !ok {
			return nil, NewError(TagTypeError, "set-symbol-macro!: expected a symbol")
		}
		sym.SetMacro(args[1])
		return sym, nil
	}, nil, nil)

	u.DefinePrimitive("symbol-macro", 1, false, func(u *Universe, args []Value) (Value, error) {
		sym, ok := args[0].(*Symbol)
		if !ok {
			return nil, NewError(TagTypeError, "symbol-macro: expected a symbol")
		}
		if !sym.HasMacro() {
			return False, nil
		}
		return sym.Macro(), nil
	}, nil, nil)
}
