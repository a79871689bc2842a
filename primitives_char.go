package eloquent

// registerChar mirrors init_prim_char in prims.c.
func registerChar(u *Universe) {
	u.DefinePrimitive("char?", 1, false, func(u *Universe, args []Value) (Value, error) {
		_, ok := args[0].(Character)
		return Bool(ok), nil
	}, nil, nil)

	u.DefinePrimitive("char->integer", 1, false, func(u *Universe, args []Value) (Value, error) {
		c, ok := args[0].(Character)
		if !ok {
			return nil, NewError(TagTypeError, "char->integer: expected a character")
		}
		return Fixnum(c), nil
	}, nil, nil)

	u.DefinePrimitive("integer->char", 1, false, func(u *Universe, args []Value) (Value, error) {
		n, ok := args[0].(Fixnum)
		if !ok {
			return nil, NewError(TagTypeError, "integer->char: expected a fixnum")
		}
		if n < 0 || n > 255 {
			return nil, NewError(TagUser, "integer->char: %d out of range", n)
		}
		return Character(n), nil
	}, nil, nil)

	u.DefinePrimitive("char=?", 2, false, charCmp(func(a, b byte) bool { return a == b }), nil, nil)
	u.DefinePrimitive("char<?", 2, false, charCmp(func(a, b byte) bool { return a < b }), nil, nil)
	u.DefinePrimitive("char>?", 2, false, charCmp(func(a, b byte) bool { return a > b }), nil, nil)

	u.DefinePrimitive("char-upcase", 1, false, func(u *Universe, args []Value) (Value, error) {
		c, ok := args[0].(Character)
		if !ok {
			return nil, NewError(TagTypeError, "char-upcase: expected a character")
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		return c, nil
	}, nil, nil)

	u.DefinePrimitive("char-downcase", 1, false, func(u *Universe, args []Value) (Value, error) {
		c, ok := args[0].(Character)
		if !ok {
			return nil, NewError(TagTypeError, "char-downcase: expected a character")
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		return c, nil
	}, nil, nil)
}

func charCmp(op func(a, b byte) bool) PrimitiveFn {
	return func(u *Universe, args []Value) (Value, error) {
		a, ok := args[0].(Character)
		if !ok {
			return nil, NewError(TagTypeError, "expected a character")
		}
		b, ok := args[1].(Character)
		if !ok {
			return nil, NewError(TagTypeError, "expected a character")
		}
		return Bool(op(byte(a), byte(b))), nil
	}
}
