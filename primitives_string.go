package eloquent

import "strings"

// registerString mirrors init_prim_string in prims.c. String is
// mutable (value.go), so string-set! mutates in place the way
// lt_string_set does.
func registerString(u *Universe) {
	u.DefinePrimitive("string?", 1, false, func(u *Universe, args []Value) (Value, error) {
		_, ok := args[0].(*String)
		return Bool(ok), nil
	}, nil, nil)

	u.DefinePrimitive("string-length", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "string-length: expected a string")
		}
		return Fixnum(len(s.Data)), nil
	}, nil, nil)

	u.DefinePrimitive("string-ref", 2, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "string-ref: expected a string")
		}
		i, ok := args[1].(Fixnum)
		if !ok || int(i) < 0 || int(i) >= len(s.Data) {
			return nil, NewError(TagUser, "string-ref: index out of range")
		}
		return Character(s.Data[i]), nil
	}, nil, nil)

	u.DefinePrimitive("string-set!", 3, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "string-set!: expected a string")
		}
		i, ok := args[1].(Fixnum)
		if !ok || int(i) < 0 || int(i) >= len(s.Data) {
			return nil, NewError(TagUser, "string-set!: index out of range")
		}
		c, ok := args[2].(Character)
		if !ok {
			return nil, NewError(TagTypeError, "string-set!: expected a character")
		}
		s.Data[i] = byte(c)
		return c, nil
	}, nil, nil)

	u.DefinePrimitive("string-append", 0, true, func(u *Universe, args []Value) (Value, error) {
		var sb strings.Builder
		parts, _ := listToSlice(args[0])
		for _, a := range parts {
			s, ok := a.(*String)
			if !ok {
				return nil, NewError(TagTypeError, "string-append: expected a string")
			}
			sb.Write(s.Data)
		}
		return NewString(sb.String()), nil
	}, nil, nil)

	u.DefinePrimitive("substring", 3, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "substring: expected a string")
		}
		start, ok1 := args[1].(Fixnum)
		end, ok2 := args[2].(Fixnum)
		if !ok1 || !ok2 || start < 0 || end > Fixnum(len(s.Data)) || start > end {
			return nil, NewError(TagUser, "substring: index out of range")
		}
		return NewString(string(s.Data[start:end])), nil
	}, nil, nil)

	u.DefinePrimitive("string-copy", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "string-copy: expected a string")
		}
		return NewString(string(s.Data)), nil
	}, nil, nil)

	u.DefinePrimitive("make-string", 1, true, func(u *Universe, args []Value) (Value, error) {
		n, ok := args[0].(Fixnum)
		if !ok {
			return nil, NewError(TagTypeError, "make-string: expected a fixnum length")
		}
		fill := byte(' ')
		if fillArgs, ok := args[1].(*Pair); ok {
			c, ok := fillArgs.Head.(Character)
			if !ok {
				return nil, NewError(TagTypeError, "make-string: expected a character fill")
			}
			fill = byte(c)
		}
		data := make([]byte, n)
		for i := range data {
			data[i] = fill
		}
		return &String{Data: data}, nil
	}, nil, nil)

	u.DefinePrimitive("string=?", 2, false, func(u *Universe, args []Value) (Value, error) {
		a, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "string=?: expected a string")
		}
		b, ok := args[1].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "string=?: expected a string")
		}
		return Bool(string(a.Data) == string(b.Data)), nil
	}, nil, nil)

	u.DefinePrimitive("string->symbol", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "string->symbol: expected a string")
		}
		return u.Current.Intern(string(s.Data)), nil
	}, nil, nil)

	u.DefinePrimitive("symbol->string", 1, false, func(u *Universe, args []Value) (Value, error) {
		sym, ok := args[0].(*Symbol)
		if !ok {
			return nil, NewError(TagTypeError, "symbol->string: expected a symbol")
		}
		return NewString(sym.Name), nil
	}, nil, nil)

	u.DefinePrimitive("string->list", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "string->list: expected a string")
		}
		items := make([]Value, len(s.Data))
		for i, b := range s.Data {
			items[i] = Character(b)
		}
		return sliceToList(items), nil
	}, nil, nil)

	u.DefinePrimitive("list->string", 1, false, func(u *Universe, args []Value) (Value, error) {
		items, tail := listToSlice(args[0])
		if tail != EmptyList {
			return nil, NewError(TagTypeError, "list->string: improper list")
		}
		data := make([]byte, len(items))
		for i, v := range items {
			c, ok := v.(Character)
			if !ok {
				return nil, NewError(TagTypeError, "list->string: expected a list of characters")
			}
			data[i] = byte(c)
		}
		return &String{Data: data}, nil
	}, nil, nil)

	u.DefinePrimitive("read-from-string", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "read-from-string: expected a string")
		}
		return ReadFromString(u, string(s.Data))
	}, nil, nil)
}
