package eloquent

// registerExceptions mirrors init_prim_exception in prims.c: raising
// a condition from Lisp code, and inspecting one already caught by a
// catch form.
func registerExceptions(u *Universe) {
	u.DefinePrimitive("signal", 1, false, func(u *Universe, args []Value) (Value, error) {
		msg, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "signal: expected a string message")
		}
		return nil, &Exception{Tag: u.PkgLisp.Intern(string(TagUser)), Message: string(msg.Data), Flag: true}
	}, nil, nil)

	u.DefinePrimitive("error", 1, false, func(u *Universe, args []Value) (Value, error) {
		msg, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "error: expected a string message")
		}
		return nil, NewError(TagUser, "%s", string(msg.Data))
	}, nil, nil)

	u.DefinePrimitive("exception?", 1, false, func(u *Universe, args []Value) (Value, error) {
		_, ok := args[0].(*Exception)
		return Bool(ok), nil
	}, nil, nil)

	u.DefinePrimitive("exception-message", 1, false, func(u *Universe, args []Value) (Value, error) {
		exc, ok := args[0].(*Exception)
		if !ok {
			return nil, NewError(TagTypeError, "exception-message: expected an exception")
		}
		return NewString(exc.Message), nil
	}, nil, nil)

	u.DefinePrimitive("exception-tag", 1, false, func(u *Universe, args []Value) (Value, error) {
		exc, ok := args[0].(*Exception)
		if !ok {
			return nil, NewError(TagTypeError, "exception-tag: expected an exception")
		}
		return exc.Tag, nil
	}, nil, nil)
}
