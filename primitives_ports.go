package eloquent

import "io"

// registerPorts mirrors init_prim_input_port/init_prim_output_port in
// prims.c: reading and writing through the Port abstraction (port.go)
// rather than raw file descriptors.
func registerPorts(u *Universe) {
	u.DefinePrimitive("read", 1, false, func(u *Universe, args []Value) (Value, error) {
		in, ok := args[0].(*InputPort)
		if !ok {
			return nil, NewError(TagTypeError, "read: expected an input port")
		}
		v, err := NewReader(u, in.Port).Read()
		if err == io.EOF {
			return EOFValue, nil
		}
		if err != nil {
			return nil, err
		}
		return v, nil
	}, nil, nil)

	u.DefinePrimitive("read-char", 1, false, func(u *Universe, args []Value) (Value, error) {
		in, ok := args[0].(*InputPort)
		if !ok {
			return nil, NewError(TagTypeError, "read-char: expected an input port")
		}
		b, err := in.Port.ReadByte()
		if err == io.EOF {
			return EOFValue, nil
		}
		if err != nil {
			return nil, err
		}
		return Character(b), nil
	}, nil, nil)

	u.DefinePrimitive("peek-char", 1, false, func(u *Universe, args []Value) (Value, error) {
		in, ok := args[0].(*InputPort)
		if !ok {
			return nil, NewError(TagTypeError, "peek-char: expected an input port")
		}
		b, err := in.Port.PeekByte()
		if err == io.EOF {
			return EOFValue, nil
		}
		if err != nil {
			return nil, err
		}
		return Character(b), nil
	}, nil, nil)

	u.DefinePrimitive("read-line", 1, false, func(u *Universe, args []Value) (Value, error) {
		in, ok := args[0].(*InputPort)
		if !ok {
			return nil, NewError(TagTypeError, "read-line: expected an input port")
		}
		var buf []byte
		for {
			b, err := in.Port.ReadByte()
			if err == io.EOF {
				if len(buf) == 0 {
					return EOFValue, nil
				}
				break
			}
			if err != nil {
				return nil, err
			}
			if b == '\n' {
				break
			}
			buf = append(buf, b)
		}
		return NewString(string(buf)), nil
	}, nil, nil)

	u.DefinePrimitive("write-char", 2, false, func(u *Universe, args []Value) (Value, error) {
		c, ok := args[0].(Character)
		if !ok {
			return nil, NewError(TagTypeError, "write-char: expected a character")
		}
		out, ok := args[1].(*OutputPort)
		if !ok {
			return nil, NewError(TagTypeError, "write-char: expected an output port")
		}
		out.Sink.WriteString(string([]byte{byte(c)}))
		return c, nil
	}, nil, nil)

	u.DefinePrimitive("write-string", 2, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "write-string: expected a string")
		}
		out, ok := args[1].(*OutputPort)
		if !ok {
			return nil, NewError(TagTypeError, "write-string: expected an output port")
		}
		out.Sink.WriteString(string(s.Data))
		return s, nil
	}, nil, nil)

	u.DefinePrimitive("write", 2, false, func(u *Universe, args []Value) (Value, error) {
		out, ok := args[1].(*OutputPort)
		if !ok {
			return nil, NewError(TagTypeError, "write: expected an output port")
		}
		out.Sink.WriteString(Write(args[0]))
		return args[0], nil
	}, nil, nil)

	u.DefinePrimitive("open-input-string", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "open-input-string: expected a string")
		}
		return &InputPort{Port: NewStringPort(string(s.Data))}, nil
	}, nil, nil)

	u.DefinePrimitive("open-output-string", 0, false, func(u *Universe, args []Value) (Value, error) {
		return &OutputPort{Sink: &StringOutput{}}, nil
	}, nil, nil)

	u.DefinePrimitive("get-output-string", 1, false, func(u *Universe, args []Value) (Value, error) {
		out, ok := args[0].(*OutputPort)
		if !ok {
			return nil, NewError(TagTypeError, "get-output-string: expected an output port")
		}
		sink, ok := out.Sink.(*StringOutput)
		if !ok {
			return nil, NewError(TagTypeError, "get-output-string: not a string output port")
		}
		return NewString(sink.String()), nil
	}, nil, nil)

	u.DefinePrimitive("current-output-port", 0, false, func(u *Universe, args []Value) (Value, error) {
		return u.StdoutPort, nil
	}, nil, nil)

	u.DefinePrimitive("current-error-port", 0, false, func(u *Universe, args []Value) (Value, error) {
		return u.StderrPort, nil
	}, nil, nil)

	u.DefinePrimitive("current-input-port", 0, false, func(u *Universe, args []Value) (Value, error) {
		return u.StdinPort, nil
	}, nil, nil)
}
