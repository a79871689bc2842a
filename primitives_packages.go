package eloquent

// registerPackages mirrors init_prim_package in prims.c: package
// creation, lookup, and the used-packages chain FindSymbol walks
// (package.go).
func registerPackages(u *Universe) {
	u.DefinePrimitive("make-package", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "make-package: expected a string name")
		}
		return u.MakePackage(string(s.Data)), nil
	}, nil, nil)

	u.DefinePrimitive("find-package", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "find-package: expected a string name")
		}
		if pkg, ok := u.FindPackage(string(s.Data)); ok {
			return pkg, nil
		}
		return False, nil
	}, nil, nil)

	u.DefinePrimitive("in-package", 1, false, func(u *Universe, args []Value) (Value, error) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, NewError(TagTypeError, "in-package: expected a string name")
		}
		u.Current = u.MakePackage(string(s.Data))
		return u.Current, nil
	}, nil, nil)

	u.DefinePrimitive("package-name", 1, false, func(u *Universe, args []Value) (Value, error) {
		pkg, ok := args[0].(*Package)
		if !ok {
			return nil, NewError(TagTypeError, "package-name: expected a package")
		}
		return NewString(pkg.Name), nil
	}, nil, nil)

	u.DefinePrimitive("use-package", 2, false, func(u *Universe, args []Value) (Value, error) {
		pkg, ok := args[0].(*Package)
		if !ok {
			return nil, NewError(TagTypeError, "use-package: expected a package")
		}
		other, ok := args[1].(*Package)
		if !ok {
			return nil, NewError(TagTypeError, "use-package: expected a package")
		}
		pkg.Use(other)
		return pkg, nil
	}, nil, nil)

	u.DefinePrimitive("current-package", 0, false, func(u *Universe, args []Value) (Value, error) {
		return u.Current, nil
	}, nil, nil)
}
