package eloquent

// Singletons are created once, globally, at package init (spec §3.4):
// they're immediates distinguished purely by pointer identity (spec
// §3.3), so sharing one instance across every Universe is correct and
// avoids threading an allocator through every call site that needs
// "false" or "the empty list".
var (
	False       = &Singleton{name: "false"}
	True        = &Singleton{name: "true"}
	EmptyList   = &Singleton{name: "empty-list"}
	EOFValue    = &Singleton{name: "end-of-file"}
	Undefined   = &Singleton{name: "undefined"}
	closeParen  = &Singleton{name: "close-paren"} // reader-internal, spec §3.1
)

// Bool converts a Go bool to the corresponding Lisp singleton.
func Bool(b bool) *Singleton {
	if b {
		return True
	}
	return False
}

// Truthy implements spec's only falsy value being `false`; everything
// else, including the empty list, is truthy (this matches the Lisp
// family the spec models, and is exercised by (if ...) compilation).
func Truthy(v Value) bool { return v != False }

// Types reify each Kind as a first-class value (spec §3.2 "type" and
// §6 "Signatures ... are lists of type-objects"), also created once.
var Types = func() map[Kind]*Type {
	m := make(map[Kind]*Type, len(kindNames))
	for k, name := range kindNames {
		m[k] = &Type{Name: name, Of: k}
	}
	return m
}()

func TypeOf(v Value) *Type { return Types[v.Kind()] }
