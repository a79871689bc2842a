package eloquent

// installBootstrapMacros wires the handful of macros the core
// language depends on that aren't plain primitives: currently just
// quasiquote. It's installed the same way any user-level macro would
// be, through the quasiquote symbol's macro cell (prims.c's
// lt_set_symbol_macro mechanism), so the
// compiler's ordinary macro-call dispatch in compiler.go handles it
// with no special case of its own.
func installBootstrapMacros(u *Universe) {
	qq := &Primitive{Name: "quasiquote-expand", Arity: 1, Fn: quasiquoteExpandPrim}
	u.specials.quasiquote.SetMacro(qq)
}

func quasiquoteExpandPrim(u *Universe, args []Value) (Value, error) {
	return qqExpand(u, args[0]), nil
}

// qqExpand implements one level of quasiquote expansion (spec §4.1's
// quasiquote/unquote/unquote-splicing family): it walks the template
// and produces *code* — an expression built from cons/append calls
// and quoted literals — rather than a value, since an unquoted
// sub-form's variables are only bound when the expansion is later
// compiled and run, not at macro-expansion time. Nested quasiquote
// (a quasiquote inside a quasiquote, tracking relative depth) is not
// supported; an inner quasiquote is expanded as if it were at the
// same level as the outer one.
func qqExpand(u *Universe, template Value) Value {
	pair, ok := template.(*Pair)
	if !ok {
		return list2(u.specials.quote, template)
	}
	if sym, ok := pair.Head.(*Symbol); ok && sym == u.specials.unquote {
		if inner, ok := singleArg(pair.Tail); ok {
			return inner
		}
	}
	if headPair, ok := pair.Head.(*Pair); ok {
		if sym, ok := headPair.Head.(*Symbol); ok && sym == u.specials.unquoteSplicing {
			if spliceExpr, ok := singleArg(headPair.Tail); ok {
				return list3(u.PkgLisp.Intern("append"), spliceExpr, qqExpand(u, pair.Tail))
			}
		}
	}
	return list3(u.PkgLisp.Intern("cons"), qqExpand(u, pair.Head), qqExpand(u, pair.Tail))
}

func list2(a, b Value) Value { return Cons(a, Cons(b, EmptyList)) }

func list3(a, b, c Value) Value { return Cons(a, Cons(b, Cons(c, EmptyList))) }
