package eloquent

// sliceToList builds a proper list from items, the inverse of
// listToSlice (compiler.go).
func sliceToList(items []Value) Value {
	var result Value = EmptyList
	for i := len(items) - 1; i >= 0; i-- {
		result = Cons(items[i], result)
	}
	return result
}

func isProperList(v Value) bool {
	_, tail := listToSlice(v)
	return tail == EmptyList
}

// equalValue implements structural equality (spec's `equal?`):
// pairs, vectors, and strings compare by contents; everything else
// compares by identity or native Go equality.
func equalValue(a, b Value) bool {
	if a == b {
		return true
	}
	switch x := a.(type) {
	case Fixnum:
		y, ok := b.(Fixnum)
		return ok && x == y
	case Character:
		y, ok := b.(Character)
		return ok && x == y
	case *Float:
		y, ok := b.(*Float)
		return ok && x.Value == y.Value
	case *String:
		y, ok := b.(*String)
		return ok && string(x.Data) == string(y.Data)
	case *Pair:
		y, ok := b.(*Pair)
		return ok && equalValue(x.Head, y.Head) && equalValue(x.Tail, y.Tail)
	case *Vector:
		y, ok := b.(*Vector)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			xi, _ := x.Ref(i)
			yi, _ := y.Ref(i)
			if !equalValue(xi, yi) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
