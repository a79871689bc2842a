package eloquent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEval(t *testing.T, u *Universe, src string) Value {
	t.Helper()
	v, err := ReadFromString(u, src)
	require.NoError(t, err)
	result, err := u.Eval(v)
	require.NoError(t, err)
	return result
}

func newTestUniverse(t *testing.T) *Universe {
	t.Helper()
	u := NewUniverse()
	require.NoError(t, u.Init())
	return u
}

func TestEvalArithmetic(t *testing.T) {
	u := newTestUniverse(t)
	tests := []struct {
		src  string
		want Value
	}{
		{"(+ 1 2)", Fixnum(3)},
		{"(- 5 2)", Fixnum(3)},
		{"(* 3 4)", Fixnum(12)},
		{"(/ 10 2)", Fixnum(5)},
		{"(+ 1 2.5)", &Float{Value: 3.5}},
		{"(< 1 2)", True},
		{"(> 1 2)", False},
		{"(= 3 3)", True},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, mustEval(t, u, tc.src))
		})
	}
}

func TestEvalIf(t *testing.T) {
	u := newTestUniverse(t)
	assert.Equal(t, Fixnum(1), mustEval(t, u, "(if #t 1 2)"))
	assert.Equal(t, Fixnum(2), mustEval(t, u, "(if #f 1 2)"))
	assert.Equal(t, Undefined, mustEval(t, u, "(if #f 1)"))
}

func TestEvalLambdaAndClosures(t *testing.T) {
	u := newTestUniverse(t)
	assert.Equal(t, Fixnum(7), mustEval(t, u, "((lambda (x y) (+ x y)) 3 4)"))

	mustEval(t, u, "(set make-adder (lambda (n) (lambda (x) (+ x n))))")
	mustEval(t, u, "(set add5 (make-adder 5))")
	assert.Equal(t, Fixnum(15), mustEval(t, u, "(add5 10)"))
	// second closure over a different n must not share state with the first
	mustEval(t, u, "(set add10 (make-adder 10))")
	assert.Equal(t, Fixnum(20), mustEval(t, u, "(add10 10)"))
	assert.Equal(t, Fixnum(15), mustEval(t, u, "(add5 10)"))
}

func TestEvalRestParams(t *testing.T) {
	u := newTestUniverse(t)
	mustEval(t, u, "(set my-list (lambda (a . rest) (cons a rest)))")
	v := mustEval(t, u, "(my-list 1 2 3)")
	items, tail := listToSlice(v)
	assert.Equal(t, []Value{Fixnum(1), Fixnum(2), Fixnum(3)}, items)
	assert.Equal(t, EmptyList, tail)
}

func TestEvalArityError(t *testing.T) {
	u := newTestUniverse(t)
	mustEval(t, u, "(set f (lambda (x y) (+ x y)))")
	form, err := ReadFromString(u, "(f 1)")
	require.NoError(t, err)
	_, err = u.Eval(form)
	require.Error(t, err)
	var exc *Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, "ARITY-ERROR", exc.Tag.Name)
}

// TestEvalTailRecursion exercises the single most natural way to write
// a self-recursive accumulator loop (an if-branched tail call), at an
// iteration count (one million) at which a non-eliminated retaddr
// stack would grow by one frame per iteration.
func TestEvalTailRecursion(t *testing.T) {
	u := newTestUniverse(t)
	mustEval(t, u, `
		(set loop (lambda (n acc)
		  (if (= n 0)
		      acc
		      (loop (- n 1) (+ acc n)))))`)
	got := mustEval(t, u, "(loop 1000000 0)")
	assert.Equal(t, Fixnum(500000500000), got)
}

// TestEvalTailRecursionViaBegin exercises tail position threaded
// through begin's final form.
func TestEvalTailRecursionViaBegin(t *testing.T) {
	u := newTestUniverse(t)
	mustEval(t, u, `
		(set loop (lambda (n acc)
		  (begin
		    (if #f #f)
		    (if (= n 0)
		        acc
		        (loop (- n 1) (+ acc n))))))`)
	got := mustEval(t, u, "(loop 1000000 0)")
	assert.Equal(t, Fixnum(500000500000), got)
}

func TestEvalCatchUncaughtPropagates(t *testing.T) {
	u := newTestUniverse(t)
	form, err := ReadFromString(u, `(car 5)`)
	require.NoError(t, err)
	_, err = u.Eval(form)
	require.Error(t, err)
}

// TestEvalCatchHandlesSignal exercises spec §8's literal scenario:
// tag-expr 'e, body (signal "boom").
func TestEvalCatchHandlesSignal(t *testing.T) {
	u := newTestUniverse(t)
	got := mustEval(t, u, `(catch 'e (signal "boom"))`)
	exc, ok := got.(*Exception)
	require.True(t, ok)
	assert.Equal(t, "boom", exc.Message)
	assert.False(t, exc.Flag)
}

// TestEvalCatchDoesNotEliminateTailCall checks that a catch whose body
// is a call returns that call's value once the call returns normally,
// and that an unrelated, uncaught exception in the next evaluated form
// still propagates. Each Eval runs on a fresh VM with an empty handler
// stack, so the second half does not see handlers from the first.
func TestEvalCatchDoesNotEliminateTailCall(t *testing.T) {
	u := newTestUniverse(t)
	mustEval(t, u, `(set identity (lambda (x) x))`)
	got := mustEval(t, u, `(catch 'e (identity 99))`)
	assert.Equal(t, Fixnum(99), got)

	// an unrelated, uncaught exception in a later form must propagate
	// normally.
	form, err := ReadFromString(u, `(car 5)`)
	require.NoError(t, err)
	_, err = u.Eval(form)
	require.Error(t, err)
}

func TestEvalMacroExpansion(t *testing.T) {
	u := newTestUniverse(t)
	mustEval(t, u, `
		(set my-macro-fn (lambda (a b) (list (quote +) a b)))`)
	sym := u.Current.Intern("my-if-add")
	fn, _ := u.Eval(mustReadForm(t, u, "my-macro-fn"))
	sym.SetMacro(fn)

	got := mustEval(t, u, "(my-if-add 2 3)")
	assert.Equal(t, Fixnum(5), got)
}

func mustReadForm(t *testing.T, u *Universe, src string) Value {
	t.Helper()
	v, err := ReadFromString(u, src)
	require.NoError(t, err)
	return v
}

func TestEvalQuasiquote(t *testing.T) {
	u := newTestUniverse(t)
	mustEval(t, u, "(set x 10)")
	mustEval(t, u, "(set lst (list 1 2 3))")
	got := mustEval(t, u, "`(a ,x ,@lst b)")
	want := mustEval(t, u, "(list (quote a) 10 1 2 3 (quote b))")
	assert.Equal(t, Write(want), Write(got))
}

func TestEvalReadFromString(t *testing.T) {
	u := newTestUniverse(t)
	got := mustEval(t, u, `(read-from-string "(1 . 2)")`)
	pair, ok := got.(*Pair)
	require.True(t, ok)
	assert.Equal(t, Fixnum(1), pair.Head)
	assert.Equal(t, Fixnum(2), pair.Tail)
}

func TestEvalTagbodyGoto(t *testing.T) {
	u := newTestUniverse(t)
	mustEval(t, u, `(set n 0)`)
	mustEval(t, u, `
		(tagbody
		  top
		  (set n (+ n 1))
		  (if (< n 5) (goto top)))`)
	assert.Equal(t, Fixnum(5), mustEval(t, u, "n"))
}
