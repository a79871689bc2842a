package eloquent

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderAtoms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"positive fixnum", "42", Fixnum(42)},
		{"negative fixnum", "-7", Fixnum(-7)},
		{"float", "3.5", &Float{Value: 3.5}},
		{"true", "#t", True},
		{"false", "#f", False},
		{"named char", "#\\space", Character(' ')},
		{"literal char", "#\\x", Character('x')},
		{"string", `"hi\n"`, NewString("hi\n")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := NewUniverse()
			v, err := ReadFromString(u, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestReaderSymbolsAreInterned(t *testing.T) {
	u := NewUniverse()
	a, err := ReadFromString(u, "foo")
	require.NoError(t, err)
	b, err := ReadFromString(u, "foo")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestReaderLists(t *testing.T) {
	u := NewUniverse()

	v, err := ReadFromString(u, "(1 2 3)")
	require.NoError(t, err)
	items, tail := listToSlice(v)
	assert.Equal(t, []Value{Fixnum(1), Fixnum(2), Fixnum(3)}, items)
	assert.Equal(t, EmptyList, tail)

	v, err = ReadFromString(u, "(1 . 2)")
	require.NoError(t, err)
	pair, ok := v.(*Pair)
	require.True(t, ok)
	assert.Equal(t, Fixnum(1), pair.Head)
	assert.Equal(t, Fixnum(2), pair.Tail)

	v, err = ReadFromString(u, "()")
	require.NoError(t, err)
	assert.Equal(t, EmptyList, v)
}

func TestReaderVector(t *testing.T) {
	u := NewUniverse()
	v, err := ReadFromString(u, "[1 2 3]")
	require.NoError(t, err)
	vec, ok := v.(*Vector)
	require.True(t, ok)
	assert.Equal(t, 3, vec.Len())
}

func TestReaderQuoteFamily(t *testing.T) {
	u := NewUniverse()

	v, err := ReadFromString(u, "'x")
	require.NoError(t, err)
	assert.Equal(t, Write(Cons(u.specials.quote, Cons(u.PkgUser.Intern("x"), EmptyList))), Write(v))

	v, err = ReadFromString(u, "`(a ,b ,@c)")
	require.NoError(t, err)
	assert.Equal(t, "`(a ,b ,@c)", Write(v))
}

func TestReaderComments(t *testing.T) {
	u := NewUniverse()
	v, err := ReadFromString(u, "; a comment\n42")
	require.NoError(t, err)
	assert.Equal(t, Fixnum(42), v)
}

func TestReaderEOF(t *testing.T) {
	u := NewUniverse()
	_, err := ReadFromString(u, "   ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderUnmatchedCloseParen(t *testing.T) {
	u := NewUniverse()
	_, err := ReadFromString(u, ")")
	require.Error(t, err)
	var eerr EloquentError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, TagReaderError, eerr.Tag)
}
