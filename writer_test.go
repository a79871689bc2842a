package eloquent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRoundTrip(t *testing.T) {
	srcs := []string{
		"42",
		"-3",
		"3.5",
		"#t",
		"#f",
		`"hello"`,
		"(1 2 3)",
		"(1 . 2)",
		"(1 2 . 3)",
		"[1 2 3]",
		"foo",
		"'x",
		"`(a ,b ,@c)",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			u := NewUniverse()
			v, err := ReadFromString(u, src)
			require.NoError(t, err)
			out := Write(v)

			v2, err := ReadFromString(u, out)
			require.NoError(t, err)
			assert.Equal(t, Write(v2), out)
		})
	}
}

// TestWriterBooleanRoundTrip drives the actual True/False singletons
// (spec §8 Testable Property 1, read(write(v)) = v under equal?)
// through evaluation rather than reading the literal token "true" or
// "false" as a symbol, which is never what the reader produces for a
// boolean.
func TestWriterBooleanRoundTrip(t *testing.T) {
	u := newTestUniverse(t)

	trueVal := mustEval(t, u, "(< 1 2)")
	require.Same(t, True, trueVal)
	assert.Equal(t, "#t", Write(trueVal))
	v2, err := ReadFromString(u, Write(trueVal))
	require.NoError(t, err)
	assert.Same(t, True, v2)

	falseVal := mustEval(t, u, "(> 1 2)")
	require.Same(t, False, falseVal)
	assert.Equal(t, "#f", Write(falseVal))
	v3, err := ReadFromString(u, Write(falseVal))
	require.NoError(t, err)
	assert.Same(t, False, v3)
}

func TestWriterOpaqueValues(t *testing.T) {
	assert.Equal(t, "#<undefined>", Write(Undefined))
	assert.Equal(t, "#<eof>", Write(EOFValue))
}
