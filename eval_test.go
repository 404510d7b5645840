package pratt

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"2^3^2", 512},
		{"2-3-2", -3},
		{"2+2*3", 8},
		{"(2+2)*3", 12},
		{"-5!", -120},
		{"20!", 2432902008176640000},
		{"0!", 1},
		{"3!!", 720},
		{"7/2", 3},
		{"-7/2", -3},
		{"7/-2", -3},
		{"2^10", 1024},
		{"2^0", 1},
		{"0^0", 1},
		{"1_000 * 3", 3000},
		{"--5", 5},
		{"+5", 5},
		{"-2^2", -4},
		{"2^3!", 64},
		{"(1+2)!", 6},
		{"2^62", 4611686018427387904},
		{"10 - 2 * 3 ^ 2 / 6 + 4!", 10 - 2*9/6 + 24},
	}
	for _, tc := range cases {
		got, err := Evaluate(tc.src)
		require.NoError(t, err, tc.src)
		assert.Equal(t, tc.want, got, tc.src)
	}
}

func TestEvaluate_Wraparound(t *testing.T) {
	got, err := Evaluate("9223372036854775807 + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), got)

	got, err = Evaluate("2^63")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), got)
}

func TestEvaluate_Errors(t *testing.T) {
	cases := []struct {
		src  string
		kind ErrorKind
		op   Op
	}{
		{"21!", ErrFactorialDomain, OpFact},
		{"(0-1)!", ErrFactorialDomain, OpFact},
		{"2^-1", ErrNegativeExponent, OpExp},
		{"1/0", ErrDivisionByZero, OpDiv},
		{"1/(2-2)", ErrDivisionByZero, OpDiv},
		// left operand is evaluated before the right one
		{"1/0 + (0-1)!", ErrDivisionByZero, OpDiv},
		{"(0-1)! + 1/0", ErrFactorialDomain, OpFact},
	}
	for _, tc := range cases {
		got, err := Evaluate(tc.src)
		require.Error(t, err, tc.src)
		assert.Zero(t, got, tc.src)

		var e *Error
		require.ErrorAs(t, err, &e, tc.src)
		assert.Equal(t, tc.kind, e.Kind, tc.src)
		assert.Equal(t, tc.op, e.Op, tc.src)
		assert.Equal(t, -1, e.Pos, tc.src)
		assert.True(t, strings.HasPrefix(err.Error(), "RUNTIME ERROR: "), err.Error())
	}
}

func TestEval_HandBuiltTree(t *testing.T) {
	e := &Binary{
		Op: OpSub,
		X:  &Unary{Op: OpFact, X: &Literal{Value: 4}},
		Y:  &Binary{Op: OpExp, X: &Literal{Value: 3}, Y: &Literal{Value: 2}},
	}
	v, err := Eval(e)
	require.NoError(t, err)
	assert.Equal(t, int64(24-9), v)
}

func TestEval_InvalidNodes(t *testing.T) {
	_, err := Eval(&Unary{Op: OpMul, X: &Literal{Value: 1}})
	assert.Equal(t, ErrInvalidFixity, KindOf(err))

	_, err = Eval(&Binary{Op: OpFact, X: &Literal{Value: 1}, Y: &Literal{Value: 2}})
	assert.Equal(t, ErrInvalidFixity, KindOf(err))

	_, err = Eval(nil)
	require.Error(t, err)
}

func TestEval_DeepLeftChain(t *testing.T) {
	n := 100000
	v, err := Evaluate("0" + strings.Repeat("+1", n))
	require.NoError(t, err)
	assert.Equal(t, int64(n), v)
}

func TestEval_DeepBrackets(t *testing.T) {
	// n brackets plus the prefix '-' and its operand use n+2 frames
	n := MaxNesting - 2
	v, err := Evaluate(strings.Repeat("(", n) + "-3" + strings.Repeat(")", n))
	require.NoError(t, err)
	assert.Equal(t, int64(-3), v)
}

func naivePow(x, p int64) int64 {
	res := int64(1)
	for i := int64(0); i < p; i++ {
		res *= x
	}
	return res
}

func TestPowi(t *testing.T) {
	v, err := Powi(2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), v)

	for x := int64(-7); x <= 7; x++ {
		for p := int64(0); p <= 40; p++ {
			v, err := Powi(x, p)
			require.NoError(t, err)
			require.Equal(t, naivePow(x, p), v, "%d^%d", x, p)
		}
	}
}

func TestPowi_Identities(t *testing.T) {
	for _, x := range []int64{math.MinInt64, -1000, -1, 0, 1, 2, 99, math.MaxInt64} {
		v, err := Powi(x, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v, "%d^0", x)

		v, err = Powi(x, 1)
		require.NoError(t, err)
		assert.Equal(t, x, v, "%d^1", x)
	}
}

func TestPowi_HugeExponent(t *testing.T) {
	v, err := Powi(1, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = Powi(-1, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)

	v, err = Powi(0, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestPowi_NegativeExponent(t *testing.T) {
	_, err := Powi(2, -1)
	assert.Equal(t, ErrNegativeExponent, KindOf(err))
}

func TestFactorial(t *testing.T) {
	want := int64(1)
	for n := int64(0); n <= MaxFactorial; n++ {
		if n > 0 {
			want *= n
		}
		got, err := Factorial(n)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%d!", n)
	}

	for _, n := range []int64{-1, math.MinInt64, MaxFactorial + 1, math.MaxInt64} {
		_, err := Factorial(n)
		assert.Equal(t, ErrFactorialDomain, KindOf(err), "%d!", n)
	}
}
