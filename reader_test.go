package pratt

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roundTripCorpus = []string{
	"1",
	"2+3*4",
	"2^3^2",
	"2-3-2",
	"-5!",
	"(1+2)!",
	"--+1",
	"8/4/2",
	"2^-1",
	"21!",
	"1/(2-2)",
	"10 - 2 * 3 ^ 2 / 6 + 4!",
	"9223372036854775808",
}

// randExpr builds an infix expression from the seeded source r.
func randExpr(r *rand.Rand, depth int) string {
	if depth == 0 || r.Intn(4) == 0 {
		return fmt.Sprint(r.Intn(12))
	}
	switch r.Intn(6) {
	case 0:
		return "(" + randExpr(r, depth-1) + ")"
	case 1:
		return "-" + randExpr(r, depth-1)
	case 2:
		return "(" + randExpr(r, depth-1) + ")!"
	default:
		ops := "+-*/^"
		op := ops[r.Intn(len(ops))]
		return randExpr(r, depth-1) + " " + string(op) + " " + randExpr(r, depth-1)
	}
}

func checkRoundTrip(t *testing.T, src string) {
	t.Helper()
	e, err := Parse(src)
	require.NoError(t, err, src)

	printed := FormatExpr(e)
	back, err := ReadPrefix(printed)
	require.NoError(t, err, "%s => %s", src, printed)
	require.Equal(t, printed, FormatExpr(back), src)

	v1, err1 := Eval(e)
	v2, err2 := Eval(back)
	assert.Equal(t, v1, v2, src)
	assert.Equal(t, KindOf(err1), KindOf(err2), src)
}

func TestReadPrefix_RoundTrip_Corpus(t *testing.T) {
	for _, src := range roundTripCorpus {
		checkRoundTrip(t, src)
	}
}

func TestReadPrefix_RoundTrip_Random(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		checkRoundTrip(t, randExpr(r, 5))
	}
}

func TestReadPrefix_MinInt64(t *testing.T) {
	e, err := ReadPrefix("-9223372036854775808")
	require.NoError(t, err)
	assert.Equal(t, &Literal{Value: math.MinInt64}, e)
}

func TestReadPrefix_Shapes(t *testing.T) {
	e, err := ReadPrefix("(! (- 3))")
	require.NoError(t, err)
	assert.Equal(t, &Unary{Op: OpFact, X: &Unary{Op: OpSub, X: &Literal{Value: 3}}}, e)

	e, err = ReadPrefix("(^ 2 (^ 3 2))")
	require.NoError(t, err)
	v, err := Eval(e)
	require.NoError(t, err)
	assert.Equal(t, int64(512), v)
}

func TestReadPrefix_Errors(t *testing.T) {
	_, err := ReadPrefix("(* 5)")
	assert.Equal(t, ErrInvalidFixity, KindOf(err))

	_, err = ReadPrefix("(! 1 2)")
	assert.Equal(t, ErrInvalidFixity, KindOf(err))

	_, err = ReadPrefix("(+ 1 2 3)")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "3 operands"), err.Error())

	for _, src := range []string{"(", "(+)", "(% 1 2)", "1 2"} {
		_, err := ReadPrefix(src)
		assert.Error(t, err, "%q", src)
	}
}
