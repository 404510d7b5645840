package pratt

import "fmt"

// MaxFactorial is the largest n for which n! fits in an int64.
const MaxFactorial = 20

////////////////////////////////////////////////////////////////////////////////
//                         PRIVATE PANIC / ERROR HELPERS
////////////////////////////////////////////////////////////////////////////////

// rtErr is raised by panic inside eval and turned into an *Error by Eval.
type rtErr struct {
	kind ErrorKind
	op   Op
	msg  string
}

func fail(kind ErrorKind, op Op, format string, args ...any) {
	panic(rtErr{kind: kind, op: op, msg: fmt.Sprintf(format, args...)})
}

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Evaluate lexes, parses and evaluates src.
func Evaluate(src string) (int64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Eval(e)
}

// Eval reduces e to a single integer. Operands are evaluated left before
// right. Overflow on + - * wraps; division truncates toward zero.
func Eval(e Expr) (v int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(rtErr)
			if !ok {
				panic(r)
			}
			v, err = 0, &Error{Kind: sig.kind, Pos: -1, Op: sig.op, Msg: sig.msg}
		}
	}()
	return eval(e), nil
}

// Powi raises x to the power p using repeated squaring. It fails for p < 0.
func Powi(x, p int64) (int64, error) {
	if p < 0 {
		return 0, &Error{
			Kind: ErrNegativeExponent,
			Pos:  -1,
			Op:   OpExp,
			Msg:  fmt.Sprintf("integer %d cannot be raised to negative power %d", x, p),
		}
	}
	return powu(x, uint64(p)), nil
}

// Factorial returns n!. It fails for n < 0 and for n > MaxFactorial.
func Factorial(n int64) (int64, error) {
	if n < 0 || n > MaxFactorial {
		return 0, &Error{
			Kind: ErrFactorialDomain,
			Pos:  -1,
			Op:   OpFact,
			Msg:  fmt.Sprintf("factorial of %d is undefined or overflows (valid range 0..%d)", n, MaxFactorial),
		}
	}
	res := int64(1)
	for i := int64(2); i <= n; i++ {
		res *= i
	}
	return res, nil
}

//// END_OF_PUBLIC

func eval(e Expr) int64 {
	switch n := e.(type) {
	case *Literal:
		return n.Value
	case *Unary:
		return applyUnary(n.Op, eval(n.X))
	case *Binary:
		x := eval(n.X)
		y := eval(n.Y)
		return applyBinary(n.Op, x, y)
	case nil:
		fail(ErrUnknown, OpNone, "attempt to eval a nil expression")
	}
	fail(ErrUnknown, OpNone, "attempt to eval unknown node %T", e)
	return 0
}

func applyUnary(op Op, x int64) int64 {
	switch op {
	case OpAdd:
		return x
	case OpSub:
		return -x
	case OpFact:
		v, err := Factorial(x)
		if err != nil {
			raise(err)
		}
		return v
	}
	fail(ErrInvalidFixity, op, "invalid unary operator '%s'", op)
	return 0
}

func applyBinary(op Op, x, y int64) int64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		if y == 0 {
			fail(ErrDivisionByZero, op, "division of %d by zero", x)
		}
		return x / y
	case OpExp:
		v, err := Powi(x, y)
		if err != nil {
			raise(err)
		}
		return v
	}
	fail(ErrInvalidFixity, op, "invalid infix operator '%s'", op)
	return 0
}

// raise rethrows an *Error from a numeric helper inside eval.
func raise(err error) {
	e := err.(*Error)
	panic(rtErr{kind: e.Kind, op: e.Op, msg: e.Msg})
}

// powu special-cases small exponents, then squares up to the largest power
// of two not above p and multiplies in the remainder.
func powu(x int64, p uint64) int64 {
	switch p {
	case 0:
		return 1
	case 1:
		return x
	case 2:
		return x * x
	case 3:
		return x * x * x
	case 4:
		return x * x * x * x
	}

	res := x
	pCur := uint64(1)
	for pCur <= p/2 {
		res *= res
		pCur *= 2
	}
	return res * powu(x, p-pCur)
}
