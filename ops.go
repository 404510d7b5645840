package pratt

import "fmt"

// Op identifies an operator. The zero value OpNone is not a valid operator.
type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpExp
	OpFact
	numOps
)

// bindingPower is one optional (left, right) pair. A zero pair means the
// operator is invalid in that position; real powers start at 1.
type bindingPower struct {
	left, right uint8
}

func (bp bindingPower) valid() bool { return bp != bindingPower{} }

type opInfo struct {
	symbol  byte
	name    string
	infix   bindingPower
	prefix  bindingPower // left unused
	postfix bindingPower // right unused
}

// opTable holds every precedence and associativity decision the parser
// makes. Higher binds tighter; left > right makes an infix operator
// right-associative.
var opTable = [numOps]opInfo{
	OpNone: {name: "NoOp"},
	OpAdd:  {symbol: '+', name: "Add", infix: bindingPower{1, 2}, prefix: bindingPower{0, 5}},
	OpSub:  {symbol: '-', name: "Sub", infix: bindingPower{1, 2}, prefix: bindingPower{0, 5}},
	OpMul:  {symbol: '*', name: "Mul", infix: bindingPower{3, 4}},
	OpDiv:  {symbol: '/', name: "Div", infix: bindingPower{3, 4}},
	OpExp:  {symbol: '^', name: "Exp", infix: bindingPower{8, 7}},
	OpFact: {symbol: '!', name: "Fact", postfix: bindingPower{9, 0}},
}

var opBySymbol [256]Op

func init() {
	for op := OpNone + 1; op < numOps; op++ {
		opBySymbol[opTable[op].symbol] = op
	}
}

func (o Op) info() opInfo {
	if o >= numOps {
		return opInfo{}
	}
	return opTable[o]
}

// LookupOp returns the operator whose symbol is b.
func LookupOp(b byte) (Op, bool) {
	op := opBySymbol[b]
	return op, op != OpNone
}

// Ops lists every valid operator in table order.
func Ops() []Op {
	out := make([]Op, 0, numOps-1)
	for op := OpNone + 1; op < numOps; op++ {
		out = append(out, op)
	}
	return out
}

func (o Op) Symbol() byte { return o.info().symbol }
func (o Op) Name() string { return o.info().name }

func (o Op) String() string {
	if o == OpNone || o >= numOps {
		return fmt.Sprintf("<op %d>", uint8(o))
	}
	return string(o.info().symbol)
}

// InfixBindingPower reports the (left, right) powers of o between two
// operands.
func (o Op) InfixBindingPower() (left, right uint8, ok bool) {
	bp := o.info().infix
	return bp.left, bp.right, bp.valid()
}

// PrefixBindingPower reports the power o applies to the operand after it.
func (o Op) PrefixBindingPower() (right uint8, ok bool) {
	bp := o.info().prefix
	return bp.right, bp.valid()
}

// PostfixBindingPower reports the power o applies to the operand before it.
func (o Op) PostfixBindingPower() (left uint8, ok bool) {
	bp := o.info().postfix
	return bp.left, bp.valid()
}

// Fixity is the position of an operator relative to its operands.
type Fixity int

const (
	Prefix Fixity = iota + 1
	Infix
	Postfix
)

func (f Fixity) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	}
	return "unknown fixity"
}
