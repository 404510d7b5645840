package pratt

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
)

// prefixNode is the grammar of the prefix notation written by FormatExpr:
//
//	node := "-"? Int | "(" op node+ ")"
type prefixNode struct {
	Int  *string     `  @("-"? Int)`
	List *prefixList `| "(" @@ ")"`
}

type prefixList struct {
	Op   string        `@("+" | "-" | "*" | "/" | "^" | "!")`
	Args []*prefixNode `@@+`
}

var prefixParser = participle.MustBuild[prefixNode]()

// ReadPrefix parses the output of FormatExpr back into a tree. A list with
// one argument becomes a Unary, with two a Binary; the operator must be
// valid in that position.
func ReadPrefix(src string) (Expr, error) {
	n, err := prefixParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("read prefix: %w", err)
	}
	return n.expr()
}

func (n *prefixNode) expr() (Expr, error) {
	if n.Int != nil {
		v, err := strconv.ParseInt(*n.Int, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("read prefix: literal %q: %w", *n.Int, err)
		}
		return &Literal{Value: v}, nil
	}

	l := n.List
	op, _ := LookupOp(l.Op[0])
	args := make([]Expr, 0, len(l.Args))
	for _, a := range l.Args {
		x, err := a.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
	}

	switch len(args) {
	case 1:
		_, pre := op.PrefixBindingPower()
		_, post := op.PostfixBindingPower()
		if pre || post {
			return &Unary{Op: op, X: args[0]}, nil
		}
		return nil, readFixityErr(op, Prefix)
	case 2:
		if _, _, ok := op.InfixBindingPower(); ok {
			return &Binary{Op: op, X: args[0], Y: args[1]}, nil
		}
		return nil, readFixityErr(op, Infix)
	}
	return nil, fmt.Errorf("read prefix: operator '%s' given %d operands", op, len(args))
}

func readFixityErr(op Op, f Fixity) error {
	return &Error{
		Kind:   ErrInvalidFixity,
		Pos:    -1,
		Op:     op,
		Fixity: f,
		Msg:    fmt.Sprintf("operator '%s' (%s) cannot be used as a %s operator", op, op.Name(), f),
	}
}
