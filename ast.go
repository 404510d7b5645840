package pratt

import (
	"strconv"
	"strings"
)

// Expr is a node of the syntax tree: *Literal, *Unary or *Binary.
// Nodes are never mutated after the parser builds them.
type Expr interface {
	String() string
	exprNode()
}

// Literal is an integer constant.
type Literal struct {
	Value int64
}

// Unary applies Op to X. It covers both prefix and postfix applications;
// the operator alone decides how it evaluates.
type Unary struct {
	Op Op
	X  Expr
}

// Binary applies an infix Op to X and Y.
type Binary struct {
	Op   Op
	X, Y Expr
}

func (*Literal) exprNode() {}
func (*Unary) exprNode()   {}
func (*Binary) exprNode()  {}

func (e *Literal) String() string { return FormatExpr(e) }
func (e *Unary) String() string   { return FormatExpr(e) }
func (e *Binary) String() string  { return FormatExpr(e) }

// FormatExpr renders e in parenthesized prefix notation:
//
//	2+3*4  → (+ 2 (* 3 4))
//	-5!    → (- (! 5))
func FormatExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Literal:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *Unary:
		b.WriteByte('(')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		writeExpr(b, n.X)
		b.WriteByte(')')
	case *Binary:
		b.WriteByte('(')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		writeExpr(b, n.X)
		b.WriteByte(' ')
		writeExpr(b, n.Y)
		b.WriteByte(')')
	default:
		b.WriteString("<none>")
	}
}
