// parser.go: Pratt parser for arithmetic expressions.
//
// OVERVIEW
// --------
// The parser consumes the token stream produced by lexer.go and builds the
// tree defined in ast.go. It is a single precedence-climbing routine,
// parseExpr(minBP, depth), driven entirely by the operator table in ops.go:
//
//   - The seed (left-hand side) is a literal, a bracketed sub-expression
//     parsed with minBP=0, or a prefix operator applied to
//     parseExpr(prefixPower).
//   - The loop then looks at the next operator. A postfix power >= minBP
//     wraps the left-hand side and loops again; an infix (l, r) pair with
//     l >= minBP consumes the operator and parses the right-hand side with
//     minBP=r. Anything looser is left for an enclosing frame.
//
// Associativity falls out of the (l, r) pairs: l < r groups to the left,
// l > r groups to the right.
//
// Bracket depth is threaded through every call so that a ')' can be told
// apart: at depth 0 it is unbalanced, otherwise it ends the current frame
// and the bracket case of the seed consumes it.
//
// Errors are fail-fast: the first malformed construct aborts the parse and
// no partial tree is returned.
package pratt

import "fmt"

// MaxNesting bounds the number of nested parseExpr frames (brackets, prefix
// chains, right-associative chains). Deeper input fails with ErrTooDeep.
const MaxNesting = 10000

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parse lexes and parses a complete expression.
func Parse(src string) (Expr, error) {
	lex := NewLexer([]byte(src))
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, offsets: lex.offsets}
	return p.parse()
}

// ParseTokens parses an already-lexed token stream. Errors carry Pos -1
// since tokens hold no source positions.
func ParseTokens(toks []Token) (Expr, error) {
	p := &parser{toks: toks}
	return p.parse()
}

//// END_OF_PUBLIC

type parser struct {
	toks    []Token
	offsets []int // parallel to toks when parsing source; nil otherwise
	i       int
	frames  int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) tokAt(i int) Token {
	if i >= len(p.toks) {
		return Token{Type: EOF}
	}
	return p.toks[i]
}

func (p *parser) peek() Token { return p.tokAt(p.i) }

func (p *parser) next() Token {
	t := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *parser) posOf(i int) int {
	if p.offsets == nil {
		return -1
	}
	if i >= len(p.offsets) {
		if len(p.offsets) == 0 {
			return 0
		}
		return p.offsets[len(p.offsets)-1]
	}
	return p.offsets[i]
}

func (p *parser) errAt(kind ErrorKind, i int, msg string) *Error {
	return &Error{Kind: kind, Pos: p.posOf(i), Tok: p.tokAt(i), Msg: msg}
}

func (p *parser) fixityErr(i int, f Fixity) *Error {
	e := p.errAt(ErrInvalidFixity, i, "")
	e.Op = e.Tok.Op
	e.Fixity = f
	e.Msg = fmt.Sprintf("operator '%s' (%s) cannot be used as a %s operator", e.Op, e.Op.Name(), f)
	return e
}

func describe(t Token) string {
	switch t.Type {
	case EOF:
		return "end of input"
	case INTEGER:
		return fmt.Sprintf("integer %d", t.Int)
	case OPERATOR:
		return fmt.Sprintf("operator '%s'", t.Op)
	default:
		return fmt.Sprintf("'%s'", t.Type)
	}
}

// ───────────────────────────── precedence climbing ─────────────────────────

func (p *parser) parse() (Expr, error) {
	e, err := p.parseExpr(0, 0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Type != EOF {
		return nil, p.errAt(ErrUnexpectedToken, p.i, fmt.Sprintf("unexpected %s after expression", describe(t)))
	}
	return e, nil
}

func (p *parser) parseExpr(minBP uint8, depth int) (Expr, error) {
	p.frames++
	defer func() { p.frames-- }()
	if p.frames > MaxNesting {
		return nil, p.errAt(ErrTooDeep, p.i, fmt.Sprintf("expression is nested more than %d levels deep", MaxNesting))
	}

	// ---- seed ----
	start := p.i
	t := p.next()

	var lhs Expr
	switch t.Type {
	case INTEGER:
		lhs = &Literal{Value: t.Int}

	case LROUND:
		inner, err := p.parseExpr(0, depth+1)
		if err != nil {
			return nil, err
		}
		if p.peek().Type != RROUND {
			return nil, p.errAt(ErrUnclosedBracket, start, "unbalanced brackets: '(' is never closed")
		}
		p.next()
		lhs = inner

	case OPERATOR:
		rbp, ok := t.Op.PrefixBindingPower()
		if !ok {
			return nil, p.fixityErr(start, Prefix)
		}
		x, err := p.parseExpr(rbp, depth)
		if err != nil {
			return nil, err
		}
		lhs = &Unary{Op: t.Op, X: x}

	case EOF:
		return nil, p.errAt(ErrUnexpectedEnd, start, "expected a number, '(' or prefix operator, got end of input")

	default:
		return nil, p.errAt(ErrUnexpectedToken, start, fmt.Sprintf("expected a number, '(' or prefix operator, got %s", describe(t)))
	}

	// ---- operators ----
	for {
		at := p.i
		t := p.peek()
		switch t.Type {
		case EOF:
			return lhs, nil
		case RROUND:
			if depth == 0 {
				return nil, p.errAt(ErrUnmatchedClose, at, "unbalanced brackets: ')' has no matching '('")
			}
			return lhs, nil
		case OPERATOR:
		default:
			return nil, p.errAt(ErrExpectedOperator, at, fmt.Sprintf("expected operator, got %s", describe(t)))
		}

		op := t.Op
		lbp, hasPostfix := op.PostfixBindingPower()
		if hasPostfix && lbp >= minBP {
			p.next()
			lhs = &Unary{Op: op, X: lhs}
			continue
		}

		lbp, rbp, hasInfix := op.InfixBindingPower()
		if !hasInfix {
			if hasPostfix {
				// too loose for this frame; an enclosing one applies it
				return lhs, nil
			}
			return nil, p.fixityErr(at, Infix)
		}
		if lbp < minBP {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseExpr(rbp, depth)
		if err != nil {
			return nil, err
		}
		lhs = &Binary{Op: op, X: lhs, Y: rhs}
	}
}
