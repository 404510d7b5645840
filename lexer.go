package pratt

import (
	"fmt"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota
	INTEGER
	OPERATOR
	LROUND // "("
	RROUND // ")"
)

var tokenTypeNames = [...]string{
	EOF:      "<eof>",
	INTEGER:  "Int",
	OPERATOR: "Op",
	LROUND:   "(",
	RROUND:   ")",
}

func (tt TokenType) String() string {
	if int(tt) < len(tokenTypeNames) {
		return tokenTypeNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a lexical token. Int is set for INTEGER tokens and Op for
// OPERATOR tokens; the other fields are zero.
type Token struct {
	Type TokenType
	Int  int64
	Op   Op
}

func (t Token) String() string {
	switch t.Type {
	case INTEGER:
		return fmt.Sprintf("Int: %d", t.Int)
	case OPERATOR:
		return "Op: " + t.Op.String()
	default:
		return t.Type.String()
	}
}

// FormatTokens renders a token slice as "[Int: 2, Op: +, Int: 3]". The
// trailing EOF token is left out.
func FormatTokens(toks []Token) string {
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		if t.Type == EOF {
			break
		}
		parts = append(parts, t.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Lexer scans an expression into tokens.
type Lexer struct {
	src     []byte
	cur     int
	tokens  []Token
	offsets []int // byte offset of tokens[i], for error reporting only
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src}
}

// Tokenize scans src in full. The result always ends with one EOF token.
func Tokenize(src []byte) ([]Token, error) {
	return NewLexer(src).Scan()
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.peek()
		if !ok || !isSpace(b) {
			return
		}
		l.cur++
	}
}

func (l *Lexer) addToken(tok Token, start int) Token {
	l.tokens = append(l.tokens, tok)
	l.offsets = append(l.offsets, start)
	return tok
}

// scanNumber consumes a run of digits and '_' separators. The accumulator
// wraps silently on overflow.
func (l *Lexer) scanNumber() int64 {
	var acc int64
	for {
		b, ok := l.peek()
		if !ok || !(isDigit(b) || b == '_') {
			return acc
		}
		l.cur++
		if b == '_' {
			continue
		}
		acc = acc*10 + int64(b-'0')
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()
	start := l.cur

	b, ok := l.peek()
	if !ok {
		return l.addToken(Token{Type: EOF}, start), nil
	}

	if op, ok := LookupOp(b); ok {
		l.cur++
		return l.addToken(Token{Type: OPERATOR, Op: op}, start), nil
	}
	switch {
	case b == '(':
		l.cur++
		return l.addToken(Token{Type: LROUND}, start), nil
	case b == ')':
		l.cur++
		return l.addToken(Token{Type: RROUND}, start), nil
	case isDigit(b):
		return l.addToken(Token{Type: INTEGER, Int: l.scanNumber()}, start), nil
	}

	return Token{}, &Error{
		Kind: ErrUnexpectedByte,
		Pos:  start,
		Byte: b,
		Msg:  fmt.Sprintf("unexpected character %q (0x%02x)", b, b),
	}
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
