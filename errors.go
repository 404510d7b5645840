// errors.go: typed diagnostics and caret-snippet rendering
//
// Every failure in the pipeline surfaces as a single *Error whose Kind names
// the detection point. Lexical and parse errors carry the byte offset of the
// offending input; runtime errors carry the operator that failed.
//
// WrapErrorWithSource turns a lexical/parse *Error into a readable snippet
// with a caret under the offending column:
//
//	PARSE ERROR at 1:4: unbalanced brackets: ')' has no matching '('
//
//	   1 | 2+3)
//	     |    ^
//
// Any other error is returned unchanged.
package pratt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind distinguishes the detection points of the lexer, parser and
// evaluator.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota

	// lexical
	ErrUnexpectedByte

	// syntactic
	ErrUnexpectedToken
	ErrUnexpectedEnd
	ErrExpectedOperator
	ErrInvalidFixity
	ErrUnmatchedClose
	ErrUnclosedBracket
	ErrTooDeep

	// arithmetic
	ErrNegativeExponent
	ErrFactorialDomain
	ErrDivisionByZero
)

var errorKindNames = [...]string{
	ErrUnknown:          "unknown",
	ErrUnexpectedByte:   "unexpected byte",
	ErrUnexpectedToken:  "unexpected token",
	ErrUnexpectedEnd:    "unexpected end of input",
	ErrExpectedOperator: "expected operator",
	ErrInvalidFixity:    "invalid operator position",
	ErrUnmatchedClose:   "unmatched ')'",
	ErrUnclosedBracket:  "unclosed '('",
	ErrTooDeep:          "nesting too deep",
	ErrNegativeExponent: "negative exponent",
	ErrFactorialDomain:  "factorial out of range",
	ErrDivisionByZero:   "division by zero",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Class returns the snippet header for the kind.
func (k ErrorKind) Class() string {
	switch {
	case k == ErrUnexpectedByte:
		return "LEXICAL ERROR"
	case k >= ErrUnexpectedToken && k <= ErrTooDeep:
		return "PARSE ERROR"
	case k >= ErrNegativeExponent:
		return "RUNTIME ERROR"
	}
	return "ERROR"
}

// Error is the diagnostic produced by every stage. Only the context fields
// relevant to Kind are set.
type Error struct {
	Kind ErrorKind
	Pos  int // byte offset into the source; -1 when unknown
	Msg  string

	Byte   byte   // ErrUnexpectedByte
	Tok    Token  // offending token for parse errors
	Op     Op     // ErrInvalidFixity and runtime errors
	Fixity Fixity // ErrInvalidFixity: the position the operator was used in
}

func (e *Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %s", e.Kind.Class(), e.Msg)
	}
	return fmt.Sprintf("%s at byte %d: %s", e.Kind.Class(), e.Pos, e.Msg)
}

// KindOf returns the Kind of the *Error in err's chain, or ErrUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrUnknown
}

// IsIncomplete reports whether err means the input ended early, so that
// more text could still make it valid.
func IsIncomplete(err error) bool {
	switch KindOf(err) {
	case ErrUnexpectedEnd, ErrUnclosedBracket:
		return true
	}
	return false
}

/* ===========================
   PUBLIC API: rendering
   =========================== */

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of src. Lexical and parse errors with a known position are
// rendered; all other errors are returned as-is.
func WrapErrorWithSource(err error, src string) error {
	var e *Error
	if !errors.As(err, &e) || e.Pos < 0 || e.Kind.Class() == "RUNTIME ERROR" {
		return err
	}
	line, col := posAtByte(src, e.Pos)
	return &snippetError{
		err: e,
		msg: prettyErrorString(src, e.Kind.Class(), line, col, e.Msg),
	}
}

// snippetError keeps the original *Error reachable through errors.As.
type snippetError struct {
	err *Error
	msg string
}

func (s *snippetError) Error() string { return s.msg }
func (s *snippetError) Unwrap() error { return s.err }

/* ===========================
   PRIVATE: helpers & rendering
   =========================== */

// posAtByte converts a byte offset to a 1-based line and column.
func posAtByte(src string, b int) (int, int) {
	if b > len(src) {
		b = len(src)
	}
	line := 1 + strings.Count(src[:b], "\n")
	lastNL := strings.LastIndex(src[:b], "\n")
	if lastNL < 0 {
		return line, b + 1
	}
	return line, b - lastNL
}

// prettyErrorString builds a snippet with a header and a caret. It shows at
// most one previous and one next line when available.
func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
