package calc

import (
	"errors"
	"strconv"
)

// ErrGrammar matches every error that results from input which does not
// conform to the expression grammar, using errors.Is.
var ErrGrammar = errors.New("grammar violation")

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the position of the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Expected() string {
	if err.Kind == "" {
		return "number, variable, operator, or parenthesis"
	}
	return err.Kind
}

func (err *LexError) Is(target error) bool {
	return target == ErrGrammar
}

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
	// Reserved is whether the operator is reserved but disabled.
	Reserved bool
}

func (err *OperatorError) Error() string {
	if err.Reserved {
		return errpos(err.Col, "reserved operator "+strconv.Quote(err.Operator)+" is not supported")
	}
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Expected() string {
	if err.Unary {
		return "operand"
	}
	return "operator"
}

func (err *OperatorError) Is(target error) bool {
	return target == ErrGrammar
}

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Open is true when an open parenthesis was never closed and false when a
	// close parenthesis had no open parenthesis.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "open bracket ( with no close bracket")
	}
	return errpos(err.Col, "close bracket ) with no open bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Expected() string {
	if err.Open {
		return `")"`
	}
	return "operator or end of input"
}

func (err *BracketError) Is(target error) bool {
	return target == ErrGrammar
}

// EmptyExpressionError is an error indicating an empty subexpression.
// It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Expected() string {
	return "expression"
}

func (err *EmptyExpressionError) Is(target error) bool {
	return target == ErrGrammar
}

// TokenError is an error indicating a token where the grammar does not allow
// one, e.g. two operands with no operator between them. It implements
// InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Found describes the token.
	Found string
	// Want describes what the parser expected instead.
	Want string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+err.Found+", expected "+err.Want)
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Expected() string {
	return err.Want
}

func (err *TokenError) Is(target error) bool {
	return target == ErrGrammar
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
	// Expected describes what the parser would have accepted at Pos.
	Expected() string
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
)
