package calc

// equation = expr
// expr     = primary { infix primary }
// primary  = number | variable | '(' expr ')' | '-' primary
// infix    = '+' | '-' | '*' | '/' | '^'
//
// Precedence from loosest: + -, then * /, then ^. All infix operators are
// left-associative except ^. A minus in primary position binds tighter than
// any infix operator; directly before a number it folds to -1 * number.
// % is lexed as an operator but reserved.

// Grammar is the operator table used for parsing. A Grammar is immutable
// after NewGrammar returns it, so one Grammar can serve any number of
// concurrent parses.
type Grammar struct {
	infix    map[string]operator
	neg      string
	reserved map[string]bool
}

// NewGrammar builds the expression grammar.
func NewGrammar() *Grammar {
	return &Grammar{
		infix: map[string]operator{
			"+": {1, false, Add},
			"-": {1, false, Subtract},
			"*": {5, false, Multiply},
			"/": {5, false, Divide},
			"^": {15, true, Exponent},
		},
		neg:      "-",
		reserved: map[string]bool{"%": true},
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the AST operator to use when this operator is selected.
	op Operator
}

// moreBinding reports whether an operator following an operand parsed under
// than takes that operand as its own left side.
func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. ok is false if there is no
// such binary operator.
func (g *Grammar) binop(text string) (op operator, ok bool) {
	op, ok = g.infix[text]
	return op, ok
}

// isNeg reports whether text is the prefix negation operator.
func (g *Grammar) isNeg(text string) bool {
	return text == g.neg
}

// isReserved reports whether text is an operator that is lexed but disabled.
func (g *Grammar) isReserved(text string) bool {
	return g.reserved[text]
}

// exprprec is the precedence required to parse an entire subexpression. Its
// op is never selected.
var exprprec = operator{-128, true, Negative}
