package calc

import (
	"io"
	"slices"
	"strconv"
	"strings"
)

// Expr is a parsed expression that can be evaluated with an environment.
type Expr struct {
	// n is the root node of the expression.
	n Node
	// names is the list of variable names used in the expression.
	names []string
}

// parsectx holds general data for one parse.
type parsectx struct {
	g *Grammar
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
}

// Parse parses an expression so it can be evaluated. The whole input must
// form one expression. Errors from invalid input implement InputError and
// match ErrGrammar.
func (g *Grammar) Parse(src io.RuneScanner) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		g:     g,
		names: make(map[string]bool),
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, &BracketError{Col: tok.pos}
	default:
		panic("calc: parse ended on " + tok.String())
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	slices.Sort(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func (g *Grammar) ParseString(src string) (*Expr, error) {
	return g.Parse(strings.NewReader(src))
}

// parseterm parses operands joined by operators more binding than until. If
// there is no error, then parseterm pushes the last token it scans, which is
// always a close parenthesis, an operator, or EOF.
func parseterm(scan *lexer, p *parsectx, until operator) (Node, error) {
	n, err := parseprimary(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec, ok := p.g.binop(tok.text)
			if !ok {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Reserved: p.g.isReserved(tok.text)}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = &Binary{Op: prec.op, Left: n, Right: rhs}
		case tokenNum, tokenIdent, tokenOpen:
			return nil, &TokenError{Col: tok.pos, Found: tok.describe(), Want: "operator"}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parseprimary parses a single operand: a number, a variable, a parenthesized
// expression, or a negated operand.
func parseprimary(scan *lexer, p *parsectx) (Node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return number(tok)
	case tokenIdent:
		p.names[tok.text] = true
		return &Variable{Name: tok.text}, nil
	case tokenOp:
		if !p.g.isNeg(tok.text) {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true, Reserved: p.g.isReserved(tok.text)}
		}
		next, err := scan.next()
		if err != nil {
			return nil, err
		}
		if next.kind == tokenNum {
			// -2 -> (-1) * (2)
			rhs, err := number(next)
			if err != nil {
				return nil, err
			}
			return &Binary{Op: Multiply, Left: &Number{Value: -1}, Right: rhs}, nil
		}
		scan.push(next)
		rhs, err := parseprimary(scan, p)
		if err != nil {
			return nil, err
		}
		return &Unary{Inner: rhs}, nil
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				// Reporting the unclosed bracket is more helpful.
				return nil, &BracketError{Col: tok.pos, Open: true}
			}
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, &BracketError{Col: tok.pos, Open: true}
		}
		return rhs, nil
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// number converts a number token to a node. Literals too large for a float64
// are invalid.
func number(tok lexToken) (Node, error) {
	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
	}
	return &Number{Value: v}, nil
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Root returns the root node of the expression.
func (e *Expr) Root() Node {
	return e.n
}

// String creates a fully parenthesized representation of the parsed
// expression which parses to the same tree.
func (e *Expr) String() string {
	return nodeString(e.n)
}
