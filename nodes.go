package calc

import (
	"strconv"
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. The concrete
// types are *Variable, *Number, *Unary, and *Binary; no other types implement
// Node. A tree is never modified after parsing, so it is safe to evaluate the
// same tree from several goroutines.
type Node interface {
	fmt(b *strings.Builder)
	node()
}

// Variable is a reference to a value supplied at evaluation time.
type Variable struct {
	Name string
}

// Number is a literal value.
type Number struct {
	Value float64
}

// Unary is a prefix minus applied to anything other than a bare literal.
type Unary struct {
	Inner Node
}

// Binary is an infix operation. Op is never Negative.
type Binary struct {
	Op          Operator
	Left, Right Node
}

func (*Variable) node() {}
func (*Number) node()   {}
func (*Unary) node()    {}
func (*Binary) node()   {}

// Operator is the operation of a Binary node.
type Operator int8

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Exponent
	// Negative is the sign of a negated literal. It is never the operator of
	// a Binary node.
	Negative
)

func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract, Negative:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Exponent:
		return "^"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

func (n *Variable) String() string { return nodeString(n) }
func (n *Number) String() string   { return nodeString(n) }
func (n *Unary) String() string    { return nodeString(n) }
func (n *Binary) String() string   { return nodeString(n) }

func nodeString(n Node) string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Variable) fmt(b *strings.Builder) {
	b.WriteString(n.Name)
}

func (n *Number) fmt(b *strings.Builder) {
	if n.Value < 0 {
		// Negative literals only come from folding, so write them the way
		// they fold back.
		b.WriteString("(-")
		b.WriteString(strconv.FormatFloat(-n.Value, 'f', -1, 64))
		b.WriteByte(')')
		return
	}
	b.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
}

// isNegatedLiteral reports whether n is the -1 * literal form the parser
// builds for a minus sign directly before a number.
func isNegatedLiteral(n *Binary) bool {
	if n.Op != Multiply {
		return false
	}
	l, ok := n.Left.(*Number)
	if !ok || l.Value != -1 {
		return false
	}
	r, ok := n.Right.(*Number)
	return ok && r.Value >= 0
}

func (n *Unary) fmt(b *strings.Builder) {
	b.WriteString("-(")
	n.Inner.fmt(b)
	b.WriteByte(')')
}

func (n *Binary) fmt(b *strings.Builder) {
	if n.Op == Negative {
		panic("calc: binary node with operator Negative")
	}
	if isNegatedLiteral(n) {
		b.WriteString("-")
		n.Right.fmt(b)
		return
	}
	b.WriteByte('(')
	n.Left.fmt(b)
	b.WriteByte(' ')
	b.WriteString(n.Op.String())
	b.WriteByte(' ')
	n.Right.fmt(b)
	b.WriteByte(')')
}
