package calc

import (
	"errors"
	"math"
	"strconv"
)

// Env maps variable names to their values for one evaluation.
type Env map[string]float64

// ErrUnknownVariable matches a NameError using errors.Is.
var ErrUnknownVariable = errors.New("unknown variable")

// Eval evaluates the expression with the given variables. The only error is a
// *NameError for a variable missing from env; division by zero and the like
// follow IEEE 754 and produce infinities or NaN.
func (e *Expr) Eval(env Env) (float64, error) {
	return Eval(e.n, env)
}

// Eval evaluates a tree with the given variables. Operands are evaluated left
// before right. Panics if the tree contains a node type other than those in
// this package or a Binary node whose operator is Negative.
func Eval(n Node, env Env) (float64, error) {
	switch n := n.(type) {
	case *Number:
		return n.Value, nil
	case *Variable:
		v, ok := env[n.Name]
		if !ok {
			return 0, &NameError{Name: n.Name}
		}
		return v, nil
	case *Unary:
		v, err := Eval(n.Inner, env)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case *Binary:
		l, err := Eval(n.Left, env)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.Right, env)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case Add:
			return l + r, nil
		case Subtract:
			return l - r, nil
		case Multiply:
			return l * r, nil
		case Divide:
			return l / r, nil
		case Exponent:
			return math.Pow(l, r), nil
		default:
			panic("calc: invalid binary operator " + n.Op.String())
		}
	default:
		panic("calc: invalid AST node")
	}
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

func (err *NameError) Is(target error) bool {
	return target == ErrUnknownVariable
}
