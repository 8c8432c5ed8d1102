package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1/x")
	f.Add("2x(3y)")
	s := calc.NewSolver(calc.NewGrammar())
	f.Fuzz(func(t *testing.T, src string) {
		s.SolveEquation(src, calc.Env{"x": 0})
	})
}
