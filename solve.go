package calc

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

// Solver evaluates equations and sweeps function definitions across integer
// domains. A Solver holds no mutable state, so it is safe for concurrent use.
type Solver struct {
	g   *Grammar
	pre Preprocessor
	log *slog.Logger
}

// NewSolver creates a solver which parses with g. The options are applied in
// order.
func NewSolver(g *Grammar, opts ...SolverOption) *Solver {
	s := Solver{g: g, log: discard}
	for _, opt := range opts {
		opt.solverOption(&s)
	}
	return &s
}

// Grammar returns the grammar the solver parses with.
func (s *Solver) Grammar() *Grammar {
	return s.g
}

// Prepare makes implicit multiplications in src explicit and parses the
// result.
func (s *Solver) Prepare(src string) (*Expr, error) {
	return s.g.ParseString(s.pre.Rewrite(src))
}

// SolveEquation prepares and evaluates a single equation.
func (s *Solver) SolveEquation(src string, env Env) (float64, error) {
	e, err := s.Prepare(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(env)
}

// Result is a number which may be absent because computing it failed.
type Result struct {
	Value float64
	OK    bool
}

// Some returns a present result.
func Some(v float64) Result {
	return Result{Value: v, OK: true}
}

// None returns an absent result.
func None() Result {
	return Result{}
}

func (r Result) String() string {
	if !r.OK {
		return "None"
	}
	return strconv.FormatFloat(r.Value, 'g', -1, 64)
}

// Solve evaluates each equation with no variables. The result has one entry
// per equation, in order; an equation which fails to parse or evaluate gives
// an absent entry without affecting the others.
func (s *Solver) Solve(equations []string) []Result {
	r := make([]Result, 0, len(equations))
	for _, eq := range equations {
		v, err := s.SolveEquation(eq, nil)
		if err != nil {
			s.log.Debug("equation failed", slog.String("equation", eq), slog.Any("err", err))
			r = append(r, None())
			continue
		}
		r = append(r, Some(v))
	}
	return r
}

// Series pairs each point of a domain with the function's value there.
// Domain and Codomain always have the same length.
type Series struct {
	Domain   []int64
	Codomain []Result
}

func (s Series) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range s.Domain {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(x, 10))
		b.WriteByte(':')
		b.WriteString(s.Codomain[i].String())
	}
	b.WriteByte(']')
	return b.String()
}

// ErrMalformedDefinition matches a DefinitionError using errors.Is.
var ErrMalformedDefinition = errors.New("malformed function definition")

// DefinitionError is an error indicating a function definition that is not of
// the form name(param) = expr.
type DefinitionError struct {
	// Def is the definition.
	Def string
	// Reason describes what is wrong.
	Reason string
}

func (err *DefinitionError) Error() string {
	return "malformed function definition " + strconv.Quote(err.Def) + ": " + err.Reason
}

func (err *DefinitionError) Is(target error) bool {
	return target == ErrMalformedDefinition
}

// Func is a parsed single-variable function definition.
type Func struct {
	// Label is the left side of the definition, verbatim.
	Label string
	// Param is the name of the function's parameter.
	Param string
	// Body is the parsed right side.
	Body *Expr
}

// Define parses a function definition such as "f(x) = 0.1x^3". The text is
// split at the first '='; the left side must be a name followed by a single
// parenthesized parameter made of letters.
func (s *Solver) Define(def string) (*Func, error) {
	label, body, ok := strings.Cut(def, "=")
	if !ok {
		return nil, &DefinitionError{Def: def, Reason: "no '='"}
	}
	lp := strings.IndexByte(label, '(')
	rp := strings.LastIndexByte(label, ')')
	if lp < 0 || rp < lp {
		return nil, &DefinitionError{Def: def, Reason: "no parameter list"}
	}
	if strings.TrimSpace(label[:lp]) == "" {
		return nil, &DefinitionError{Def: def, Reason: "no function name"}
	}
	if strings.TrimSpace(label[rp+1:]) != "" {
		return nil, &DefinitionError{Def: def, Reason: "text after parameter list"}
	}
	param := strings.TrimSpace(label[lp+1 : rp])
	if param == "" || strings.IndexFunc(param, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
		return nil, &DefinitionError{Def: def, Reason: "parameter must be a single name"}
	}
	e, err := s.Prepare(body)
	if err != nil {
		return nil, fmt.Errorf("parsing body of %q: %w", def, err)
	}
	return &Func{Label: label, Param: param, Body: e}, nil
}

// Sweep evaluates the function at every integer in [start, stop], ascending.
// A point where evaluation fails has an absent value; the sweep continues.
// If start > stop, the series is empty.
func (f *Func) Sweep(start, stop int64, log *slog.Logger) Series {
	if log == nil {
		log = discard
	}
	if start > stop {
		return Series{Domain: []int64{}, Codomain: []Result{}}
	}
	n := maxPrealloc
	if span := uint64(stop - start); span < maxPrealloc {
		n = int(span) + 1
	}
	r := Series{
		Domain:   make([]int64, 0, n),
		Codomain: make([]Result, 0, n),
	}
	env := Env{f.Param: 0}
	for x := start; ; x++ {
		env[f.Param] = float64(x)
		r.Domain = append(r.Domain, x)
		y, err := f.Body.Eval(env)
		if err != nil {
			log.Debug("point failed", slog.String("func", f.Label), slog.Int64("x", x), slog.Any("err", err))
			r.Codomain = append(r.Codomain, None())
		} else {
			r.Codomain = append(r.Codomain, Some(y))
		}
		// Checking before incrementing keeps stop == MaxInt64 from wrapping.
		if x == stop {
			break
		}
	}
	return r
}

// SolveOverDomain parses a function definition once and evaluates it at each
// integer in [start, stop]. The label is the definition's left side, verbatim.
func (s *Solver) SolveOverDomain(def string, start, stop int64) (string, Series, error) {
	f, err := s.Define(def)
	if err != nil {
		return "", Series{}, err
	}
	return f.Label, f.Sweep(start, stop, s.log), nil
}

// SolveFuncs solves each definition over [start, stop]. The result is keyed
// by each label with all whitespace removed. A definition that fails to parse
// has no entry, and its error is joined into the returned error; entries for
// the other definitions are returned regardless.
func (s *Solver) SolveFuncs(defs []string, start, stop int64) (map[string]Series, error) {
	m := make(map[string]Series, len(defs))
	var errs []error
	for _, def := range defs {
		label, r, err := s.SolveOverDomain(def, start, stop)
		if err != nil {
			s.log.Warn("definition failed", slog.String("def", def), slog.Any("err", err))
			errs = append(errs, err)
			continue
		}
		m[StripSpace(label)] = r
	}
	return m, errors.Join(errs...)
}

// StripSpace removes all whitespace from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// maxPrealloc is the most points Sweep allocates for up front.
const maxPrealloc = 1 << 20
