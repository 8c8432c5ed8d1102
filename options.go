package calc

import "log/slog"

// SolverOption is an option for creating a Solver.
type SolverOption interface {
	solverOption(*Solver)
}

type (
	rewriteopt RewriteMode
	logopt     struct {
		l *slog.Logger
	}
)

// WithRewrite sets which implicit multiplications the solver makes explicit
// before parsing. The default is RewriteAll.
func WithRewrite(mode RewriteMode) SolverOption {
	return rewriteopt(mode)
}

func (o rewriteopt) solverOption(s *Solver) {
	s.pre.Mode = RewriteMode(o)
}

// WithLogger sets the logger for diagnostics. A nil logger discards them,
// which is the default.
func WithLogger(l *slog.Logger) SolverOption {
	return logopt{l}
}

func (o logopt) solverOption(s *Solver) {
	if o.l == nil {
		s.log = discard
		return
	}
	s.log = o.l
}

var discard = slog.New(slog.DiscardHandler)
