package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the state shared by all commands after flags are parsed.
type app struct {
	cfgFile  string
	logLevel string
	rewrite  string
	start    int64
	stop     int64

	solver *calc.Solver
	log    *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate arithmetic and sweep functions over integer domains",
		Long: `calc reads function definitions such as "f(x) = 0.1x^3" from stdin, one per
line, and prints the value of each at every integer of the domain.

Implicit multiplication is allowed, so 4(10+4)^2 and 2x mean 4*(10+4)^2 and
2*x.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.lines(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (default from config)")
	pf.StringVar(&a.rewrite, "rewrite", "", "implicit multiplication rewriting: all or first (default from config)")
	pf.Int64Var(&a.start, "start", 0, "first point of the domain (default from config)")
	pf.Int64Var(&a.stop, "stop", 0, "last point of the domain (default from config)")

	root.AddCommand(a.evalCmd(), a.funcsCmd())
	return root
}

// setup loads the configuration, applies flag overrides, and creates the
// solver.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.rewrite != "" {
		cfg.Rewrite = a.rewrite
	}
	if flags.Changed("start") {
		cfg.Domain.Start = a.start
	}
	if flags.Changed("stop") {
		cfg.Domain.Stop = a.stop
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.start, a.stop = cfg.Domain.Start, cfg.Domain.Stop

	lvl, _ := cfg.Level()
	mode, _ := cfg.RewriteMode()
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
	a.solver = calc.NewSolver(calc.NewGrammar(), calc.WithRewrite(mode), calc.WithLogger(a.log))
	a.log.Debug("configured", slog.String("config", a.cfgFile), slog.Int64("start", a.start), slog.Int64("stop", a.stop), slog.String("rewrite", mode.String()))
	return nil
}

// lines sweeps each non-empty line of in as a function definition.
func (a *app) lines(in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		label, r, err := a.solver.SolveOverDomain(line, a.start, a.stop)
		if err != nil {
			fmt.Fprintf(out, "%s => error: %v\n", line, err)
			continue
		}
		fmt.Fprintf(out, "%s => %s: %v\n", line, strings.TrimSpace(label), r)
	}
	return sc.Err()
}

func (a *app) evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "eval EXPR...",
		Short:   "Evaluate expressions without variables",
		Example: `  calc eval "2 + 3 * 4" "4(10+4)^2"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, r := range a.solver.Solve(args) {
				fmt.Fprintf(out, "%s => %v\n", args[i], r)
			}
			return nil
		},
	}
}

func (a *app) funcsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "funcs DEF...",
		Short:   "Sweep function definitions over the domain",
		Example: `  calc funcs --start -2 --stop 2 "f(x) = 0.1x^3" "g(x) = 1/x"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.solver.SolveFuncs(args, a.start, a.stop)
			labels := make([]string, 0, len(m))
			for label := range m {
				labels = append(labels, label)
			}
			slices.Sort(labels)
			out := cmd.OutOrStdout()
			for _, label := range labels {
				fmt.Fprintf(out, "%s: %v\n", label, m[label])
			}
			return err
		},
	}
}
