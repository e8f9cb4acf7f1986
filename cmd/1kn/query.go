package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ichiban/kanren"
	"github.com/ichiban/kanren/engine"
)

func newQueryCmd(opts *options) *cobra.Command {
	var (
		limit int
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "query relation [arg...]",
		Short: "Find the tuples of a relation matching the arguments",
		Long: `Finds the tuples of a relation matching the arguments.
Arguments starting with ? are query variables. The same name is the same variable.
Numeric arguments are decimals and the others are atoms.

Example:
  1kn query --facts family.yaml parent alice ?child
  1kn query --facts family.yaml --all parent ?x ?x`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine(opts)
			if err != nil {
				return err
			}

			p := parsePattern(args[1:])
			opts.logger.Debug("query", zap.String("relation", args[0]), zap.Strings("vars", p.names))

			sols := e.Query(cmd.Context(), p.names, func(vs ...engine.Variable) engine.Goal {
				return e.Fact(args[0], p.terms(vs)...)
			})
			defer sols.Close()

			n := limit
			if all {
				n = 0
			}
			return printSolutions(cmd.OutOrStdout(), sols, n, opts.interactive)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 1, "maximum number of answers")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "print all the answers")
	return cmd
}

// pattern is the arguments of a query. Each argument is either a query variable or a term.
type pattern struct {
	names []string
	args  []patternArg
}

type patternArg struct {
	variable int // index of names, or -1.
	term     engine.Term
}

func parsePattern(args []string) pattern {
	var p pattern
	index := map[string]int{}
	for _, a := range args {
		if !strings.HasPrefix(a, "?") || len(a) == 1 {
			p.args = append(p.args, patternArg{variable: -1, term: engine.ParseAtom(a)})
			continue
		}
		i, ok := index[a]
		if !ok {
			i = len(p.names)
			index[a] = i
			p.names = append(p.names, a)
		}
		p.args = append(p.args, patternArg{variable: i})
	}
	return p
}

// terms returns the arguments with query variables replaced by vs.
func (p pattern) terms(vs []engine.Variable) []engine.Term {
	ts := make([]engine.Term, len(p.args))
	for i, a := range p.args {
		if a.variable < 0 {
			ts[i] = a.term
			continue
		}
		ts[i] = vs[a.variable]
	}
	return ts
}

// printSolutions prints at most n solutions, or all of them if n is not positive.
// Interactive output is in the form of `?x = a, ?y = b`. Otherwise, values are separated by tabs.
func printSolutions(w io.Writer, sols *kanren.Solutions, n int, interactive bool) error {
	c := 0
	for (n <= 0 || c < n) && sols.Next() {
		c++

		if len(sols.Vars()) == 0 {
			if _, err := fmt.Fprintf(w, "%t\n", true); err != nil {
				return err
			}
			continue
		}

		var line string
		if interactive {
			line = sols.String()
			if line == "" {
				line = "true"
			}
		} else {
			ts := sols.Current()
			ls := make([]string, len(ts))
			for i, t := range ts {
				ls[i] = t.String()
			}
			line = strings.Join(ls, "\t")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if err := sols.Err(); err != nil {
		return err
	}

	if c == 0 {
		if _, err := fmt.Fprintf(w, "%t\n", false); err != nil {
			return err
		}
	}
	return nil
}
