package runner

import (
	"github.com/reusee/bfem/bfconfigs"
	"github.com/reusee/bfem/diagnostics"
	"github.com/reusee/bfem/logs"
	"github.com/reusee/bfem/parser"
	"github.com/reusee/bfem/program"
)

// Compile parses source and optimizes the tree when optimisation is enabled.
// Parse errors are returned as diagnostics.Diagnostic.
type Compile func(source diagnostics.Source) (program.Program, error)

func (Module) Compile(
	features bfconfigs.Features,
	logger logs.Logger,
) Compile {
	return func(source diagnostics.Source) (program.Program, error) {
		prog, err := parser.Parse(source.Text, parser.Options{
			Aliases:          features.Aliases,
			StrictWhitespace: features.StrictWhitespace,
		})
		if err != nil {
			if diag, ok := diagnostics.FromError(err, source); ok {
				return prog, diag
			}
			return prog, err
		}

		parsed := program.Measure(prog.Instructions)
		if features.Optimise {
			prog = prog.Optimize()
		}
		optimized := program.Measure(prog.Instructions)

		logger.Debug("compiled",
			"source", source.Name,
			"leaves", parsed.Leaves,
			"optimized_leaves", optimized.Leaves,
			"loops", optimized.Loops,
			"depth", optimized.Depth,
			"aliases", prog.Aliases,
		)

		return prog, nil
	}
}
