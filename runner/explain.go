package runner

import (
	"github.com/reusee/bfem/diagnostics"
	"github.com/reusee/bfem/program"
)

// Explain prints every leaf instruction of the compiled source with its span.
type Explain func(source diagnostics.Source) error

func (Module) Explain(
	compile Compile,
	stdout Stdout,
) Explain {
	return func(source diagnostics.Source) error {
		prog, err := compile(source)
		if err != nil {
			return err
		}
		return diagnostics.Explain(
			stdout,
			"info: explaining "+sourceName(source),
			source,
			program.Explain(prog.Instructions),
		)
	}
}

func sourceName(source diagnostics.Source) string {
	if source.Name == "" {
		return "<source>"
	}
	return source.Name
}
