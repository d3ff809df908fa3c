package runner

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/reusee/bfem/diagnostics"
)

// Emit writes the compiled tree of source to w, as indented JSON or, with tree
// set, in the compact textual form.
type Emit func(source diagnostics.Source, w io.Writer, tree bool) error

func (Module) Emit(
	compile Compile,
) Emit {
	return func(source diagnostics.Source, w io.Writer, tree bool) error {
		prog, err := compile(source)
		if err != nil {
			return err
		}
		if tree {
			_, err = fmt.Fprintln(w, prog.String())
			return err
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(prog)
	}
}
