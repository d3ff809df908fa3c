package executor

import (
	"errors"

	"github.com/reusee/bfem/aliases"
	"github.com/reusee/bfem/program"
)

// Fault is a runtime error located at the instruction that raised it.
type Fault struct {
	Err         error
	Span        program.Span
	Instruction program.Instruction
}

func (f *Fault) Error() string {
	return f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func (f *Fault) ErrorSpan() program.Span {
	return f.Span
}

// Internal reports whether the fault is a bug in the interpreter rather than in
// the program.
func (f *Fault) Internal() bool {
	return errors.Is(f.Err, aliases.ErrInvariant)
}

func fault(err error, inst program.Instruction) *Fault {
	return &Fault{
		Err:         err,
		Span:        inst.Span,
		Instruction: inst,
	}
}
