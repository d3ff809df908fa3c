package debugs

import (
	"errors"
	"fmt"

	"github.com/reusee/bfem/aliases"
	"github.com/reusee/bfem/executor"
	"github.com/reusee/bfem/program"
	"github.com/reusee/bfem/tape"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Snapshot is the machine state captured after a run stops.
type Snapshot struct {
	Cells       []byte
	Pointer     uint64
	Origin      uint64
	Aliases     map[string]uint64
	CellPolicy  tape.CellPolicy
	TapePolicy  tape.TapePolicy
	Span        program.Span
	Instruction string

	// Step is the faulting instruction, KindInvalid when the run did not fault
	Step    program.Instruction
	Message string
}

func NewSnapshot(tp *tape.Tape, table *aliases.Table, err error) Snapshot {
	snapshot := Snapshot{
		Cells:   tp.Cells(),
		Pointer: tp.Pointer(),
		Origin:  tp.Origin(),
		Aliases: table.Bindings(),

		CellPolicy: tp.CellPolicy(),
		TapePolicy: tp.TapePolicy(),
	}
	if err != nil {
		snapshot.Message = err.Error()
		var fault *executor.Fault
		if errors.As(err, &fault) {
			snapshot.Span = fault.Span
			snapshot.Instruction = fault.Instruction.Describe()
			snapshot.Step = fault.Instruction
		}
	}
	return snapshot
}

func (s Snapshot) globals() starlark.StringDict {
	cells := make([]starlark.Value, len(s.Cells))
	for i, c := range s.Cells {
		cells[i] = starlark.MakeInt(int(c))
	}
	globals := starlark.StringDict{
		"cells":       starlark.NewList(cells),
		"pointer":     toStarlarkValue(s.Pointer),
		"origin":      toStarlarkValue(s.Origin),
		"aliases":     toStarlarkValue(s.Aliases),
		"cell_mode":   toStarlarkValue(s.CellPolicy),
		"tape_mode":   toStarlarkValue(s.TapePolicy),
		"span":        toStarlarkValue(s.Span),
		"instruction": toStarlarkValue(s.Instruction),
		"step":        starlark.None,
		"message":     toStarlarkValue(s.Message),
		"cell":        starlark.NewBuiltin("cell", s.cell),
		"describe":    toStarlarkValue(s.describe),
	}
	if s.Step.Kind != program.KindInvalid {
		globals["step"] = toStarlarkValue(s.Step)
	}
	globals.Freeze()
	return globals
}

func (s Snapshot) cell(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr); err != nil {
		return nil, err
	}
	if addr < 0 || addr >= len(s.Cells) {
		return nil, fmt.Errorf("%s: address %d out of range 0..%d", fn.Name(), addr, len(s.Cells)-1)
	}
	return starlark.MakeInt(int(s.Cells[addr])), nil
}

func (s Snapshot) describe() string {
	if s.Message == "" {
		return fmt.Sprintf("pointer at %d of %d cells", s.Pointer, len(s.Cells))
	}
	return fmt.Sprintf("%s at %s: %s", s.Instruction, s.Span, s.Message)
}

// Eval evaluates a single starlark expression against the snapshot.
func (s Snapshot) Eval(expr string) (starlark.Value, error) {
	thread := &starlark.Thread{
		Name: "inspect",
	}
	return starlark.EvalOptions(&syntax.FileOptions{}, thread, "<inspect>", expr, s.globals())
}
