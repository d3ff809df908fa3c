package executor

import (
	"context"
	"errors"

	"github.com/reusee/bfem/aliases"
	"github.com/reusee/bfem/devices"
	"github.com/reusee/bfem/program"
	"github.com/reusee/bfem/tape"
)

type Options struct {
	// Preallocate binds every known alias before the first instruction runs.
	Preallocate bool
}

type Stats struct {
	Instructions uint64
	LoopPasses   uint64
	InputPolls   uint64
	Outputs      uint64
}

type frame struct {
	insts []program.Instruction
	next  int
	loop  bool
}

type Executor struct {
	Tape    *tape.Tape
	Aliases *aliases.Table
	Device  devices.Device
	Options Options

	stats Stats
}

func New(tp *tape.Tape, table *aliases.Table, device devices.Device, options Options) *Executor {
	return &Executor{
		Tape:    tp,
		Aliases: table,
		Device:  device,
		Options: options,
	}
}

// Run executes prog with a fresh table over the known aliases of prog.
func Run(
	ctx context.Context,
	prog program.Program,
	tp *tape.Tape,
	device devices.Device,
	options Options,
) error {
	table := aliases.NewTable(prog.Aliases)
	return New(tp, table, device, options).Run(ctx, prog.Instructions)
}

func (e *Executor) Stats() Stats {
	return e.stats
}

// Run resets the tape and the alias bindings, then executes insts. The first
// fault stops the run and is returned as a *Fault.
func (e *Executor) Run(ctx context.Context, insts []program.Instruction) (err error) {
	defer func() {
		if flushErr := devices.Flush(e.Device); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	e.stats = Stats{}
	e.Tape.Clear()
	e.Tape.Realign()
	e.Aliases.Reset()

	if e.Options.Preallocate {
		if err := e.Aliases.Preallocate(e.Tape); err != nil {
			var allocErr *aliases.AllocationError
			if errors.As(err, &allocErr) {
				if inst, ok := firstGoto(insts, allocErr.Name); ok {
					return fault(err, inst)
				}
			}
			return err
		}
	}

	done := ctx.Done()
	stack := []frame{{insts: insts}}
	for len(stack) > 0 {
		select {
		case <-done:
			return ctx.Err()
		default:
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.insts) {
			if top.loop && e.Tape.Value() != 0 {
				top.next = 0
				e.stats.LoopPasses++
				continue
			}
			stack = stack[:len(stack)-1]
			continue
		}

		inst := top.insts[top.next]
		top.next++
		e.stats.Instructions++

		if inst.Kind == program.KindLoop {
			if e.Tape.Value() != 0 {
				e.stats.LoopPasses++
				stack = append(stack, frame{
					insts: inst.Body,
					loop:  true,
				})
			}
			continue
		}

		if err := e.step(ctx, inst); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fault(err, inst)
		}
	}

	return nil
}

func (e *Executor) step(ctx context.Context, inst program.Instruction) error {
	switch inst.Kind {

	case program.KindAdd:
		return e.Tape.Add(inst.Count)

	case program.KindSubtract:
		return e.Tape.Sub(inst.Count)

	case program.KindMoveRight:
		return e.Tape.MoveRight(inst.Count)

	case program.KindMoveLeft:
		origin := e.Tape.Origin()
		if err := e.Tape.MoveLeft(inst.Count); err != nil {
			return err
		}
		e.Aliases.Shift(e.Tape.Origin() - origin)
		return nil

	case program.KindInput:
		return e.input(ctx)

	case program.KindOutput:
		e.stats.Outputs++
		return e.Device.WriteByte(e.Tape.Value())

	case program.KindGoto:
		addr, ok := e.Aliases.Resolve(inst.Name)
		if !ok {
			if e.Options.Preallocate {
				return &aliases.InvariantError{
					Name: inst.Name,
				}
			}
			var err error
			addr, err = e.Aliases.Assign(inst.Name, e.Tape)
			if err != nil {
				return err
			}
		}
		return e.Tape.MoveTo(addr)

	}

	return &InvalidInstructionError{
		Kind: inst.Kind,
	}
}

func (e *Executor) input(ctx context.Context) error {
	done := ctx.Done()
	for {
		e.stats.InputPolls++
		b, ok, err := e.Device.Poll()
		if err != nil {
			return err
		}
		if ok {
			e.Tape.SetValue(b)
			return nil
		}
		select {
		case <-done:
			return ctx.Err()
		default:
		}
	}
}

func firstGoto(insts []program.Instruction, name string) (ret program.Instruction, ok bool) {
	program.Walk(insts, func(inst program.Instruction) bool {
		if inst.Kind == program.KindGoto && inst.Name == name {
			ret = inst
			ok = true
			return false
		}
		return true
	})
	return
}
