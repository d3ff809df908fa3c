package executor

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/reusee/bfem/aliases"
	"github.com/reusee/bfem/devices"
	"github.com/reusee/bfem/parser"
	"github.com/reusee/bfem/program"
	"github.com/reusee/bfem/tape"
)

type env struct {
	tape   *tape.Tape
	device *devices.Memory
	exec   *Executor
}

func setup(t *testing.T, src string, size uint64, cellPolicy tape.CellPolicy, tapePolicy tape.TapePolicy, options Options) (*env, program.Program) {
	t.Helper()
	prog, err := parser.Parse(src, parser.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	tp, err := tape.New(size, cellPolicy, tapePolicy)
	if err != nil {
		t.Fatal(err)
	}
	device := devices.NewMemory("")
	return &env{
		tape:   tp,
		device: device,
		exec:   New(tp, aliases.NewTable(prog.Aliases), device, options),
	}, prog
}

func TestRunOutput(t *testing.T) {
	e, prog := setup(t, "+++.", tape.DefaultSize, tape.CellCircular, tape.TapeCircular, Options{})
	if err := e.exec.Run(t.Context(), prog.Optimize().Instructions); err != nil {
		t.Fatal(err)
	}
	if got := e.device.Output.Bytes(); !bytes.Equal(got, []byte{3}) {
		t.Fatalf("got %v", got)
	}
	if e.tape.Pointer() != 0 {
		t.Fatalf("got %d", e.tape.Pointer())
	}
}

func TestRunResetsTape(t *testing.T) {
	e, prog := setup(t, "+>", 4, tape.CellCircular, tape.TapeCircular, Options{})
	for range 2 {
		if err := e.exec.Run(t.Context(), prog.Instructions); err != nil {
			t.Fatal(err)
		}
	}
	if v, _ := e.tape.ValueAt(0); v != 1 {
		t.Fatalf("got %d", v)
	}
	if e.tape.Pointer() != 1 {
		t.Fatalf("got %d", e.tape.Pointer())
	}
}

func TestLoopPasses(t *testing.T) {
	e, prog := setup(t, "+++++[-]", 10, tape.CellCircular, tape.TapeCircular, Options{})
	if err := e.exec.Run(t.Context(), prog.Instructions); err != nil {
		t.Fatal(err)
	}
	if n := e.exec.Stats().LoopPasses; n != 5 {
		t.Fatalf("got %d", n)
	}
	if e.tape.Value() != 0 {
		t.Fatalf("got %d", e.tape.Value())
	}

	e, prog = setup(t, "[-]", 10, tape.CellCircular, tape.TapeCircular, Options{})
	if err := e.exec.Run(t.Context(), prog.Instructions); err != nil {
		t.Fatal(err)
	}
	if n := e.exec.Stats().LoopPasses; n != 0 {
		t.Fatalf("got %d", n)
	}
	if n := e.exec.Stats().Instructions; n != 1 {
		t.Fatalf("got %d", n)
	}
}

func TestCellFault(t *testing.T) {
	tp, err := tape.New(10, tape.CellFail, tape.TapeFail)
	if err != nil {
		t.Fatal(err)
	}
	insts := []program.Instruction{
		program.Add(200, program.Span{Offset: 0, Length: 200}),
		program.Output(program.Span{Offset: 200, Length: 1}),
		program.Add(100, program.Span{Offset: 201, Length: 100}),
		program.Output(program.Span{Offset: 301, Length: 1}),
	}
	device := devices.NewMemory("")
	err = New(tp, aliases.NewTable(nil), device, Options{}).Run(t.Context(), insts)
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("got %v", err)
	}
	if f.Span != (program.Span{Offset: 201, Length: 100}) {
		t.Fatalf("got %v", f.Span)
	}
	if !errors.Is(err, tape.ErrCellRange) {
		t.Fatalf("got %v", err)
	}
	if f.Internal() {
		t.Fatal("should not be internal")
	}
	if tp.Value() != 200 {
		t.Fatalf("got %d", tp.Value())
	}
	// output before the fault is kept, output after it never happens
	if got := device.Output.Bytes(); !bytes.Equal(got, []byte{200}) {
		t.Fatalf("got %v", got)
	}
}

func TestFaultInsideLoop(t *testing.T) {
	e, prog := setup(t, "+.[<]+.", 5, tape.CellCircular, tape.TapeFail, Options{})
	err := e.exec.Run(t.Context(), prog.Instructions)
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("got %v", err)
	}
	if f.Span != (program.Span{Offset: 3, Length: 1}) {
		t.Fatalf("got %v", f.Span)
	}
	if f.Instruction.Kind != program.KindMoveLeft {
		t.Fatalf("got %v", f.Instruction)
	}
	if !errors.Is(err, tape.ErrPointerRange) {
		t.Fatalf("got %v", err)
	}
	if got := e.device.Output.Bytes(); !bytes.Equal(got, []byte{1}) {
		t.Fatalf("got %v", got)
	}
}

func TestGoto(t *testing.T) {
	for _, prealloc := range []bool{true, false} {
		e, prog := setup(t, "{a}+{b}++{a}.", 10, tape.CellCircular, tape.TapeCircular, Options{
			Preallocate: prealloc,
		})
		if err := e.exec.Run(t.Context(), prog.Instructions); err != nil {
			t.Fatal(err)
		}
		cells := e.tape.Cells()
		if cells[9] != 1 || cells[8] != 2 {
			t.Fatalf("prealloc %v: got %v", prealloc, cells)
		}
		if e.tape.Pointer() != 9 {
			t.Fatalf("got %d", e.tape.Pointer())
		}
		if got := e.device.Output.Bytes(); !bytes.Equal(got, []byte{1}) {
			t.Fatalf("got %v", got)
		}
	}
}

func TestLazyAllocationSkipsUsedCells(t *testing.T) {
	// the last cell is written before the alias is first used
	e, prog := setup(t, "<+{a}+", 5, tape.CellCircular, tape.TapeCircular, Options{})
	if err := e.exec.Run(t.Context(), prog.Instructions); err != nil {
		t.Fatal(err)
	}
	if addr, ok := e.exec.Aliases.Resolve("a"); !ok || addr != 3 {
		t.Fatalf("got %d", addr)
	}
}

func TestAliasInvariantViolation(t *testing.T) {
	tp, err := tape.New(10, tape.CellCircular, tape.TapeCircular)
	if err != nil {
		t.Fatal(err)
	}
	insts := []program.Instruction{
		program.Goto("ghost", program.Span{Offset: 0, Length: 7}),
	}
	err = New(tp, aliases.NewTable(nil), devices.NewMemory(""), Options{
		Preallocate: true,
	}).Run(t.Context(), insts)
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("got %v", err)
	}
	if !f.Internal() {
		t.Fatal("should be internal")
	}
	if !errors.Is(err, aliases.ErrInvariant) {
		t.Fatalf("got %v", err)
	}
}

func TestPreallocationTapeFull(t *testing.T) {
	e, prog := setup(t, "{a}{b}", 1, tape.CellCircular, tape.TapeCircular, Options{
		Preallocate: true,
	})
	err := e.exec.Run(t.Context(), prog.Instructions)
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, aliases.ErrTapeFull) {
		t.Fatalf("got %v", err)
	}
	if f.Span != (program.Span{Offset: 3, Length: 3}) {
		t.Fatalf("got %v", f.Span)
	}
}

func TestAliasFollowsPrependedCells(t *testing.T) {
	e, prog := setup(t, "{a}+<<<<<{a}.", 3, tape.CellCircular, tape.TapeAppend, Options{
		Preallocate: true,
	})
	if err := e.exec.Run(t.Context(), prog.Instructions); err != nil {
		t.Fatal(err)
	}
	if e.tape.Size() != 6 {
		t.Fatalf("got %d", e.tape.Size())
	}
	if got := e.device.Output.Bytes(); !bytes.Equal(got, []byte{1}) {
		t.Fatalf("got %v", got)
	}
	if addr, _ := e.exec.Aliases.Resolve("a"); addr != 5 {
		t.Fatalf("got %d", addr)
	}
}

func TestInputPolling(t *testing.T) {
	e, prog := setup(t, ",.,.", 10, tape.CellCircular, tape.TapeCircular, Options{})
	e.device.Input = []byte("hi")
	e.device.Stall = 3
	if err := e.exec.Run(t.Context(), prog.Instructions); err != nil {
		t.Fatal(err)
	}
	if got := e.device.Output.String(); got != "hi" {
		t.Fatalf("got %q", got)
	}
	if n := e.exec.Stats().InputPolls; n != 8 {
		t.Fatalf("got %d", n)
	}
}

func TestInputEnd(t *testing.T) {
	e, prog := setup(t, "+.,", 10, tape.CellCircular, tape.TapeCircular, Options{})
	err := e.exec.Run(t.Context(), prog.Instructions)
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, devices.ErrEndOfInput) {
		t.Fatalf("got %v", err)
	}
	if f.Span.Offset != 2 {
		t.Fatalf("got %v", f.Span)
	}
}

func TestCancellation(t *testing.T) {
	e, prog := setup(t, "+[]", 10, tape.CellCircular, tape.TapeCircular, Options{})
	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	err := e.exec.Run(ctx, prog.Instructions)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v", err)
	}
	var f *Fault
	if errors.As(err, &f) {
		t.Fatal("cancellation is not a fault")
	}

	// polling input also observes cancellation
	e, prog = setup(t, ",", 10, tape.CellCircular, tape.TapeCircular, Options{})
	e.device.Input = []byte("x")
	e.device.Stall = 1 << 62
	ctx, cancel2 := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel2()
	if err := e.exec.Run(ctx, prog.Instructions); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v", err)
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 100000
	src := "+" + strings.Repeat("[", depth) + "-" + strings.Repeat("]", depth)
	e, prog := setup(t, src, 10, tape.CellCircular, tape.TapeCircular, Options{})
	if err := e.exec.Run(t.Context(), prog.Instructions); err != nil {
		t.Fatal(err)
	}
	if e.tape.Value() != 0 {
		t.Fatalf("got %d", e.tape.Value())
	}
}

func TestPackageRun(t *testing.T) {
	prog, err := parser.Parse("{x}+++.", parser.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	tp, err := tape.New(8, tape.CellCircular, tape.TapeCircular)
	if err != nil {
		t.Fatal(err)
	}
	device := devices.NewMemory("")
	if err := Run(t.Context(), prog, tp, device, Options{Preallocate: true}); err != nil {
		t.Fatal(err)
	}
	if tp.Pointer() != 7 {
		t.Fatalf("got %d", tp.Pointer())
	}
	if got := device.Output.Bytes(); !bytes.Equal(got, []byte{3}) {
		t.Fatalf("got %v", got)
	}
}

func randomProgram(rng *rand.Rand) string {
	var b strings.Builder
	open := 0
	const chars = "++++----<<>>..{}"
	for range 60 {
		switch n := rng.IntN(12); {
		case n < 9:
			c := chars[rng.IntN(len(chars))]
			switch c {
			case '{', '}':
				b.WriteString([]string{"{p}", "{q}"}[rng.IntN(2)])
			default:
				b.WriteByte(c)
			}
		case n == 9:
			b.WriteByte('[')
			open++
		case open > 0:
			b.WriteByte(']')
			open--
		}
	}
	b.WriteString(strings.Repeat("]", open))
	return b.String()
}

type outcome struct {
	err    error
	cells  []byte
	ptr    uint64
	output []byte
}

func runOnce(t *testing.T, insts []program.Instruction, known []string, cellPolicy tape.CellPolicy, tapePolicy tape.TapePolicy, prealloc bool) (outcome, bool) {
	tp, err := tape.New(16, cellPolicy, tapePolicy)
	if err != nil {
		t.Fatal(err)
	}
	device := devices.NewMemory("")
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	err = New(tp, aliases.NewTable(known), device, Options{Preallocate: prealloc}).Run(ctx, insts)
	if errors.Is(err, context.DeadlineExceeded) {
		return outcome{}, false
	}
	return outcome{
		err:    err,
		cells:  tp.Cells(),
		ptr:    tp.Pointer(),
		output: device.Output.Bytes(),
	}, true
}

func TestOptimizedEquivalence(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	policies := []struct {
		cell tape.CellPolicy
		tape tape.TapePolicy
	}{
		{tape.CellCircular, tape.TapeCircular},
		{tape.CellClamp, tape.TapeCircular},
		{tape.CellCircular, tape.TapeAppend},
		{tape.CellClamp, tape.TapeAppend},
		{tape.CellFail, tape.TapeFail},
	}
	compared := 0
	for range 300 {
		src := randomProgram(rng)
		prog, err := parser.Parse(src, parser.DefaultOptions())
		if err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		optimized := program.Optimize(prog.Instructions)
		policy := policies[rng.IntN(len(policies))]
		prealloc := rng.IntN(2) == 0

		raw, ok1 := runOnce(t, prog.Instructions, prog.Aliases, policy.cell, policy.tape, prealloc)
		opt, ok2 := runOnce(t, optimized, prog.Aliases, policy.cell, policy.tape, prealloc)
		if !ok1 || !ok2 {
			continue
		}
		compared++

		if (raw.err == nil) != (opt.err == nil) {
			t.Fatalf("%s: got %v vs %v", src, raw.err, opt.err)
		}
		if !bytes.Equal(raw.output, opt.output) {
			t.Fatalf("%s: output %v vs %v", src, raw.output, opt.output)
		}
		if raw.err != nil {
			// a merged instruction faults before touching the cell
			continue
		}
		if !bytes.Equal(raw.cells, opt.cells) || raw.ptr != opt.ptr {
			t.Fatalf("%s: tape %v@%d vs %v@%d", src, raw.cells, raw.ptr, opt.cells, opt.ptr)
		}
	}
	if compared < 100 {
		t.Fatalf("only %d programs terminated", compared)
	}
}
