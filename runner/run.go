package runner

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/reusee/bfem/aliases"
	"github.com/reusee/bfem/bfconfigs"
	"github.com/reusee/bfem/debugs"
	"github.com/reusee/bfem/diagnostics"
	"github.com/reusee/bfem/executor"
	"github.com/reusee/bfem/logs"
	"github.com/reusee/bfem/tape"
	"github.com/reusee/dscope"
)

// Run compiles and executes source against the device. Faults are returned as
// diagnostics.Diagnostic.
type Run func(ctx context.Context, source diagnostics.Source) error

type runDeps struct {
	Compile  dscope.Inject[Compile]
	NewRun   dscope.Inject[logs.NewRun]
	Logger   dscope.Inject[logs.Logger]
	Inspect  dscope.Inject[debugs.Inspect]
	OnFault  dscope.Inject[InspectOnFault]
	Device   dscope.Inject[Device]
	Features dscope.Inject[bfconfigs.Features]
	TapeSize dscope.Inject[bfconfigs.TapeSize]
	CellMode dscope.Inject[bfconfigs.CellPolicy]
	TapeMode dscope.Inject[bfconfigs.TapePolicy]
}

func (Module) Run(
	inject dscope.InjectStruct,
) Run {
	deps := new(runDeps)
	inject(&deps)

	return func(ctx context.Context, source diagnostics.Source) (err error) {
		ctx, _ = deps.NewRun()(ctx, source.Name)
		logger := deps.Logger()

		prog, err := deps.Compile()(source)
		if err != nil {
			return err
		}

		size := deps.TapeSize()
		if err := size.Validate(); err != nil {
			return logs.WrapRun(ctx, err)
		}
		tp, err := tape.New(
			uint64(size),
			tape.CellPolicy(deps.CellMode()),
			tape.TapePolicy(deps.TapeMode()),
		)
		if err != nil {
			return logs.WrapRun(ctx, err)
		}
		table := aliases.NewTable(prog.Aliases)

		device := deps.Device()
		if closer, ok := device.(io.Closer); ok {
			defer func() {
				if closeErr := closer.Close(); closeErr != nil && err == nil {
					err = logs.WrapRun(ctx, closeErr)
				}
			}()
		}

		exec := executor.New(tp, table, device, executor.Options{
			Preallocate: deps.Features().Alloc,
		})

		logger.DebugContext(ctx, "run start",
			"tape_size", tp.Size(),
			"cell_policy", tp.CellPolicy(),
			"tape_policy", tp.TapePolicy(),
			"preallocate", exec.Options.Preallocate,
		)
		t0 := time.Now()
		err = exec.Run(ctx, prog.Instructions)
		stats := exec.Stats()
		logger.DebugContext(ctx, "run end",
			"duration", time.Since(t0),
			"instructions", stats.Instructions,
			"loop_passes", stats.LoopPasses,
			"input_polls", stats.InputPolls,
			"outputs", stats.Outputs,
			"tape_size", tp.Size(),
		)

		if err == nil {
			return nil
		}

		if bool(deps.OnFault()) && !errors.Is(err, context.Canceled) {
			// restore the terminal before the REPL reads stdin
			if closer, ok := device.(io.Closer); ok {
				_ = closer.Close()
			}
			deps.Inspect()(ctx, debugs.NewSnapshot(tp, table, err))
		}

		if diag, ok := diagnostics.FromError(err, source); ok {
			logger.DebugContext(ctx, "run stopped",
				"span", diag.Span,
				"internal", diag.Internal,
			)
			return diag
		}
		return logs.WrapRun(ctx, err)
	}
}
