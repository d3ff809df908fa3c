package logs

import (
	"context"

	"github.com/google/uuid"
)

// Run identifies one execution of a program.
type Run string

type runKey struct{}

var RunKey = runKey{}

type runInfo struct {
	run    Run
	source string
}

func RunFrom(ctx context.Context) (Run, bool) {
	info, ok := ctx.Value(RunKey).(runInfo)
	return info.run, ok
}

// SourceFrom returns the name of the program the current run executes.
func SourceFrom(ctx context.Context) string {
	info, _ := ctx.Value(RunKey).(runInfo)
	return info.source
}

// NewRun starts a run of the named source. A nested run with an empty name
// keeps the source of its parent.
type NewRun func(ctx context.Context, source string) (context.Context, Run)

func (Module) NewRun(
	logger Logger,
) NewRun {
	return func(ctx context.Context, source string) (context.Context, Run) {
		var args []any
		parent, ok := ctx.Value(RunKey).(runInfo)
		if ok {
			args = append(args, "parent", parent.run)
			if source == "" {
				source = parent.source
			}
		}
		info := runInfo{
			run:    Run(uuid.NewString()),
			source: source,
		}
		ctx = context.WithValue(ctx, RunKey, info)
		logger.DebugContext(ctx, "new run", args...)
		return ctx, info.run
	}
}
