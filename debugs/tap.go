package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/bfem/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a starlark REPL on stdin with globals bound.
type Tap func(ctx context.Context, what string, globals starlark.StringDict)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals starlark.StringDict) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, globals)
	}
}

// Inspect opens a REPL over the state left by a stopped run.
type Inspect func(ctx context.Context, snapshot Snapshot)

func (Module) Inspect(
	tap Tap,
) Inspect {
	return func(ctx context.Context, snapshot Snapshot) {
		globals := maps.Clone(snapshot.globals())
		tap(ctx, "inspect", globals)
	}
}
