package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/reusee/bfem/cmds"
	"github.com/reusee/bfem/configs"
	"github.com/reusee/bfem/devices"
	"github.com/reusee/bfem/diagnostics"
	"github.com/reusee/bfem/modes"
	"github.com/reusee/bfem/runner"
	"github.com/reusee/bfem/sources"
	"github.com/reusee/dscope"
)

const (
	actionRun     = "run"
	actionExplain = "explain"
	actionCompile = "compile"
)

var (
	action string
	path   string
	output string
)

var printTree = cmds.Switch("-tree", "print the compiled tree instead of json")

func init() {
	cmds.Define(actionRun, cmds.Func(func(p string) {
		action = actionRun
		path = p
	}).Args("path").Desc("run a program; path may be a file, - for stdin, or an http(s) url"))
	cmds.Define(actionExplain, cmds.Func(func(p string) {
		action = actionExplain
		path = p
	}).Args("path").Desc("describe every instruction of a program at its source location"))
	cmds.Define(actionCompile, cmds.Func(func(p string, out *string) {
		action = actionCompile
		path = p
		if out != nil {
			output = *out
		}
	}).Args("path", "output").Desc("write the compiled instruction tree as json to a file or stdout"))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code: 0 on
// success, 1 for program errors, 2 for usage errors and 130 when interrupted.
// defs override providers of the production scope.
func execute(ctx context.Context, args []string, defs ...any) int {
	action, path, output = "", "", ""
	if err := cmds.Execute(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cmds.GlobalExecutor.WriteUsage(os.Stderr)
		return 2
	}
	if action == "" {
		cmds.GlobalExecutor.WriteUsage(os.Stderr)
		return 2
	}

	scope := dscope.New(
		new(runner.Module),
		modes.ForProduction(),
	).Fork(defs...)

	var err error
	var stderr io.Writer
	scope.Call(func(
		loader configs.Loader,
		errOut runner.Stderr,
	) {
		stderr = errOut
		// settings panic on invalid config, check it first
		err = loader.Err()
	})

	if err == nil {
		scope.Call(func(
			load sources.Load,
			run runner.Run,
			explain runner.Explain,
			emit runner.Emit,
			stdout runner.Stdout,
		) {
			var source diagnostics.Source
			source, err = load(ctx, path)
			if err != nil {
				return
			}

			switch action {

			case actionRun:
				err = run(ctx, source)

			case actionExplain:
				err = explain(source)

			case actionCompile:
				if *printTree || output == "" || output == "-" {
					err = emit(source, stdout, *printTree)
					return
				}
				var f *os.File
				f, err = os.Create(output)
				if err != nil {
					return
				}
				err = emit(source, f, false)
				if closeErr := f.Close(); closeErr != nil && err == nil {
					err = closeErr
				}

			}
		})
	}

	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, devices.ErrInterrupted) {
		return 130
	}
	var diag diagnostics.Diagnostic
	if errors.As(err, &diag) {
		_ = diag.Render(stderr)
	} else {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return 1
}
