package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/bfem/bfconfigs"
	"github.com/reusee/bfem/cmds"
	"github.com/reusee/bfem/devices"
	"github.com/reusee/bfem/runner"
)

type testEnv struct {
	device *devices.Memory
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func (e *testEnv) defs() []any {
	return []any{
		func() runner.Device {
			return e.device
		},
		func() runner.Stdout {
			return e.stdout
		},
		func() runner.Stderr {
			return e.stderr
		},
		func() bfconfigs.Dirs {
			return nil
		},
	}
}

func newTestEnv(input string) *testEnv {
	return &testEnv{
		device: devices.NewMemory(input),
		stdout: new(bytes.Buffer),
		stderr: new(bytes.Buffer),
	}
}

func writeProgram(t *testing.T, text string) string {
	p := filepath.Join(t.TempDir(), "prog.bf")
	if err := os.WriteFile(p, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExecuteSuccess(t *testing.T) {
	env := newTestEnv("")
	p := writeProgram(t, "++++++++[>++++++++<-]>+.")
	if code := execute(context.Background(), []string{"run", p}, env.defs()...); code != 0 {
		t.Fatalf("got %d, %s", code, env.stderr.String())
	}
	if got := env.device.Output.String(); got != "A" {
		t.Fatalf("got %q", got)
	}
}

func TestExecuteParseError(t *testing.T) {
	env := newTestEnv("")
	p := writeProgram(t, "[+++")
	if code := execute(context.Background(), []string{"run", p}, env.defs()...); code != 1 {
		t.Fatalf("got %d", code)
	}
	if !strings.HasPrefix(env.stderr.String(), "error:") {
		t.Fatalf("got %q", env.stderr.String())
	}
	if !strings.Contains(env.stderr.String(), "prog.bf:1:1") {
		t.Fatalf("got %q", env.stderr.String())
	}
}

func TestExecuteFault(t *testing.T) {
	env := newTestEnv("")
	p := writeProgram(t, "+.,")
	if code := execute(context.Background(), []string{"run", p}, env.defs()...); code != 1 {
		t.Fatalf("got %d", code)
	}
	if got := env.device.Output.String(); got != "\x01" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(env.stderr.String(), "prog.bf:1:3") {
		t.Fatalf("got %q", env.stderr.String())
	}
}

func TestExecuteMissingFile(t *testing.T) {
	env := newTestEnv("")
	p := filepath.Join(t.TempDir(), "missing.bf")
	if code := execute(context.Background(), []string{"run", p}, env.defs()...); code != 1 {
		t.Fatalf("got %d", code)
	}
	if !strings.HasPrefix(env.stderr.String(), "error: ") {
		t.Fatalf("got %q", env.stderr.String())
	}
}

func TestExecuteUsage(t *testing.T) {
	env := newTestEnv("")
	if code := execute(context.Background(), []string{"frobnicate"}, env.defs()...); code != 2 {
		t.Fatalf("got %d", code)
	}
	if code := execute(context.Background(), nil, env.defs()...); code != 2 {
		t.Fatalf("got %d", code)
	}
	if code := execute(context.Background(), []string{"run"}, env.defs()...); code != 2 {
		t.Fatalf("got %d", code)
	}
	if env.device.Output.Len() != 0 {
		t.Fatal()
	}
}

func TestExecuteCanceled(t *testing.T) {
	env := newTestEnv("")
	p := writeProgram(t, "+[]")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := execute(ctx, []string{"run", p}, env.defs()...); code != 130 {
		t.Fatalf("got %d, %s", code, env.stderr.String())
	}
}

type interruptingDevice struct {
	devices.Memory
}

func (d *interruptingDevice) Poll() (byte, bool, error) {
	return 0, false, devices.ErrInterrupted
}

func TestExecuteInterrupted(t *testing.T) {
	env := newTestEnv("")
	p := writeProgram(t, ",.")
	defs := append(env.defs(), func() runner.Device {
		return new(interruptingDevice)
	})
	if code := execute(context.Background(), []string{"run", p}, defs...); code != 130 {
		t.Fatalf("got %d, %s", code, env.stderr.String())
	}
	if env.stderr.Len() != 0 {
		t.Fatalf("got %q", env.stderr.String())
	}
}

func TestExecuteCompile(t *testing.T) {
	env := newTestEnv("")
	p := writeProgram(t, "+++[-]")

	defer cmds.MustExecute([]string{"!-tree"})
	if code := execute(context.Background(), []string{"-tree", "compile", p}, env.defs()...); code != 0 {
		t.Fatalf("got %d, %s", code, env.stderr.String())
	}
	if got := env.stdout.String(); got != "add(3) loop[subtract(1)]\n" {
		t.Fatalf("got %q", got)
	}
	cmds.MustExecute([]string{"!-tree"})

	out := filepath.Join(t.TempDir(), "prog.json")
	if code := execute(context.Background(), []string{"compile", p, out}, env.defs()...); code != 0 {
		t.Fatalf("got %d, %s", code, env.stderr.String())
	}
	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), `"kind": "loop"`) {
		t.Fatalf("got %s", content)
	}
}

func TestExecuteExplain(t *testing.T) {
	env := newTestEnv("")
	p := writeProgram(t, "+,")
	if code := execute(context.Background(), []string{"explain", p}, env.defs()...); code != 0 {
		t.Fatalf("got %d, %s", code, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Take input") {
		t.Fatalf("got %q", env.stdout.String())
	}
}
