package runner

import (
	"io"
	"os"

	"github.com/reusee/bfem/cmds"
	"github.com/reusee/bfem/devices"
)

// Device is the byte device programs read from and write to.
type Device devices.Device

func (Module) Device() Device {
	return devices.NewStdio()
}

// Stdout receives explain and tree output.
type Stdout io.Writer

func (Module) Stdout() Stdout {
	return os.Stdout
}

// Stderr receives rendered diagnostics.
type Stderr io.Writer

func (Module) Stderr() Stderr {
	return os.Stderr
}

var debugFlag = cmds.Switch("-debug", "open a starlark inspector when a run stops with an error")

// InspectOnFault opens the inspector when a run stops with an error.
type InspectOnFault bool

func (Module) InspectOnFault() InspectOnFault {
	return InspectOnFault(*debugFlag)
}
