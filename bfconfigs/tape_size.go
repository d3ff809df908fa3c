package bfconfigs

import (
	"fmt"

	"github.com/reusee/bfem/cmds"
	"github.com/reusee/bfem/configs"
	"github.com/reusee/bfem/logs"
	"github.com/reusee/bfem/tape"
	"github.com/reusee/bfem/vars"
)

type TapeSize int

var _ configs.Configurable = TapeSize(0)

func (t TapeSize) ConfigExpr() string {
	return "tape_size"
}

// Validate rejects sizes tape.New cannot allocate. The schema bounds config
// values, this catches the flag.
func (t TapeSize) Validate() error {
	if t <= 0 {
		return fmt.Errorf("tape size must be positive, got %d", int(t))
	}
	if int64(t) > tape.MaxSize {
		return fmt.Errorf("tape size %d exceeds the limit of %d cells", int(t), int64(tape.MaxSize))
	}
	return nil
}

var tapeSizeFlag = cmds.Var[int]("-tape-size", "number of cells, default 30000")

func (Module) TapeSize(
	loader configs.Loader,
	logger logs.Logger,
) TapeSize {
	size, origin := vars.Layered(
		*tapeSizeFlag,
		configs.First[int](loader, "tape_size"),
		tape.DefaultSize,
	)
	logger.Debug("setting", "name", "tape_size", "value", size, "origin", origin)
	return TapeSize(size)
}
