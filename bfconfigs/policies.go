package bfconfigs

import (
	"github.com/reusee/bfem/cmds"
	"github.com/reusee/bfem/configs"
	"github.com/reusee/bfem/logs"
	"github.com/reusee/bfem/tape"
	"github.com/reusee/bfem/vars"
)

type CellPolicy tape.CellPolicy

var _ configs.Configurable = CellPolicy("")

func (c CellPolicy) ConfigExpr() string {
	return "cell_mode"
}

type TapePolicy tape.TapePolicy

var _ configs.Configurable = TapePolicy("")

func (t TapePolicy) ConfigExpr() string {
	return "tape_mode"
}

var (
	cellModeFlag = cmds.Var[tape.CellPolicy]("-cell-mode", "circular, clamp or fail")
	tapeModeFlag = cmds.Var[tape.TapePolicy]("-tape-mode", "circular, append or fail")
)

// CellPolicy panics on an unknown policy name in config; the schema rejects those first.
func (Module) CellPolicy(
	loader configs.Loader,
	logger logs.Logger,
) CellPolicy {
	var fromConfig tape.CellPolicy
	if str := configs.First[string](loader, "cell_mode"); str != "" {
		parsed, err := tape.ParseCellPolicy(str)
		if err != nil {
			panic(err)
		}
		fromConfig = parsed
	}
	policy, origin := vars.Layered(*cellModeFlag, fromConfig, tape.CellCircular)
	logger.Debug("setting", "name", "cell_mode", "value", policy, "origin", origin)
	return CellPolicy(policy)
}

func (Module) TapePolicy(
	loader configs.Loader,
	logger logs.Logger,
) TapePolicy {
	var fromConfig tape.TapePolicy
	if str := configs.First[string](loader, "tape_mode"); str != "" {
		parsed, err := tape.ParseTapePolicy(str)
		if err != nil {
			panic(err)
		}
		fromConfig = parsed
	}
	policy, origin := vars.Layered(*tapeModeFlag, fromConfig, tape.TapeCircular)
	logger.Debug("setting", "name", "tape_mode", "value", policy, "origin", origin)
	return TapePolicy(policy)
}
