package bfconfigs

import (
	"github.com/reusee/bfem/cmds"
	"github.com/reusee/bfem/configs"
)

// Features toggles the optional stages of a run.
type Features struct {
	Aliases          bool
	Optimise         bool
	Alloc            bool
	StrictWhitespace bool
}

var _ configs.Configurable = Features{}

func (f Features) ConfigExpr() string {
	return "features"
}

var (
	disableAliases   = cmds.Switch("-disable-aliases", "treat { and } as unrecognized tokens")
	disableOptimise  = cmds.Switch("-disable-optimise", "run instructions without merging runs")
	disableAlloc     = cmds.Switch("-disable-alloc", "bind aliases on first use instead of before the run")
	strictWhitespace = cmds.Switch("-strict-whitespace", "reject whitespace as an unrecognized token")
)

func (Module) Features(
	loader configs.Loader,
) Features {
	flag := func(disabled bool, key string) bool {
		if disabled {
			return false
		}
		enabled, ok, err := configs.Lookup[bool](loader, key)
		if err != nil {
			panic(err)
		}
		return !ok || enabled
	}
	features := Features{
		Aliases:  flag(*disableAliases, "aliases"),
		Optimise: flag(*disableOptimise, "optimise"),
		Alloc:    flag(*disableAlloc, "alloc"),
	}
	if *strictWhitespace {
		features.StrictWhitespace = true
	} else {
		features.StrictWhitespace = configs.First[bool](loader, "strict_whitespace")
	}
	return features
}
