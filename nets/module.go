package nets

import (
	"github.com/reusee/bfem/bfconfigs"
	"github.com/reusee/bfem/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs bfconfigs.Module
	Logs    logs.Module
}
