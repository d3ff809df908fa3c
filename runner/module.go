package runner

import (
	"github.com/reusee/bfem/bfconfigs"
	"github.com/reusee/bfem/debugs"
	"github.com/reusee/bfem/logs"
	"github.com/reusee/bfem/sources"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs bfconfigs.Module
	Sources sources.Module
	Debugs  debugs.Module
	Logs    logs.Module
}
