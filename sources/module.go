package sources

import (
	"github.com/reusee/bfem/logs"
	"github.com/reusee/bfem/nets"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Nets nets.Module
	Logs logs.Module
}
