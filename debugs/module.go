package debugs

import (
	"github.com/reusee/bfem/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
