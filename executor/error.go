package executor

import (
	"fmt"

	"github.com/reusee/bfem/program"
)

type InvalidInstructionError struct {
	Kind program.Kind
}

func (i *InvalidInstructionError) Error() string {
	return fmt.Sprintf("invalid instruction: %v", i.Kind)
}
