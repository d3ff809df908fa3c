package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapRun annotates err with the run and source carried by ctx.
func WrapRun(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	info, ok := ctx.Value(RunKey).(runInfo)
	if !ok {
		return err
	}
	if info.source != "" {
		return errors.Join(err, fmt.Errorf("run: %s, source: %s", info.run, info.source))
	}
	return errors.Join(err, fmt.Errorf("run: %s", info.run))
}
