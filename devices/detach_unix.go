//go:build unix

package devices

import (
	"os"

	"golang.org/x/sys/unix"
)

// detach returns a reader over a duplicate of in's descriptor, switched to
// non-blocking mode so closing it interrupts a pending Read. stop closes the
// duplicate and puts the shared file description back into blocking mode.
func detach(in *os.File) (reader *os.File, stop func() error, err error) {
	fd := int(in.Fd())
	dup, err := unix.Dup(fd)
	if err != nil {
		return nil, nil, err
	}
	if err := unix.SetNonblock(dup, true); err != nil {
		unix.Close(dup)
		return nil, nil, err
	}
	reader = os.NewFile(uintptr(dup), in.Name())
	stop = func() error {
		err := reader.Close()
		if restoreErr := unix.SetNonblock(fd, false); restoreErr != nil && err == nil {
			err = restoreErr
		}
		return err
	}
	return reader, stop, nil
}
