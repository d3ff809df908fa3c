package devices

import "errors"

// Device is the byte I/O capability the executor consumes.
type Device interface {
	// Poll returns the next input byte. ok is false when no byte is available yet;
	// callers retry.
	Poll() (b byte, ok bool, err error)
	WriteByte(b byte) error
}

var (
	ErrEndOfInput  = errors.New("end of input")
	ErrInterrupted = errors.New("interrupted")
)

// Flusher is implemented by devices that buffer output.
type Flusher interface {
	Flush() error
}

func Flush(device Device) error {
	if f, ok := device.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
