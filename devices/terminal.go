package devices

import (
	"bufio"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

const pollInterval = 50 * time.Millisecond

const ctrlC = 3

type readResult struct {
	b   byte
	err error
}

// Terminal reads keystrokes from a file, switching it to raw mode when it is a
// terminal, and writes output to another file.
type Terminal struct {
	in       *os.File
	out      *bufio.Writer
	raw      bool
	oldState *term.State

	startOnce sync.Once
	stop      func() error
	bytes     chan readResult
	done      chan struct{}
}

var _ Device = new(Terminal)

func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:    in,
		out:   bufio.NewWriter(out),
		// unbuffered, so at most one byte is read ahead of Poll
		bytes: make(chan readResult),
		done:  make(chan struct{}),
	}
}

func NewStdio() *Terminal {
	return NewTerminal(os.Stdin, os.Stdout)
}

func (t *Terminal) start() {
	t.startOnce.Do(func() {
		fd := int(t.in.Fd())
		if term.IsTerminal(fd) {
			state, err := term.MakeRaw(fd)
			if err == nil {
				t.oldState = state
				t.raw = true
			}
		}
		reader, stop, err := detach(t.in)
		if err != nil {
			reader = t.in
			stop = nil
		}
		t.stop = stop
		go t.readLoop(reader)
	})
}

func (t *Terminal) readLoop(reader *os.File) {
	buf := make([]byte, 1)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			select {
			case t.bytes <- readResult{b: buf[0]}:
			case <-t.done:
				return
			}
		}
		if err != nil {
			if err == io.EOF {
				err = ErrEndOfInput
			}
			select {
			case t.bytes <- readResult{err: err}:
			case <-t.done:
			}
			return
		}
	}
}

func (t *Terminal) Poll() (byte, bool, error) {
	if err := t.out.Flush(); err != nil {
		return 0, false, err
	}
	t.start()
	select {
	case res := <-t.bytes:
		if res.err != nil {
			return 0, false, res.err
		}
		if t.raw && res.b == ctrlC {
			return 0, false, ErrInterrupted
		}
		if t.raw && res.b == '\r' {
			res.b = '\n'
		}
		return res.b, true, nil
	case <-time.After(pollInterval):
		return 0, false, nil
	}
}

func (t *Terminal) WriteByte(b byte) error {
	if t.raw && b == '\n' {
		if err := t.out.WriteByte('\r'); err != nil {
			return err
		}
	}
	if err := t.out.WriteByte(b); err != nil {
		return err
	}
	if b == '\n' {
		return t.out.Flush()
	}
	return nil
}

func (t *Terminal) Flush() error {
	return t.out.Flush()
}

// Close flushes pending output, stops the reader and restores the terminal
// state. Input arriving after Close stays unread in the file.
func (t *Terminal) Close() error {
	// no reader may start after this
	t.startOnce.Do(func() {})
	err := t.out.Flush()
	select {
	case <-t.done:
	default:
		close(t.done)
	}
	if t.stop != nil {
		if stopErr := t.stop(); stopErr != nil && err == nil {
			err = stopErr
		}
		t.stop = nil
	}
	if t.oldState != nil {
		if restoreErr := term.Restore(int(t.in.Fd()), t.oldState); restoreErr != nil && err == nil {
			err = restoreErr
		}
		t.oldState = nil
	}
	return err
}
