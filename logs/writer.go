package logs

import (
	"bytes"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Writer receives the text records.
type Writer io.Writer

func (Module) Writer() Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return NewCRLFWriter(os.Stderr)
	}
	return os.Stderr
}

// CRLFWriter ends lines with \r\n. A running program may hold the terminal in
// raw mode, where a bare \n does not return the cursor.
type CRLFWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewCRLFWriter(w io.Writer) *CRLFWriter {
	return &CRLFWriter{
		w: w,
	}
}

func (c *CRLFWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
