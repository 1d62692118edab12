package logutils

import (
	"bytes"
	"io"
	"sync"
)

// Deferred holds log output in memory while a full-screen UI owns the
// terminal. Flush writes it out once the UI has exited.
type Deferred struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (d *Deferred) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Flush writes the buffered output to w and empties the buffer.
func (d *Deferred) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(w)
	return err
}
