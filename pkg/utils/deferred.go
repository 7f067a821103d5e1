// Package utils contains small helpers shared by the CLI entrypoints.
package utils

import (
	"io"
	"sync"
)

// DeferredWriter buffers writes in memory until Flush is called. Each Write
// is kept as a separate entry so line-oriented writers such as
// zerolog.ConsoleWriter receive one event per call.
type DeferredWriter struct {
	mu      sync.Mutex
	entries [][]byte
}

// Write buffers a copy of p.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry := make([]byte, len(p))
	copy(entry, p)
	d.entries = append(d.entries, entry)
	return len(p), nil
}

// Len returns the number of buffered entries.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Flush writes every buffered entry to w in order and clears the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	entries := d.entries
	d.entries = nil
	d.mu.Unlock()

	for _, e := range entries {
		if _, err := w.Write(e); err != nil {
			return err
		}
	}
	return nil
}
