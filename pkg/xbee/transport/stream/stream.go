// Package stream adapts any io.ReadWriter (TCP connection, PTY, pipe) to
// the transport contract using the host clock.
package stream

import (
	"io"
	"os"
	"time"
)

// pollDeadline is how long a single Read is allowed to block on
// deadline-capable ReadWriters before reporting "no data yet".
const pollDeadline = time.Millisecond

type deadlineSetter interface {
	SetReadDeadline(time.Time) error
}

type inputFlusher interface {
	FlushInput() error
}

// Transport wraps an io.ReadWriter.
type Transport struct {
	RW io.ReadWriter
}

// New creates a Transport over rw.
func New(rw io.ReadWriter) *Transport {
	return &Transport{RW: rw}
}

// Read reads available bytes. On ReadWriters that support read deadlines
// (net.Conn), a short deadline keeps Read from blocking; a deadline
// expiry is reported as no data, not as an error.
func (t *Transport) Read(p []byte) (int, error) {
	if d, ok := t.RW.(deadlineSetter); ok {
		d.SetReadDeadline(time.Now().Add(pollDeadline))
	}
	n, err := t.RW.Read(p)
	if err != nil && os.IsTimeout(err) {
		return n, nil
	}
	return n, err
}

// Write writes p.
func (t *Transport) Write(p []byte) (int, error) {
	return t.RW.Write(p)
}

// FlushInput discards buffered input when the underlying ReadWriter knows
// how to, and is a no-op otherwise.
func (t *Transport) FlushInput() error {
	if f, ok := t.RW.(inputFlusher); ok {
		return f.FlushInput()
	}
	return nil
}

// Now returns the host time.
func (t *Transport) Now() time.Time {
	return time.Now()
}

// Sleep sleeps on the host clock.
func (t *Transport) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Close closes the underlying ReadWriter if it is an io.Closer.
func (t *Transport) Close() error {
	if c, ok := t.RW.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
