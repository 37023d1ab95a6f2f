// Package transport defines the byte-level contract an xbee.Device drives a
// module through. Adapters for concrete environments live in the
// subpackages: serial (UART), stream (any io.ReadWriter) and ws (websocket).
package transport

import "time"

// Transport is the access a Device needs to a module: best-effort
// non-blocking byte I/O plus a clock and a cooperative delay. All timeout
// accounting in the protocol layer goes through Now and Sleep, so a
// transport with a synthetic clock can exercise every timing path.
type Transport interface {
	// Read fills p with whatever bytes are available and returns
	// immediately. A return of (0, nil) means no data yet.
	Read(p []byte) (int, error)

	// Write writes as much of p as the transport accepts right now.
	Write(p []byte) (int, error)

	// FlushInput discards buffered unread bytes.
	FlushInput() error

	// Now returns the current time. It must be monotonic.
	Now() time.Time

	// Sleep yields for at least d.
	Sleep(d time.Duration)
}
