// Package ws adapts a websocket connection carrying raw serial bytes
// (e.g. a ser2net-style gateway) to the transport contract.
package ws

import (
	"os"
	"time"

	"golang.org/x/net/websocket"
)

// pollDeadline bounds a single Read so the transport stays non-blocking.
const pollDeadline = time.Millisecond

// Transport wraps a websocket connection.
type Transport struct {
	conn *websocket.Conn
}

// Dial connects to a remote serial endpoint.
func Dial(url, origin string) (*Transport, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	conn.PayloadType = websocket.BinaryFrame
	return &Transport{conn: conn}, nil
}

// New wraps an established connection, e.g. inside a websocket.Handler.
func New(conn *websocket.Conn) *Transport {
	conn.PayloadType = websocket.BinaryFrame
	return &Transport{conn: conn}
}

// Read reads available bytes, reporting a deadline expiry as no data.
func (t *Transport) Read(p []byte) (int, error) {
	t.conn.SetReadDeadline(time.Now().Add(pollDeadline))
	n, err := t.conn.Read(p)
	if err != nil && os.IsTimeout(err) {
		return n, nil
	}
	return n, err
}

// Write writes p as a binary frame.
func (t *Transport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

// FlushInput is a no-op; the remote end owns the receive buffer.
func (t *Transport) FlushInput() error {
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

// Close closes the connection.
func (t *Transport) Close() error {
	return t.conn.Close()
}
