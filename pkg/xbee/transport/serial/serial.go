// Package serial adapts a UART to the transport contract.
package serial

import (
	"time"

	"go.bug.st/serial"
)

// Transport drives a serial port.
type Transport struct {
	port serial.Port
}

// Open opens a serial port at the given baud rate. The port is configured
// with a short read timeout so Read returns promptly when the line is idle.
func Open(device string, baud int) (*Transport, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}
	if err = port.SetReadTimeout(time.Millisecond); err != nil {
		port.Close()
		return nil, err
	}
	return &Transport{port: port}, nil
}

// Read reads available bytes. Returns (0, nil) when the line is idle.
func (t *Transport) Read(p []byte) (int, error) {
	return t.port.Read(p)
}

// Write writes p to the port.
func (t *Transport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

// FlushInput discards unread bytes buffered by the driver.
func (t *Transport) FlushInput() error {
	return t.port.ResetInputBuffer()
}

// Now returns the host time.
func (t *Transport) Now() time.Time {
	return time.Now()
}

// Sleep sleeps on the host clock.
func (t *Transport) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Close closes the port.
func (t *Transport) Close() error {
	return t.port.Close()
}
