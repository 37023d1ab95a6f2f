package xbee

import (
	"errors"
	"fmt"

	"github.com/robotalks/xbee.go/pkg/xbee/at"
)

var (
	// ErrUnknownCommand indicates an AT command with no wire code.
	ErrUnknownCommand = errors.New("unknown AT command")
	// ErrResponseTimeout indicates no AT response arrived in time.
	ErrResponseTimeout = errors.New("timeout waiting for AT response")
	// ErrJoinTimeout indicates the module did not join before the
	// connection timeout.
	ErrJoinTimeout = errors.New("join timeout")
	// ErrNotImplemented is returned by operations of stubbed variants.
	ErrNotImplemented = errors.New("not implemented")
)

// CommandError reports an AT command the module rejected with a non-zero
// response status.
type CommandError struct {
	Command at.Command
	Status  byte
}

// Error implements error.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s rejected: status 0x%02X", e.Command, e.Status)
}
