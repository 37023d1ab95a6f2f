package api

import "errors"

// Receive-side errors.
var (
	ErrInvalidDelimiter = errors.New("invalid start delimiter")
	ErrInvalidChecksum  = errors.New("invalid checksum")
	ErrFrameTooLarge    = errors.New("frame too large")
	ErrMalformedFrame   = errors.New("malformed frame")
	ErrDelimiterTimeout = errors.New("timeout waiting for start delimiter")
	ErrLengthTimeout    = errors.New("timeout reading frame length")
	ErrDataTimeout      = errors.New("timeout reading frame data")
	ErrChecksumTimeout  = errors.New("timeout reading frame checksum")
)

// Send-side errors.
var (
	ErrWriteTimeout = errors.New("write timeout")
)

// IsTimeout reports whether err is one of the per-stage receive timeouts.
func IsTimeout(err error) bool {
	switch err {
	case ErrDelimiterTimeout, ErrLengthTimeout, ErrDataTimeout, ErrChecksumTimeout:
		return true
	}
	return false
}
