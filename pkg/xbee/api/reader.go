package api

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/xbee.go/pkg/xbee/transport"
)

// pollDelay is the pause between read attempts inside a stage.
const pollDelay = time.Millisecond

// ReadFrame reads exactly one frame: the start delimiter, two length
// bytes, the length-counted data and the checksum byte, each stage bounded
// by stageTimeout. A stage that does not complete in time fails with its
// own timeout error; ErrDelimiterTimeout therefore means the line was
// idle, while the other timeouts mean a frame was cut short.
func ReadFrame(tr transport.Transport, stageTimeout time.Duration) (*Frame, error) {
	var delim [1]byte
	if err := readFull(tr, delim[:], stageTimeout, ErrDelimiterTimeout); err != nil {
		return nil, err
	}
	if delim[0] != StartDelimiter {
		return nil, ErrInvalidDelimiter
	}

	var lenBytes [2]byte
	if err := readFull(tr, lenBytes[:], stageTimeout, ErrLengthTimeout); err != nil {
		return nil, err
	}
	length := int(lenBytes[0])<<8 | int(lenBytes[1])
	if length > MaxFrameDataSize {
		return nil, ErrFrameTooLarge
	}

	data := make([]byte, length)
	if err := readFull(tr, data, stageTimeout, ErrDataTimeout); err != nil {
		return nil, err
	}

	var csum [1]byte
	if err := readFull(tr, csum[:], stageTimeout, ErrChecksumTimeout); err != nil {
		return nil, err
	}

	sum := csum[0]
	for _, b := range data {
		sum += b
	}
	if sum != 0xFF {
		return nil, ErrInvalidChecksum
	}

	f := &Frame{Data: data}
	if length > 0 {
		f.Type = FrameType(data[0])
	}
	if glog.V(2) {
		glog.Infof("RCV frame type=%v len=%d", f.Type, length)
	}
	return f, nil
}

// WriteFrame encodes a frame and writes it, retrying partial writes until
// timeout.
func WriteFrame(tr transport.Transport, t FrameType, payload []byte, timeout time.Duration) error {
	buf, err := Encode(t, payload)
	if err != nil {
		return err
	}
	deadline := tr.Now().Add(timeout)
	written := 0
	for {
		n, err := tr.Write(buf[written:])
		if err != nil {
			return err
		}
		written += n
		if written == len(buf) {
			break
		}
		if !tr.Now().Before(deadline) {
			return ErrWriteTimeout
		}
		tr.Sleep(pollDelay)
	}
	if glog.V(2) {
		glog.Infof("SND frame type=%v len=%d", t, len(buf))
	}
	return nil
}

// readFull fills buf, polling the transport until the deadline. timeoutErr
// names the stage that timed out.
func readFull(tr transport.Transport, buf []byte, timeout time.Duration, timeoutErr error) error {
	deadline := tr.Now().Add(timeout)
	got := 0
	for {
		n, err := tr.Read(buf[got:])
		if err != nil {
			return err
		}
		got += n
		if got == len(buf) {
			return nil
		}
		if !tr.Now().Before(deadline) {
			return timeoutErr
		}
		tr.Sleep(pollDelay)
	}
}
