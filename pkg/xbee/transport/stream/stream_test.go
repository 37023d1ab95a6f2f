package stream

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	data     []byte
	deadline time.Time
	flushed  bool
	closed   bool
}

func (c *fakeConn) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, os.ErrDeadlineExceeded
	}
	n := copy(p, c.data)
	c.data = c.data[n:]
	return n, nil
}

func (c *fakeConn) Write(p []byte) (int, error) {
	c.data = append(c.data, p...)
	return len(p), nil
}

func (c *fakeConn) SetReadDeadline(t time.Time) error {
	c.deadline = t
	return nil
}

func (c *fakeConn) FlushInput() error {
	c.flushed = true
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestReadSetsDeadline(t *testing.T) {
	conn := &fakeConn{data: []byte{0x7E}}
	tr := New(conn)
	buf := make([]byte, 4)
	n, err := tr.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.False(t, conn.deadline.IsZero())
}

func TestReadTimeoutIsNoData(t *testing.T) {
	tr := New(&fakeConn{})
	n, err := tr.Read(make([]byte, 4))
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestFlushAndClose(t *testing.T) {
	conn := &fakeConn{}
	tr := New(conn)
	require.NoError(t, tr.FlushInput())
	require.True(t, conn.flushed)
	require.NoError(t, tr.Close())
	require.True(t, conn.closed)
}
