package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	buf, err := Encode(FrameTypeATCommand, []byte{0x01, 0x4A, 0x53})
	require.NoError(t, err)
	require.Equal(t, []byte{0x7E, 0x00, 0x04, 0x08, 0x01, 0x4A, 0x53, 0x59}, buf)
}

func TestEncodeTooLarge(t *testing.T) {
	_, err := Encode(FrameTypeTxRequest, make([]byte, MaxFrameDataSize))
	require.Equal(t, ErrFrameTooLarge, err)
}

func TestChecksum(t *testing.T) {
	data := []byte{0x08, 0x01, 0x4A, 0x53}
	csum := Checksum(data)
	sum := csum
	for _, b := range data {
		sum += b
	}
	require.Equal(t, byte(0xFF), sum)
}

func TestParseATResponse(t *testing.T) {
	f := &Frame{
		Type: FrameTypeATResponse,
		Data: []byte{0x88, 0x03, 'J', 'S', 0x00, 0x01},
	}
	resp, err := ParseATResponse(f)
	require.NoError(t, err)
	require.Equal(t, byte(3), resp.FrameID)
	require.Equal(t, "JS", resp.Command)
	require.Equal(t, byte(0), resp.Status)
	require.Equal(t, []byte{0x01}, resp.Value)
}

func TestParseATResponseMalformed(t *testing.T) {
	_, err := ParseATResponse(&Frame{Type: FrameTypeATResponse, Data: []byte{0x88, 1, 'J'}})
	require.Equal(t, ErrMalformedFrame, err)
	_, err = ParseATResponse(&Frame{Type: FrameTypeModemStatus, Data: make([]byte, 6)})
	require.Equal(t, ErrMalformedFrame, err)
}
