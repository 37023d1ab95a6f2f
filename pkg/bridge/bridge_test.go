package bridge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUplinkEventEncoding(t *testing.T) {
	event := UplinkEvent{
		Port:     7,
		RSSI:     -42,
		SNR:      3,
		DataRate: 2,
		Slot:     1,
		Counter:  43,
		Payload:  []byte{0xAA, 0xBB},
	}
	encoded, err := json.Marshal(&event)
	require.NoError(t, err)
	var decoded UplinkEvent
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, event, decoded)
}

func TestStatusEventOmitsEmptyMessage(t *testing.T) {
	encoded, err := json.Marshal(&StatusEvent{FrameID: 1, OK: true})
	require.NoError(t, err)
	require.NotContains(t, string(encoded), "message")
}

func TestHandleDownlink(t *testing.T) {
	b := New(nil, nil, "dev0")
	b.handleDownlink("dev0/down", []byte(`{"port":2,"ack":true,"payload":"3q0="}`))
	require.Len(t, b.downlinks, 1)
	cmd := <-b.downlinks
	require.Equal(t, byte(2), cmd.Port)
	require.True(t, cmd.Ack)
	require.Equal(t, []byte{0xDE, 0xAD}, cmd.Payload)
}

func TestHandleDownlinkBadJSON(t *testing.T) {
	b := New(nil, nil, "dev0")
	b.handleDownlink("dev0/down", []byte("not json"))
	require.Empty(t, b.downlinks)
}

func TestHandleDownlinkQueueFull(t *testing.T) {
	b := New(nil, nil, "dev0")
	for i := 0; i < cap(b.downlinks)+4; i++ {
		b.handleDownlink("dev0/down", []byte(`{"port":1}`))
	}
	require.Len(t, b.downlinks, cap(b.downlinks))
}
