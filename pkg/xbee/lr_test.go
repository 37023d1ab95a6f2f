package xbee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/xbee.go/pkg/xbee/api"
)

// joinResponder answers join-status queries, reporting joined once the
// query count reaches joinAfter (0 means never).
func joinResponder(tr *simTransport, joinAfter int) *int {
	polls := new(int)
	tr.onFrame = func(f sentFrame) {
		if f.ftype != api.FrameTypeATCommand || string(f.payload[1:3]) != "JS" {
			return
		}
		*polls++
		var joined byte
		if joinAfter > 0 && *polls >= joinAfter {
			joined = 1
		}
		tr.injectATResponse(f.payload[0], "JS", 0, joined)
	}
	return polls
}

func TestConnect(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	var connects int
	dev.OnConnect = func(*Device) { connects++ }
	polls := joinResponder(tr, 3)

	require.Equal(t, StateDisconnected, dev.State())
	require.NoError(t, dev.Connect())
	require.Equal(t, StateJoined, dev.State())
	require.Equal(t, 3, *polls)
	require.Equal(t, 1, connects)

	// The join request went out before any status poll.
	require.Equal(t, api.FrameTypeLRJoinRequest, tr.frames[0].ftype)
	require.Equal(t, []byte{1}, tr.frames[0].payload)

	joined, err := dev.Connected()
	require.NoError(t, err)
	require.True(t, joined)
}

func TestConnectBoundedRetry(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	polls := joinResponder(tr, 0)

	start := tr.Now()
	err := dev.Connect()
	require.Equal(t, ErrJoinTimeout, err)
	require.Equal(t, StateDisconnected, dev.State())
	require.True(t, tr.Now().Sub(start) >= dev.Timeouts.Join)
	want := int(dev.Timeouts.Join / dev.Timeouts.JoinPoll)
	require.Equal(t, want, *polls)
}

func TestDisconnect(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	var disconnects int
	dev.OnDisconnect = func(*Device) { disconnects++ }
	joinResponder(tr, 1)
	require.NoError(t, dev.Connect())

	n := len(tr.frames)
	require.NoError(t, dev.Disconnect())
	require.Equal(t, StateDisconnected, dev.State())
	require.Equal(t, 1, disconnects)
	// No network-side signaling.
	require.Len(t, tr.frames, n)
}

func TestSend(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	var reports []*Packet
	dev.OnSend = func(_ *Device, p *Packet) {
		cp := *p
		reports = append(reports, &cp)
	}
	tr.onFrame = func(f sentFrame) {
		if f.ftype == api.FrameTypeLRTxRequest {
			tr.inject(api.FrameTypeTxStatus, f.payload[0], 0x00)
		}
	}

	pkt := &Packet{Port: 1, Payload: []byte{0x01, 0x02}, Ack: true}
	status, err := dev.Send(pkt)
	require.NoError(t, err)
	require.Equal(t, DeliverySuccess, status)
	require.Equal(t, DeliverySuccess, dev.DeliveryStatus())
	require.True(t, dev.StatusReceived())

	require.Len(t, tr.frames, 1)
	f := tr.frames[0]
	require.Equal(t, api.FrameTypeLRTxRequest, f.ftype)
	require.Equal(t, []byte{pkt.FrameID, 0x01, 0x01, 0x01, 0x02}, f.payload)
	require.Len(t, reports, 1)
	require.Equal(t, pkt.FrameID, reports[0].FrameID)
	require.Equal(t, DeliverySuccess, reports[0].Status)
}

func TestSendFailureStatus(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	tr.onFrame = func(f sentFrame) {
		if f.ftype == api.FrameTypeLRTxRequest {
			tr.inject(api.FrameTypeTxStatus, f.payload[0], byte(DeliveryNotJoined))
		}
	}
	status, err := dev.Send(&Packet{Port: 2, Payload: []byte{0xAB}})
	require.NoError(t, err)
	require.Equal(t, DeliveryNotJoined, status)
	require.False(t, status.OK())
}

func TestSendTimeout(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	start := tr.Now()
	status, err := dev.Send(&Packet{Port: 1, Payload: []byte{0x01}})
	require.NoError(t, err)
	require.Equal(t, DeliveryTimeout, status)
	require.False(t, dev.StatusReceived())
	require.True(t, tr.Now().Sub(start) >= dev.Timeouts.Send)
}

func TestExplicitRxDecode(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	var received []*Packet
	dev.OnReceive = func(_ *Device, p *Packet) {
		cp := *p
		cp.Payload = append([]byte(nil), p.Payload...)
		received = append(received, &cp)
	}
	dev.HandleFrame(&api.Frame{
		Type: api.FrameTypeLRRxPacketExplicit,
		Data: []byte{0x00, 0x07, 0x2A, 0x01, 0x12, 0x00, 0x00, 0x00, 0x2B, 0xAA, 0xBB},
	})
	require.Len(t, received, 1)
	p := received[0]
	require.Equal(t, byte(0x07), p.Port)
	require.Equal(t, int8(0x2A), p.RSSI)
	require.Equal(t, int8(0x01), p.SNR)
	require.Equal(t, byte(0x2), p.DataRate)
	require.Equal(t, byte(0x1), p.Slot)
	require.Equal(t, uint32(0x2B), p.Counter)
	require.Equal(t, []byte{0xAA, 0xBB}, p.Payload)
}

func TestRxDecode(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	var received []*Packet
	dev.OnReceive = func(_ *Device, p *Packet) {
		cp := *p
		cp.Payload = append([]byte(nil), p.Payload...)
		received = append(received, &cp)
	}
	tr.inject(api.FrameTypeLRRxPacket, 0x0A, 0xDE, 0xAD, 0xBE, 0xEF)
	require.NoError(t, dev.Process())
	require.Len(t, received, 1)
	require.Equal(t, byte(0x0A), received[0].Port)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, received[0].Payload)
}

func TestRxDecodeShortFrame(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	dev.OnReceive = func(*Device, *Packet) {
		t.Fatal("callback for truncated frame")
	}
	dev.HandleFrame(&api.Frame{Type: api.FrameTypeLRRxPacketExplicit, Data: make([]byte, 5)})
	dev.HandleFrame(&api.Frame{Type: api.FrameTypeLRRxPacket, Data: make([]byte, 1)})
}

func TestTxStatusExplicitDecode(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	var reports []*Packet
	dev.OnSend = func(_ *Device, p *Packet) {
		cp := *p
		reports = append(reports, &cp)
	}
	dev.HandleFrame(&api.Frame{
		Type: api.FrameTypeLRTxStatusExplicit,
		Data: []byte{0xD9, 0x07, 0x00, 0x03, 0x05, 0x14, 0x00, 0x00, 0x01, 0x02},
	})
	require.Len(t, reports, 1)
	p := reports[0]
	require.Equal(t, byte(0x07), p.FrameID)
	require.Equal(t, DeliverySuccess, p.Status)
	require.Equal(t, byte(0x03), p.DataRate)
	require.Equal(t, byte(0x05), p.Channel)
	require.Equal(t, int8(0x14), p.Power)
	require.Equal(t, uint32(0x0102), p.Counter)
	require.True(t, dev.StatusReceived())
}

func TestLRSetters(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	respondOK(tr)

	testCases := []struct {
		name  string
		call  func() error
		code  string
		param []byte
	}{
		{"app eui", func() error { return dev.SetAppEUI("0011223344556677") }, "AE", []byte("0011223344556677")},
		{"app key", func() error { return dev.SetAppKey("00112233445566770011223344556677") }, "AK", []byte("00112233445566770011223344556677")},
		{"nwk key", func() error { return dev.SetNwkKey("77665544332211007766554433221100") }, "NK", []byte("77665544332211007766554433221100")},
		{"class", func() error { return dev.SetClass('C') }, "LC", []byte{'C'}},
		{"activation mode", func() error { return dev.SetActivationMode(1) }, "AM", []byte{1}},
		{"adr", func() error { return dev.SetADR(true) }, "AD", []byte{1}},
		{"data rate", func() error { return dev.SetDataRate(3) }, "DR", []byte{3}},
		{"region", func() error { return dev.SetRegion(8) }, "LR", []byte{8}},
		{"duty cycle", func() error { return dev.SetDutyCycle(1) }, "DC", []byte{1}},
		{"join rx1 delay", func() error { return dev.SetJoinRX1Delay(5000) }, "J1", []byte{0x00, 0x00, 0x13, 0x88}},
		{"join rx2 delay", func() error { return dev.SetJoinRX2Delay(6000) }, "J2", []byte{0x00, 0x00, 0x17, 0x70}},
		{"rx1 delay", func() error { return dev.SetRX1Delay(1000) }, "D1", []byte{0x00, 0x00, 0x03, 0xE8}},
		{"rx2 delay", func() error { return dev.SetRX2Delay(2000) }, "D2", []byte{0x00, 0x00, 0x07, 0xD0}},
		{"rx2 data rate", func() error { return dev.SetRX2DataRate(8) }, "XD", []byte{8}},
		{"rx2 frequency", func() error { return dev.SetRX2Frequency(923300000) }, "XF", []byte{0x37, 0x09, 0x48, 0xA0}},
		{"transmit power", func() error { return dev.SetTransmitPower(20) }, "PO", []byte{20}},
		{"channels mask", func() error { return dev.SetChannelsMask("FFFF") }, "CM", []byte("FFFF")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := len(tr.frames)
			require.NoError(t, tc.call())
			require.Len(t, tr.frames, n+1)
			f := tr.frames[n]
			require.Equal(t, api.FrameTypeATCommand, f.ftype)
			require.Equal(t, tc.code, string(f.payload[1:3]))
			require.Equal(t, tc.param, f.payload[3:])
		})
	}
}

func TestDevEUI(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	respondOK(tr, []byte("0013A2001234ABCD")...)
	eui, err := dev.DevEUI()
	require.NoError(t, err)
	require.Equal(t, "0013A2001234ABCD", eui)
	require.Equal(t, "DE", string(tr.frames[0].payload[1:3]))
}

func TestSendDuringConnectDeliversInbound(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	var received int
	dev.OnReceive = func(*Device, *Packet) { received++ }
	tr.onFrame = func(f sentFrame) {
		if f.ftype == api.FrameTypeLRTxRequest {
			// Inbound traffic arrives before the status report.
			tr.inject(api.FrameTypeLRRxPacket, 0x01, 0x99)
			tr.inject(api.FrameTypeTxStatus, f.payload[0], 0x00)
		}
	}
	status, err := dev.Send(&Packet{Port: 1, Payload: []byte{0x01}})
	require.NoError(t, err)
	require.Equal(t, DeliverySuccess, status)
	require.Equal(t, 1, received)
}

func TestSetterPropagatesCommandError(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	tr.onFrame = func(f sentFrame) {
		if f.ftype == api.FrameTypeATCommand {
			tr.injectATResponse(f.payload[0], string(f.payload[1:3]), 0x02)
		}
	}
	err := dev.SetDataRate(15)
	cmdErr, ok := err.(*CommandError)
	require.True(t, ok)
	require.Equal(t, byte(0x02), cmdErr.Status)
}

func TestSendElapsedPolls(t *testing.T) {
	tr := newSimTransport()
	dev := NewLR(tr)
	dev.Timeouts.Send = 100 * time.Millisecond
	dev.Timeouts.ReadStage = 5 * time.Millisecond
	status, err := dev.Send(&Packet{Port: 1})
	require.NoError(t, err)
	require.Equal(t, DeliveryTimeout, status)
}
