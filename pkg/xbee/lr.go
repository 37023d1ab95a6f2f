package xbee

import (
	"encoding/binary"

	"github.com/golang/glog"

	"github.com/robotalks/xbee.go/pkg/xbee/api"
	"github.com/robotalks/xbee.go/pkg/xbee/at"
	"github.com/robotalks/xbee.go/pkg/xbee/transport"
)

// SessionState is the local view of the LoRaWAN session.
type SessionState int

// Session states.
const (
	StateDisconnected SessionState = iota
	StateJoining
	StateJoined
)

// String implements fmt.Stringer.
func (s SessionState) String() string {
	switch s {
	case StateJoining:
		return "joining"
	case StateJoined:
		return "joined"
	}
	return "disconnected"
}

// LRDevice drives the LoRaWAN variant of the module.
type LRDevice struct {
	*Device

	lr *lrOps
}

// NewLR creates a LoRaWAN device over tr.
func NewLR(tr transport.Transport) *LRDevice {
	ops := &lrOps{}
	return &LRDevice{Device: New(ops, tr), lr: ops}
}

// State returns the local session state. Use Connected for a live query.
func (d *LRDevice) State() SessionState {
	return d.lr.state
}

// DevEUI reads the device EUI.
func (d *LRDevice) DevEUI() (string, error) {
	resp, err := d.Command(at.DE, nil)
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

// SetAppEUI sets the LoRaWAN application EUI.
func (d *LRDevice) SetAppEUI(value string) error {
	return d.setString(at.AE, value)
}

// SetAppKey sets the LoRaWAN application key.
func (d *LRDevice) SetAppKey(value string) error {
	return d.setString(at.AK, value)
}

// SetNwkKey sets the LoRaWAN network key.
func (d *LRDevice) SetNwkKey(value string) error {
	return d.setString(at.NK, value)
}

// SetClass sets the device class: 'A', 'B' or 'C'.
func (d *LRDevice) SetClass(class byte) error {
	return d.setByte(at.LC, class)
}

// SetActivationMode selects OTAA or ABP activation.
func (d *LRDevice) SetActivationMode(mode byte) error {
	return d.setByte(at.AM, mode)
}

// SetADR enables or disables adaptive data rate.
func (d *LRDevice) SetADR(enabled bool) error {
	var v byte
	if enabled {
		v = 1
	}
	return d.setByte(at.AD, v)
}

// SetDataRate sets the uplink data rate.
func (d *LRDevice) SetDataRate(rate byte) error {
	return d.setByte(at.DR, rate)
}

// SetRegion sets the regional channel plan.
func (d *LRDevice) SetRegion(region byte) error {
	return d.setByte(at.LR, region)
}

// SetDutyCycle enables or disables duty-cycle limits.
func (d *LRDevice) SetDutyCycle(value byte) error {
	return d.setByte(at.DC, value)
}

// SetJoinRX1Delay sets the join RX1 window delay in milliseconds.
func (d *LRDevice) SetJoinRX1Delay(ms uint32) error {
	return d.setUint32(at.J1, ms)
}

// SetJoinRX2Delay sets the join RX2 window delay in milliseconds.
func (d *LRDevice) SetJoinRX2Delay(ms uint32) error {
	return d.setUint32(at.J2, ms)
}

// SetRX1Delay sets the RX1 window delay in milliseconds.
func (d *LRDevice) SetRX1Delay(ms uint32) error {
	return d.setUint32(at.D1, ms)
}

// SetRX2Delay sets the RX2 window delay in milliseconds.
func (d *LRDevice) SetRX2Delay(ms uint32) error {
	return d.setUint32(at.D2, ms)
}

// SetRX2DataRate sets the RX2 window data rate.
func (d *LRDevice) SetRX2DataRate(rate byte) error {
	return d.setByte(at.XD, rate)
}

// SetRX2Frequency sets the RX2 window frequency in Hz.
func (d *LRDevice) SetRX2Frequency(hz uint32) error {
	return d.setUint32(at.XF, hz)
}

// SetTransmitPower sets the transmit power.
func (d *LRDevice) SetTransmitPower(value byte) error {
	return d.setByte(at.PO, value)
}

// SetChannelsMask sets the channels mask as a hex string.
func (d *LRDevice) SetChannelsMask(mask string) error {
	return d.setString(at.CM, mask)
}

func (d *LRDevice) setString(cmd at.Command, value string) error {
	_, err := d.Command(cmd, []byte(value))
	return err
}

func (d *LRDevice) setByte(cmd at.Command, value byte) error {
	_, err := d.Command(cmd, []byte{value})
	return err
}

func (d *LRDevice) setUint32(cmd at.Command, value uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], value)
	_, err := d.Command(cmd, buf[:])
	return err
}

// lrOps is the LoRaWAN operation set.
type lrOps struct {
	state SessionState
}

func (o *lrOps) Init(d *Device) error {
	o.state = StateDisconnected
	return d.Transport.FlushInput()
}

// Connect sends a join request and polls the join status every JoinPoll
// until the module reports joined or the join timeout elapses.
func (o *lrOps) Connect(d *Device) error {
	o.state = StateJoining
	err := api.WriteFrame(d.Transport, api.FrameTypeLRJoinRequest,
		[]byte{d.NextFrameID()}, d.Timeouts.Write)
	if err != nil {
		o.state = StateDisconnected
		return err
	}
	deadline := d.Transport.Now().Add(d.Timeouts.Join)
	for d.Transport.Now().Before(deadline) {
		joined, err := o.Connected(d)
		if err != nil {
			glog.V(1).Infof("join status query: %v", err)
		}
		if joined {
			o.state = StateJoined
			glog.Info("joined")
			if cb := d.OnConnect; cb != nil {
				cb(d)
			}
			return nil
		}
		d.Transport.Sleep(d.Timeouts.JoinPoll)
	}
	o.state = StateDisconnected
	glog.Warning("join timed out")
	return ErrJoinTimeout
}

// Disconnect resets local session state. The module has no network-side
// leave procedure.
func (o *lrOps) Disconnect(d *Device) error {
	o.state = StateDisconnected
	if cb := d.OnDisconnect; cb != nil {
		cb(d)
	}
	return nil
}

// Send writes a TX request and polls Process until a TX-status frame sets
// the received flag or the send timeout elapses, in which case the local
// DeliveryTimeout status is returned. The status frame is not matched to
// p.FrameID: a stray status from an earlier send is attributed to this
// one.
func (o *lrOps) Send(d *Device, p *Packet) (DeliveryStatus, error) {
	p.FrameID = d.NextFrameID()
	var ack byte
	if p.Ack {
		ack = 1
	}
	payload := make([]byte, 0, 3+len(p.Payload))
	payload = append(payload, p.FrameID, p.Port, ack)
	payload = append(payload, p.Payload...)
	err := api.WriteFrame(d.Transport, api.FrameTypeLRTxRequest, payload, d.Timeouts.Write)
	if err != nil {
		return 0, err
	}

	d.txStatusReceived = false
	deadline := d.Transport.Now().Add(d.Timeouts.Send)
	for d.Transport.Now().Before(deadline) {
		o.Process(d)
		if d.txStatusReceived {
			if !d.deliveryStatus.OK() {
				glog.V(1).Infof("delivery failed: %v", d.deliveryStatus)
			}
			return d.deliveryStatus, nil
		}
		d.Transport.Sleep(d.Timeouts.SendPoll)
	}
	glog.V(1).Info("no TX status before timeout")
	return DeliveryTimeout, nil
}

func (o *lrOps) SoftReset(d *Device) error {
	return nil
}

func (o *lrOps) HardReset(d *Device) {
}

func (o *lrOps) Process(d *Device) error {
	return d.processOnce()
}

// Connected queries the join status; a non-zero response byte means
// joined.
func (o *lrOps) Connected(d *Device) (bool, error) {
	resp, err := d.Command(at.JS, nil)
	if err != nil {
		return false, err
	}
	return len(resp) > 0 && resp[0] != 0, nil
}

// HandleRxPacket decodes an inbound data frame and hands the packet to the
// receive callback. The packet payload aliases the frame buffer.
func (o *lrOps) HandleRxPacket(d *Device, f *api.Frame) {
	var p Packet
	data := f.Data
	switch f.Type {
	case api.FrameTypeLRRxPacketExplicit:
		if len(data) < 9 {
			return
		}
		p.Port = data[1]
		p.RSSI = int8(data[2])
		p.SNR = int8(data[3])
		p.DataRate = data[4] & 0x0F
		p.Slot = data[4] >> 4
		p.Counter = binary.BigEndian.Uint32(data[5:9])
		p.Payload = data[9:]
	case api.FrameTypeLRRxPacket:
		if len(data) < 2 {
			return
		}
		p.Port = data[1]
		p.Payload = data[2:]
	default:
		return
	}
	if cb := d.OnReceive; cb != nil {
		cb(d, &p)
	}
}

// HandleTxStatus records the delivery outcome, sets the received flag and
// invokes the send callback.
func (o *lrOps) HandleTxStatus(d *Device, f *api.Frame) {
	data := f.Data
	if len(data) < 3 {
		return
	}
	var p Packet
	p.FrameID = data[1]
	p.Status = DeliveryStatus(data[2])
	if f.Type == api.FrameTypeLRTxStatusExplicit && len(data) >= 10 {
		p.DataRate = data[3]
		p.Channel = data[4]
		p.Power = int8(data[5])
		p.Counter = binary.BigEndian.Uint32(data[6:10])
	}
	d.deliveryStatus = p.Status
	d.txStatusReceived = true
	if cb := d.OnSend; cb != nil {
		cb(d, &p)
	}
}
