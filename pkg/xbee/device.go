package xbee

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/xbee.go/pkg/xbee/api"
	"github.com/robotalks/xbee.go/pkg/xbee/at"
	"github.com/robotalks/xbee.go/pkg/xbee/transport"
)

// Ops is the per-variant behavior set a Device dispatches through. The
// engine never branches on variant identity itself.
type Ops interface {
	Init(d *Device) error
	Connect(d *Device) error
	Disconnect(d *Device) error
	Send(d *Device, p *Packet) (DeliveryStatus, error)
	SoftReset(d *Device) error
	HardReset(d *Device)
	Process(d *Device) error
	Connected(d *Device) (bool, error)
	HandleRxPacket(d *Device, f *api.Frame)
	HandleTxStatus(d *Device, f *api.Frame)
}

// Timeouts bounds every blocking operation of a Device.
type Timeouts struct {
	// Write bounds a single frame write.
	Write time.Duration
	// ReadStage bounds each stage of a frame read.
	ReadStage time.Duration
	// Response bounds the wait for an AT response.
	Response time.Duration
	// Join and JoinPoll bound the join handshake.
	Join     time.Duration
	JoinPoll time.Duration
	// Send and SendPoll bound the wait for delivery confirmation.
	Send     time.Duration
	SendPoll time.Duration
}

// DefaultTimeouts returns the module's documented defaults.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Write:     time.Second,
		ReadStage: 100 * time.Millisecond,
		Response:  5 * time.Second,
		Join:      6 * time.Second,
		JoinPoll:  500 * time.Millisecond,
		Send:      10 * time.Second,
		SendPoll:  10 * time.Millisecond,
	}
}

// Device is one open session with a module. All state is owned by the one
// goroutine driving the Device.
type Device struct {
	Transport transport.Transport
	Timeouts  Timeouts

	// Application callbacks. A Packet passed to OnReceive or OnSend is
	// only valid for the duration of the call.
	OnReceive    func(*Device, *Packet)
	OnSend       func(*Device, *Packet)
	OnConnect    func(*Device)
	OnDisconnect func(*Device)

	ops              Ops
	frameID          byte
	txStatusReceived bool
	deliveryStatus   DeliveryStatus
}

// New creates a Device for the given variant over tr.
func New(ops Ops, tr transport.Transport) *Device {
	return &Device{
		Transport: tr,
		Timeouts:  DefaultTimeouts(),
		ops:       ops,
	}
}

// Init resets the frame id counter and runs the variant's init.
func (d *Device) Init() error {
	d.frameID = 0
	return d.ops.Init(d)
}

// Connect attaches the module to its network.
func (d *Device) Connect() error {
	return d.ops.Connect(d)
}

// Disconnect detaches from the network.
func (d *Device) Disconnect() error {
	return d.ops.Disconnect(d)
}

// Send transmits one packet and waits for delivery confirmation.
func (d *Device) Send(p *Packet) (DeliveryStatus, error) {
	return d.ops.Send(d, p)
}

// SoftReset asks the module to reset.
func (d *Device) SoftReset() error {
	return d.ops.SoftReset(d)
}

// HardReset resets the module via hardware means where available.
func (d *Device) HardReset() {
	d.ops.HardReset(d)
}

// Process receives and dispatches at most one frame. The embedding
// application calls this on every iteration of its control loop.
func (d *Device) Process() error {
	return d.ops.Process(d)
}

// Connected queries the module for its point-in-time network state.
func (d *Device) Connected() (bool, error) {
	return d.ops.Connected(d)
}

// DeliveryStatus returns the last TX outcome code observed.
func (d *Device) DeliveryStatus() DeliveryStatus {
	return d.deliveryStatus
}

// StatusReceived reports whether a TX-status frame has arrived since the
// last send was issued.
func (d *Device) StatusReceived() bool {
	return d.txStatusReceived
}

// NextFrameID increments the frame id counter and returns the new id. Ids
// wrap from 255 back to 1; 0 is never issued.
func (d *Device) NextFrameID() byte {
	d.frameID++
	if d.frameID == 0 {
		d.frameID = 1
	}
	return d.frameID
}

// SendCommand sends an AT command frame without waiting for the response.
func (d *Device) SendCommand(cmd at.Command, param []byte) error {
	code := cmd.Code()
	if len(code) != 2 {
		return ErrUnknownCommand
	}
	payload := make([]byte, 0, 3+len(param))
	payload = append(payload, d.NextFrameID(), code[0], code[1])
	payload = append(payload, param...)
	return api.WriteFrame(d.Transport, api.FrameTypeATCommand, payload, d.Timeouts.Write)
}

// Command sends an AT command and blocks until an AT response frame
// arrives or the response timeout elapses. Frames of any other type
// observed while waiting are fed to HandleFrame so asynchronous traffic is
// not dropped. A non-zero response status is returned as a *CommandError;
// on success the trailing response bytes are returned as a copy owned by
// the caller.
func (d *Device) Command(cmd at.Command, param []byte) ([]byte, error) {
	if err := d.SendCommand(cmd, param); err != nil {
		return nil, err
	}
	deadline := d.Transport.Now().Add(d.Timeouts.Response)
	for {
		f, err := api.ReadFrame(d.Transport, d.Timeouts.ReadStage)
		if err == nil {
			if f.Type == api.FrameTypeATResponse {
				resp, perr := api.ParseATResponse(f)
				if perr == nil {
					if resp.Status != 0 {
						return nil, &CommandError{Command: cmd, Status: resp.Status}
					}
					value := make([]byte, len(resp.Value))
					copy(value, resp.Value)
					return value, nil
				}
				glog.V(1).Infof("dropping %v: %v", f.Type, perr)
			} else {
				d.HandleFrame(f)
			}
		} else if !api.IsTimeout(err) {
			glog.V(1).Infof("receive error: %v", err)
		}
		if !d.Transport.Now().Before(deadline) {
			return nil, ErrResponseTimeout
		}
		d.Transport.Sleep(time.Millisecond)
	}
}

// HandleFrame dispatches one received frame by type.
func (d *Device) HandleFrame(f *api.Frame) {
	switch f.Type {
	case api.FrameTypeATResponse:
		if resp, err := api.ParseATResponse(f); err == nil {
			glog.V(1).Infof("AT %s response: frame=%d status=0x%02X len=%d",
				resp.Command, resp.FrameID, resp.Status, len(resp.Value))
		}
	case api.FrameTypeModemStatus:
		if len(f.Data) > 1 {
			glog.V(1).Infof("modem status 0x%02X", f.Data[1])
		}
	case api.FrameTypeTxStatus, api.FrameTypeLRTxStatusExplicit:
		d.ops.HandleTxStatus(d, f)
	case api.FrameTypeLRRxPacket, api.FrameTypeLRRxPacketExplicit:
		d.ops.HandleRxPacket(d, f)
	default:
		glog.V(2).Infof("unhandled frame type %v", f.Type)
	}
}

// processOnce is the shared receive step: read one frame and dispatch it.
// An idle line is not an error, and malformed frames are dropped so serial
// noise cannot abort a polling loop.
func (d *Device) processOnce() error {
	f, err := api.ReadFrame(d.Transport, d.Timeouts.ReadStage)
	if err != nil {
		if err != api.ErrDelimiterTimeout {
			glog.V(1).Infof("receive error: %v", err)
		}
		return nil
	}
	d.HandleFrame(f)
	return nil
}

// WriteConfig persists the module configuration to non-volatile memory.
func (d *Device) WriteConfig() error {
	_, err := d.Command(at.WR, nil)
	return err
}

// ApplyChanges applies queued configuration changes.
func (d *Device) ApplyChanges() error {
	_, err := d.Command(at.AC, nil)
	return err
}

// SetAPIOptions sets the module's API options.
func (d *Device) SetAPIOptions(value byte) error {
	_, err := d.Command(at.AO, []byte{value})
	return err
}
