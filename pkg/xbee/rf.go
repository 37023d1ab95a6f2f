package xbee

import (
	"github.com/golang/glog"

	"github.com/robotalks/xbee.go/pkg/xbee/api"
	"github.com/robotalks/xbee.go/pkg/xbee/transport"
)

// NewRF creates a device for the standard-RF variant. The variant is an
// extension point: its frame types are recognized by dispatch and AT
// commands work, but session operations return ErrNotImplemented.
func NewRF(tr transport.Transport) *Device {
	return New(rfOps{}, tr)
}

type rfOps struct{}

func (rfOps) Init(d *Device) error {
	return d.Transport.FlushInput()
}

func (rfOps) Connect(*Device) error {
	return ErrNotImplemented
}

func (rfOps) Disconnect(*Device) error {
	return ErrNotImplemented
}

func (rfOps) Send(*Device, *Packet) (DeliveryStatus, error) {
	return 0, ErrNotImplemented
}

func (rfOps) SoftReset(*Device) error {
	return ErrNotImplemented
}

func (rfOps) HardReset(*Device) {
}

func (rfOps) Process(d *Device) error {
	return d.processOnce()
}

func (rfOps) Connected(*Device) (bool, error) {
	return false, ErrNotImplemented
}

func (rfOps) HandleRxPacket(d *Device, f *api.Frame) {
	glog.V(2).Infof("RF rx frame %v ignored", f.Type)
}

func (rfOps) HandleTxStatus(d *Device, f *api.Frame) {
	glog.V(2).Infof("RF tx status frame %v ignored", f.Type)
}
