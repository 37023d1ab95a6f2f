// Package bridge relays traffic between a LoRaWAN modem and an MQTT
// broker. Uplinks are published as JSON events, downlinks are accepted
// as JSON commands.
package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/xbee.go/pkg/bridge/mqtt"
	"github.com/robotalks/xbee.go/pkg/xbee"
)

// DefaultPollInterval paces the modem poll loop when the line is idle.
const DefaultPollInterval = 10 * time.Millisecond

// Bridge connects one modem to the broker. Topics are scoped under the
// device ID: <id>/up, <id>/status, <id>/down.
type Bridge struct {
	Device       *xbee.LRDevice
	Queue        *mqtt.Queue
	ID           string
	PollInterval time.Duration

	downlinks chan *DownlinkCommand
}

// New creates a Bridge.
func New(device *xbee.LRDevice, queue *mqtt.Queue, id string) *Bridge {
	return &Bridge{
		Device:       device,
		Queue:        queue,
		ID:           id,
		PollInterval: DefaultPollInterval,
		downlinks:    make(chan *DownlinkCommand, 16),
	}
}

// Name implements Named.
func (b *Bridge) Name() string {
	return "bridge"
}

// Run pumps the modem and the broker until the context is canceled.
// The modem is single-threaded, so downlinks arriving on the paho
// goroutine are queued and sent from this loop.
func (b *Bridge) Run(ctx context.Context) error {
	b.Device.OnReceive = func(_ *xbee.Device, p *xbee.Packet) {
		b.publishUplink(p)
	}
	sub := b.Queue.Sub(b.ID+"/down", b.handleDownlink)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case cmd := <-b.downlinks:
			b.send(cmd)
		default:
			if err := b.Device.Process(); err != nil {
				return err
			}
			time.Sleep(b.PollInterval)
		}
	}
}

func (b *Bridge) handleDownlink(topic string, payload []byte) {
	var cmd DownlinkCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		glog.Warningf("bad downlink on %q: %v", topic, err)
		return
	}
	select {
	case b.downlinks <- &cmd:
	default:
		glog.Warning("downlink queue full, dropped")
	}
}

func (b *Bridge) send(cmd *DownlinkCommand) {
	pkt := &xbee.Packet{Port: cmd.Port, Ack: cmd.Ack, Payload: cmd.Payload}
	status, err := b.Device.Send(pkt)
	event := StatusEvent{FrameID: pkt.FrameID, Status: byte(status), OK: err == nil && status.OK()}
	if err != nil {
		glog.Errorf("send failed: %v", err)
		event.Message = err.Error()
	} else if !status.OK() {
		glog.Warningf("delivery failed: %v", status)
		event.Message = status.String()
	}
	b.publish("/status", &event)
}

func (b *Bridge) publishUplink(p *xbee.Packet) {
	b.publish("/up", &UplinkEvent{
		Port:     p.Port,
		RSSI:     p.RSSI,
		SNR:      p.SNR,
		DataRate: p.DataRate,
		Slot:     p.Slot,
		Counter:  p.Counter,
		Payload:  append([]byte(nil), p.Payload...),
	})
}

func (b *Bridge) publish(suffix string, event interface{}) {
	encoded, err := json.Marshal(event)
	if err != nil {
		glog.Errorf("encode event: %v", err)
		return
	}
	b.Queue.Pub(b.ID+suffix, encoded)
}
