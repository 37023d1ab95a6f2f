package xbee

import "fmt"

// DeliveryStatus is the outcome code of a data transmission, reported by
// the module in a TX-status frame.
type DeliveryStatus byte

// Delivery status codes.
const (
	DeliverySuccess         DeliveryStatus = 0x00
	DeliveryNoAck           DeliveryStatus = 0x01
	DeliveryCCAFailure      DeliveryStatus = 0x02
	DeliveryPurged          DeliveryStatus = 0x03
	DeliveryInvalidDest     DeliveryStatus = 0x15
	DeliveryNetAckFailure   DeliveryStatus = 0x21
	DeliveryNotJoined       DeliveryStatus = 0x22
	DeliverySelfAddressed   DeliveryStatus = 0x23
	DeliveryAddressNotFound DeliveryStatus = 0x24
	DeliveryRouteNotFound   DeliveryStatus = 0x25
	DeliveryPayloadTooLarge DeliveryStatus = 0x74

	// DeliveryTimeout is reported locally when no TX-status frame arrives
	// within the send timeout. The module never sends this value.
	DeliveryTimeout DeliveryStatus = 0xFF
)

// OK reports whether the status indicates a confirmed delivery.
func (s DeliveryStatus) OK() bool {
	return s == DeliverySuccess
}

// String implements fmt.Stringer.
func (s DeliveryStatus) String() string {
	switch s {
	case DeliverySuccess:
		return "success"
	case DeliveryNoAck:
		return "no ack"
	case DeliveryCCAFailure:
		return "cca failure"
	case DeliveryPurged:
		return "purged"
	case DeliveryInvalidDest:
		return "invalid destination"
	case DeliveryNetAckFailure:
		return "network ack failure"
	case DeliveryNotJoined:
		return "not joined"
	case DeliverySelfAddressed:
		return "self addressed"
	case DeliveryAddressNotFound:
		return "address not found"
	case DeliveryRouteNotFound:
		return "route not found"
	case DeliveryPayloadTooLarge:
		return "payload too large"
	case DeliveryTimeout:
		return "local timeout"
	}
	return fmt.Sprintf("0x%02X", byte(s))
}

// Packet is the LoRaWAN payload envelope for both directions.
//
// On receive, Payload aliases the frame buffer that produced it: it is
// valid only for the duration of the callback invocation and must be
// copied to be retained.
type Packet struct {
	Port    byte
	Payload []byte

	// Outbound.
	Ack     bool
	FrameID byte

	// Inbound.
	RSSI     int8
	SNR      int8
	DataRate byte
	Slot     byte
	Counter  uint32

	// TX status.
	Status  DeliveryStatus
	Channel byte
	Power   int8
}
