package bridge

// UplinkEvent is published for every packet received from the network.
type UplinkEvent struct {
	Port     byte   `json:"port"`
	RSSI     int8   `json:"rssi"`
	SNR      int8   `json:"snr"`
	DataRate byte   `json:"dataRate"`
	Slot     byte   `json:"slot"`
	Counter  uint32 `json:"counter"`
	Payload  []byte `json:"payload"`
}

// StatusEvent reports the outcome of a downlink transmission.
type StatusEvent struct {
	FrameID byte   `json:"frameId"`
	Status  byte   `json:"status"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// DownlinkCommand requests a transmission to the network.
type DownlinkCommand struct {
	Port    byte   `json:"port"`
	Ack     bool   `json:"ack"`
	Payload []byte `json:"payload"`
}
