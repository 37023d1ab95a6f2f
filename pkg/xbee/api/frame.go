package api

import "fmt"

// FrameType is the one-byte frame discriminator.
type FrameType byte

// Frame type codes.
const (
	FrameTypeATCommand          FrameType = 0x08
	FrameTypeTxRequest          FrameType = 0x10
	FrameTypeLRJoinRequest      FrameType = 0x14
	FrameTypeRemoteATCommand    FrameType = 0x17
	FrameTypeCellularTxIPv4     FrameType = 0x20
	FrameTypeLRTxRequest        FrameType = 0x50
	FrameTypeATResponse         FrameType = 0x88
	FrameTypeTxStatus           FrameType = 0x89
	FrameTypeModemStatus        FrameType = 0x8A
	FrameTypeIOSampleRx         FrameType = 0x8F
	FrameTypeRxPacket           FrameType = 0x90
	FrameTypeRxPacketExplicit   FrameType = 0x91
	FrameTypeIODataSampleRx     FrameType = 0x92
	FrameTypeRemoteATResponse   FrameType = 0x97
	FrameTypeCellularRxIPv4     FrameType = 0xB0
	FrameTypeLRRxPacket         FrameType = 0xD0
	FrameTypeLRRxPacketExplicit FrameType = 0xD1
	FrameTypeLRTxStatusExplicit FrameType = 0xD9
)

// String formats the type code for logs.
func (t FrameType) String() string {
	return fmt.Sprintf("0x%02X", byte(t))
}

const (
	// StartDelimiter begins every frame on the wire.
	StartDelimiter byte = 0x7E
	// MaxFrameDataSize bounds the length-counted region of a frame.
	MaxFrameDataSize = 256
)

// Frame is one API frame. Data holds the length-counted bytes exactly as
// they appear on the wire, so Data[0] mirrors Type and field offsets used
// by the dispatch layer are offsets into Data.
type Frame struct {
	Type FrameType
	Data []byte
}

// Payload returns the frame bytes after the type byte.
func (f *Frame) Payload() []byte {
	if len(f.Data) < 1 {
		return nil
	}
	return f.Data[1:]
}

// Checksum computes the checksum over the length-counted bytes.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return 0xFF - sum
}

// Encode builds the wire form of a frame from its type and payload (the
// bytes following the type byte).
func Encode(t FrameType, payload []byte) ([]byte, error) {
	length := len(payload) + 1
	if length > MaxFrameDataSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, 0, length+4)
	buf = append(buf, StartDelimiter, byte(length>>8), byte(length))
	buf = append(buf, byte(t))
	buf = append(buf, payload...)
	buf = append(buf, Checksum(buf[3:]))
	return buf, nil
}

// ATResponse is the decoded form of an AT response frame.
type ATResponse struct {
	FrameID byte
	Command string
	Status  byte
	Value   []byte
}

// ParseATResponse decodes an AT response frame. Value aliases the frame
// buffer.
func ParseATResponse(f *Frame) (*ATResponse, error) {
	if f.Type != FrameTypeATResponse || len(f.Data) < 5 {
		return nil, ErrMalformedFrame
	}
	return &ATResponse{
		FrameID: f.Data[1],
		Command: string(f.Data[2:4]),
		Status:  f.Data[4],
		Value:   f.Data[5:],
	}, nil
}
