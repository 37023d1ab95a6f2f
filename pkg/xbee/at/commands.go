// Package at maps AT command identifiers to the two-character wire codes
// carried inside AT command frames.
package at

// Command identifies an AT command. The zero value is not a valid command.
type Command int

// Common commands.
const (
	None Command = iota
	CN           // Exit Command Mode
	AP           // API Enable
	BD           // Baud Rate
	WR           // Write to non-volatile memory
	RE           // Restore factory defaults
	VR           // Firmware Version
	AC           // Apply Changes
	NR           // Network Reset
	DD           // Device Type Identifier
	ID           // PAN ID
	NI           // Node Identifier
	DL           // Destination Address Low
	DH           // Destination Address High
	SH           // Serial Number High
	SL           // Serial Number Low
	PL           // Power Level
	AI           // Association Indication
	RP           // RSSI PWM Timer
	RN           // Random Delay Slots
	RR           // Retries
	ND           // Node Discover
	NO           // Network Discovery Options
	RO           // Packetization Timeout
	SM           // Sleep Mode
	SO           // Sleep Options
	SP           // Sleep Period
	ST           // Time Before Sleep
	IS           // Force Sample (IO)
	P0           // DIO0/AD0 Configuration
	P1           // DIO1/AD1 Configuration
	P2           // DIO2/AD2 Configuration
	P3           // DIO3/AD3 Configuration
	P4           // DIO4 Configuration
	P5           // DIO5 Configuration
	P6           // DIO6 Configuration
	P7           // DIO7 Configuration
	P8           // DIO8 Configuration
	PR           // Pull-up Resistor Enable
	RI           // Ring Indicator
	CT           // Command Mode Timeout
	GT           // Guard Times
	SB           // Stop Bits
	D7           // DIO7 Configuration
	D8           // DIO8 Configuration
	D9           // DIO9 Configuration
	DA           // DIO10 Configuration
	DB           // RSSI for Last Hop
	DC           // DIO Change Detect / LoRaWAN Duty Cycle
	FT           // Flow Control Threshold
	GU           // DIO Pull-up Resistor Enable
	HS           // Hardware Sleep Control
	IT           // RSSI Timer
	NJ           // Node Join Time
	JN           // Join Notification
	JT           // Join Time
	JV           // Channel Verification
	LD           // Node Discovery Time
	AO           // API Options
)

// RF-specific commands.
const (
	CE Command = iota + 100 // Coordinator Enable
	SE                      // Source Endpoint
	DestEndpoint            // Destination Endpoint
	CI                      // Cluster Identifier
	BH                      // Broadcast Hops
	YS                      // Sleep Status
)

// Cellular-specific commands.
const (
	IP Command = iota + 200 // IP Address
	MA                      // MAC Address
	OK                      // Cellular OK Command
	SR                      // Serial Number
	TD                      // Transmit Delay
	TR                      // Transmission Retry Count
	TS                      // Transmission Status
	UK                      // Unlock Password
	VE                      // Voltage Supply
	VL                      // Cellular Module Version
)

// LoRaWAN commands.
const (
	DE Command = iota + 300 // Device EUI
	AK                      // Application Key
	AE                      // Application EUI
	NK                      // Network Key
	JS                      // Join Status
	FQ                      // Test Configuration Frequency
	PW                      // Test Configuration Power
	LC                      // Device Class
	AM                      // Activation Mode
	AD                      // Adaptive Data Rate
	DR                      // Data Rate
	LR                      // Region
	J1                      // Join RX1 Delay
	J2                      // Join RX2 Delay
	D1                      // RX1 Delay
	D2                      // RX2 Delay
	XD                      // RX2 Data Rate
	XF                      // RX2 Frequency
	PO                      // Transmit Power
	CM                      // Channels Mask
)

// Code returns the two-character wire code of c, or "" if c is unknown.
func (c Command) Code() string {
	switch c {
	case CN:
		return "CN"
	case AP:
		return "AP"
	case BD:
		return "BD"
	case WR:
		return "WR"
	case RE:
		return "RE"
	case VR:
		return "VR"
	case AC:
		return "AC"
	case NR:
		return "NR"
	case DD:
		return "DD"
	case ID:
		return "ID"
	case NI:
		return "NI"
	case DL:
		return "DL"
	case DH:
		return "DH"
	case SH:
		return "SH"
	case SL:
		return "SL"
	case PL:
		return "PL"
	case AI:
		return "AI"
	case RP:
		return "RP"
	case RN:
		return "RN"
	case RR:
		return "RR"
	case ND:
		return "ND"
	case NO:
		return "NO"
	case RO:
		return "RO"
	case SM:
		return "SM"
	case SO:
		return "SO"
	case SP:
		return "SP"
	case ST:
		return "ST"
	case IS:
		return "IS"
	case P0:
		return "P0"
	case P1:
		return "P1"
	case P2:
		return "P2"
	case P3:
		return "P3"
	case P4:
		return "P4"
	case P5:
		return "P5"
	case P6:
		return "P6"
	case P7:
		return "P7"
	case P8:
		return "P8"
	case PR:
		return "PR"
	case RI:
		return "RI"
	case CT:
		return "CT"
	case GT:
		return "GT"
	case SB:
		return "SB"
	case D7:
		return "D7"
	case D8:
		return "D8"
	case D9:
		return "D9"
	case DA:
		return "DA"
	case DB:
		return "DB"
	case DC:
		return "DC"
	case FT:
		return "FT"
	case GU:
		return "GU"
	case HS:
		return "HS"
	case IT:
		return "IT"
	case NJ:
		return "NJ"
	case JN:
		return "JN"
	case JT:
		return "JT"
	case JV:
		return "JV"
	case LD:
		return "LD"
	case AO:
		return "AO"
	case CE:
		return "CE"
	case SE:
		return "SE"
	case DestEndpoint:
		return "DE"
	case CI:
		return "CI"
	case BH:
		return "BH"
	case YS:
		return "YS"
	case IP:
		return "IP"
	case MA:
		return "MA"
	case OK:
		return "OK"
	case SR:
		return "SR"
	case TD:
		return "TD"
	case TR:
		return "TR"
	case TS:
		return "TS"
	case UK:
		return "UK"
	case VE:
		return "VE"
	case VL:
		return "VL"
	case DE:
		return "DE"
	case AK:
		return "AK"
	case AE:
		return "AE"
	case NK:
		return "NK"
	case JS:
		return "JS"
	case FQ:
		return "FQ"
	case PW:
		return "PW"
	case LC:
		return "LC"
	case AM:
		return "AM"
	case AD:
		return "AD"
	case DR:
		return "DR"
	case LR:
		return "LR"
	case J1:
		return "J1"
	case J2:
		return "J2"
	case D1:
		return "D1"
	case D2:
		return "D2"
	case XD:
		return "XD"
	case XF:
		return "XF"
	case PO:
		return "PO"
	case CM:
		return "CM"
	}
	return ""
}

// String implements fmt.Stringer for logs.
func (c Command) String() string {
	if code := c.Code(); code != "" {
		return code
	}
	return "??"
}
