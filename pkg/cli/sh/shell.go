// Package sh implements the interactive modem shell.
package sh

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/xbee.go/pkg/xbee"
	"github.com/robotalks/xbee.go/pkg/xbee/transport"
	"github.com/robotalks/xbee.go/pkg/xbee/transport/serial"
	"github.com/robotalks/xbee.go/pkg/xbee/transport/stream"
	"github.com/robotalks/xbee.go/pkg/xbee/transport/ws"
)

// Config selects the modem to talk to.
type Config struct {
	Port string
	Baud int
}

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell  *ishell.Shell
	Config *Config
	Device *xbee.LRDevice

	closer io.Closer
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	cfgPort    = os.Getenv("XBEE_PORT")
	cfgBaud    = 9600

	// commands
	commands = []*ishell.Cmd{
		&ConnectCmd,
		&DisconnectCmd,
		&JoinCmd,
		&SendCmd,
		&StatusCmd,
		&DevEUICmd,
		&SetCmd,
		&WriteCmd,
		&ApplyCmd,
		&ResetCmd,
	}
)

func init() {
	if val := os.Getenv("XBEE_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			cfgBaud = baud
		}
	}
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// SetupFlags registers modem selection flags.
func SetupFlags() {
	flag.StringVar(&cfgPort, "port", cfgPort, "Serial device, tcp:// or ws:// URL of the modem.")
	flag.IntVar(&cfgBaud, "baud", cfgBaud, "Serial baud rate.")
}

// NewConfig creates Config from flags.
func NewConfig() *Config {
	return &Config{Port: cfgPort, Baud: cfgBaud}
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Device == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// OpenTransport opens the modem transport named by port: a tcp:// or
// ws:// URL, or a serial device path.
func OpenTransport(port string, baud int) (transport.Transport, error) {
	switch {
	case strings.HasPrefix(port, "tcp://"):
		conn, err := net.Dial("tcp", strings.TrimPrefix(port, "tcp://"))
		if err != nil {
			return nil, err
		}
		return stream.New(conn), nil
	case strings.HasPrefix(port, "ws://"), strings.HasPrefix(port, "wss://"):
		return ws.Dial(port, "http://localhost/")
	default:
		return serial.Open(port, baud)
	}
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Connect opens the modem at port.
func (s *Shell) Connect(port string) error {
	tr, err := OpenTransport(port, s.Config.Baud)
	if err != nil {
		return err
	}
	device := xbee.NewLR(tr)
	if err = device.Init(); err != nil {
		if closer, ok := tr.(io.Closer); ok {
			closer.Close()
		}
		return err
	}
	s.Disconnect()
	s.Device = device
	s.closer, _ = tr.(io.Closer)
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", port))
	return nil
}

// Disconnect closes the current modem.
func (s *Shell) Disconnect() {
	if s.Device == nil {
		return
	}
	s.Device.Disconnect()
	if s.closer != nil {
		s.closer.Close()
		s.closer = nil
	}
	s.Device = nil
	s.Shell.SetPrompt(unconnectedPrompt)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.Port != "" {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Port)
		}
		if err := s.Connect(s.Config.Port); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.Port, err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

func printJSON(c *ishell.Context, v interface{}) {
	out, err := json.Marshal(v)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(string(out))
}

var (
	// ConnectCmd opens a modem.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[DEVICE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			port := s.Config.Port
			if len(c.Args) > 0 {
				port = c.Args[0]
			}
			if port == "" {
				c.Err(fmt.Errorf("no device specified"))
				return
			}
			if err := s.Connect(port); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd closes the current modem.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// JoinCmd joins the network.
	JoinCmd = ishell.Cmd{
		Name:    "join",
		Aliases: []string{"j"},
		Help:    "",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			if err := s.Device.Connect(); err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				printJSON(c, map[string]interface{}{"joined": true})
				return
			}
			c.Println("joined")
		}),
	}

	// SendCmd transmits an uplink.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "PORT HEXDATA [ack]",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("usage: send PORT HEXDATA [ack]"))
				return
			}
			port, err := strconv.ParseUint(c.Args[0], 0, 8)
			if err != nil {
				c.Err(fmt.Errorf("bad port: %v", err))
				return
			}
			payload, err := hex.DecodeString(c.Args[1])
			if err != nil {
				c.Err(fmt.Errorf("bad payload: %v", err))
				return
			}
			s := ShellFrom(c)
			pkt := &xbee.Packet{
				Port:    byte(port),
				Payload: payload,
				Ack:     len(c.Args) > 2 && c.Args[2] == "ack",
			}
			status, err := s.Device.Send(pkt)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				printJSON(c, map[string]interface{}{
					"frameId": pkt.FrameID,
					"status":  byte(status),
					"ok":      status.OK(),
				})
				return
			}
			c.Println(status.String())
		}),
	}

	// StatusCmd reports the join state.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			joined, err := s.Device.Connected()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				printJSON(c, map[string]interface{}{
					"joined": joined,
					"state":  s.Device.State().String(),
				})
				return
			}
			if joined {
				c.Println("joined")
			} else {
				c.Println("not joined")
			}
		}),
	}

	// DevEUICmd prints the device EUI.
	DevEUICmd = ishell.Cmd{
		Name: "deveui",
		Help: "",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			eui, err := s.Device.DevEUI()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				printJSON(c, map[string]interface{}{"devEUI": eui})
				return
			}
			c.Println(eui)
		}),
	}

	// SetCmd updates a session parameter.
	SetCmd = ishell.Cmd{
		Name: "set",
		Help: "KEY VALUE (appeui appkey nwkkey class region datarate adr power mask)",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Err(fmt.Errorf("usage: set KEY VALUE"))
				return
			}
			if err := ShellFrom(c).set(c.Args[0], c.Args[1]); err != nil {
				c.Err(err)
			}
		}),
	}

	// WriteCmd persists the configuration.
	WriteCmd = ishell.Cmd{
		Name: "write",
		Help: "",
		Func: MustBeConnected(func(c *ishell.Context) {
			if err := ShellFrom(c).Device.WriteConfig(); err != nil {
				c.Err(err)
			}
		}),
	}

	// ApplyCmd applies pending changes.
	ApplyCmd = ishell.Cmd{
		Name: "apply",
		Help: "",
		Func: MustBeConnected(func(c *ishell.Context) {
			if err := ShellFrom(c).Device.ApplyChanges(); err != nil {
				c.Err(err)
			}
		}),
	}

	// ResetCmd soft-resets the modem.
	ResetCmd = ishell.Cmd{
		Name: "reset",
		Help: "",
		Func: MustBeConnected(func(c *ishell.Context) {
			if err := ShellFrom(c).Device.SoftReset(); err != nil {
				c.Err(err)
			}
		}),
	}
)

func (s *Shell) set(key, value string) error {
	byteVal := func() (byte, error) {
		v, err := strconv.ParseUint(value, 0, 8)
		return byte(v), err
	}
	switch key {
	case "appeui":
		return s.Device.SetAppEUI(value)
	case "appkey":
		return s.Device.SetAppKey(value)
	case "nwkkey":
		return s.Device.SetNwkKey(value)
	case "mask":
		return s.Device.SetChannelsMask(value)
	case "adr":
		switch value {
		case "on":
			return s.Device.SetADR(true)
		case "off":
			return s.Device.SetADR(false)
		}
		return fmt.Errorf("adr must be on or off")
	case "class":
		v, err := byteVal()
		if err != nil {
			return err
		}
		return s.Device.SetClass(v)
	case "region":
		v, err := byteVal()
		if err != nil {
			return err
		}
		return s.Device.SetRegion(v)
	case "datarate":
		v, err := byteVal()
		if err != nil {
			return err
		}
		return s.Device.SetDataRate(v)
	case "power":
		v, err := byteVal()
		if err != nil {
			return err
		}
		return s.Device.SetTransmitPower(v)
	}
	return fmt.Errorf("unknown key %q", key)
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
