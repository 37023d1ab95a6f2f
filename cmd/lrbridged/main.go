package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/denisbrodbeck/machineid"

	"github.com/robotalks/xbee.go/pkg/bridge"
	"github.com/robotalks/xbee.go/pkg/bridge/mqtt"
	"github.com/robotalks/xbee.go/pkg/framework"
	"github.com/robotalks/xbee.go/pkg/xbee"
	"github.com/robotalks/xbee.go/pkg/xbee/transport/serial"
)

var (
	port     = "/dev/ttyUSB0"
	baud     = 9600
	mqttURL  = "mqtt://localhost:1883/lora/"
	deviceID string
	appEUI   = os.Getenv("XBEE_APP_EUI")
	appKey   = os.Getenv("XBEE_APP_KEY")
	nwkKey   = os.Getenv("XBEE_NWK_KEY")
)

func init() {
	if val := os.Getenv("XBEE_PORT"); val != "" {
		port = val
	}
	if val := os.Getenv("XBEE_BAUD"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			baud = n
		}
	}
	if val := os.Getenv("XBEE_MQTT_URL"); val != "" {
		mqttURL = val
	}
	if val := os.Getenv("XBEE_DEVICE_ID"); val != "" {
		deviceID = val
	}
	flag.StringVar(&port, "port", port, "Serial device of the modem.")
	flag.IntVar(&baud, "baud", baud, "Serial baud rate.")
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&deviceID, "id", deviceID, "Device ID for topic scoping.")
	flag.StringVar(&appEUI, "appeui", appEUI, "Application EUI.")
	flag.StringVar(&appKey, "appkey", appKey, "Application key.")
	flag.StringVar(&nwkKey, "nwkkey", nwkKey, "Network key.")
}

func main() {
	flag.Parse()

	if deviceID == "" {
		id, err := machineid.ID()
		if err != nil {
			log.Fatalln(err)
		}
		deviceID = id
	}

	tr, err := serial.Open(port, baud)
	if err != nil {
		log.Fatalf("open %q failed: %v", port, err)
	}
	defer tr.Close()

	device := xbee.NewLR(tr)
	if err = device.Init(); err != nil {
		log.Fatalln(err)
	}
	if err = configure(device); err != nil {
		log.Fatalln(err)
	}
	if err = device.Connect(); err != nil {
		log.Fatalf("join failed: %v", err)
	}

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	defer q.Close()

	b := bridge.New(device, q, deviceID)
	runner := framework.NewRunner().HandleSignals()
	runner.Go(framework.NamedRun("bridge", b))
	if err = runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func configure(device *xbee.LRDevice) error {
	if appEUI != "" {
		if err := device.SetAppEUI(appEUI); err != nil {
			return err
		}
	}
	if appKey != "" {
		if err := device.SetAppKey(appKey); err != nil {
			return err
		}
	}
	if nwkKey != "" {
		if err := device.SetNwkKey(nwkKey); err != nil {
			return err
		}
	}
	return nil
}
