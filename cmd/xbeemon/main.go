package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/robotalks/xbee.go/pkg/bridge/mqtt"
)

var (
	mqttURL = "mqtt://localhost:1883/lora/"
)

func init() {
	if val := os.Getenv("XBEE_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}

	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		var event map[string]interface{}
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Printf("%s: bad event: %v", topic, err)
			return
		}
		log.Printf("%s: %s", topic, string(payload))
	}))
	<-(chan struct{})(nil)
}
