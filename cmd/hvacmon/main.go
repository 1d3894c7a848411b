package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"

	nats "github.com/nats-io/nats.go"

	"github.com/alittlebrighter/hvacctl/models"
)

const (
	statusSub = "otto.hvac.status"
	sensorSub = "otto.sensor.temperature.current"
)

var natsURL = nats.DefaultURL

func main() {
	flag.StringVar(&natsURL, "natsUrl", natsURL, "Url for NATS instance to connect to.")
	flag.Parse()

	log.Println("Starting HVAC monitor.")

	nc, err := nats.Connect(natsURL)
	if err != nil {
		log.Fatalln("Could not connect to message bus: " + err.Error())
	}
	defer nc.Close()
	log.Println("Connected to NATS.")

	_, err = nc.Subscribe(statusSub, func(m *nats.Msg) {
		update := new(models.StatusUpdate)
		if err := json.Unmarshal(m.Data, update); err != nil {
			log.Println("could not parse status update from NATS")
			return
		}

		log.Printf("zone %s: %s furnace=%t ac=%t fan=%t display=%d",
			update.Zone, update.State,
			update.Outputs.FurnaceOn, update.Outputs.AcOn, update.Outputs.FanOn,
			update.Outputs.TempDisplay)
	})
	if err != nil {
		log.Println("could not subscribe to status updates: " + err.Error())
	}

	_, err = nc.Subscribe(sensorSub, func(m *nats.Msg) {
		update := new(models.SensorUpdate)
		if err := json.Unmarshal(m.Data, update); err != nil {
			log.Println("could not parse sensor update from NATS")
			return
		}

		log.Printf("sensor %s (%s): %f %s",
			update.Location, update.Type, update.Value.Degrees, update.Value.Unit)
	})
	if err != nil {
		log.Println("could not subscribe to sensor updates: " + err.Error())
	}

	log.Fatal(http.ListenAndServe("localhost:9999", nil))
}
