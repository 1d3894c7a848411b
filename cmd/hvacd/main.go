package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	nats "github.com/nats-io/nats.go"

	"github.com/alittlebrighter/hvacctl"
	"github.com/alittlebrighter/hvacctl/core"
	"github.com/alittlebrighter/hvacctl/models"
	"github.com/alittlebrighter/hvacctl/relay"
	"github.com/alittlebrighter/hvacctl/thermometer"
	"github.com/alittlebrighter/hvacctl/util"
)

const (
	statusSub = "otto.hvac.status"
	sensorSub = "otto.sensor.temperature.current"
)

var (
	ConfigPath = "/etc/hvacctl.conf"
	natsURL    = nats.DefaultURL
)

func main() {
	flag.StringVar(&ConfigPath, "config", ConfigPath, "Path to the configuration file to use.")
	flag.StringVar(&natsURL, "natsUrl", natsURL, "Url for NATS instance to connect to.")
	flag.Parse()

	log.Println("Starting HVAC controller.")

	config, err := readState(ConfigPath)
	if err != nil {
		log.Fatalln(err.Error())
	}

	log.Println("Setting up relay driver.")
	driver, err := relay.NewCentralHVAC(config.Controller.Pins)
	if err != nil {
		log.Fatalln("Error starting relay driver: " + err.Error())
	}
	defer driver.Shutdown()
	driver.Apply(core.Outputs{})

	log.Println("Getting thermometer.")
	meter, err := newThermometer(config.Thermometer.Type, config.Thermometer.Endpoint)
	if err != nil {
		log.Fatalln("Error getting thermometer instance: " + err.Error())
	}
	defer meter.Shutdown()

	log.Println("Initializing zone.")
	zone := config.Zone
	if valid := zone.Validate(); valid != "" {
		log.Fatalln("Invalid zone configuration: " + valid)
	}

	zone.Events = util.NewRingBuffer(60)
	zone.LastFan = time.Now()
	zone.SetDriver(driver)
	zone.SetThermometer(meter)

	nc, err := nats.Connect(natsURL)
	if err != nil {
		log.Println("Could not connect to message bus: " + err.Error())
	} else {
		defer nc.Close()
		log.Println("Connected to NATS.")

		zone.OnTransition(func(state core.ControlState, out core.Outputs) {
			update := &models.StatusUpdate{
				Zone:      zone.Name,
				State:     state,
				Outputs:   out,
				Timestamp: time.Now(),
			}
			data, err := json.Marshal(update)
			if err != nil {
				log.Println("could not marshal status update: " + err.Error())
				return
			}
			if err := nc.Publish(statusSub, data); err != nil {
				log.Println("could not publish status update: " + err.Error())
			}
		})

		_, err = nc.Subscribe(sensorSub, func(m *nats.Msg) {
			update := new(models.SensorUpdate)
			if err := json.Unmarshal(m.Data, update); err != nil {
				log.Println("could not parse update from NATS")
				return
			}

			log.Println("got update from NATS: value:", update.Value)
			zone.ProcessTemperatureReading(update.Value.Degrees, update.Value.Unit)
		})
		if err != nil {
			log.Println("could not subscribe to sensor updates: " + err.Error())
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	// restart swaps cancel out, so release whichever context is current
	defer func() { cancel() }()

	go zone.Run(ctx)

	http.HandleFunc("/", CORSFilterFactory(ConfigHandlerFactory(zone, config, func() {
		cancel()
		ctx, cancel = context.WithCancel(context.Background())
		go zone.Run(ctx)
	})))

	log.Println("Starting web server.")
	log.Fatal(http.ListenAndServe(config.ServeAt, nil))
}

func newThermometer(kind, endpoint string) (thermometer.Thermometer, error) {
	if kind == "local" {
		return thermometer.NewLocal()
	}
	return thermometer.NewRemote(endpoint)
}

// Config defines the configuration needed to run the thermostat daemon.
type Config struct {
	Zone        *hvacctl.Zone
	Controller  struct{ Pins relay.Pins }
	Thermometer struct{ Type, Endpoint string }
	ServeAt     string `json:"serveAt"`
}

func ConfigHandlerFactory(zone *hvacctl.Zone, config *Config, restart func()) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			newZone := new(hvacctl.Zone)
			err := json.NewDecoder(r.Body).Decode(newZone)
			if err != nil {
				w.WriteHeader(500)
				fmt.Fprintf(w, "ERROR: "+err.Error())
				return
			}

			valid := newZone.Validate()
			if valid != "" {
				w.WriteHeader(422)
				fmt.Fprintf(w, "ERROR: invalid zone configuration. "+valid)
				return
			}

			zone.DefaultSetpoint = newZone.DefaultSetpoint
			zone.MaxErrors = newZone.MaxErrors
			zone.Setpoints = newZone.Setpoints
			zone.PollInterval = newZone.PollInterval
			zone.MinFan = newZone.MinFan
			zone.Schedule = newZone.Schedule
			zone.UnitPreference = newZone.UnitPreference
			zone.DisplaySelect = newZone.DisplaySelect

			restart()
			go saveState(ConfigPath, config)
		}

		err := json.NewEncoder(w).Encode(zone)
		if err != nil {
			w.WriteHeader(500)
			fmt.Fprintf(w, "ERROR: could not marshal zone struct.")
			return
		}
	}
}

func CORSFilterFactory(handler func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Add("Access-Control-Allow-Methods", "GET,POST")
		w.Header().Add("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(200)
			return
		}

		handler(w, r)
	}
}
