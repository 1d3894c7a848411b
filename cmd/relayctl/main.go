package main

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"log"
	"net/http"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/alittlebrighter/hvacctl/core"
	"github.com/alittlebrighter/hvacctl/relay"
)

// relayctl exposes the relay pins directly over HTTP for wiring checkout.
// It bypasses the controller core, so it refuses to energize the furnace and
// AC relays at the same time itself.

const DEFAULT_CONFIG = "/etc/hvacctl.conf"

func main() {
	configFile := flag.String("config", DEFAULT_CONFIG, "The configuration file for the relay pins.")
	flag.Parse()

	data, err := ioutil.ReadFile(*configFile)
	if err != nil {
		log.Fatalln("ERROR: Could not read configuration file!\n" + err.Error())
	}

	config := new(relayConfig)
	if err = yaml.Unmarshal(data, config); err != nil {
		log.Fatalln("ERROR: Could not parse configuration!\n" + err.Error())
	}

	log.Println("Setting up relay driver.")
	driver, err := relay.NewCentralHVAC(config.Controller.Pins)
	if err != nil {
		log.Fatalln("ERROR: Cannot start relay driver!\n" + err.Error())
	}
	defer driver.Shutdown()

	appCtx := &appContext{driver: driver}

	http.HandleFunc("/heat", appCtx.controlElement("HEAT", func(on bool) { appCtx.outputs.FurnaceOn = on }))
	http.HandleFunc("/cool", appCtx.controlElement("AC", func(on bool) { appCtx.outputs.AcOn = on }))
	http.HandleFunc("/fan", appCtx.controlElement("FAN", func(on bool) { appCtx.outputs.FanOn = on }))
	http.HandleFunc("/feedback", appCtx.feedback)

	log.Println("Starting web server at " + config.ServeAt)
	log.Fatal(http.ListenAndServe(config.ServeAt, nil))
}

type appContext struct {
	driver  relay.Driver
	outputs core.Outputs
}

func (appCtx *appContext) controlElement(elementName string, set func(on bool)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := new(response)

		if strings.ToUpper(r.Method) == http.MethodPost {
			command := &response{Errors: []string{}}
			err := json.NewDecoder(r.Body).Decode(command)
			switch {
			case err != nil:
				log.Println("ERROR: " + err.Error())
				resp.Errors = append(resp.Errors, err.Error())
			case command.ElementOn && elementName == "HEAT" && appCtx.outputs.AcOn:
				resp.Errors = append(resp.Errors, "AC relay is energized; turn it off first")
			case command.ElementOn && elementName == "AC" && appCtx.outputs.FurnaceOn:
				resp.Errors = append(resp.Errors, "furnace relay is energized; turn it off first")
			default:
				if command.ElementOn {
					log.Println("Turning " + elementName + " ON.")
				} else {
					log.Println("Turning " + elementName + " OFF.")
				}
				set(command.ElementOn)
				appCtx.driver.Apply(appCtx.outputs)
			}
		}

		switch elementName {
		case "HEAT":
			resp.ElementOn = appCtx.outputs.FurnaceOn
		case "AC":
			resp.ElementOn = appCtx.outputs.AcOn
		case "FAN":
			resp.ElementOn = appCtx.outputs.FanOn
		}

		w.WriteHeader(http.StatusOK)
		err := json.NewEncoder(w).Encode(resp)
		if err != nil {
			log.Println("ERROR: " + err.Error())
		}
	}
}

func (appCtx *appContext) feedback(w http.ResponseWriter, r *http.Request) {
	furnaceHot, acReady := appCtx.driver.Feedback()
	err := json.NewEncoder(w).Encode(map[string]bool{
		"furnaceHot": furnaceHot,
		"acReady":    acReady,
	})
	if err != nil {
		log.Println("ERROR: " + err.Error())
	}
}

type response struct {
	ElementOn bool
	Errors    []string
}

type relayConfig struct {
	ServeAt    string
	Controller struct{ Pins relay.Pins }
}
