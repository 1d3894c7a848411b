package main

import (
	"flag"
	"io/ioutil"
	"log"

	"github.com/ghodss/yaml"

	"github.com/alittlebrighter/hvacctl/core"
)

func main() {
	scriptPath := flag.String("script", "", "Path to a yaml stimulus script.")
	verbose := flag.Bool("v", false, "Log every tick instead of only state transitions.")
	flag.Parse()

	if *scriptPath == "" {
		log.Fatalln("No stimulus script given, nothing to do.")
	}

	script, err := readScript(*scriptPath)
	if err != nil {
		log.Fatalln("Could not load stimulus script: " + err.Error())
	}

	if script.Name != "" {
		log.Println("Running script: " + script.Name)
	}

	c := core.New()
	tick := 0
	for _, step := range script.Steps {
		hold := step.Hold
		if hold < 1 {
			hold = 1
		}

		for i := 0; i < hold; i++ {
			prev := c.State()
			out := c.Tick(step.Inputs)
			tick++

			if *verbose || c.State() != prev {
				log.Printf("tick %4d: %-11s -> %-11s furnace=%t ac=%t fan=%t display=%d",
					tick, prev, c.State(), out.FurnaceOn, out.AcOn, out.FanOn, out.TempDisplay)
			}
		}
	}

	log.Printf("ran %d ticks, final state %s", tick, c.State())
}

// Script is a scripted input sequence.  Each step holds its inputs on the
// controller for Hold ticks (default 1).
type Script struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

type Step struct {
	Hold   int         `json:"hold"`
	Inputs core.Inputs `json:"inputs"`
}

func readScript(path string) (*Script, error) {
	dat, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	script := new(Script)
	err = yaml.Unmarshal(dat, script)
	return script, err
}
