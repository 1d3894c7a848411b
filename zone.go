package hvacctl

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/alittlebrighter/hvacctl/core"
	"github.com/alittlebrighter/hvacctl/relay"
	tmeter "github.com/alittlebrighter/hvacctl/thermometer"
	"github.com/alittlebrighter/hvacctl/util"
)

var ErrTempReading = errors.New("could not read temperature")

// Zone ties one controller core to one thermometer and one relay driver and
// runs the poll loop that ticks the core.  All scheduling and unit handling
// lives here; the core only ever sees latched 7-bit temperatures and request
// booleans.
type Zone struct {
	Name                  string                `json:"name"`
	Setpoints             `json:"setpoints"`
	DefaultSetpoint       string                `json:"defaultSetpoint"`
	Schedule              []*ScheduleEvent      `json:"schedule"`
	PollInterval          util.Duration         `json:"pollInterval"`
	MinFan                util.Duration         `json:"minFan"`
	LastFan               time.Time             `json:"lastFan"`
	MaxErrors             uint8                 `json:"maxErrors"`
	errorCount            uint8
	UnitPreference        util.TemperatureUnits `json:"unitPreference"`
	DisplaySelect         bool                  `json:"displaySelect"`

	// readings can arrive from the poll loop and a message bus at once
	mu           sync.Mutex
	controller   *core.Controller
	driver       relay.Driver
	thermometer  tmeter.Thermometer
	onTransition func(core.ControlState, core.Outputs)
	Events       *util.RingBuffer `json:"events"`
}

// Setpoints are a collection of named Setpoint definitions.
type Setpoints map[string]*Setpoint

// Setpoint defines a target temperature and which of heating/cooling the
// zone may use to reach it.
type Setpoint struct {
	Target float64 `json:"target"`
	Heat   bool    `json:"heat"`
	Cool   bool    `json:"cool"`
}

// ScheduleEvent defines a block of time from Start to End on the specified Days each week when the specified
// setpoint (SetpointName) should be applied.
type ScheduleEvent struct {
	Days         []time.Weekday `json:"days"`
	SetpointName string         `json:"setpoint"`
	Start        util.ClockTime `json:"start"`
	End          util.ClockTime `json:"end"`
}

// ctl lazily constructs the controller core so a Zone decoded straight from
// a configuration file is usable as-is.
func (z *Zone) ctl() *core.Controller {
	if z.controller == nil {
		z.controller = core.New()
	}
	return z.controller
}

func (z *Zone) SetDriver(d relay.Driver) {
	z.driver = d
}

func (z *Zone) SetThermometer(t tmeter.Thermometer) {
	z.thermometer = t
}

// OnTransition registers a hook invoked whenever a tick changes the
// controller state, with the new state and committed outputs.
func (z *Zone) OnTransition(hook func(core.ControlState, core.Outputs)) {
	z.onTransition = hook
}

// State reports the controller's current state, for tracing and publishing.
func (z *Zone) State() core.ControlState {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.ctl().State()
}

// CurrentSetpoint calculates which setpoint should be applied right now based
// on the configured schedule, falling back to the default.
func (z *Zone) CurrentSetpoint(t time.Time) *Setpoint {
	for _, spec := range z.Schedule {
		if _, ok := z.Setpoints[spec.SetpointName]; !ok {
			continue
		}

		dayMatch := false
		for _, day := range spec.Days {
			if t.Weekday() == day {
				dayMatch = true
				break
			}
		}
		if !dayMatch {
			continue
		}

		switch {
		case t.Hour() < spec.Start.Hour() || t.Hour() > spec.End.Hour():
			fallthrough
		case t.Hour() == spec.Start.Hour() && t.Minute() < spec.Start.Minute():
			fallthrough
		case t.Hour() == spec.End.Hour() && t.Minute() > spec.End.Minute():
			continue
		default:
			return z.Setpoints[spec.SetpointName]
		}
	}

	return z.Setpoints[z.DefaultSetpoint]
}

// ProcessTemperatureReading takes a temperature reading and the units the reading was measured at, advances
// the controller one tick against it, and applies the committed outputs to the HVAC plant.
func (z *Zone) ProcessTemperatureReading(ambientTemp float64, units util.TemperatureUnits) {
	var temp float64
	if string(units) == string(util.Celsius) && string(z.UnitPreference) != string(util.Celsius) {
		temp = util.TempCToF(ambientTemp)
	} else if string(units) == string(util.Fahrenheit) && string(z.UnitPreference) != string(util.Fahrenheit) {
		temp = util.TempFToC(ambientTemp)
	} else {
		temp = ambientTemp
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	now := time.Now()
	setpoint := z.CurrentSetpoint(now)
	furnaceHot, acReady := z.driver.Feedback()

	prev := z.ctl().State()
	out := z.ctl().Tick(core.Inputs{
		CurrentTemp:   util.ClampTemp(temp),
		DesiredTemp:   util.ClampTemp(setpoint.Target),
		DisplaySelect: z.DisplaySelect,
		Heat:          setpoint.Heat,
		Cool:          setpoint.Cool,
		FurnaceHot:    furnaceHot,
		AcReady:       acReady,
	})

	minFan := time.Duration(z.MinFan)
	switch {
	case out.FanOn || out.FurnaceOn || out.AcOn:
		z.LastFan = now
	case now.Before(z.LastFan):
		// inside a circulation window started below; keep the fan running
		// until the window passes
		out.FanOn = true
	case minFan > 0 && time.Since(z.LastFan) > (time.Duration(1)*time.Hour)-minFan:
		log.Println("running FAN for circulation")
		out.FanOn = true
		z.LastFan = now.Add(minFan)
	}

	z.driver.Apply(out)

	log.Printf("Current Temperature (%s): %f, Target: %f, State: %s, Last Fan: %v",
		z.UnitPreference,
		temp,
		setpoint.Target,
		z.ctl().State(),
		z.LastFan.Local().Format(time.RFC3339),
	)

	z.Events.Add(&util.EventLog{
		AmbientTemperature: temp,
		Units:              z.UnitPreference,
		State:              z.ctl().State(),
		Outputs:            out,
		Timestamp:          now,
	})

	if z.onTransition != nil && z.ctl().State() != prev {
		z.onTransition(z.ctl().State(), out)
	}
}

// HandleError manages errors received from temperature readings to make sure the system does not stay on in the event of
// not being able to acquire a temperature reading.
func (z *Zone) HandleError() {
	z.mu.Lock()
	defer z.mu.Unlock()

	z.errorCount++

	if z.errorCount > z.MaxErrors {
		out := z.ctl().Tick(core.Inputs{Reset: true})
		z.driver.Apply(out)
		z.errorCount = 0
	}
}

// Run starts the main event loop to run the zone.
func (z *Zone) Run(ctx context.Context) {
	z.mu.Lock()
	z.ctl().Reset()
	z.mu.Unlock()

	// we want to do something right away
	temp, units, err := z.thermometer.ReadTemperature()
	if err != nil {
		log.Println("Error reading Temperature: " + err.Error())
		z.Events.Add(&util.EventLog{AmbientTemperature: -1, Units: z.UnitPreference, State: z.State(), Timestamp: time.Now()})
		z.HandleError()
	} else {
		z.ProcessTemperatureReading(temp, units)
	}

	ticker := time.NewTicker(time.Duration(z.PollInterval))
	for {
		select {
		case <-ticker.C:
			temp, units, err := z.thermometer.ReadTemperature()
			if err != nil {
				log.Println("Error reading Temperature: " + err.Error())
				z.Events.Add(&util.EventLog{AmbientTemperature: -1, Units: z.UnitPreference, State: z.State(), Timestamp: time.Now()})
				z.HandleError()
				continue
			}
			z.ProcessTemperatureReading(temp, units)
		case <-ctx.Done():
			ticker.Stop()
			return
		}
	}
}

// Validate checks that a zone has a valid configuration and returns a string explaining any issues.  An empty string denotes a valid configuration.
func (z *Zone) Validate() string {
	if _, ok := z.Setpoints[z.DefaultSetpoint]; !ok {
		return "DefaultSetpoint definition not found!"
	}

	for key, setpoint := range z.Setpoints {
		if setpoint.Target < 0 || setpoint.Target > 127 {
			return fmt.Sprintf("%s setpoint target is outside the displayable range.", key)
		}
		if setpoint.Heat && setpoint.Cool {
			return fmt.Sprintf("%s setpoint requests heating and cooling at once.", key)
		}
	}

	for i, spec := range z.Schedule {
		if time.Time(spec.Start).Unix() >= time.Time(spec.End).Unix() {
			return fmt.Sprintf("Schedule entry #%d not valid.", i+1)
		} else if _, ok := z.Setpoints[spec.SetpointName]; !ok {
			return fmt.Sprintf("Schedule entry #%d not valid.", i+1)
		}
	}

	return ""
}
