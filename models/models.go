package models

import (
	"time"

	"github.com/alittlebrighter/hvacctl/core"
	"github.com/alittlebrighter/hvacctl/util"
)

type SensorUpdate struct {
	Location string      `json:"location"`
	Type     string      `json:"type"`
	Value    Temperature `json:"value"`
}

type Temperature struct {
	Degrees float64               `json:"degrees"`
	Unit    util.TemperatureUnits `json:"unit"`
}

// StatusUpdate is published whenever a zone's controller changes state.
type StatusUpdate struct {
	Zone      string            `json:"zone"`
	State     core.ControlState `json:"state"`
	Outputs   core.Outputs      `json:"outputs"`
	Timestamp time.Time         `json:"timestamp"`
}
