package util

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/alittlebrighter/hvacctl/core"
)

type TemperatureUnits string

const (
	Celsius    TemperatureUnits = "Celsius"
	Fahrenheit                  = "Fahrenheit"
)

// TempCToF converts temperature degrees from Celsius to Fahrenheit
func TempCToF(tempC float64) float64 {
	return tempC*9/5 + 32
}

// TempFToC converts temperature degrees from Fahrenheit to Celsius
func TempFToC(tempF float64) float64 {
	return (tempF - 32) * 5 / 9
}

// ClampTemp rounds a sensor reading to the nearest degree and clamps it into
// the controller's 7-bit range.  Validation happens out here so the core can
// treat every temperature it is handed as representable.
func ClampTemp(degrees float64) core.Temp {
	rounded := math.Round(degrees)
	switch {
	case rounded < 0:
		return 0
	case rounded > 127:
		return 127
	default:
		return core.Temp(rounded)
	}
}

// Duration wraps time.Duration so configuration files can spell intervals as
// strings like "30s" or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("could not parse duration: " + s)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

type ClockTime time.Time

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	realTime, err := time.Parse(`"`+time.Kitchen+`"`, string(data))
	*t = ClockTime(realTime)
	return err
}

func (t *ClockTime) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(time.Kitchen)+2)
	b = append(b, '"')
	b = t.AppendFormat(b, time.Kitchen)
	b = append(b, '"')
	return b, nil
}

func (t ClockTime) Hour() int {
	return time.Time(t).Hour()
}

func (t ClockTime) Minute() int {
	return time.Time(t).Minute()
}

func (t ClockTime) AppendFormat(dat []byte, format string) []byte {
	return time.Time(t).AppendFormat(dat, format)
}

// EventLog records one pass of the zone loop: what the sensor read and what
// the controller decided.
type EventLog struct {
	AmbientTemperature float64           `json:"ambientTemperature"`
	Units              TemperatureUnits  `json:"units"`
	State              core.ControlState `json:"state"`
	Outputs            core.Outputs      `json:"outputs"`
	Timestamp          time.Time         `json:"timestamp"`
}

type RingBuffer struct {
	buffer []*EventLog
	index  uint
}

func NewRingBuffer(size uint) *RingBuffer {
	return &RingBuffer{buffer: make([]*EventLog, size)}
}

func (buf *RingBuffer) Add(item *EventLog) {
	if buf.index == uint(len(buf.buffer)) {
		buf.index = 0
	}
	buf.buffer[buf.index] = item
	buf.index = buf.index + 1
}

func (buf *RingBuffer) GetAll() []*EventLog {
	return append(buf.buffer[buf.index:], buf.buffer[:buf.index]...)
}

func (buf *RingBuffer) GetLast() *EventLog {
	if buf.index == 0 {
		return buf.buffer[len(buf.buffer)-1]
	}

	return buf.buffer[buf.index-1]
}
