package relay

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"

	"github.com/alittlebrighter/hvacctl/core"
)

// The relay board switches on a grounded input.
const (
	on  = rpio.Low
	off = rpio.High
)

// Pins identifies the GPIO pins wired to a central HVAC unit.  Furnace, cool
// and fan drive relays; furnaceHot and acReady read the plant's plenum and
// compressor sense lines.
type Pins struct {
	Fan, Cool, Heat     int
	FurnaceHot, AcReady int
}

// CentralHVAC drives a central furnace/AC unit over GPIO.
type CentralHVAC struct {
	fan, heat, cool     rpio.Pin
	furnaceHot, acReady rpio.Pin
}

// NewCentralHVAC opens the GPIO device and configures the pins for a central
// HVAC system, leaving every relay off.
func NewCentralHVAC(pins Pins) (*CentralHVAC, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.Wrap(err, "could not open GPIO device")
	}

	c := new(CentralHVAC)

	c.heat = rpio.Pin(pins.Heat)
	c.cool = rpio.Pin(pins.Cool)
	c.fan = rpio.Pin(pins.Fan)
	c.furnaceHot = rpio.Pin(pins.FurnaceHot)
	c.acReady = rpio.Pin(pins.AcReady)

	c.heat.Output()
	c.cool.Output()
	c.fan.Output()
	c.furnaceHot.Input()
	c.acReady.Input()

	c.fan.Write(off)
	c.heat.Write(off)
	c.cool.Write(off)

	return c, nil
}

// Apply mirrors the controller's output register onto the relay pins.
func (c *CentralHVAC) Apply(out core.Outputs) {
	c.heat.Write(level(out.FurnaceOn))
	c.cool.Write(level(out.AcOn))
	c.fan.Write(level(out.FanOn))
}

// Feedback reads the plant's sense lines.  Like the relays they are
// active-low.
func (c *CentralHVAC) Feedback() (furnaceHot, acReady bool) {
	return c.furnaceHot.Read() == rpio.Low, c.acReady.Read() == rpio.Low
}

// Shutdown turns off all HVAC components and closes the GPIO connection.
func (c *CentralHVAC) Shutdown() {
	c.cool.Write(off)
	c.heat.Write(off)
	c.fan.Write(off)

	rpio.Close()
}

func level(active bool) rpio.State {
	if active {
		return on
	}
	return off
}
