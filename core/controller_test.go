package core

import "testing"

// tickN holds the inputs steady for n ticks and returns the last outputs.
func tickN(c *Controller, in Inputs, n int) Outputs {
	var out Outputs
	for i := 0; i < n; i++ {
		out = c.Tick(in)
	}
	return out
}

func TestResetDeterminism(t *testing.T) {
	c := New()

	// Build up some history first.
	tickN(c, Inputs{CurrentTemp: 65, DesiredTemp: 72, Heat: true, FurnaceHot: true}, 5)
	if c.State() == Idle {
		t.Fatal("controller failed to leave idle during setup")
	}

	out := c.Tick(Inputs{Reset: true, CurrentTemp: 99, DesiredTemp: 99, Heat: true, Cool: true})
	if c.State() != Idle {
		t.Errorf("state after reset tick is %s, expected idle", c.State())
	}
	if out != (Outputs{}) {
		t.Errorf("outputs after reset tick are %+v, expected all zero", out)
	}

	// The method form behaves the same.
	tickN(c, Inputs{CurrentTemp: 78, DesiredTemp: 72, Cool: true}, 5)
	c.Reset()
	if c.State() != Idle || c.Outputs() != (Outputs{}) {
		t.Errorf("Reset left state %s outputs %+v", c.State(), c.Outputs())
	}
}

func TestIdleStability(t *testing.T) {
	for _, in := range []Inputs{
		{CurrentTemp: 40, DesiredTemp: 100},
		{CurrentTemp: 100, DesiredTemp: 40},
		{CurrentTemp: 40, DesiredTemp: 100, Cool: true, Heat: true},
		{CurrentTemp: 100, DesiredTemp: 40, Cool: true, Heat: true},
	} {
		c := New()
		for i := 0; i < 20; i++ {
			out := c.Tick(in)
			if c.State() != Idle {
				t.Fatalf("left idle on tick %d with inputs %+v", i, in)
			}
			if out.FanOn || out.FurnaceOn || out.AcOn {
				t.Fatalf("live outputs %+v from idle with inputs %+v", out, in)
			}
		}
	}
}

func TestHeatingRoundTrip(t *testing.T) {
	c := New()
	c.Reset()

	in := Inputs{CurrentTemp: 65, DesiredTemp: 72, Heat: true}
	out := tickN(c, in, 2)
	if c.State() != HeatOn {
		t.Fatalf("state is %s, expected heatOn", c.State())
	}
	if !out.FurnaceOn || out.AcOn || out.FanOn {
		t.Fatalf("heatOn outputs %+v, expected furnace only", out)
	}

	in.FurnaceHot = true
	out = tickN(c, in, 2)
	if c.State() != FurnaceHot {
		t.Fatalf("state is %s, expected furnaceHot", c.State())
	}
	if !out.FurnaceOn || !out.FanOn || out.AcOn {
		t.Fatalf("furnaceHot outputs %+v, expected furnace and fan", out)
	}

	// Room reaches the setpoint: burner off, fan keeps running.
	in.CurrentTemp = 72
	out = tickN(c, in, 2)
	if c.State() != FurnaceCool {
		t.Fatalf("state is %s, expected furnaceCool", c.State())
	}
	if out.FurnaceOn || !out.FanOn || out.AcOn {
		t.Fatalf("furnaceCool outputs %+v, expected fan only", out)
	}

	in.FurnaceHot = false
	out = tickN(c, in, 2)
	if c.State() != Idle {
		t.Fatalf("state is %s, expected idle", c.State())
	}
	if out.FurnaceOn || out.FanOn || out.AcOn {
		t.Fatalf("idle outputs %+v, expected all off", out)
	}
}

func TestCoolingRoundTrip(t *testing.T) {
	c := New()
	c.Reset()

	in := Inputs{CurrentTemp: 78, DesiredTemp: 72, Cool: true}
	out := tickN(c, in, 2)
	if c.State() != CoolOn {
		t.Fatalf("state is %s, expected coolOn", c.State())
	}
	if !out.AcOn || out.FurnaceOn || out.FanOn {
		t.Fatalf("coolOn outputs %+v, expected AC only", out)
	}

	in.AcReady = true
	out = tickN(c, in, 2)
	if c.State() != AcReady {
		t.Fatalf("state is %s, expected acReady", c.State())
	}
	if !out.AcOn || !out.FanOn || out.FurnaceOn {
		t.Fatalf("acReady outputs %+v, expected AC and fan", out)
	}

	in.CurrentTemp = 72
	out = tickN(c, in, 2)
	if c.State() != AcDone {
		t.Fatalf("state is %s, expected acDone", c.State())
	}
	if out.AcOn || !out.FanOn || out.FurnaceOn {
		t.Fatalf("acDone outputs %+v, expected fan only", out)
	}

	in.AcReady = false
	out = tickN(c, in, 2)
	if c.State() != Idle {
		t.Fatalf("state is %s, expected idle", c.State())
	}
	if out.AcOn || out.FanOn || out.FurnaceOn {
		t.Fatalf("idle outputs %+v, expected all off", out)
	}
}

func TestOneTickLatency(t *testing.T) {
	c := New()

	// A request applied at tick N shows on the outputs committed at N+1.
	in := Inputs{CurrentTemp: 65, DesiredTemp: 72, Heat: true}
	out := c.Tick(in)
	if out.FurnaceOn {
		t.Error("furnace on the same tick the request was latched")
	}
	out = c.Tick(in)
	if !out.FurnaceOn {
		t.Error("furnace still off one tick after the request was latched")
	}
}

func TestDisplayMux(t *testing.T) {
	c := New()

	in := Inputs{CurrentTemp: 65, DesiredTemp: 72, Heat: true}
	out := c.Tick(in)
	if out.TempDisplay != 65 {
		t.Errorf("display shows %d, expected current temperature 65", out.TempDisplay)
	}

	in.DisplaySelect = true
	out = c.Tick(in)
	if out.TempDisplay != 72 {
		t.Errorf("display shows %d, expected desired temperature 72", out.TempDisplay)
	}

	// The mux tracks the latched temperatures regardless of HVAC activity.
	in.FurnaceHot = true
	tickN(c, in, 4)
	if c.Outputs().TempDisplay != 72 {
		t.Errorf("display shows %d mid-heat, expected 72", c.Outputs().TempDisplay)
	}
}

func TestTemperatureLatchMasksToSevenBits(t *testing.T) {
	c := New()

	out := c.Tick(Inputs{CurrentTemp: 0xff, DesiredTemp: 0x80})
	if out.TempDisplay != 0x7f {
		t.Errorf("display shows %d, expected 127 after masking", out.TempDisplay)
	}
	if c.in.DesiredTemp != 0 {
		t.Errorf("desired latched as %d, expected 0 after masking", c.in.DesiredTemp)
	}
}

func TestNoSpontaneousTransitions(t *testing.T) {
	// For each state, inputs that hold it, reached by replaying the inputs
	// that lead there.
	heatPath := []Inputs{
		{CurrentTemp: 65, DesiredTemp: 72, Heat: true},
		{CurrentTemp: 65, DesiredTemp: 72, Heat: true, FurnaceHot: true},
		{CurrentTemp: 72, DesiredTemp: 72, Heat: true, FurnaceHot: true},
	}
	coolPath := []Inputs{
		{CurrentTemp: 78, DesiredTemp: 72, Cool: true},
		{CurrentTemp: 78, DesiredTemp: 72, Cool: true, AcReady: true},
		{CurrentTemp: 72, DesiredTemp: 72, Cool: true, AcReady: true},
	}

	verify := func(t *testing.T, path []Inputs) {
		c := New()
		for _, in := range path {
			// Two ticks to latch and take effect, then the state must hold
			// for as long as the inputs do.
			tickN(c, in, 2)
			settled := c.State()
			outputs := c.Outputs()
			tickN(c, in, 10)
			if c.State() != settled {
				t.Fatalf("state drifted from %s to %s under constant inputs %+v", settled, c.State(), in)
			}
			if c.Outputs() != outputs {
				t.Fatalf("outputs drifted from %+v to %+v under constant inputs %+v", outputs, c.Outputs(), in)
			}
		}
	}

	verify(t, heatPath)
	verify(t, coolPath)
}
