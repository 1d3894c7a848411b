// Package core implements the clocked control logic of an HVAC thermostat:
// a two-register pipeline around a seven-state machine that sequences the
// furnace, air conditioner and circulation fan, and guarantees the furnace
// and AC are never energized at the same time.
//
// The package is a cycle-stepped model: calling Tick advances exactly one
// clock edge, synchronously, with no I/O and no goroutines.  Everything the
// controller touches lives in the Controller struct, so independent zones are
// just independent instances.
package core

// Controller is the clocked driver tying the pipeline together.  It owns the
// input latch, the state register, the pending next-state decision and the
// output latch.  The zero value is a controller in its reset state.
type Controller struct {
	in    Inputs       // input latch
	state ControlState // state register
	next  ControlState // decision from the last evaluation, loaded next tick
	out   Outputs      // output latch
}

// New returns a Controller in its reset state.
func New() *Controller {
	return new(Controller)
}

// Tick advances the controller one clock edge and returns the output register
// as observable until the next tick.  Within the tick: the raw inputs are
// latched, the state register loads the previous tick's decision, the state
// machine is evaluated against the new state and latched inputs, and its raw
// outputs plus the display mux are committed to the output latch.
//
// A tick with in.Reset set is a reset tick: every register returns to its
// zero value before Tick returns, and nothing else is sampled.
func (c *Controller) Tick(in Inputs) Outputs {
	if in.Reset {
		c.Reset()
		return c.out
	}

	c.in = in.latched()
	c.state = c.next

	next, raw := advance(c.state, c.in)
	c.next = next
	c.out = raw.commit(c.in)

	return c.out
}

// Reset synchronously forces the input latch, state register and output latch
// to their initial values.  It completes before returning; the next Tick
// evaluates from Idle.
func (c *Controller) Reset() {
	*c = Controller{}
}

// State reports the value of the state register, for tracing.
func (c *Controller) State() ControlState {
	return c.state
}

// Outputs reports the output register as committed by the most recent tick.
func (c *Controller) Outputs() Outputs {
	return c.out
}
