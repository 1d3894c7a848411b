package relay

import "github.com/alittlebrighter/hvacctl/core"

// Driver applies the controller's output register to a physical HVAC plant
// and reports the plant's readiness feedback.  All sequencing decisions are
// made upstream by the core; a Driver only mirrors pins.
type Driver interface {
	Apply(out core.Outputs)
	Feedback() (furnaceHot, acReady bool)
	Shutdown()
}
