package core

// advance is the state machine: a pure function of the current state and the
// latched inputs.  It returns the state to load on the next tick and the raw
// outputs for this tick.  Outputs depend only on the state (Moore style), so
// a changed input moves the state one tick later and the outputs the tick
// after the state.
func advance(s ControlState, in Inputs) (ControlState, rawOutputs) {
	switch s {
	case Idle:
		// Heat and cool requested together, or neither, stays put.
		switch {
		case in.Cool && !in.Heat && in.CurrentTemp > in.DesiredTemp:
			return CoolOn, rawOutputs{mode: ModeOff}
		case !in.Cool && in.Heat && in.CurrentTemp < in.DesiredTemp:
			return HeatOn, rawOutputs{mode: ModeOff}
		}
		return Idle, rawOutputs{mode: ModeOff}

	case HeatOn:
		// Burner lit, waiting for the plenum to come up to temperature
		// before circulating air.
		if in.FurnaceHot {
			return FurnaceHot, rawOutputs{mode: ModeHeating}
		}
		return HeatOn, rawOutputs{mode: ModeHeating}

	case FurnaceHot:
		// Reaching the setpoint exactly counts as done.
		if !(in.CurrentTemp < in.DesiredTemp && in.Heat) {
			return FurnaceCool, rawOutputs{mode: ModeHeating, fan: true}
		}
		return FurnaceHot, rawOutputs{mode: ModeHeating, fan: true}

	case FurnaceCool:
		// Burner off, fan runs until the heat exchanger has cooled.
		if !in.FurnaceHot {
			return Idle, rawOutputs{mode: ModeOff, fan: true}
		}
		return FurnaceCool, rawOutputs{mode: ModeOff, fan: true}

	case CoolOn:
		if in.AcReady {
			return AcReady, rawOutputs{mode: ModeCooling}
		}
		return CoolOn, rawOutputs{mode: ModeCooling}

	case AcReady:
		if !(in.CurrentTemp > in.DesiredTemp && in.Cool) {
			return AcDone, rawOutputs{mode: ModeCooling, fan: true}
		}
		return AcReady, rawOutputs{mode: ModeCooling, fan: true}

	case AcDone:
		// Fan clears the coil until the compressor reports shut down.
		if !in.AcReady {
			return Idle, rawOutputs{mode: ModeOff, fan: true}
		}
		return AcDone, rawOutputs{mode: ModeOff, fan: true}

	default:
		// Unreachable state values recover to a dead stop.
		return Idle, rawOutputs{mode: ModeOff}
	}
}
