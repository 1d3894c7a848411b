package core

// Temp is an unsigned 7-bit temperature, 0 through 127.  The controller never
// does arithmetic on temperatures, only comparison and selection, so the range
// can't be escaped once a value has been latched.
type Temp uint8

// tempMask is the register width of a temperature; latching discards the high
// bit the way a 7-bit hardware register would.
const tempMask = 0x7f

// Inputs are the external signals sampled at the start of every tick.
// Reset is level-sensitive: asserting it makes the tick a reset tick.
type Inputs struct {
	Reset         bool `json:"reset"`
	CurrentTemp   Temp `json:"currentTemp"`
	DesiredTemp   Temp `json:"desiredTemp"`
	DisplaySelect bool `json:"displaySelect"`
	Cool          bool `json:"cool"`
	Heat          bool `json:"heat"`
	FurnaceHot    bool `json:"furnaceHot"`
	AcReady       bool `json:"acReady"`
}

// latched returns the register image of raw inputs: temperatures masked to
// seven bits, Reset dropped since it never reaches the pipeline.
func (in Inputs) latched() Inputs {
	in.Reset = false
	in.CurrentTemp &= tempMask
	in.DesiredTemp &= tempMask
	return in
}

// Outputs are the externally observable signals.  The whole struct is
// overwritten on every tick, never field by field.
type Outputs struct {
	FanOn       bool `json:"fanOn"`
	FurnaceOn   bool `json:"furnaceOn"`
	AcOn        bool `json:"acOn"`
	TempDisplay Temp `json:"tempDisplay"`
}

// rawOutputs is what the state machine produces for one tick, before the
// output latch projects it onto the observable booleans.
type rawOutputs struct {
	mode HvacMode
	fan  bool
}

// commit projects the raw outputs and the display mux onto the output
// register.  The furnace and compressor booleans both derive from the single
// mode value, so only one can come out asserted; if both ever did it would
// mean the projection itself is broken, which is not recoverable.
func (raw rawOutputs) commit(in Inputs) Outputs {
	out := Outputs{
		FanOn:     raw.fan,
		FurnaceOn: raw.mode == ModeHeating,
		AcOn:      raw.mode == ModeCooling,
	}
	if out.FurnaceOn && out.AcOn {
		panic("core: furnace and AC driven simultaneously")
	}
	if in.DisplaySelect {
		out.TempDisplay = in.DesiredTemp
	} else {
		out.TempDisplay = in.CurrentTemp
	}
	return out
}
