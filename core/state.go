package core

// ControlState is the controller's sequencing state.  Exactly one value is
// active per tick; the state register is owned by the Controller and only
// advances when a tick commits the previous tick's decision.
type ControlState uint8

const (
	Idle ControlState = iota
	HeatOn
	FurnaceHot
	FurnaceCool
	CoolOn
	AcReady
	AcDone
)

func (s ControlState) String() string {
	switch s {
	case Idle:
		return "idle"
	case HeatOn:
		return "heatOn"
	case FurnaceHot:
		return "furnaceHot"
	case FurnaceCool:
		return "furnaceCool"
	case CoolOn:
		return "coolOn"
	case AcReady:
		return "acReady"
	case AcDone:
		return "acDone"
	default:
		return "unknown"
	}
}

func (s ControlState) MarshalText() (text []byte, err error) {
	return []byte(s.String()), nil
}

// HvacMode says which heat-exchange element may be energized.  Heating and
// cooling are separate values of one enum rather than two booleans, so the
// furnace and the compressor can never be requested at the same time.
type HvacMode uint8

const (
	ModeOff HvacMode = iota
	ModeHeating
	ModeCooling
)

func (m HvacMode) String() string {
	switch m {
	case ModeHeating:
		return "heating"
	case ModeCooling:
		return "cooling"
	default:
		return "off"
	}
}

func (m HvacMode) MarshalText() (text []byte, err error) {
	return []byte(m.String()), nil
}
