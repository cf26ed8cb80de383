package domain

type InstrumentModel string

const (
	InstrumentBondRX  InstrumentModel = "bond_rx"
	InstrumentBondIII InstrumentModel = "bond_iii"
)

// ValidInstrumentModels is the canonical set of accepted instrument strings.
var ValidInstrumentModels = map[string]bool{
	"bond_rx": true, "bond_iii": true,
}

// DefaultDeadVolumeUL returns the documented per-run dead volume for the
// instrument. The Bond III draws a much larger priming volume than the RX.
func (m InstrumentModel) DefaultDeadVolumeUL() float64 {
	switch m {
	case InstrumentBondIII:
		return 600
	default:
		return 150
	}
}

// Label returns the marketing name for display.
func (m InstrumentModel) Label() string {
	switch m {
	case InstrumentBondRX:
		return "Bond RX"
	case InstrumentBondIII:
		return "Bond III"
	default:
		return string(m)
	}
}

type ReagentType string

const (
	ReagentPrimary   ReagentType = "primary"
	ReagentOpal      ReagentType = "opal"
	ReagentDAPI      ReagentType = "dapi"
	ReagentAmplifier ReagentType = "amplifier"
	ReagentSecondary ReagentType = "secondary"
	ReagentPolymer   ReagentType = "polymer"
	ReagentOther     ReagentType = "other"
)

// ValidReagentTypes is the canonical set of accepted reagent type strings.
var ValidReagentTypes = map[string]bool{
	"primary": true, "opal": true, "dapi": true, "amplifier": true,
	"secondary": true, "polymer": true, "other": true,
}

// DoubleDispensed reports whether the robot dispenses this reagent twice per
// slide. Opal fluorophores and DAPI counterstain run a double-dispense step.
func (t ReagentType) DoubleDispensed() bool {
	return t == ReagentOpal || t == ReagentDAPI
}

// AppliedToNegControls reports whether negative control slides receive this
// reagent. Negative controls get everything except the primary antibody.
func (t ReagentType) AppliedToNegControls() bool {
	return t != ReagentPrimary
}

// GroupOrder returns the display rank of the type within a plex: assigned
// primaries first, then the dispense sequence the protocol follows.
func (t ReagentType) GroupOrder() int {
	switch t {
	case ReagentPrimary:
		return 0
	case ReagentSecondary:
		return 1
	case ReagentPolymer:
		return 2
	case ReagentAmplifier:
		return 3
	case ReagentOpal:
		return 4
	case ReagentDAPI:
		return 5
	default:
		return 6
	}
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ValidExportFormats is the canonical set of accepted export format strings.
var ValidExportFormats = map[string]bool{
	"csv": true, "xlsx": true,
}
