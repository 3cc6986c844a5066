package defs

type BgUnit string

const (
	MgdL  BgUnit = "mg/dL"
	MmolL BgUnit = "mmol/L"
)

// MgdlPerMmoll is the glucose molar mass conversion factor.
const MgdlPerMmoll = 18.01559

func (u BgUnit) Valid() bool {
	return u == MgdL || u == MmolL
}

// ToMgdl converts value expressed in unit to mg/dL.
func ToMgdl(value float64, unit BgUnit) float64 {
	if unit == MmolL {
		return value * MgdlPerMmoll
	}
	return value
}

// FromMgdl converts a mg/dL value to unit.
func FromMgdl(value float64, unit BgUnit) float64 {
	if unit == MmolL {
		return value / MgdlPerMmoll
	}
	return value
}

type BgBounds struct {
	VeryLowThreshold  float64 `json:"veryLowThreshold" yaml:"veryLowThreshold"`
	TargetLowerBound  float64 `json:"targetLowerBound" yaml:"targetLowerBound"`
	TargetUpperBound  float64 `json:"targetUpperBound" yaml:"targetUpperBound"`
	VeryHighThreshold float64 `json:"veryHighThreshold" yaml:"veryHighThreshold"`
}

type DiabeticType string

const (
	DT1DT2       DiabeticType = "DT1DT2"
	DT1Pregnancy DiabeticType = "DT1Pregnancy"
)
