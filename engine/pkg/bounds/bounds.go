package bounds

import (
	"errors"
	"fmt"

	"glycostats/engine/defs"
)

var ErrUnknownBounds = errors.New("unknown bounds")

type key struct {
	diabeticType defs.DiabeticType
	unit         defs.BgUnit
}

var defaults = map[key]defs.BgBounds{
	{defs.DT1DT2, defs.MgdL}: {
		VeryLowThreshold:  54,
		TargetLowerBound:  70,
		TargetUpperBound:  180,
		VeryHighThreshold: 250,
	},
	{defs.DT1DT2, defs.MmolL}: {
		VeryLowThreshold:  3.0,
		TargetLowerBound:  3.9,
		TargetUpperBound:  10.0,
		VeryHighThreshold: 13.9,
	},
	{defs.DT1Pregnancy, defs.MgdL}: {
		VeryLowThreshold:  54,
		TargetLowerBound:  63,
		TargetUpperBound:  140,
		VeryHighThreshold: 250,
	},
	{defs.DT1Pregnancy, defs.MmolL}: {
		VeryLowThreshold:  3.0,
		TargetLowerBound:  3.5,
		TargetUpperBound:  7.8,
		VeryHighThreshold: 13.9,
	},
}

// Get returns the default clinical bounds for a diabetic profile and unit.
// The table is never mutated, the returned value is a copy.
func Get(diabeticType defs.DiabeticType, unit defs.BgUnit) (defs.BgBounds, error) {
	b, ok := defaults[key{diabeticType, unit}]
	if !ok {
		return defs.BgBounds{}, fmt.Errorf("%w: %s in %s", ErrUnknownBounds, diabeticType, unit)
	}
	return b, nil
}

// Validate checks veryLow < targetLower < targetUpper < veryHigh.
func Validate(b defs.BgBounds) error {
	if !(b.VeryLowThreshold < b.TargetLowerBound &&
		b.TargetLowerBound < b.TargetUpperBound &&
		b.TargetUpperBound < b.VeryHighThreshold) {
		return fmt.Errorf("bounds out of order: %+v", b)
	}
	return nil
}
