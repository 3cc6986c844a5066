package stats

import (
	"errors"

	"glycostats/engine/defs"
)

var ErrNonPositiveBgValue = errors.New("you must provide a positive, numerical blood glucose value to categorize")

type ClassificationType int

const (
	ThreeWay ClassificationType = iota
	FiveWay
)

type BgClass string

const (
	VeryLow  BgClass = "veryLow"
	Low      BgClass = "low"
	Target   BgClass = "target"
	High     BgClass = "high"
	VeryHigh BgClass = "veryHigh"
)

// ClassifyBgValue buckets bgValue against bounds. Values on a threshold go
// to the less severe side: the target bounds are inclusive, the very low
// threshold belongs to low and the very high threshold belongs to high.
func ClassifyBgValue(bounds defs.BgBounds, bgValue float64, ct ClassificationType) (BgClass, error) {
	if !(bgValue > 0) {
		return "", ErrNonPositiveBgValue
	}

	if ct == FiveWay {
		switch {
		case bgValue < bounds.VeryLowThreshold:
			return VeryLow, nil
		case bgValue > bounds.VeryHighThreshold:
			return VeryHigh, nil
		}
	}

	switch {
	case bgValue < bounds.TargetLowerBound:
		return Low, nil
	case bgValue > bounds.TargetUpperBound:
		return High, nil
	default:
		return Target, nil
	}
}
