package datum

import (
	"math"
	"sort"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/timeutil"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mohae/deepcopy"
)

// DeduplicateWizards merges wizards sharing a normalTime into one record.
// The merged record is the one with the earliest inputTime and carries the
// union of the group's bolus references. References to boluses missing from
// boluses are dropped, and so is a group left without any. The inputs are
// not modified.
func DeduplicateWizards(wizards []defs.Wizard, boluses []defs.Bolus) []defs.Wizard {
	known := mapset.NewThreadUnsafeSet[string]()
	for _, b := range boluses {
		known.Add(b.ID)
	}

	order := make([]string, 0, len(wizards))
	groups := make(map[string][]defs.Wizard, len(wizards))
	for _, w := range wizards {
		if _, ok := groups[w.NormalTime]; !ok {
			order = append(order, w.NormalTime)
		}
		groups[w.NormalTime] = append(groups[w.NormalTime], w)
	}

	deduped := make([]defs.Wizard, 0, len(order))
	for _, normalTime := range order {
		group := groups[normalTime]

		refs := mapset.NewThreadUnsafeSet[string]()
		canonical := 0
		for i, w := range group {
			if w.BolusID != "" {
				refs.Add(w.BolusID)
			}
			refs.Append(w.BolusIDs...)
			if inputEpoch(w) < inputEpoch(group[canonical]) {
				canonical = i
			}
		}

		valid := refs.Intersect(known).ToSlice()
		if len(valid) == 0 {
			continue
		}
		sort.Strings(valid)

		merged := deepcopy.Copy(group[canonical]).(defs.Wizard)
		merged.BolusIDs = valid
		if !known.Contains(merged.BolusID) {
			merged.BolusID = valid[0]
		}
		deduped = append(deduped, merged)
	}
	return deduped
}

// WizardBolusIDs is the set of bolus ids referenced by wizards.
func WizardBolusIDs(wizards []defs.Wizard) mapset.Set[string] {
	ids := mapset.NewThreadUnsafeSet[string]()
	for _, w := range wizards {
		if w.BolusID != "" {
			ids.Add(w.BolusID)
		}
		ids.Append(w.BolusIDs...)
	}
	return ids
}

func inputEpoch(w defs.Wizard) int64 {
	epoch, err := timeutil.ISOToEpoch(w.InputTime)
	if err != nil {
		return math.MaxInt64
	}
	return epoch
}
