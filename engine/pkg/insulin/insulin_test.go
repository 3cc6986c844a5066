package insulin

import (
	"testing"
	"time"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/timeutil"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var (
	start   = time.Date(2022, time.May, 10, 0, 0, 0, 0, time.UTC).UnixMilli()
	oneDay  = defs.DateFilter{Start: start, End: start + timeutil.MsInDay}
	twoDays = defs.DateFilter{Start: start, End: start + 2*timeutil.MsInDay}
)

type InsulinTestSuite struct {
	suite.Suite
}

func TestInsulinTestSuite(t *testing.T) {
	suite.Run(t, new(InsulinTestSuite))
}

func base(id string, t defs.DatumType, epoch int64) defs.BaseDatum {
	return defs.BaseDatum{
		ID:   id,
		Type: t,
		BaseTime: defs.BaseTime{
			Timezone:   "UTC",
			NormalTime: timeutil.EpochToISO(epoch),
			Epoch:      epoch,
		},
	}
}

func newBasal(epoch int64, minutes float64, dt defs.DeliveryType, rate float64) defs.Basal {
	return defs.Basal{
		BaseDatum:    base("basal", defs.BasalType, epoch),
		Duration:     defs.Duration{Length: defs.DurationValue{Units: "minutes", Value: minutes}},
		DeliveryType: dt,
		Rate:         rate,
	}
}

func newBolus(id string, epoch int64, subType defs.BolusSubType, p defs.Prescriptor, normal float64) defs.Bolus {
	return defs.Bolus{
		BaseDatum:   base(id, defs.BolusType, epoch),
		SubType:     subType,
		Prescriptor: p,
		Normal:      normal,
	}
}

func hour(h int64) int64 {
	return start + h*timeutil.MsInHour
}

func boluses() []defs.Bolus {
	return []defs.Bolus{
		newBolus("meal", hour(1), defs.NormalBolus, defs.ManualPrescriptor, 5),
		newBolus("pen", hour(1), defs.PenBolus, defs.ManualPrescriptor, 2),
		newBolus("auto", hour(2), defs.NormalBolus, defs.AutoPrescriptor, 1),
		newBolus("manual", hour(2), defs.NormalBolus, defs.ManualPrescriptor, 3),
	}
}

func wizards() []defs.Wizard {
	return []defs.Wizard{{BaseDatum: base("w1", defs.WizardType, hour(1)), BolusID: "meal"}}
}

func (suite *InsulinTestSuite) TestCategory() {
	meals := mapset.NewThreadUnsafeSet("meal", "pen")
	assert.Equal(suite.T(), PenBolus, Category(newBolus("pen", 0, defs.PenBolus, defs.AutoPrescriptor, 1), meals))
	assert.Equal(suite.T(), MealBolus, Category(newBolus("meal", 0, defs.NormalBolus, defs.AutoPrescriptor, 1), meals))
	assert.Equal(suite.T(), CorrectiveBolus, Category(newBolus("auto", 0, defs.NormalBolus, defs.AutoPrescriptor, 1), meals))
	assert.Equal(suite.T(), ManualBolus, Category(newBolus("manual", 0, defs.BiphasicBolus, defs.HybridPrescriptor, 1), meals))
}

func (suite *InsulinTestSuite) TestAutomatedAndManualBasalDuration() {
	basals := []defs.Basal{
		newBasal(hour(0), 180, defs.AutomatedDelivery, 1),
		newBasal(hour(3), 60, defs.ScheduledDelivery, 1),
	}
	assert.Equal(suite.T(), BasalDurationStatistics{
		AutomatedBasalDuration: 3 * timeutil.MsInHour,
		ManualBasalDuration:    timeutil.MsInHour,
		AutomatedPercentage:    75,
		ManualPercentage:       25,
	}, AutomatedAndManualBasalDuration(basals, oneDay))

	assert.Equal(suite.T(), BasalDurationStatistics{}, AutomatedAndManualBasalDuration(nil, oneDay))
}

func (suite *InsulinTestSuite) TestBasalBolusData() {
	basals := []defs.Basal{
		newBasal(hour(0), 20*60, defs.AutomatedDelivery, 1),
		newBasal(hour(20), 4*60, defs.ScheduledDelivery, 0.5),
	}

	bb := BasalBolusData(basals, boluses(), wizards(), 1, oneDay)
	assert.InDelta(suite.T(), 22, bb.TotalBasal, 1e-9)
	assert.InDelta(suite.T(), 11, bb.TotalBolus, 1e-9)
	assert.InDelta(suite.T(), 5, bb.TotalMealBoluses, 1e-9)
	assert.InDelta(suite.T(), 2, bb.TotalPenBoluses, 1e-9)
	assert.InDelta(suite.T(), 3, bb.TotalManualBoluses, 1e-9)
	assert.InDelta(suite.T(), 23, bb.TotalCorrectiveBolusesAndBasals, 1e-9)
	assert.InDelta(suite.T(), 33, bb.TotalInsulin, 1e-9)
	assert.InDelta(suite.T(), 33*24.0/20, bb.EstimatedTotalInsulin, 1e-9)
}

func (suite *InsulinTestSuite) TestBasalBolusDataEstimationThreshold() {
	// Automated delivery covering exactly 80% of the window is not enough.
	basals := []defs.Basal{newBasal(hour(0), 1152, defs.AutomatedDelivery, 1)}
	bb := BasalBolusData(basals, nil, nil, 1, oneDay)
	assert.Equal(suite.T(), 0.0, bb.EstimatedTotalInsulin)
	assert.InDelta(suite.T(), 19.2, bb.TotalBasal, 1e-9)

	basals = []defs.Basal{newBasal(hour(0), 1153, defs.AutomatedDelivery, 1)}
	bb = BasalBolusData(basals, nil, nil, 1, oneDay)
	assert.Greater(suite.T(), bb.EstimatedTotalInsulin, 0.0)
}

func (suite *InsulinTestSuite) TestBasalBolusDataOverDays() {
	basals := []defs.Basal{newBasal(hour(0), 60, defs.ScheduledDelivery, 2)}

	bb := BasalBolusData(basals, boluses(), wizards(), 2, twoDays)
	assert.InDelta(suite.T(), 1, bb.TotalBasal, 1e-9)
	assert.InDelta(suite.T(), 5.5, bb.TotalBolus, 1e-9)
	assert.InDelta(suite.T(), 2.5, bb.TotalMealBoluses, 1e-9)
	assert.InDelta(suite.T(), 6.5, bb.TotalInsulin, 1e-9)
	assert.Equal(suite.T(), 0.0, bb.EstimatedTotalInsulin)
}

func (suite *InsulinTestSuite) TestBasalBolusDataEmpty() {
	assert.Equal(suite.T(), BasalBolusStatistics{}, BasalBolusData(nil, nil, wizards(), 1, oneDay))
	assert.Equal(suite.T(), BasalBolusStatistics{}, BasalBolusData(nil, boluses(), wizards(), 0, oneDay))
}

func (suite *InsulinTestSuite) TestWizardWithoutKnownBolusIsNotMeal() {
	ws := []defs.Wizard{{BaseDatum: base("w1", defs.WizardType, hour(1)), BolusID: "unknown"}}
	bb := BasalBolusData(nil, boluses(), ws, 1, oneDay)
	assert.Equal(suite.T(), 0.0, bb.TotalMealBoluses)
	assert.InDelta(suite.T(), 8, bb.TotalManualBoluses, 1e-9)
}

func (suite *InsulinTestSuite) TestManualBolusRangeData() {
	bs := append(boluses(), newBolus("late", hour(23), defs.NormalBolus, defs.ManualPrescriptor, 4))
	ranges := ManualBolusRangeData(bs, wizards(), oneDay)
	assert.Len(suite.T(), ranges, timeutil.HourRangeCount)

	assert.Equal(suite.T(), ManualBolusRange{
		Range:          timeutil.HourRange{StartHour: 0, EndHour: 3},
		ConfirmedDose:  3,
		InjectionCount: 1,
	}, ranges[0])
	assert.Equal(suite.T(), 4.0, ranges[7].ConfirmedDose)
	assert.Equal(suite.T(), 0, ranges[3].InjectionCount)
}

func settings(epoch int64, weight string) defs.PumpSettings {
	return defs.PumpSettings{
		BaseDatum: base("ps", defs.PumpSettingsType, epoch),
		Payload: defs.PumpSettingsPayload{Parameters: []defs.Parameter{
			{Name: "INSULIN_TYPE", Value: "fast"},
			{Name: "WEIGHT", Value: weight, Unit: "kg"},
		}},
	}
}

func (suite *InsulinTestSuite) TestTotalInsulinAndWeightData() {
	ps := []defs.PumpSettings{settings(hour(5), "80.5"), settings(hour(1), "70")}
	s := TotalInsulinAndWeightData(nil, boluses(), wizards(), ps, 1, oneDay)
	assert.Equal(suite.T(), &Weight{Value: 80.5, Unit: "kg"}, s.Weight)
	assert.InDelta(suite.T(), 11, s.TotalInsulin.TotalInsulin, 1e-9)

	s = TotalInsulinAndWeightData(nil, nil, nil, []defs.PumpSettings{settings(hour(1), "heavy")}, 1, oneDay)
	assert.Nil(suite.T(), s.Weight)

	s = TotalInsulinAndWeightData(nil, nil, nil, nil, 1, oneDay)
	assert.Nil(suite.T(), s.Weight)
	assert.Equal(suite.T(), BasalBolusStatistics{}, s.TotalInsulin)
}
