package desc

import (
	"math"
	"strings"
	"testing"
	"time"

	"glycostats/engine"
	"glycostats/engine/defs"
	"glycostats/engine/pkg/insulin"
	"glycostats/engine/pkg/stats"
	"glycostats/engine/pkg/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"
)

type DescriptionTestSuite struct {
	suite.Suite
	d *Descriptor
}

func TestDescriptionTestSuite(t *testing.T) {
	suite.Run(t, new(DescriptionTestSuite))
}

func (suite *DescriptionTestSuite) SetupTest() {
	suite.d = New(time.UTC, language.English)
}

func (suite *DescriptionTestSuite) TestDescribe() {
	start := time.Date(2022, time.May, 10, 0, 0, 0, 0, time.UTC).UnixMilli()
	minute := float64(timeutil.MsInMinute)
	rep := &engine.Report{
		Filter:  defs.DateFilter{Start: start, End: start + timeutil.MsInDay},
		NumDays: 1,
		Unit:    defs.MgdL,
		TimeInRange: stats.CbgRangeStatistics{
			VeryLow: 15 * minute, Low: 15 * minute, Target: 15 * minute,
			High: 5 * minute, VeryHigh: 5 * minute, Total: 55 * minute,
		},
		AverageGlucose:             stats.AverageGlucoseStatistics{AverageGlucose: 1320.24, Total: 5},
		StandardDeviation:          stats.StandardDeviationStatistics{StandardDeviation: math.NaN()},
		CoefficientOfVariation:     stats.CoefficientOfVariationStatistics{CoefficientOfVariation: math.NaN()},
		GlucoseManagementIndicator: stats.GlucoseManagementIndicatorStatistics{GlucoseManagementIndicator: math.NaN()},
		Insulin: insulin.TotalInsulinAndWeightStatistics{
			Weight: &insulin.Weight{Value: 72.5, Unit: "kg"},
		},
	}

	out := suite.d.Describe(rep)
	assert.True(suite.T(), strings.HasPrefix(out, "Report 2022-05-10 00:00 - 2022-05-11 00:00 (1 day)\n"))
	assert.Contains(suite.T(), out, "target     27.3 %")
	assert.Contains(suite.T(), out, "average    1,320.2 mg/dL")
	assert.Contains(suite.T(), out, "sd         n/a mg/dL")
	assert.Contains(suite.T(), out, "weight     72.5 kg")
	assert.Contains(suite.T(), out, "sensor     n/a")
	assert.NotContains(suite.T(), out, "estimated")
}

func (suite *DescriptionTestSuite) TestShare() {
	day := float64(timeutil.MsInDay)
	assert.InDelta(suite.T(), 50, share(day/2, 3*day, 3), 1e-9)
	assert.InDelta(suite.T(), 25, share(10, 40, 1), 1e-9)
	assert.True(suite.T(), math.IsNaN(share(0, 0, 1)))
}
