package desc

import (
	"math"
	"strings"
	"sync"
	"time"

	"glycostats/engine"
	"glycostats/engine/pkg/timeutil"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateFormat = "2006-01-02 15:04"
	na         = "n/a"
)

// Descriptor renders reports as plain text tables.
type Descriptor struct {
	Loc *time.Location

	printer *message.Printer
	sync.Mutex
}

func New(loc *time.Location, tag language.Tag) *Descriptor {
	return &Descriptor{
		Loc:     loc,
		printer: message.NewPrinter(tag),
	}
}

func (d *Descriptor) Describe(rep *engine.Report) string {
	d.Mutex.Lock()
	defer d.Mutex.Unlock()

	var sb strings.Builder
	p := d.printer

	days := "days"
	if rep.NumDays == 1 {
		days = "day"
	}
	sb.WriteString(p.Sprintf("Report %s - %s (%d %s)\n",
		time.UnixMilli(rep.Filter.Start).In(d.Loc).Format(dateFormat),
		time.UnixMilli(rep.Filter.End).In(d.Loc).Format(dateFormat),
		rep.NumDays, days,
	))

	tir := rep.TimeInRange
	sb.WriteString("\nTime in range\n")
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"very low", tir.VeryLow},
		{"low", tir.Low},
		{"target", tir.Target},
		{"high", tir.High},
		{"very high", tir.VeryHigh},
	} {
		sb.WriteString(p.Sprintf("  %-10s %s\n", row.name, d.percent(share(row.value, tir.Total, rep.NumDays))))
	}
	sb.WriteString(p.Sprintf("  %-10s %s\n", "tight", d.percent(share(rep.TimeInTightRange.Value, rep.TimeInTightRange.Total, rep.NumDays))))
	sb.WriteString(p.Sprintf("  %-10s %s\n", "sensor", d.percent(ratio(rep.SensorUsage.SensorUsage, rep.SensorUsage.Total))))

	sb.WriteString("\nGlucose\n")
	sb.WriteString(p.Sprintf("  %-10s %s %s\n", "average", d.number(rep.AverageGlucose.AverageGlucose), rep.Unit))
	sb.WriteString(p.Sprintf("  %-10s %s %s\n", "sd", d.number(rep.StandardDeviation.StandardDeviation), rep.Unit))
	sb.WriteString(p.Sprintf("  %-10s %s\n", "cv", d.percent(rep.CoefficientOfVariation.CoefficientOfVariation)))
	sb.WriteString(p.Sprintf("  %-10s %s\n", "gmi", d.percent(rep.GlucoseManagementIndicator.GlucoseManagementIndicator)))

	sb.WriteString("\nCarbs\n")
	sb.WriteString(p.Sprintf("  %-10s %s g (%d)\n", "meal", d.number(rep.Carbs.MealCarbs), rep.Carbs.MealEntries))
	sb.WriteString(p.Sprintf("  %-10s %s g (%d)\n", "rescue", d.number(rep.Carbs.RescueCarbs), rep.Carbs.RescueEntries))

	ti := rep.Insulin.TotalInsulin
	sb.WriteString("\nInsulin\n")
	sb.WriteString(p.Sprintf("  %-10s %s U\n", "basal", d.number(ti.TotalBasal)))
	sb.WriteString(p.Sprintf("  %-10s %s U\n", "bolus", d.number(ti.TotalBolus)))
	sb.WriteString(p.Sprintf("  %-10s %s U\n", "total", d.number(ti.TotalInsulin)))
	if ti.EstimatedTotalInsulin > 0 {
		sb.WriteString(p.Sprintf("  %-10s %s U\n", "estimated", d.number(ti.EstimatedTotalInsulin)))
	}
	if w := rep.Insulin.Weight; w != nil {
		sb.WriteString(p.Sprintf("  %-10s %s %s\n", "weight", d.number(w.Value), w.Unit))
	}
	sb.WriteString(p.Sprintf("  %-10s %d%% / %d%%\n", "auto/man", rep.BasalDuration.AutomatedPercentage, rep.BasalDuration.ManualPercentage))

	return sb.String()
}

func (d *Descriptor) number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return na
	}
	return d.printer.Sprintf("%.1f", v)
}

func (d *Descriptor) percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return na
	}
	return d.printer.Sprintf("%.1f %%", v)
}

// share reads a time in range bucket as a percentage. Buckets over more
// than one day are already projected onto a single day.
func share(v, total float64, numDays int) float64 {
	if numDays > 1 {
		return ratio(v, float64(timeutil.MsInDay))
	}
	return ratio(v, total)
}

func ratio(v, total float64) float64 {
	if total == 0 {
		return math.NaN()
	}
	return v / total * 100
}
