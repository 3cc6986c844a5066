package command

import (
	"encoding/json"
	"fmt"
	"time"

	"glycostats/engine"
	"glycostats/engine/defs"
	"glycostats/engine/pkg/desc"
	"glycostats/engine/pkg/timeutil"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

const dayFormat = "2006-01-02"

var (
	from     string
	to       string
	dataFile string
	weekDays []int
	asJSON   bool
	lang     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute statistics over a date range",
	Long:  "The report command reads device data from a JSON file or the store and prints every statistic of the range [from, to)",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := dateFilter()
		if err != nil {
			return err
		}

		var source engine.Source
		if dataFile != "" {
			source = &engine.FileSource{Path: dataFile, Logger: cfg.Logger}
		} else {
			ms, err := newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer ms.Client.Disconnect(cmd.Context())
			source = ms
		}

		reporter, err := engine.NewReporter(source, cfg)
		if err != nil {
			return err
		}
		rep, err := reporter.Generate(cmd.Context(), filter)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep.JSONValue())
		}

		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("unable to parse language: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), desc.New(timeutil.Location(cfg.Timezone), tag).Describe(rep))
		return err
	},
}

// dateFilter reads --from and --to as local days. to is inclusive.
func dateFilter() (defs.DateFilter, error) {
	loc := timeutil.Location(cfg.Timezone)
	start, err := time.ParseInLocation(dayFormat, from, loc)
	if err != nil {
		return defs.DateFilter{}, fmt.Errorf("unable to parse from: %w", err)
	}
	end, err := time.ParseInLocation(dayFormat, to, loc)
	if err != nil {
		return defs.DateFilter{}, fmt.Errorf("unable to parse to: %w", err)
	}
	end = end.AddDate(0, 0, 1)

	filter := defs.DateFilter{Start: start.UnixMilli(), End: end.UnixMilli()}
	for _, d := range weekDays {
		if d < 0 || d > 6 {
			return defs.DateFilter{}, fmt.Errorf("weekday out of range: %d", d)
		}
		filter.WeekDays = append(filter.WeekDays, time.Weekday(d))
	}
	return filter, nil
}

func init() {
	today := time.Now().Format(dayFormat)
	reportCmd.Flags().StringVar(&from, "from", today, "first day of the range (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&to, "to", today, "last day of the range (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&dataFile, "file", "", "JSON file of device data, the store is read when empty")
	reportCmd.Flags().IntSliceVar(&weekDays, "weekdays", nil, "weekdays to keep, 0 is Sunday")
	reportCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	reportCmd.Flags().StringVar(&lang, "lang", "en", "language used to format numbers")
	rootCmd.AddCommand(reportCmd)
}
