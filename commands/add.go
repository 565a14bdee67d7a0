package commands

import (
	"fmt"
	"math"
	"time"

	"github.com/penwyp/go-temp-monitor/internal/core/model"
	"github.com/penwyp/go-temp-monitor/internal/util"
	"github.com/spf13/cobra"
)

var (
	addAt         string
	addMedication string
)

var addCmd = &cobra.Command{
	Use:   "add [temperature]",
	Short: "Record a temperature reading",
	Long: `Record a body temperature reading in °C (35.0 to 42.0, default 37.0).

The reading is taken now unless --at gives a date and time, which is read in the
display timezone. --medication attaches a note that is highlighted on the chart.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addAt, "at", "",
		"Date and time of the reading (YYYY-MM-DD HH:MM[:SS], display timezone)")
	addCmd.Flags().StringVarP(&addMedication, "medication", "m", "",
		"Medication taken, if any")
}

// validateTemperature enforces the accepted input range after rounding to
// one decimal.
func validateTemperature(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("temperature must be a number")
	}
	rounded := model.RoundTemperature(v)
	if rounded < model.MinTemperature || rounded > model.MaxTemperature {
		return fmt.Errorf("temperature %.1f°C out of range (%.1f to %.1f)",
			rounded, model.MinTemperature, model.MaxTemperature)
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	temp := model.DefaultTemperature
	if len(args) == 1 {
		parsed, err := util.ParseTemperature(args[0])
		if err != nil {
			return err
		}
		temp = parsed
	}
	if err := validateTemperature(temp); err != nil {
		return err
	}

	var err error
	tp := util.GetTimeProvider()
	at := tp.Now().Truncate(time.Second)
	if cmd.Flags().Changed("at") {
		if at, err = tp.ParseLocal(addAt); err != nil {
			return err
		}
	}

	var medication *string
	if cmd.Flags().Changed("medication") {
		medication = model.StringPtr(addMedication)
	}

	s, err := newStore()
	if err != nil {
		return err
	}
	log, err := s.Load()
	if err != nil {
		return fmt.Errorf("failed to load readings: %w", err)
	}

	reading := model.NewReading(at, temp, medication)
	log, err = s.Append(log, reading)
	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Recorded %s at %s\n",
		util.FormatTemperature(reading.Temperature),
		tp.Format(reading.Timestamp, "2006-01-02 15:04 MST"))
	if reading.HasMedication() {
		fmt.Fprintf(out, "Medication: %s\n", reading.MedicationLabel())
	}
	fmt.Fprintf(out, "%d readings in %s\n", len(log), s.Path())
	return nil
}
