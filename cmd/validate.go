package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/constellate/internal/analysis"
	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/config"
	"github.com/papapumpkin/constellate/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]...",
	Short: "Validate chart files and the active settings",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	printer := ui.New()
	failures := 0

	for _, file := range args {
		charts, err := chart.LoadFile(file)
		if err != nil {
			printer.Error(err.Error())
			failures++
			continue
		}
		errs := chart.Validate(charts)
		printer.ChartValidateResult(file, len(charts), errs)
		failures += len(errs)
		if err := analysis.CheckTransits(charts); err != nil {
			printer.Error(fmt.Sprintf("%s: %v", file, err))
			failures++
		}
	}

	s, err := config.Load()
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	errs := s.Validate()
	printer.SettingsValidateResult(errs)
	failures += len(errs)

	if failures > 0 {
		return fmt.Errorf("validation failed with %d error(s)", failures)
	}
	return nil
}
