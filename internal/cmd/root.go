package cmd

import (
	"github.com/renalplate/backend/config"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. A fresh tree per call keeps flag
// state out of package globals.
func NewRootCmd() *cobra.Command {
	var overrides config.Overrides

	root := &cobra.Command{
		Use:   "renalplate",
		Short: "Kidney-diet nutrient lookup and advisories",
		Long: `RenalPlate looks up foods, extracts the nutrients that matter for a
kidney-friendly diet and flags values above the advisory thresholds.

Data comes from USDA FoodData Central (set RENALPLATE_USDA_API_KEY) or from
a small built-in catalogue (--provider builtin).`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&overrides.Provider, "provider", "", "food data provider: usda or builtin")
	flags.StringVar(&overrides.RulesFile, "rules", "", "YAML file with the advisory rule table")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newLookupCmd(&overrides),
		newServeCmd(&overrides),
		newRulesCmd(&overrides),
	)
	return root
}

// Execute runs the CLI. It is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}
