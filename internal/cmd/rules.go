package cmd

import (
	"encoding/json"

	"github.com/renalplate/backend/config"
	"github.com/spf13/cobra"
)

func newRulesCmd(overrides *config.Overrides) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the active advisory thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*overrides)
			if err != nil {
				return err
			}

			rules := a.service.Rules()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rules)
			}
			return renderRules(cmd.OutOrStdout(), rules)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
