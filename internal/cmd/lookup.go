package cmd

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/renalplate/backend/config"
	"github.com/renalplate/backend/internal/usecase"
	"github.com/spf13/cobra"
)

func newLookupCmd(overrides *config.Overrides) *cobra.Command {
	var (
		maxResults int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "lookup [items...]",
		Short: "Look up one or more foods and show renal advisories",
		Long: `Look up foods and print their nutrients with advisories.

Items may be given as separate arguments or comma separated:

  renalplate lookup "Banana, Grilled Chicken" milk`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := usecase.SplitItems(strings.Join(args, ","))
			if len(items) == 0 {
				return errors.New("no food items given")
			}

			a, err := newApp(*overrides)
			if err != nil {
				return err
			}

			reports := a.service.AnalyzeIntake(cmd.Context(), items, maxResults)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			return renderReports(cmd.OutOrStdout(), reports)
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max", "n", 0, "candidates per item (default from lookup.max_results)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
