package main

import (
	"encoding/json"
	"strconv"

	"github.com/AnneSpitz/monty-hall-simulator/internal/simulation"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run stay and switch side by side",
		Long: `Play the same number of games with each strategy and print both win
rates next to the values the game predicts (1/N for stay, (N-1)/N for
switch).

Examples:
  montyhall compare
  montyhall compare -n 100000 -d 5 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			defer settings.Close()

			cmp, err := simulation.Compare(cmd.Context(), settings.params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(cmp)
			}

			p := message.NewPrinter(language.English)
			p.Fprintf(out, "%d games with %d doors (seed %s)\n", cmp.Stay.Trials, cmp.Stay.Doors, strconv.FormatUint(cmp.Stay.Seed, 10))
			p.Fprintf(out, "  stay:   %.4f (expected %.4f)\n", cmp.Stay.WinRate, cmp.ExpectedStay)
			p.Fprintf(out, "  switch: %.4f (expected %.4f)\n", cmp.Switch.WinRate, cmp.ExpectedSwitch)
			return nil
		},
	}

	addSimulationFlags(cmd)
	return cmd
}
