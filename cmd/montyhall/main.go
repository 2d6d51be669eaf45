package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := interruptContext()
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// interruptContext returns a context canceled on the first interrupt, so a
// long run stops between trials instead of being killed mid-write.
func interruptContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "montyhall",
		Short: "Monty Hall simulator - estimate the win rate of stay or switch",
		Long: `montyhall plays the Monty Hall game many times and reports how often
the chosen strategy wins.

The player picks one of N doors, the host opens every other losing door
but one, and the player either stays or switches before the final reveal.

Examples:
  montyhall                          # 10000 games, 3 doors, stay
  montyhall --switch True            # same, switching
  montyhall -n 100000 -d 10 -s True  # 10 doors, switching
  montyhall compare --seed 42        # stay vs switch side by side`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runSimulation,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.montyhall/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace (overrides config)")

	addSimulationFlags(rootCmd)
	rootCmd.Flags().VarP(newSwitchValue(), "switch", "s", `Switch strategy: "True" switches, anything else stays`)
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.AddCommand(
		newVersionCmd(),
		newCompareCmd(),
		newConfigCmd(),
	)

	return rootCmd
}
