package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/AnneSpitz/monty-hall-simulator/internal/config"
	"github.com/AnneSpitz/monty-hall-simulator/internal/constants"
	"github.com/AnneSpitz/monty-hall-simulator/internal/game"
	"github.com/AnneSpitz/monty-hall-simulator/internal/logging"
	"github.com/AnneSpitz/monty-hall-simulator/internal/simulation"
	"github.com/spf13/cobra"
)

// addSimulationFlags registers the run parameters shared by the root and
// compare commands. Unset flags fall back to the config file and env.
func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("games", "n", constants.DefaultTrials, "Number of games to play")
	cmd.Flags().IntP("doors", "d", constants.DefaultDoors, "Number of doors per game (at least 3)")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible runs (default: fresh seed per run)")
	cmd.Flags().IntP("workers", "w", constants.DefaultWorkers, "Goroutines sharing the games")
}

// runSettings is everything a command needs to start a simulation.
type runSettings struct {
	cfg    *config.Config
	params simulation.Params
	logger *slog.Logger
	trace  *logging.TrialLogger
}

// Close releases the trial trace file.
func (s *runSettings) Close() {
	s.trace.Close()
}

// loadSettings merges defaults, config file, environment and flags, in that
// order, and validates the result.
func loadSettings(cmd *cobra.Command) (*runSettings, error) {
	flags := cmd.Flags()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if flags.Changed("games") {
		cfg.Simulation.Trials, _ = flags.GetInt("games")
	}
	if flags.Changed("doors") {
		cfg.Simulation.Doors, _ = flags.GetInt("doors")
	}
	if flags.Changed("workers") {
		cfg.Simulation.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetUint64("seed")
	}
	if f := flags.Lookup("switch"); f != nil && f.Changed {
		if v, ok := f.Value.(*switchValue); ok {
			cfg.Simulation.Switch = v.Strategy() == game.Switch
		}
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	var trace *logging.TrialLogger
	if logging.ParseLevel(cfg.Logging.Level) < slog.LevelInfo {
		dir, err := cfg.TraceDir()
		if err != nil {
			logger.Warn("trial traces disabled", "error", err)
		} else {
			trace = logging.NewTrialLogger(dir, cfg.Logging.Level)
			if trace == nil {
				logger.Warn("trial traces disabled, cannot open trace file", "dir", dir)
			}
		}
	}

	return &runSettings{
		cfg: cfg,
		params: simulation.Params{
			Trials:   cfg.Simulation.Trials,
			Doors:    cfg.Simulation.Doors,
			Strategy: game.StrategyFromSwitch(cfg.Simulation.Switch),
			Seed:     cfg.Simulation.Seed,
			Seeded:   flags.Changed("seed") || cfg.Simulation.Seed != 0,
			Workers:  cfg.Simulation.Workers,
			Logger:   logger,
			Trace:    trace,
		},
		logger: logger,
		trace:  trace,
	}, nil
}

// loadConfig reads --config when given, the default location otherwise.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer settings.Close()

	res, err := simulation.Run(cmd.Context(), settings.params)
	if err != nil {
		return err
	}
	settings.logger.Debug(res.String())

	out := cmd.OutOrStdout()
	if jsonOut {
		return json.NewEncoder(out).Encode(res)
	}

	fmt.Fprintf(out, "The percentage of victory is %s.\n", formatRate(res.WinRate))
	return nil
}

// formatRate prints a win rate at full precision, keeping a decimal point on
// whole values so 0 and 1 read as 0.0 and 1.0.
func formatRate(rate float64) string {
	s := strconv.FormatFloat(rate, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
