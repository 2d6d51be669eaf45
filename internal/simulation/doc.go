// Package simulation plays Monty Hall games in bulk and reports how often a
// strategy wins.
//
// RunTrial plays one complete game with a fresh round and player. Run plays
// many of them, sequentially or across workers, and returns a Result with the
// win rate. Every worker owns its random source, so a (seed, workers) pair
// always reproduces the same tally.
//
// Usage:
//
//	res, err := simulation.Run(ctx, simulation.Params{
//	    Trials:   100000,
//	    Doors:    3,
//	    Strategy: game.Switch,
//	    Seed:     42,
//	    Seeded:   true,
//	})
//	fmt.Println(res.WinRate) // ~0.667
package simulation
