// Package constants provides named constants used throughout the montyhall codebase.
// This centralizes defaults so the CLI, config and simulator agree on them.
package constants

// Simulation defaults
const (
	// DefaultTrials is the number of games played when none is requested.
	DefaultTrials = 10000

	// DefaultDoors is the classic three-door game.
	DefaultDoors = 3

	// DefaultWorkers runs trials sequentially on the calling goroutine.
	DefaultWorkers = 1

	// DefaultSwitchArg is the --switch value used when the flag is absent.
	// Only the literal "True" selects the switch strategy.
	DefaultSwitchArg = "False"

	// SwitchTrueArg is the --switch value that selects the switch strategy.
	SwitchTrueArg = "True"

	// CtxCheckInterval is how many trials a worker plays between context checks.
	CtxCheckInterval = 1024
)

// Logging and file layout
const (
	// DefaultLogLevel is the operational log level.
	DefaultLogLevel = "info"

	// AppDirName is the per-user directory holding config.yaml and traces.
	AppDirName = ".montyhall"

	// ConfigFileName is the YAML config file inside AppDirName.
	ConfigFileName = "config.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "MONTYHALL_"
)
