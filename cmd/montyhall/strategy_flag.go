package main

import (
	"github.com/AnneSpitz/monty-hall-simulator/internal/constants"
	"github.com/AnneSpitz/monty-hall-simulator/internal/game"
	"github.com/spf13/pflag"
)

const switchTrue = constants.SwitchTrueArg

// switchValue accepts any string for --switch. Only the literal "True"
// selects the switch strategy.
type switchValue struct {
	raw string
}

var _ pflag.Value = (*switchValue)(nil)

func newSwitchValue() *switchValue {
	return &switchValue{raw: constants.DefaultSwitchArg}
}

func (v *switchValue) String() string { return v.raw }

func (v *switchValue) Set(s string) error {
	v.raw = s
	return nil
}

func (v *switchValue) Type() string { return "string" }

// Strategy returns the strategy the flag selects.
func (v *switchValue) Strategy() game.Strategy {
	return game.StrategyFromSwitch(v.raw == switchTrue)
}

// flagAliases maps the underscore long names of the first command-line
// version onto the current ones.
var flagAliases = map[string]string{
	"number_of_games": "games",
	"switch_strategy": "switch",
	"number_of_doors": "doors",
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if alias, ok := flagAliases[name]; ok {
		name = alias
	}
	return pflag.NormalizedName(name)
}
