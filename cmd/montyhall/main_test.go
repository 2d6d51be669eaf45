package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/AnneSpitz/monty-hall-simulator/internal/game"
	"github.com/AnneSpitz/monty-hall-simulator/internal/logging"
	"github.com/AnneSpitz/monty-hall-simulator/internal/simulation"
	"github.com/spf13/pflag"
)

// isolateHome sets HOME to a temp directory to avoid touching real ~/.montyhall/
// MUST be called for any test that loads or saves config
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

// runJSON runs a simulation with --json and decodes the result.
func runJSON(t *testing.T, args ...string) simulation.Result {
	t.Helper()
	out, err := execute(t, append(args, "--json")...)
	if err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	var res simulation.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode result %q: %v", out, err)
	}
	return res
}

func TestRoot_PrintsWinRateLine(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name  string
		games string
	}{
		{"rate with many digits", "100001"},
		{"small run", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "--games", tt.games, "--seed", "1")
			if err != nil {
				t.Fatalf("execute: %v", err)
			}

			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			if len(lines) != 1 {
				t.Fatalf("expected a single output line, got %q", out)
			}
			const prefix = "The percentage of victory is "
			if !strings.HasPrefix(lines[0], prefix) || !strings.HasSuffix(lines[0], ".") {
				t.Fatalf("unexpected output line %q", lines[0])
			}
			printed := strings.TrimSuffix(strings.TrimPrefix(lines[0], prefix), ".")
			if !strings.Contains(printed, ".") {
				t.Errorf("printed rate %q has no decimal point", printed)
			}

			got, err := strconv.ParseFloat(printed, 64)
			if err != nil {
				t.Fatalf("parse printed rate %q: %v", printed, err)
			}
			res := runJSON(t, "--games", tt.games, "--seed", "1")
			if got != res.WinRate {
				t.Errorf("printed rate %s, want the exact computed rate %v", printed, res.WinRate)
			}
		})
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{0.5, "0.5"},
		{0.33150668493315066, "0.33150668493315066"},
		{2.0 / 3.0, "0.6666666666666666"},
	}
	for _, tt := range tests {
		if got := formatRate(tt.rate); got != tt.want {
			t.Errorf("formatRate(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestRoot_LogLevelIsCaseInsensitive(t *testing.T) {
	isolateHome(t)
	t.Setenv("MONTYHALL_LOG_DIR", t.TempDir())

	for _, level := range []string{"DEBUG", "Info", "TRACE"} {
		if _, err := execute(t, "--games", "10", "--seed", "1", "--log-level", level); err != nil {
			t.Errorf("--log-level %s: %v", level, err)
		}
	}

	_, err := execute(t, "--games", "10", "--log-level", "loud")
	if !errors.Is(err, game.ErrInvalidConfiguration) {
		t.Errorf("--log-level loud error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestRoot_Defaults(t *testing.T) {
	isolateHome(t)

	res := runJSON(t, "--seed", "3")
	if res.Trials != 10000 {
		t.Errorf("Trials = %d, want 10000", res.Trials)
	}
	if res.Doors != 3 {
		t.Errorf("Doors = %d, want 3", res.Doors)
	}
	if res.Strategy != "stay" {
		t.Errorf("Strategy = %q, want stay", res.Strategy)
	}
	if res.Seed != 3 {
		t.Errorf("Seed = %d, want 3", res.Seed)
	}
}

func TestRoot_SwitchFlag(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"absent", nil, "stay"},
		{"long True", []string{"--switch", "True"}, "switch"},
		{"long equals True", []string{"--switch=True"}, "switch"},
		{"shorthand True", []string{"-s", "True"}, "switch"},
		{"False", []string{"--switch", "False"}, "stay"},
		{"lowercase true is not True", []string{"--switch", "true"}, "stay"},
		{"underscore long name", []string{"--switch_strategy", "True"}, "switch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--games", "10", "--seed", "1"}, tt.args...)
			res := runJSON(t, args...)
			if res.Strategy != tt.want {
				t.Errorf("Strategy = %q, want %q", res.Strategy, tt.want)
			}
		})
	}
}

func TestRoot_UnderscoreFlagNames(t *testing.T) {
	isolateHome(t)

	res := runJSON(t, "--number_of_games", "123", "--number_of_doors", "6", "--seed", "1")
	if res.Trials != 123 {
		t.Errorf("Trials = %d, want 123", res.Trials)
	}
	if res.Doors != 6 {
		t.Errorf("Doors = %d, want 6", res.Doors)
	}
}

func TestRoot_SwitchBeatsStay(t *testing.T) {
	isolateHome(t)

	stay := runJSON(t, "-n", "20000", "--seed", "8")
	sw := runJSON(t, "-n", "20000", "--seed", "8", "-s", "True", "-w", "2")
	if sw.WinRate <= stay.WinRate {
		t.Errorf("switch rate %.4f should beat stay rate %.4f", sw.WinRate, stay.WinRate)
	}
	if sw.Workers != 2 {
		t.Errorf("Workers = %d, want 2", sw.Workers)
	}
}

func TestRoot_InvalidArguments(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name      string
		args      []string
		wantInval bool
	}{
		{"non-integer games", []string{"--games", "abc"}, false},
		{"non-integer doors", []string{"--doors", "three"}, false},
		{"zero games", []string{"--games", "0"}, true},
		{"negative games", []string{"--games", "-5"}, true},
		{"two doors", []string{"--doors", "2"}, true},
		{"zero workers", []string{"--workers", "0"}, true},
		{"stray argument", []string{"extra"}, false},
		{"bad log level", []string{"--log-level", "loud"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error, got output %q", out)
			}
			if tt.wantInval && !errors.Is(err, game.ErrInvalidConfiguration) {
				t.Errorf("error = %v, want ErrInvalidConfiguration", err)
			}
			if out != "" {
				t.Errorf("expected no output on error, got %q", out)
			}
		})
	}
}

func TestRoot_ConfigFileAndOverrides(t *testing.T) {
	isolateHome(t)
	cfgPath := filepath.Join(t.TempDir(), "mh.yaml")
	content := "simulation:\n  trials: 300\n  doors: 10\n  switch: true\n  seed: 5\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	res := runJSON(t, "--config", cfgPath)
	if res.Trials != 300 || res.Doors != 10 || res.Strategy != "switch" || res.Seed != 5 {
		t.Errorf("config file not applied: %+v", res)
	}

	res = runJSON(t, "--config", cfgPath, "--doors", "4", "--switch", "False")
	if res.Doors != 4 {
		t.Errorf("Doors = %d, want flag value 4", res.Doors)
	}
	if res.Strategy != "stay" {
		t.Errorf("Strategy = %q, want flag value stay", res.Strategy)
	}
	if res.Trials != 300 {
		t.Errorf("Trials = %d, want config value 300", res.Trials)
	}
}

func TestRoot_EnvOverride(t *testing.T) {
	isolateHome(t)
	t.Setenv("MONTYHALL_DOORS", "5")
	t.Setenv("MONTYHALL_TRIALS", "50")

	res := runJSON(t, "--seed", "2")
	if res.Doors != 5 {
		t.Errorf("Doors = %d, want 5 from env", res.Doors)
	}
	if res.Trials != 50 {
		t.Errorf("Trials = %d, want 50 from env", res.Trials)
	}

	res = runJSON(t, "--seed", "2", "--games", "60")
	if res.Trials != 60 {
		t.Errorf("Trials = %d, want flag value 60 over env", res.Trials)
	}
}

func TestRoot_DebugWritesTrialTraces(t *testing.T) {
	isolateHome(t)
	traceDir := t.TempDir()
	t.Setenv("MONTYHALL_LOG_DIR", traceDir)

	res := runJSON(t, "--games", "25", "--seed", "4", "--log-level", "debug")

	f, err := os.Open(filepath.Join(traceDir, logging.TraceFile))
	if err != nil {
		t.Fatalf("open trace file: %v", err)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("bad trace line: %v", err)
		}
		if entry["run_id"] != res.RunID {
			t.Errorf("run_id = %v, want %s", entry["run_id"], res.RunID)
		}
		count++
	}
	if count != 25 {
		t.Errorf("trace has %d lines, want 25", count)
	}
}

func TestRoot_InfoWritesNoTraces(t *testing.T) {
	isolateHome(t)
	traceDir := t.TempDir()
	t.Setenv("MONTYHALL_LOG_DIR", traceDir)

	runJSON(t, "--games", "10", "--seed", "4")

	if _, err := os.Stat(filepath.Join(traceDir, logging.TraceFile)); err == nil {
		t.Error("trace file should not exist at info level")
	}
}

func TestCompareCmd(t *testing.T) {
	isolateHome(t)

	out, err := execute(t, "compare", "-n", "20000", "--seed", "9", "--json")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	var cmp simulation.Comparison
	if err := json.Unmarshal([]byte(out), &cmp); err != nil {
		t.Fatalf("decode comparison %q: %v", out, err)
	}
	if cmp.Stay == nil || cmp.Switch == nil {
		t.Fatalf("missing runs in comparison: %q", out)
	}
	if cmp.Stay.Trials != 20000 || cmp.Switch.Trials != 20000 {
		t.Errorf("trials = %d/%d, want 20000", cmp.Stay.Trials, cmp.Switch.Trials)
	}
	if cmp.Switch.WinRate <= cmp.Stay.WinRate {
		t.Errorf("switch %.4f should beat stay %.4f", cmp.Switch.WinRate, cmp.Stay.WinRate)
	}
}

func TestCompareCmd_TextOutput(t *testing.T) {
	isolateHome(t)

	out, err := execute(t, "compare", "-n", "12000", "--seed", "9")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(out, "12,000 games with 3 doors (seed 9)") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.Contains(out, "stay:") || !strings.Contains(out, "switch:") {
		t.Errorf("missing strategy lines in %q", out)
	}
}

func TestConfigCmd_SetGetList(t *testing.T) {
	home := isolateHome(t)

	if _, err := execute(t, "config", "set", "simulation.doors", "7"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".montyhall", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	out, err := execute(t, "config", "get", "simulation.doors")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "simulation.doors = 7" {
		t.Errorf("config get output = %q", out)
	}

	out, err = execute(t, "config", "list")
	if err != nil {
		t.Fatalf("config list: %v", err)
	}
	if !strings.Contains(out, "simulation.doors:    7") {
		t.Errorf("config list missing doors: %q", out)
	}

	res := runJSON(t, "--seed", "1", "--games", "10")
	if res.Doors != 7 {
		t.Errorf("run used Doors = %d, want 7 from saved config", res.Doors)
	}
}

func TestConfigCmd_SetRejectsInvalid(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "simulation.speed", "1"},
		{"non-integer", "simulation.trials", "many"},
		{"too few doors", "simulation.doors", "2"},
		{"bad boolean", "simulation.switch", "maybe"},
		{"bad level", "logging.level", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, "config", "set", tt.key, tt.value); err == nil {
				t.Errorf("config set %s %s: expected error", tt.key, tt.value)
			}
		})
	}
}

func TestConfigCmd_GetUnknownKey(t *testing.T) {
	isolateHome(t)

	if _, err := execute(t, "config", "get", "nope"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "montyhall version ") {
		t.Errorf("version output = %q", out)
	}

	out, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var v map[string]string
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if v["version"] != version {
		t.Errorf("version = %q, want %q", v["version"], version)
	}
}

func TestNormalizeFlagName(t *testing.T) {
	tests := []struct {
		in   string
		want pflag.NormalizedName
	}{
		{"number_of_games", "games"},
		{"switch_strategy", "switch"},
		{"number_of_doors", "doors"},
		{"games", "games"},
		{"seed", "seed"},
	}
	for _, tt := range tests {
		if got := normalizeFlagName(nil, tt.in); got != tt.want {
			t.Errorf("normalizeFlagName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSwitchValue(t *testing.T) {
	v := newSwitchValue()
	if v.String() != "False" || v.Strategy() != game.Stay {
		t.Errorf("default switch value = %q (%s), want False (stay)", v.String(), v.Strategy())
	}
	if err := v.Set("True"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v.Strategy() != game.Switch {
		t.Errorf("Strategy() = %s after Set(True), want switch", v.Strategy())
	}
	if v.Type() != "string" {
		t.Errorf("Type() = %q, want string", v.Type())
	}
}

func TestRoot_CanceledContextAborts(t *testing.T) {
	isolateHome(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--games", "5000", "--seed", "3"})

	err := root.ExecuteContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ExecuteContext error = %v, want context.Canceled", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no output from an aborted run, got %q", stdout.String())
	}
}

func TestInterruptContext_CancelStops(t *testing.T) {
	ctx, cancel := interruptContext()
	if ctx.Err() != nil {
		t.Fatalf("fresh context already done: %v", ctx.Err())
	}
	cancel()
	<-ctx.Done()
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Errorf("ctx.Err() = %v, want context.Canceled", ctx.Err())
	}
}
