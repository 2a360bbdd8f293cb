// Package config holds the boot-time tunables from spec.md §6,
// overridable via environment variables the same way the teacher reads
// PORT: a plain os.Getenv lookup with a hardcoded default on empty/bad
// input.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the resolved set of tunables for one process lifetime.
type Config struct {
	Port string

	// Alpha-beta search.
	SafetyMargin time.Duration
	MaxDepth     int

	// Evaluator. Loaded from SNAKE_MANHATTAN_THRESHOLD but not passed on:
	// the evaluator uses its own eval.ManhattanOnlyThreshold constant, so
	// overriding this value does not change evaluator behavior.
	ManhattanOnlyThreshold int

	// MCTS.
	MCTSExploration     float64
	MCTSMaxPlayoutTurns int
}

// Load reads every tunable from its environment variable, falling back
// to the spec's documented default when unset or unparsable.
func Load() Config {
	return Config{
		Port:                   getString("PORT", "8080"),
		SafetyMargin:           time.Duration(getInt("SNAKE_SAFETY_MARGIN_MS", 75)) * time.Millisecond,
		MaxDepth:               getInt("SNAKE_MAX_DEPTH", 50),
		ManhattanOnlyThreshold: getInt("SNAKE_MANHATTAN_THRESHOLD", 4),
		MCTSExploration:        getFloat("SNAKE_MCTS_C", 1.0),
		MCTSMaxPlayoutTurns:    getInt("SNAKE_MCTS_K", 20),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
