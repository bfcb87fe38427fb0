package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Pacing holds the tick delays between automatic match steps. Delays are in
// match ticks so one config works at any tick rate the server runs.
type Pacing struct {
	DealTicks       int `json:"deal_ticks"`
	ThinkTicks      int `json:"think_ticks"`
	PlayTicks       int `json:"play_ticks"`
	EvaluateTicks   int `json:"evaluate_ticks"`
	RoundEndTicks   int `json:"round_end_ticks"`
	TransitionTicks int `json:"transition_ticks"`
}

// DefaultPacing is tuned for a 10 tick/second match loop.
var DefaultPacing = Pacing{
	DealTicks:       10,
	ThinkTicks:      20,
	PlayTicks:       15,
	EvaluateTicks:   20,
	RoundEndTicks:   30,
	TransitionTicks: 5,
}

// ZeroPacing fires every step on the next tick. Used by simulations and
// tests.
var ZeroPacing = Pacing{}

type GameConfig struct {
	Pacing Pacing `json:"pacing"`
	// AISeatNames are the display names given to the three bot seats.
	AISeatNames [3]string `json:"ai_seat_names"`
	// SpecialModeChance overrides the probability of a bot ruler choosing a
	// non-suit hokm mode.
	SpecialModeChance float64 `json:"special_mode_chance"`
}

// DefaultGameConfig is used when no config file is supplied.
var DefaultGameConfig = GameConfig{
	Pacing:            DefaultPacing,
	AISeatNames:       [3]string{"West", "North", "East"},
	SpecialModeChance: 0.08,
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := DefaultGameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, falling back to the
// defaults when none was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return &DefaultGameConfig
	}
	return cfg
}
