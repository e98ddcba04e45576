package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
// It mirrors defaults/runner.yaml and is used if the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Surface: SurfaceConfig{
			Width:  800,
			Height: 200,
		},
		Physics: PhysicsConfig{
			Gravity:   0.6,
			JumpPower: 20,
		},
		Player: PlayerConfig{
			X:            50,
			Width:        80,
			Height:       80,
			StartOffset:  120,
			GroundOffset: 100,
		},
		Obstacles: ObstacleConfig{
			Width:           75,
			Height:          125,
			Rise:            45,
			InitialInterval: 120,
			BaseInterval:    120,
			MinBaseInterval: 40,
			ScoreStep:       300,
			Decrement:       8,
			Jitter:          40,
			Floor:           25,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			BaseSpeed:   3,
			SpeedStep:   0.8,
			SpeedEvery:  200,
			InitialTier: 0,
		},
		Visual: VisualConfig{
			AnimStep:    0.02,
			Milestone:   1000,
			HueSpeed:    50,
			TileWidth:   100,
			TileHeight:  50,
			WrapAt:      -100,
			GroundStrip: 20,
		},
		Assets: AssetsConfig{
			Poses:        []string{"builtin:runner-1", "builtin:runner-2", "builtin:runner-3"},
			Special:      "builtin:roadster",
			Obstacle:     "builtin:cone",
			Timeout:      5000,
			PoseSize:     AssetSize{W: 350, H: 575},
			SpecialSize:  AssetSize{W: 500, H: 575},
			ObstacleSize: AssetSize{W: 250, H: 380},
		},
		Board: BoardConfig{
			Keywords: []string{"miata"},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultRunnerYAML
}
