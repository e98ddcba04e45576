// Package config provides YAML-based runner configuration loading and
// difficulty management.
package config

// RunnerConfig contains all configuration for the obstacle runner.
type RunnerConfig struct {
	Surface    SurfaceConfig    `yaml:"surface"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Visual     VisualConfig     `yaml:"visual"`
	Assets     AssetsConfig     `yaml:"assets"`
	Board      BoardConfig      `yaml:"board"`
}

// SurfaceConfig defines the logical drawing surface size.
// Terminal hosts scale this onto whatever cell grid they have.
type SurfaceConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines player physics.
type PhysicsConfig struct {
	Gravity   float64 `yaml:"gravity"`
	JumpPower float64 `yaml:"jump_power"`
}

// PlayerConfig defines the player box.
type PlayerConfig struct {
	X            float64 `yaml:"x"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	StartOffset  float64 `yaml:"start_offset"`  // Initial Y is surface height minus this
	GroundOffset float64 `yaml:"ground_offset"` // Ground line is surface height minus this
}

// ObstacleConfig defines obstacle size and spawn cadence.
type ObstacleConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Rise            float64 `yaml:"rise"`             // Top edge sits this far above the ground line
	InitialInterval float64 `yaml:"initial_interval"` // Spawn interval after a reset, in ticks
	BaseInterval    float64 `yaml:"base_interval"`
	MinBaseInterval float64 `yaml:"min_base_interval"`
	ScoreStep       int     `yaml:"score_step"` // Score points per interval decrement
	Decrement       float64 `yaml:"decrement"`
	Jitter          float64 `yaml:"jitter"` // Uniform jitter in [-jitter, +jitter]
	Floor           float64 `yaml:"floor"`  // Spawn interval never goes below this
}

// DifficultyConfig defines the scroll speed progression.
type DifficultyConfig struct {
	Enabled     bool    `yaml:"enabled"`
	BaseSpeed   float64 `yaml:"base_speed"`
	SpeedStep   float64 `yaml:"speed_step"`   // Added per tier
	SpeedEvery  int     `yaml:"speed_every"`  // Score points per tier
	InitialTier int     `yaml:"initial_tier"` // Tiers granted at score 0
}

// VisualConfig defines purely cosmetic parameters.
type VisualConfig struct {
	AnimStep    float64 `yaml:"anim_step"` // Animation phase added per tick
	Milestone   int     `yaml:"milestone"` // Score at which celebration mode starts
	HueSpeed    float64 `yaml:"hue_speed"` // Degrees of hue per unit of animation phase
	TileWidth   float64 `yaml:"tile_width"`
	TileHeight  float64 `yaml:"tile_height"`
	WrapAt      float64 `yaml:"wrap_at"` // Background offset resets once it reaches this
	GroundStrip float64 `yaml:"ground_strip"`
}

// AssetsConfig lists sprite sources and their declared native sizes.
type AssetsConfig struct {
	Poses        []string  `yaml:"poses"`
	Special      string    `yaml:"special"`
	Obstacle     string    `yaml:"obstacle"`
	Background   string    `yaml:"background"`
	Timeout      int       `yaml:"timeout_ms"`
	PoseSize     AssetSize `yaml:"pose_size"`
	SpecialSize  AssetSize `yaml:"special_size"`
	ObstacleSize AssetSize `yaml:"obstacle_size"`
}

// AssetSize is the declared native size of an asset, used for aspect ratio.
type AssetSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// BoardConfig configures the post store trigger.
type BoardConfig struct {
	Keywords []string `yaml:"keywords"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset.
// Unknown or empty values return "" (use config as-is).
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialTierForPreset returns the speed tier a preset starts at.
func InitialTierForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 0
	case DifficultyNormal:
		return 1
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
