package config

import "math"

// DifficultyManager calculates the score-driven game parameters.
// Both levers are step functions of score, so they are non-decreasing in
// difficulty as score grows.
type DifficultyManager struct {
	cfg       DifficultyConfig
	obstacles ObstacleConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, obstacles ObstacleConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:       cfg,
		obstacles: obstacles,
	}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Tier returns the number of completed speed steps at the given score.
func (d *DifficultyManager) Tier(score int) int {
	tier := d.cfg.InitialTier
	if d.cfg.Enabled && d.cfg.SpeedEvery > 0 && score > 0 {
		tier += score / d.cfg.SpeedEvery
	}
	return tier
}

// Speed returns the scroll speed at the given score:
// base + tier * step.
func (d *DifficultyManager) Speed(score int) float64 {
	return d.cfg.BaseSpeed + float64(d.Tier(score))*d.cfg.SpeedStep
}

// BaseInterval returns the spawn interval before jitter at the given score:
// max(minBase, base - floor(score/step) * decrement).
func (d *DifficultyManager) BaseInterval(score int) float64 {
	o := d.obstacles
	steps := 0
	if d.cfg.Enabled && o.ScoreStep > 0 && score > 0 {
		steps = score / o.ScoreStep
	}
	return math.Max(o.MinBaseInterval, o.BaseInterval-float64(steps)*o.Decrement)
}

// SpawnInterval applies jitter to the base interval and floors the result.
// u must be uniform in [0, 1); it maps onto [-jitter, +jitter).
// No upper cap is applied.
func (d *DifficultyManager) SpawnInterval(score int, u float64) float64 {
	o := d.obstacles
	jitter := u*2*o.Jitter - o.Jitter
	return math.Max(o.Floor, d.BaseInterval(score)+jitter)
}
