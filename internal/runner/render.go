package runner

import (
	"fmt"

	"github.com/vovakirdan/board-runner/internal/assets"
	"github.com/vovakirdan/board-runner/internal/core"
)

// celebrationStops is the number of hue stops in the milestone gradient.
const celebrationStops = 6

// Render draws the current state and updates the score display.
// It reads the simulation state but never changes it.
func (e *Engine) Render() {
	if e.surface != nil {
		e.surface.Clear()
		e.drawBackground()
		e.drawGround()
		e.drawPlayer()
		e.drawObstacles()
	}
	if e.score != nil {
		e.score.SetText(fmt.Sprintf("Score: %d", e.points))
	}
}

func (e *Engine) celebrating() bool {
	return e.cfg.Visual.Milestone > 0 && e.points >= e.cfg.Visual.Milestone
}

func (e *Engine) drawBackground() {
	full := core.NewRectF(0, 0, e.width, e.height)

	if e.celebrating() {
		e.surface.FillGradient(full, CelebrationGradient(e.animTime, e.cfg.Visual.HueSpeed))
		return
	}

	e.surface.FillGradient(full, SkyGradient())

	bg, ok := e.assets.Background.Get()
	if !ok {
		return
	}
	tw, th := e.cfg.Visual.TileWidth, e.cfg.Visual.TileHeight
	if tw <= 0 || th <= 0 {
		return
	}
	for x := e.bgX; x < e.width+tw; x += tw {
		tile := core.NewRectF(x, 0, tw, th)
		e.surface.DrawSprite(bg, core.FitRect(tile, float64(bg.Width), float64(bg.Height)))
	}
}

func (e *Engine) drawGround() {
	strip := e.cfg.Visual.GroundStrip
	e.surface.FillRect(core.NewRectF(0, e.height-strip, e.width, strip), core.ColorDirt)
}

func (e *Engine) drawPlayer() {
	box := e.player.Rect()

	sp, size, ok := e.playerSprite()
	if !ok {
		e.surface.FillRect(box, core.ColorCoral)
		return
	}
	e.surface.DrawSprite(sp, core.FitRect(box, size.W, size.H))
}

// playerSprite picks the special sprite past the milestone, otherwise the
// current pose.
func (e *Engine) playerSprite() (*assets.Sprite, assets.Size, bool) {
	if e.celebrating() {
		if sp, ok := e.assets.Special.Get(); ok {
			return sp, e.assets.SpecialSize, true
		}
	}
	if sp, ok := e.assets.Pose(e.player.Pose).Get(); ok {
		return sp, e.assets.PoseSize, true
	}
	return nil, assets.Size{}, false
}

func (e *Engine) drawObstacles() {
	sp, ok := e.assets.Obstacle.Get()
	size := e.assets.ObstacleSize
	for _, o := range e.obstacles {
		if ok {
			e.surface.DrawSprite(sp, core.FitRect(o.Rect(), size.W, size.H))
		} else {
			e.surface.FillRect(o.Rect(), core.ColorDirt)
		}
	}
}

// SkyGradient is the normal top-to-bottom background.
func SkyGradient() Gradient {
	return Gradient{
		Stops: []GradientStop{
			{Offset: 0, Color: core.ColorSkyTop},
			{Offset: 1, Color: core.ColorMeadow},
		},
	}
}

// CelebrationGradient is the diagonal cycling-hue background shown past the
// milestone. The stop at offset o has hue animTime*hueSpeed + o*360.
func CelebrationGradient(animTime, hueSpeed float64) Gradient {
	stops := make([]GradientStop, celebrationStops)
	for i := range stops {
		off := float64(i) / float64(celebrationStops-1)
		stops[i] = GradientStop{
			Offset: off,
			Color:  core.HueColor(animTime*hueSpeed + off*360),
		}
	}
	return Gradient{Stops: stops, Diagonal: true}
}
