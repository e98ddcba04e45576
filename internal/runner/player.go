package runner

import "github.com/vovakirdan/board-runner/internal/core"

// Player is the controllable runner.
// Y grows downward; the ground line is the largest Y the player may reach.
type Player struct {
	X, Y      float64
	W, H      float64
	VY        float64 // Vertical velocity, negative is up
	JumpPower float64
	Grounded  bool
	Pose      int // Index into the rotating pose set
}

// Rect returns the collision box.
func (p Player) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.W, p.H)
}

// applyGravity integrates one tick with semi-implicit Euler and clamps the
// player onto the ground line.
func (p *Player) applyGravity(gravity, groundY float64) {
	p.VY += gravity
	p.Y += p.VY

	if p.Y >= groundY {
		p.Y = groundY
		p.VY = 0
		p.Grounded = true
	}
}

// jump applies the impulse if grounded. It reports whether it did.
func (p *Player) jump(poses int) bool {
	if !p.Grounded {
		return false
	}
	p.VY = -p.JumpPower
	p.Grounded = false
	if poses > 0 {
		p.Pose = (p.Pose + 1) % poses
	}
	return true
}
