package runner

import "github.com/vovakirdan/board-runner/internal/core"

// Obstacle is a hazard scrolling in from the right edge.
type Obstacle struct {
	X, Y float64
	W, H float64
}

// Rect returns the collision box.
func (o Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.W, o.H)
}

// gone reports whether the right edge has passed the left boundary.
func (o Obstacle) gone() bool {
	return o.X+o.W < 0
}

// advanceObstacles moves every obstacle left by speed and drops the ones
// that have left the surface. The queue is walked back to front so removal
// does not skip entries; survivors keep their spawn order.
func advanceObstacles(queue []Obstacle, speed float64) []Obstacle {
	for i := len(queue) - 1; i >= 0; i-- {
		queue[i].X -= speed
		if queue[i].gone() {
			queue = append(queue[:i], queue[i+1:]...)
		}
	}
	return queue
}

// Collides reports whether two boxes overlap on both axes.
func Collides(a, b core.RectF) bool {
	return a.Intersects(b)
}

// firstCollision returns the index of the first obstacle overlapping box,
// or -1.
func firstCollision(box core.RectF, queue []Obstacle) int {
	for i, o := range queue {
		if Collides(box, o.Rect()) {
			return i
		}
	}
	return -1
}
