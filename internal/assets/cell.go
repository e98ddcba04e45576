// Package assets loads sprites in the background and exposes them through
// cells that render code can poll without blocking.
package assets

import "sync/atomic"

// State is the load state of an asset cell.
type State int

const (
	Pending State = iota
	Loaded
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type resolution struct {
	state  State
	sprite *Sprite
}

// Cell holds one asset. It starts Pending and moves exactly once to
// Loaded or Failed; later transitions are ignored.
type Cell struct {
	name string
	res  atomic.Pointer[resolution]
}

// NewCell returns a Pending cell.
func NewCell(name string) *Cell {
	return &Cell{name: name}
}

// FailedCell returns a cell that is already Failed.
func FailedCell(name string) *Cell {
	c := NewCell(name)
	c.Fail()
	return c
}

// LoadedCell returns a cell that already holds sp.
func LoadedCell(name string, sp *Sprite) *Cell {
	c := NewCell(name)
	c.Resolve(sp)
	return c
}

// Name returns the asset slot name.
func (c *Cell) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// State returns the current state. A nil cell reports Failed.
func (c *Cell) State() State {
	if c == nil {
		return Failed
	}
	r := c.res.Load()
	if r == nil {
		return Pending
	}
	return r.state
}

// Get returns the sprite if the cell is Loaded.
func (c *Cell) Get() (*Sprite, bool) {
	if c == nil {
		return nil, false
	}
	r := c.res.Load()
	if r == nil || r.state != Loaded {
		return nil, false
	}
	return r.sprite, true
}

// Resolve moves the cell to Loaded. A nil sprite counts as a failure.
// It reports whether this call performed the transition.
func (c *Cell) Resolve(sp *Sprite) bool {
	if sp == nil {
		return c.Fail()
	}
	return c.res.CompareAndSwap(nil, &resolution{state: Loaded, sprite: sp})
}

// Fail moves the cell to Failed.
// It reports whether this call performed the transition.
func (c *Cell) Fail() bool {
	return c.res.CompareAndSwap(nil, &resolution{state: Failed})
}
