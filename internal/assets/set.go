package assets

import (
	"fmt"
	"time"

	"github.com/vovakirdan/board-runner/internal/config"
)

// Size is the declared native size of an asset. Draws scale this size
// uniformly into the target box; the decoded sprite only supplies pixels.
type Size struct {
	W, H float64
}

// Set holds the engine's asset slots.
type Set struct {
	Poses      []*Cell
	Special    *Cell
	Obstacle   *Cell
	Background *Cell

	PoseSize     Size
	SpecialSize  Size
	ObstacleSize Size
}

// EmptySet returns a set where every slot has failed, so every draw uses
// its fallback.
func EmptySet() *Set {
	d := config.DefaultRunnerConfig().Assets
	poses := make([]*Cell, len(d.Poses))
	for i := range poses {
		poses[i] = FailedCell(fmt.Sprintf("pose-%d", i))
	}
	return &Set{
		Poses:        poses,
		Special:      FailedCell("special"),
		Obstacle:     FailedCell("obstacle"),
		Background:   FailedCell("background"),
		PoseSize:     sizeOf(d.PoseSize),
		SpecialSize:  sizeOf(d.SpecialSize),
		ObstacleSize: sizeOf(d.ObstacleSize),
	}
}

// LoadSet starts loading every slot named in cfg and returns immediately.
func LoadSet(l *Loader, cfg config.AssetsConfig) *Set {
	s := &Set{
		PoseSize:     sizeOf(cfg.PoseSize),
		SpecialSize:  sizeOf(cfg.SpecialSize),
		ObstacleSize: sizeOf(cfg.ObstacleSize),
	}
	for i, src := range cfg.Poses {
		s.Poses = append(s.Poses, l.Load(fmt.Sprintf("pose-%d", i), src))
	}
	if len(s.Poses) == 0 {
		s.Poses = []*Cell{FailedCell("pose-0")}
	}
	s.Special = l.Load("special", cfg.Special)
	s.Obstacle = l.Load("obstacle", cfg.Obstacle)
	s.Background = l.Load("background", cfg.Background)
	return s
}

// NewLoaderFor creates a loader using the timeout from cfg.
func NewLoaderFor(cfg config.AssetsConfig, opts ...LoaderOption) *Loader {
	all := make([]LoaderOption, 0, len(opts)+1)
	all = append(all, WithTimeout(time.Duration(cfg.Timeout)*time.Millisecond))
	all = append(all, opts...)
	return NewLoader(all...)
}

// Pose returns the pose cell for index i, wrapping around.
func (s *Set) Pose(i int) *Cell {
	if len(s.Poses) == 0 {
		return nil
	}
	i %= len(s.Poses)
	if i < 0 {
		i += len(s.Poses)
	}
	return s.Poses[i]
}

// PoseCount returns the number of rotating poses.
func (s *Set) PoseCount() int {
	return len(s.Poses)
}

func sizeOf(a config.AssetSize) Size {
	return Size{W: a.W, H: a.H}
}
