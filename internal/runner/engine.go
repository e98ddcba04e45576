// Package runner implements the obstacle runner: a side-scrolling game where
// the player jumps over obstacles while the scroll speed and spawn rate grow
// with the score.
//
// The engine never assumes a particular host. It draws on a Surface, writes
// text to Display slots and asks a Scheduler for the next frame, so it runs
// the same under Bubble Tea, over SSH or headless in tests.
package runner

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/board-runner/internal/assets"
	"github.com/vovakirdan/board-runner/internal/config"
)

// RunState is the lifecycle phase of the engine.
type RunState int

const (
	Idle RunState = iota
	Running
	GameOver
)

// String returns the state name.
func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Engine owns the whole simulation state. It is not safe for concurrent
// use; hosts call it from their single UI goroutine.
type Engine struct {
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager

	// Host ports
	surface    Surface
	score      Display
	gameOver   Overlay
	finalScore Display
	scheduler  Scheduler
	rnd        RandomSource
	assets     *assets.Set
	logger     *log.Logger

	width, height float64
	groundY       float64

	player        Player
	obstacles     []Obstacle
	state         RunState
	points        int
	speed         float64
	ticks         int
	spawnTimer    int
	spawnInterval float64
	animTime      float64
	bgX           float64
	generation    uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler sets the frame scheduler. Without one, Start runs a single
// tick and the host drives further ticks through Update and Render.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithRandom sets the source used for spawn jitter.
func WithRandom(r RandomSource) Option {
	return func(e *Engine) {
		if r != nil {
			e.rnd = r
		}
	}
}

// WithAssets uses an already started asset set instead of loading the
// sources named in the config.
func WithAssets(set *assets.Set) Option {
	return func(e *Engine) {
		if set != nil {
			e.assets = set
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an idle engine bound to surface. If no asset set is given,
// loading of the configured sprites starts in the background; the engine
// draws fallbacks until they arrive.
func New(surface Surface, cfg config.RunnerConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty, cfg.Obstacles),
		logger:     log.New(io.Discard),
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.assets == nil {
		loader := assets.NewLoaderFor(cfg.Assets, assets.WithLogger(e.logger))
		e.assets = assets.LoadSet(loader, cfg.Assets)
	}

	e.setSurface(surface)
	e.reset()
	return e
}

// Bind attaches the surface and the three display slots. Any of them may be
// nil; writes to a missing slot are skipped.
func (e *Engine) Bind(surface Surface, score Display, gameOver Overlay, finalScore Display) {
	e.score = score
	e.gameOver = gameOver
	e.finalScore = finalScore
	if surface != nil {
		e.setSurface(surface)
		if e.state == Idle {
			e.resetPlayer()
		}
	}
}

func (e *Engine) setSurface(s Surface) {
	e.surface = s
	e.width, e.height = e.cfg.Surface.Width, e.cfg.Surface.Height
	if s != nil {
		if w, h := s.Size(); w > 0 && h > 0 {
			e.width, e.height = w, h
		}
	}
	e.groundY = e.height - e.cfg.Player.GroundOffset
}

// Start resets the run and begins the loop. Calling it while running
// restarts from scratch; a frame still pending from the previous run is
// ignored when it fires.
func (e *Engine) Start() {
	e.reset()
	e.state = Running
	e.generation++
	if e.gameOver != nil {
		e.gameOver.SetVisible(false)
	}
	e.logger.Debug("run started", "generation", e.generation, "speed", e.speed)
	e.loop(e.generation)
}

// Jump requests a jump. It is ignored unless the run is active and the
// player stands on the ground.
func (e *Engine) Jump() {
	if e.state != Running {
		return
	}
	e.player.jump(e.assets.PoseCount())
}

// Update advances the simulation by one tick. It does nothing unless the
// run is active.
func (e *Engine) Update() {
	if e.state != Running {
		return
	}

	e.animTime += e.cfg.Visual.AnimStep
	e.points++
	e.ticks++
	e.speed = e.difficulty.Speed(e.points)

	e.player.applyGravity(e.cfg.Physics.Gravity, e.groundY)

	// The obstacle spawned this tick starts at the right edge and only
	// moves from the next tick on.
	var spawned *Obstacle
	e.spawnTimer++
	if float64(e.spawnTimer) >= e.spawnInterval {
		o := e.newObstacle()
		spawned = &o
		e.spawnTimer = 0
		e.spawnInterval = e.difficulty.SpawnInterval(e.points, e.rnd.Float64())
	}

	e.obstacles = advanceObstacles(e.obstacles, e.speed)
	if spawned != nil {
		e.obstacles = append(e.obstacles, *spawned)
	}

	if firstCollision(e.player.Rect(), e.obstacles) >= 0 {
		e.GameOver()
		return
	}

	e.bgX -= e.speed * 0.5
	if e.bgX <= e.cfg.Visual.WrapAt {
		e.bgX = 0
	}
}

// GameOver ends the run. The obstacles and the player pose stay as they
// were so the final frame can still be drawn.
func (e *Engine) GameOver() {
	e.state = GameOver
	if e.finalScore != nil {
		e.finalScore.SetText(fmt.Sprintf("%d", e.points))
	}
	if e.gameOver != nil {
		e.gameOver.SetText("Game Over")
		e.gameOver.SetVisible(true)
	}
	e.logger.Debug("game over", "score", e.points, "speed", e.speed, "obstacles", len(e.obstacles))
}

// loop runs one update and render and schedules the next frame while the
// run that started it is still active.
func (e *Engine) loop(gen uint64) {
	if gen != e.generation {
		return
	}
	e.Update()
	e.Render()

	if e.state != Running || e.scheduler == nil {
		return
	}
	e.scheduler.RequestFrame(func() {
		e.loop(gen)
	})
}

func (e *Engine) reset() {
	e.state = Idle
	e.points = 0
	e.ticks = 0
	e.speed = e.difficulty.Speed(0)
	e.obstacles = e.obstacles[:0]
	e.spawnTimer = 0
	e.spawnInterval = e.cfg.Obstacles.InitialInterval
	e.animTime = 0
	e.bgX = 0
	e.resetPlayer()
}

func (e *Engine) resetPlayer() {
	p := e.cfg.Player
	e.player = Player{
		X:         p.X,
		Y:         e.height - p.StartOffset,
		W:         p.Width,
		H:         p.Height,
		JumpPower: e.cfg.Physics.JumpPower,
		Grounded:  true,
	}
}

func (e *Engine) newObstacle() Obstacle {
	o := e.cfg.Obstacles
	return Obstacle{
		X: e.width,
		Y: e.groundY - o.Rise,
		W: o.Width,
		H: o.Height,
	}
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	State         RunState
	Score         int
	Ticks         int
	Speed         float64
	SpawnTimer    int
	SpawnInterval float64
	Player        Player
	Obstacles     []Obstacle
	BackgroundX   float64
	AnimTime      float64
	Width, Height float64
	GroundY       float64
	Generation    uint64
}

// State returns a copy of the current state.
func (e *Engine) State() Snapshot {
	obs := make([]Obstacle, len(e.obstacles))
	copy(obs, e.obstacles)
	return Snapshot{
		State:         e.state,
		Score:         e.points,
		Ticks:         e.ticks,
		Speed:         e.speed,
		SpawnTimer:    e.spawnTimer,
		SpawnInterval: e.spawnInterval,
		Player:        e.player,
		Obstacles:     obs,
		BackgroundX:   e.bgX,
		AnimTime:      e.animTime,
		Width:         e.width,
		Height:        e.height,
		GroundY:       e.groundY,
		Generation:    e.generation,
	}
}

// RunState returns the current lifecycle phase.
func (e *Engine) RunState() RunState {
	return e.state
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.points
}

// Speed returns the current scroll speed.
func (e *Engine) Speed() float64 {
	return e.speed
}

// Config returns the engine configuration.
func (e *Engine) Config() config.RunnerConfig {
	return e.cfg
}

// SpeedForScore returns the scroll speed the engine uses at score.
func SpeedForScore(cfg config.RunnerConfig, score int) float64 {
	return config.NewDifficultyManager(cfg.Difficulty, cfg.Obstacles).Speed(score)
}

// NextSpawnInterval draws the interval that follows a spawn at score.
func NextSpawnInterval(cfg config.RunnerConfig, score int, rnd RandomSource) float64 {
	return config.NewDifficultyManager(cfg.Difficulty, cfg.Obstacles).SpawnInterval(score, rnd.Float64())
}
