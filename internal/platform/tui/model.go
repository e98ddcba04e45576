package tui

import (
	"fmt"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/board-runner/internal/assets"
	"github.com/vovakirdan/board-runner/internal/config"
	"github.com/vovakirdan/board-runner/internal/core"
	"github.com/vovakirdan/board-runner/internal/runner"
	"github.com/vovakirdan/board-runner/internal/storage"
)

// GameID is the key runner scores are stored under.
const GameID = "runner"

// Chrome rows around the canvas: the HUD line above and the help line below.
const chromeRows = 2

// Deps bundles what every screen of a session shares.
type Deps struct {
	Config config.RunnerConfig
	Assets *assets.Set    // Shared across sessions; nil loads per engine
	Store  *storage.Store // May be nil; scores are then not kept
	Logger *log.Logger    // May be nil
	// ScreenshotDir defaults to ~/.runner/screenshots.
	ScreenshotDir string
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

var (
	hudStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	hudDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for one runner game.
type Model struct {
	deps       Deps
	runtime    core.RuntimeConfig
	engine     *runner.Engine
	canvas     *Canvas
	screen     *core.Screen
	sched      *FrameScheduler
	score      *TextSlot
	overlay    *TextSlot
	finalScore *TextSlot
	keyMapper  *KeyMapper
	best       int
	status     string // Transient footer message
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a game model sized to the runtime screen.
func NewModel(deps Deps, rt core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	cols, rows := rt.ScreenW, max(rt.ScreenH-chromeRows, 1)
	canvas := NewCanvas(deps.Config.Surface.Width, deps.Config.Surface.Height, cols, rows)
	sched := NewFrameScheduler(rt.TickRate)

	engine := runner.New(canvas, deps.Config,
		runner.WithScheduler(sched),
		runner.WithRandom(rand.New(rand.NewSource(rt.Seed))),
		runner.WithAssets(deps.Assets),
		runner.WithLogger(deps.logger()),
	)

	m := Model{
		deps:       deps,
		runtime:    rt,
		engine:     engine,
		canvas:     canvas,
		screen:     core.NewScreen(canvas.Cols(), canvas.Rows()),
		sched:      sched,
		score:      NewTextSlot(),
		overlay:    NewTextSlot(),
		finalScore: NewTextSlot(),
		keyMapper:  NewKeyMapper(),
	}
	m.overlay.SetVisible(false)
	engine.Bind(canvas, m.score, m.overlay, m.finalScore)

	if deps.Store != nil {
		if best, err := deps.Store.HighScore(GameID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init starts the first run.
func (m Model) Init() tea.Cmd {
	m.engine.Start()
	return m.sched.Cmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.keyMapper.MapMouse(msg) == core.ActionJump {
			m.engine.Jump()
		}

	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case FrameMsg:
		if !m.sched.Owns(msg) {
			return m, nil
		}
		m.sched.Fire()
		m.recordGameOver()
	}

	return m, m.sched.Cmd()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	over := m.engine.RunState() == runner.GameOver
	switch action {
	case core.ActionJump:
		m.engine.Jump()
	case core.ActionRestart, core.ActionConfirm:
		if over {
			m.restart()
		}
	case core.ActionBack:
		if over {
			m.backToMenu = true
		}
	case core.ActionScreenshot:
		m.saveScreenshot()
	}

	return m, m.sched.Cmd()
}

// handleResize fits the canvas to the new window. The run continues; only
// the mapping from logical units to cells changes.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.canvas.Resize(msg.Width, max(msg.Height-chromeRows, 1))
	m.screen.Resize(m.canvas.Cols(), m.canvas.Rows())
	m.engine.Render()
}

func (m *Model) restart() {
	m.scoreSaved = false
	m.status = ""
	m.engine.Start()
}

// recordGameOver saves the score once per game over.
func (m *Model) recordGameOver() {
	if m.engine.RunState() != runner.GameOver || m.scoreSaved {
		return
	}
	m.scoreSaved = true

	score := m.engine.Score()
	if score > m.best {
		m.best = score
	}
	if m.deps.Store == nil || score == 0 {
		return
	}
	if _, err := m.deps.Store.SaveScore(GameID, m.runtime.Player, score); err != nil {
		m.deps.logger().Warn("could not save score", "player", m.runtime.Player, "score", score, "error", err)
	}
}

// saveScreenshot writes the canvas as a PNG.
func (m *Model) saveScreenshot() {
	dir := m.deps.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		dir = filepath.Join(home, ".runner", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", GameID, timestamp))

	f, err := os.Create(path)
	if err != nil {
		m.status = "screenshot failed"
		return
	}
	defer f.Close()

	if err := png.Encode(f, m.canvas.Image()); err != nil {
		m.status = "screenshot failed"
		return
	}
	m.status = "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.canvas.Paint(m.screen, 0, 0)
	if m.overlay.Visible() {
		m.drawGameOver(m.screen)
	}

	return m.hud() + "\n" + RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) hud() string {
	text := m.score.Text()
	if text == "" {
		text = "Score: 0"
	}
	return hudStyle.Render(" "+text) +
		hudDimStyle.Render(fmt.Sprintf("   Speed %.1f   Best %d", m.engine.Speed(), m.best))
}

func (m Model) footer() string {
	if m.status != "" {
		return footerStyle.Render(" " + m.status)
	}
	if m.engine.RunState() == runner.GameOver {
		return footerStyle.Render(" R/Enter: restart  |  B/Esc: menu  |  Q: quit")
	}
	return footerStyle.Render(" Space/Up/Click: jump  |  Ctrl+S: screenshot  |  Q: quit")
}

// drawGameOver draws the game-over box centered on dst.
func (m Model) drawGameOver(dst *core.Screen) {
	lines := []string{
		m.overlay.Text(),
		"Final Score: " + m.finalScore.Text(),
	}
	if m.engine.Score() >= m.best && m.engine.Score() > 0 {
		lines = append(lines, "New best!")
	}

	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	w += 6
	h := len(lines) + 2
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.FillCells(box, core.Cell{Rune: ' ', Color: core.ColorWhite, Bg: core.ColorBlack})
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawText(box.X+(w-len(l))/2, box.Y+1+i, l)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Engine returns the engine driven by this model.
func (m Model) Engine() *runner.Engine {
	return m.engine
}
