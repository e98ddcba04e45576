package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/board-runner/internal/assets"
	"github.com/vovakirdan/board-runner/internal/board"
	"github.com/vovakirdan/board-runner/internal/config"
	"github.com/vovakirdan/board-runner/internal/core"
	"github.com/vovakirdan/board-runner/internal/runner"
	"github.com/vovakirdan/board-runner/internal/storage"
)

// maxFrames bounds every loop that waits for a game over. With the default
// config the first obstacle reaches an idle player well before this.
const maxFrames = 2000

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testDeps(store *storage.Store) Deps {
	return Deps{
		Config: config.DefaultRunnerConfig(),
		Assets: assets.EmptySet(),
		Store:  store,
	}
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
		Player:   "tester",
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

// playUntilGameOver fires frames until the run ends.
func playUntilGameOver(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < maxFrames && m.Engine().RunState() != runner.GameOver; i++ {
		m, _ = update(t, m, FrameMsg{Scheduler: m.sched.id})
	}
	if m.Engine().RunState() != runner.GameOver {
		t.Fatalf("no game over after %d frames", maxFrames)
	}
	return m
}

func TestModelInitStartsRun(t *testing.T) {
	m := NewModel(testDeps(nil), testRuntime())

	if cmd := m.Init(); cmd == nil {
		t.Error("Init should schedule the next frame")
	}
	if m.Engine().RunState() != runner.Running {
		t.Errorf("state = %v, expected running", m.Engine().RunState())
	}
	if m.Engine().Score() != 1 {
		t.Errorf("score = %d, expected 1 after the first tick", m.Engine().Score())
	}
}

func TestModelIgnoresForeignFrames(t *testing.T) {
	m := NewModel(testDeps(nil), testRuntime())
	m.Init()

	m, _ = update(t, m, FrameMsg{Scheduler: m.sched.id + 1000})
	if m.Engine().Score() != 1 {
		t.Errorf("score = %d, a foreign frame must not tick", m.Engine().Score())
	}

	m, cmd := update(t, m, FrameMsg{Scheduler: m.sched.id})
	if m.Engine().Score() != 2 {
		t.Errorf("score = %d, expected 2", m.Engine().Score())
	}
	if cmd == nil {
		t.Error("a running game should keep ticking")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openTestStore(t)
	m := NewModel(testDeps(store), testRuntime())
	m.Init()

	m = playUntilGameOver(t, m)
	final := m.Engine().Score()

	// More frames after game over must not save again
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, FrameMsg{Scheduler: m.sched.id})
	}

	scores, err := store.AllScores(GameID)
	if err != nil {
		t.Fatalf("AllScores() error: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 saved score, got %d", len(scores))
	}
	if scores[0].Score != final || scores[0].Player != "tester" {
		t.Errorf("saved %+v, expected %d by tester", scores[0], final)
	}
	if m.best != final {
		t.Errorf("best = %d, expected %d", m.best, final)
	}
}

func TestModelGameOverView(t *testing.T) {
	m := NewModel(testDeps(nil), testRuntime())
	m.Init()
	m = playUntilGameOver(t, m)

	view := m.View()
	for _, want := range []string{"Score: ", "Game Over", "Final Score: "} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModelRestartAndBack(t *testing.T) {
	store := openTestStore(t)
	m := NewModel(testDeps(store), testRuntime())
	m.Init()

	// Back is ignored while running
	m, _ = update(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Error("back should be ignored while running")
	}

	m = playUntilGameOver(t, m)

	m, _ = update(t, m, runeKey("r"))
	if m.Engine().RunState() != runner.Running {
		t.Fatalf("state = %v after restart, expected running", m.Engine().RunState())
	}
	if m.scoreSaved {
		t.Error("restart should re-arm score saving")
	}

	m = playUntilGameOver(t, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc after game over should go back")
	}

	scores, err := store.AllScores(GameID)
	if err != nil {
		t.Fatalf("AllScores() error: %v", err)
	}
	if len(scores) != 2 {
		t.Errorf("expected 2 saved scores, got %d", len(scores))
	}
}

func TestModelJumpInputs(t *testing.T) {
	m := NewModel(testDeps(nil), testRuntime())
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Engine().State().Player.Grounded {
		t.Error("space should jump")
	}

	m2 := NewModel(testDeps(nil), testRuntime())
	m2.Init()
	m2, _ = update(t, m2, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m2.Engine().State().Player.Grounded {
		t.Error("click should jump")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(testDeps(nil), testRuntime())
	m.Init()

	m, cmd := update(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(testDeps(nil), testRuntime())
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	if m.canvas.Cols() != 40 || m.canvas.Rows() != 10 {
		t.Errorf("canvas = %dx%d cells, expected 40x10", m.canvas.Cols(), m.canvas.Rows())
	}
	if m.Engine().RunState() != runner.Running {
		t.Error("resize should not interrupt the run")
	}
}

func TestModelScreenshot(t *testing.T) {
	deps := testDeps(nil)
	deps.ScreenshotDir = t.TempDir()
	m := NewModel(deps, testRuntime())
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.status, "saved ") {
		t.Fatalf("status = %q, expected a saved path", m.status)
	}
	matches, _ := filepath.Glob(filepath.Join(deps.ScreenshotDir, "*.png"))
	if len(matches) != 1 {
		t.Errorf("expected 1 screenshot, found %d", len(matches))
	}
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SessionModel", next)
	}
	return nm, cmd
}

func newTestBoard(t *testing.T) *board.Store {
	t.Helper()
	posts, err := OpenBoard(nil)
	if err != nil {
		t.Fatalf("OpenBoard() error: %v", err)
	}
	return posts
}

func TestSessionMenuNavigation(t *testing.T) {
	store := openTestStore(t)
	m := NewSessionModel(testDeps(store), newTestBoard(t), testRuntime(), ScreenMenu)
	defer m.Close()

	// Down to High Scores
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Active() != ScreenScores {
		t.Fatalf("active = %v, expected scores", m.Active())
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Active() != ScreenMenu {
		t.Fatalf("active = %v, expected menu after back", m.Active())
	}

	// Play is the first entry
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Active() != ScreenGame {
		t.Fatalf("active = %v, expected game", m.Active())
	}
	if cmd == nil {
		t.Error("opening the game should schedule a frame")
	}
}

func TestSessionMenuWithoutBoard(t *testing.T) {
	m := NewSessionModel(testDeps(nil), nil, testRuntime(), ScreenBoard)
	if m.Active() != ScreenMenu {
		t.Errorf("active = %v, a session without a board should start at the menu", m.Active())
	}
	for _, item := range m.menu.items {
		if item.Choice == ChoiceBoard {
			t.Error("board entry should be hidden without a board")
		}
	}
}

func TestSessionKeywordPostLaunchesGame(t *testing.T) {
	posts := newTestBoard(t)
	m := NewSessionModel(testDeps(nil), posts, testRuntime(), ScreenBoard)
	defer m.Close()

	m, _ = updateSession(t, m, runeKey("where is my Miata"))
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if posts.Len() != 1 {
		t.Fatalf("expected 1 post, got %d", posts.Len())
	}
	if m.Active() != ScreenGame {
		t.Fatalf("active = %v, expected the keyword post to launch the game", m.Active())
	}

	// Play to the end and go back: the board is shown again and re-armed
	for i := 0; i < maxFrames && m.game.Engine().RunState() != runner.GameOver; i++ {
		m, _ = updateSession(t, m, FrameMsg{Scheduler: m.game.sched.id})
	}
	m, _ = updateSession(t, m, runeKey("b"))
	if m.Active() != ScreenBoard {
		t.Fatalf("active = %v, expected to return to the board", m.Active())
	}
	if m.board.Launched() {
		t.Error("trigger should be re-armed after the game")
	}
}

func TestSessionIgnoresKeywordOffBoard(t *testing.T) {
	posts := newTestBoard(t)
	m := NewSessionModel(testDeps(nil), posts, testRuntime(), ScreenMenu)
	defer m.Close()

	if _, err := posts.Publish("miata spotted"); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	m, _ = updateSession(t, m, boardRefreshMsg{})

	if m.Active() != ScreenMenu {
		t.Errorf("active = %v, expected menu", m.Active())
	}
	if m.board.Launched() {
		t.Error("launch seen off the board should be released")
	}
}

func TestSessionPlainPostStaysOnBoard(t *testing.T) {
	posts := newTestBoard(t)
	m := NewSessionModel(testDeps(nil), posts, testRuntime(), ScreenBoard)
	defer m.Close()

	m, _ = updateSession(t, m, runeKey("hello"))
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Active() != ScreenBoard {
		t.Errorf("active = %v, expected board", m.Active())
	}
	if got := posts.All(); len(got) != 1 || got[0].Text != "hello" || !got[0].IsOP {
		t.Errorf("posts = %+v, expected one OP post", got)
	}
	if !strings.Contains(m.View(), "No.1") {
		t.Error("board view should list the new post")
	}
}
