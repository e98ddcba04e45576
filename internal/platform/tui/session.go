package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/board-runner/internal/board"
	"github.com/vovakirdan/board-runner/internal/core"
	"github.com/vovakirdan/board-runner/internal/storage"
)

// Screen identifies what a session is showing.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenGame
	ScreenScores
	ScreenBoard
)

// OpenBoard creates a post store backed by store. A nil store gives an
// in-memory board.
func OpenBoard(store *storage.Store) (*board.Store, error) {
	if store == nil {
		return board.NewStore()
	}
	return board.NewStore(board.WithPersister(store))
}

// SessionModel manages the full session flow between the menu, the game,
// the scoreboard and the board. It is the top-level model for both local
// and SSH sessions.
type SessionModel struct {
	deps     Deps
	posts    *board.Store
	runtime  core.RuntimeConfig
	active   Screen
	returnTo Screen // Where the game goes back to
	menu     MenuModel
	game     *Model
	scores   *ScoreboardModel
	board    *BoardModel
	quitting bool
}

// NewSessionModel creates a session showing start first. posts may be nil,
// in which case the board is not offered.
func NewSessionModel(deps Deps, posts *board.Store, rt core.RuntimeConfig, start Screen) SessionModel {
	m := SessionModel{
		deps:    deps,
		posts:   posts,
		runtime: rt,
		menu:    NewMenuModel(deps.Store, rt, posts != nil),
	}
	if posts != nil {
		b := NewBoardModel(posts, deps.Config.Board.Keywords, rt.ScreenW, rt.ScreenH)
		m.board = &b
	}

	switch start {
	case ScreenGame:
		g := NewModel(deps, rt)
		m.game = &g
		m.active = ScreenGame
	case ScreenScores:
		s := NewScoreboardModel(deps.Store, rt.Player, rt.ScreenW, rt.ScreenH)
		m.scores = &s
		m.active = ScreenScores
	case ScreenBoard:
		if m.board != nil {
			m.active = ScreenBoard
		}
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.board != nil {
		cmds = append(cmds, m.board.Init())
	}
	if m.active == ScreenGame && m.game != nil {
		cmds = append(cmds, m.game.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)
	case boardRefreshMsg:
		return m.refreshBoard(msg)
	}

	switch m.active {
	case ScreenGame:
		return m.updateGame(msg)
	case ScreenScores:
		return m.updateScores(msg)
	case ScreenBoard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// resize forwards the new size to every live screen.
func (m SessionModel) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height

	next, _ := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	if m.game != nil {
		next, _ := m.game.Update(msg)
		g := next.(Model)
		m.game = &g
	}
	if m.scores != nil {
		next, _ := m.scores.Update(msg)
		s := next.(ScoreboardModel)
		m.scores = &s
	}
	if m.board != nil {
		next, _ := m.board.Update(msg)
		b := next.(BoardModel)
		m.board = &b
	}
	return m, nil
}

// refreshBoard keeps the board loop running whatever the active screen is,
// and launches the runner for a keyword post seen while on the board.
func (m SessionModel) refreshBoard(msg boardRefreshMsg) (tea.Model, tea.Cmd) {
	if m.board == nil {
		return m, nil
	}
	next, cmd := m.board.Update(msg)
	b := next.(BoardModel)
	m.board = &b

	if !m.board.Launched() {
		return m, cmd
	}
	switch {
	case m.active == ScreenBoard:
		gameCmd := m.openGame(ScreenBoard)
		return m, tea.Batch(cmd, gameCmd)
	case m.active == ScreenGame && m.returnTo == ScreenBoard:
		// Already playing the launched game
	default:
		// Keyword posts only launch the runner for sessions watching the board
		m.board.Release()
	}
	return m, cmd
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	choice := m.menu.Selected()
	m.menu.ClearSelection()
	switch choice {
	case ChoicePlay:
		gameCmd := m.openGame(ScreenMenu)
		return m, gameCmd
	case ChoiceScores:
		s := NewScoreboardModel(m.deps.Store, m.runtime.Player, m.runtime.ScreenW, m.runtime.ScreenH)
		m.scores = &s
		m.active = ScreenScores
		return m, s.Init()
	case ChoiceBoard:
		if m.board != nil {
			m.active = ScreenBoard
			return m, textinput.Blink
		}
	}

	return m, cmd
}

// openGame starts a new game that returns to returnTo when left.
func (m *SessionModel) openGame(returnTo Screen) tea.Cmd {
	g := NewModel(m.deps, m.runtime)
	m.game = &g
	m.active = ScreenGame
	m.returnTo = returnTo
	return g.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.game == nil {
		m.active = ScreenMenu
		return m, nil
	}

	next, cmd := m.game.Update(msg)
	g := next.(Model)
	m.game = &g

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		if m.returnTo == ScreenBoard && m.board != nil {
			m.board.Release()
			m.active = ScreenBoard
			return m, textinput.Blink
		}
		// Rebuild so the menu shows the new personal best
		m.menu = NewMenuModel(m.deps.Store, m.runtime, m.posts != nil)
		m.active = ScreenMenu
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates when on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.scores == nil {
		m.active = ScreenMenu
		return m, nil
	}

	next, cmd := m.scores.Update(msg)
	s := next.(ScoreboardModel)
	m.scores = &s

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.scores = nil
		m.active = ScreenMenu
		return m, nil
	}
	return m, cmd
}

// updateBoard handles updates when on the board.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	b := next.(BoardModel)
	m.board = &b

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.board.ClearBack()
		m.active = ScreenMenu
		return m, nil
	}
	if m.board.Launched() {
		gameCmd := m.openGame(ScreenBoard)
		return m, tea.Batch(cmd, gameCmd)
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.active {
	case ScreenGame:
		if m.game != nil {
			return m.game.View()
		}
	case ScreenScores:
		if m.scores != nil {
			return m.scores.View()
		}
	case ScreenBoard:
		if m.board != nil {
			return m.board.View()
		}
	}
	return m.menu.View()
}

// Active returns the screen being shown.
func (m SessionModel) Active() Screen {
	return m.active
}

// Close releases the board subscription held by the session.
func (m SessionModel) Close() {
	if m.board != nil {
		m.board.Close()
	}
}

// RunSession runs a local session starting at start.
func RunSession(deps Deps, posts *board.Store, rt core.RuntimeConfig, start Screen) error {
	model := NewSessionModel(deps, posts, rt, start)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
