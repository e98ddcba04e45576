package tui

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/board-runner/internal/board"
)

// boardRefreshInterval is how often the board view picks up posts made by
// other sessions.
const boardRefreshInterval = 500 * time.Millisecond

// boardRefreshMsg asks the board view to re-read the store.
type boardRefreshMsg time.Time

func boardRefresh() tea.Cmd {
	return tea.Tick(boardRefreshInterval, func(t time.Time) tea.Msg {
		return boardRefreshMsg(t)
	})
}

var (
	postHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")).
			Bold(true)
	postOPStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)
	postMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
)

// BoardModel shows the post store and publishes what the user types.
// A post containing a trigger keyword, from this session or any other,
// asks the owning session to launch the runner.
type BoardModel struct {
	store     *board.Store
	trigger   *board.Trigger
	launched  *atomic.Bool
	launchBy  *atomic.Int64 // ID of the post that fired the trigger
	input     textinput.Model
	viewport  viewport.Model
	shown     int // Number of posts rendered into the viewport
	status    string
	width     int
	height    int
	goingBack bool
	quitting  bool
}

// NewBoardModel creates a board view watching store for keywords.
func NewBoardModel(store *board.Store, keywords []string, width, height int) BoardModel {
	launched := &atomic.Bool{}
	launchBy := &atomic.Int64{}
	trigger := board.NewTrigger(store, keywords, func(p board.Post) {
		launchBy.Store(p.ID)
		launched.Store(true)
	})

	ti := textinput.New()
	ti.Placeholder = "Write a post and press Enter"
	ti.CharLimit = 500
	ti.Prompt = "> "
	ti.Focus()

	m := BoardModel{
		store:    store,
		trigger:  trigger,
		launched: launched,
		launchBy: launchBy,
		input:    ti,
		shown:    -1,
	}
	m.resize(width, height)
	m.refresh()
	return m
}

// Init starts the cursor blink and the refresh loop.
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, boardRefresh())
}

// Update handles messages for the board view.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.goingBack = true
			return m, nil
		case "enter":
			m.publish()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.shown = -1
		m.refresh()
		return m, nil

	case boardRefreshMsg:
		m.refresh()
		return m, boardRefresh()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *BoardModel) publish() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}
	post, err := m.store.Publish(text)
	if err != nil {
		m.status = "post failed: " + err.Error()
		return
	}
	m.input.Reset()
	m.status = fmt.Sprintf("posted No.%d", post.Number)
	m.refresh()
}

func (m *BoardModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-4, 10)
	// Title, blank line, input, status
	h := max(height-5, 3)
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(width, h)
	} else {
		m.viewport.Width = width
		m.viewport.Height = h
	}
}

// refresh re-renders the post list when it changed.
func (m *BoardModel) refresh() {
	posts := m.store.All()
	if len(posts) == m.shown {
		return
	}
	m.shown = len(posts)

	var b strings.Builder
	for i, p := range posts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderPost(p, m.width))
	}
	if len(posts) == 0 {
		b.WriteString(postMetaStyle.Render("Nothing here yet. Start the thread."))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// renderPost formats a post as a header line followed by its text.
func renderPost(p board.Post, width int) string {
	header := postHeaderStyle.Render(fmt.Sprintf("No.%d", p.Number)) + " " +
		postMetaStyle.Render(p.Timestamp.Format("01/02 15:04:05"))
	if p.IsOP {
		header += " " + postOPStyle.Render("OP")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	if p.Image != nil {
		b.WriteString(postMetaStyle.Render(fmt.Sprintf("[image %s %dx%d]", p.Image.Filename, p.Image.Width, p.Image.Height)))
		b.WriteString("\n")
	}
	if p.Video != nil {
		b.WriteString(postMetaStyle.Render("[video " + p.Video.URL + "]"))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Width(max(width-2, 10)).Render(p.Text))
	b.WriteString("\n")
	return b.String()
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	thread := "/b/"
	if posts := m.store.All(); len(posts) > 0 && posts[0].ThreadName != "" {
		thread = posts[0].ThreadName
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(" " + thread))
	b.WriteString(postMetaStyle.Render(fmt.Sprintf("  %d posts", m.store.Len())))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	footer := "Enter: post  |  PgUp/PgDn: scroll  |  Esc: back"
	if m.status != "" {
		footer = m.status + "  |  " + footer
	}
	b.WriteString(postMetaStyle.Render(footer))

	return b.String()
}

// Launched reports whether a keyword post is waiting to launch the runner.
func (m BoardModel) Launched() bool {
	return m.launched.Load()
}

// LaunchedBy returns the ID of the post that fired the trigger.
func (m BoardModel) LaunchedBy() int64 {
	return m.launchBy.Load()
}

// Release re-arms the trigger once the launched game is over.
func (m *BoardModel) Release() {
	m.launched.Store(false)
	m.trigger.Release()
}

// Close stops watching the store.
func (m BoardModel) Close() {
	m.trigger.Close()
}

// ClearBack makes the view ready to be shown again.
func (m *BoardModel) ClearBack() {
	m.goingBack = false
}

// IsGoingBack returns true if user wants to go back to menu.
func (m BoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m BoardModel) IsQuitting() bool {
	return m.quitting
}
