package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/treasure-hunter/internal/engine"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateEnded
)

type model struct {
	state     sessionState
	lines     chan<- string
	textInput textinput.Model
	viewport  viewport.Model
	status    *engine.Status
	outcome   engine.State
	err       error
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	roughStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D75F5F"))
)

const menuHelp = "(B)uy (S)ell (E)xplore (H)unt (M)ove (L)ook for trouble (D)ig e(X)it"

func newModel(lines chan<- string) model {
	ti := textinput.New()
	ti.Placeholder = "Type your answer and press Enter..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return model{
		state:     statePlaying,
		lines:     lines,
		textInput: ti,
		viewport:  viewport.New(0, 0),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type displayMsg struct {
	text string
}

type statusMsg struct {
	status engine.Status
}

type sessionEndedMsg struct {
	state engine.State
	err   error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateEnded {
				return m, tea.Quit
			}
			line := m.textInput.Value()
			m.textInput.Reset()
			if line == "/quit" {
				return m, tea.Quit
			}
			select {
			case m.lines <- line:
				styled := userStyle.Width(m.logWidth()).Render("> " + line)
				m.appendLog("\n" + styled + "\n\n")
			default:
				// The session has not asked for anything yet.
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		m.viewport.SetContent(m.gameLog)
		m.viewport.GotoBottom()

	case displayMsg:
		m.appendLog(gameStyle.Width(m.logWidth()).Render(msg.text) + "\n")
		return m, nil

	case statusMsg:
		st := msg.status
		m.status = &st
		return m, nil

	case sessionEndedMsg:
		m.state = stateEnded
		m.outcome = msg.state
		m.err = msg.err
		m.textInput.Blur()
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) appendLog(s string) {
	m.gameLog += s
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.7)
}

func (m model) View() string {
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderStatus(),
	)

	var footer string
	switch {
	case m.state == stateEnded && m.err != nil:
		footer = fmt.Sprintf("Error: %v\n\nPress Enter to quit.", m.err)
	case m.state == stateEnded:
		footer = helpStyle.Render(fmt.Sprintf("The hunt is over (%s). Press Enter to quit.", m.outcome))
	default:
		footer = m.textInput.View() + "\n\n" + helpStyle.Render(menuHelp+"   /quit to leave")
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+footer) + "\n"
}

func (m model) renderStatus() string {
	if m.status == nil {
		return ""
	}
	st := m.status

	var b strings.Builder
	b.WriteString(titleStyle.Render("HUNTER") + "\n")
	fmt.Fprintf(&b, "%s (%s)\nGold: %d\n", st.Hunter, st.Difficulty, st.Gold)
	fmt.Fprintf(&b, "Shop buys back at %d%%\n\n", int(st.Markdown*100))

	b.WriteString(titleStyle.Render("KIT") + "\n")
	if len(st.Inventory) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, item := range st.Inventory {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("TREASURES") + "\n")
	if len(st.Treasures) == 0 {
		b.WriteString("(none yet)\n")
	}
	for _, kind := range st.Treasures {
		b.WriteString("- " + string(kind) + "\n")
	}
	b.WriteString("\n")

	if st.Terrain != "" {
		b.WriteString(titleStyle.Render("TOWN") + "\n")
		b.WriteString("Surrounded by " + st.Terrain + "\n")
		if st.Tough {
			b.WriteString(roughStyle.Render("Rough") + "\n")
		} else {
			b.WriteString("Sleepy\n")
		}
	}

	if st.News != "" {
		b.WriteString("\n" + titleStyle.Render("NEWS") + "\n")
		b.WriteString(st.News + "\n")
	}

	stateWidth := int(float64(m.width) * 0.27)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(b.String())
}

// bridge lets a session goroutine talk to the program. Lines typed by the
// player arrive on lines; everything the session shows is sent as a message.
type bridge struct {
	lines   chan string
	program *tea.Program
}

func newBridge() *bridge {
	return &bridge{lines: make(chan string)}
}

func (b *bridge) ReadLine(ctx context.Context) (string, error) {
	select {
	case line := <-b.lines:
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (b *bridge) Display(text string) {
	b.program.Send(displayMsg{text: text})
}

func (b *bridge) ShowStatus(s engine.Status) {
	b.program.Send(statusMsg{status: s})
}

// PlayFunc runs one session against the given ports until it ends.
type PlayFunc func(ctx context.Context, in engine.Input, out engine.Output) (engine.State, error)

// Run shows the game full screen and plays one session in the background.
// Quitting the screen cancels the session.
func Run(ctx context.Context, play PlayFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b := newBridge()
	p := tea.NewProgram(newModel(b.lines), tea.WithAltScreen())
	b.program = p

	done := make(chan error, 1)
	go func() {
		state, err := play(ctx, b, b)
		p.Send(sessionEndedMsg{state: state, err: err})
		done <- err
	}()

	_, runErr := p.Run()
	cancel()
	sessionErr := <-done
	if runErr != nil {
		return runErr
	}
	return sessionErr
}
