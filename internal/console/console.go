// Package console is the interactive terminal chat. It drives the same
// message handler as the Telegram bot, so the "waiting for URL" flow works
// the same way in a terminal.
package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LocalUser is the user ID of the person at the terminal.
const LocalUser int64 = 0

var ErrNotRunning = errors.New("console: session not running")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Handler answers one message from a user.
type Handler interface {
	Handle(ctx context.Context, userID int64, text string) (string, error)
}

// replyMsg carries a handler reply back into the update loop.
type replyMsg struct {
	text string
	err  error
}

// NoticeMsg is an out-of-band message, such as a finished background run.
type NoticeMsg string

// Model is the bubbletea model for the chat screen.
type Model struct {
	ctx     context.Context
	handler Handler

	input   textinput.Model
	view    viewport.Model
	spinner spinner.Model

	lines   []string
	pending int
	ready   bool
}

func NewModel(ctx context.Context, h Handler) Model {
	input := textinput.New()
	input.Placeholder = "Ask about FastAutomate, or say \"run prime leads\""
	input.Prompt = "› "
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		handler: h,
		input:   input,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-4, 1)
		if !m.ready {
			m.view = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = height
		}
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.lines = append(m.lines, userStyle.Render("You: ")+text)
			m.pending++
			m.refresh()
			return m, m.ask(text)
		}

	case replyMsg:
		m.pending = max(m.pending-1, 0)
		if msg.err != nil {
			m.lines = append(m.lines, errorStyle.Render("Error: "+msg.err.Error()))
		} else {
			m.lines = append(m.lines, botStyle.Render("PrimeLeads: ")+msg.text)
		}
		m.refresh()
		return m, nil

	case NoticeMsg:
		m.lines = append(m.lines, noticeStyle.Render(string(msg)))
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		m.view, cmd = m.view.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("PrimeLeads chat"))
	b.WriteString("\n")

	if m.ready {
		b.WriteString(m.view.View())
	} else {
		b.WriteString(strings.Join(m.lines, "\n"))
	}
	b.WriteString("\n")

	if m.pending > 0 {
		b.WriteString(m.spinner.View() + hintStyle.Render(" thinking…"))
	} else {
		b.WriteString(hintStyle.Render("enter to send · esc to quit"))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

// Transcript returns the rendered conversation lines.
func (m Model) Transcript() []string {
	return append([]string(nil), m.lines...)
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.view.SetContent(lipgloss.NewStyle().Width(m.view.Width).Render(strings.Join(m.lines, "\n")))
	m.view.GotoBottom()
}

func (m Model) ask(text string) tea.Cmd {
	ctx, h := m.ctx, m.handler
	return func() tea.Msg {
		reply, err := h.Handle(ctx, LocalUser, text)
		return replyMsg{text: reply, err: err}
	}
}

// Session runs a Model in a terminal program and delivers background
// notices into it. It satisfies the bot's Sender.
type Session struct {
	mu      sync.Mutex
	program *tea.Program
}

func NewSession() *Session {
	return &Session{}
}

// Send shows text as a notice. The chat ID is ignored: a console has one
// user.
func (s *Session) Send(_ context.Context, _ int64, text string) error {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()

	if p == nil {
		return ErrNotRunning
	}
	p.Send(NoticeMsg(text))
	return nil
}

// Run blocks until the user quits or ctx is cancelled.
func (s *Session) Run(ctx context.Context, h Handler, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewModel(ctx, h), opts...)

	s.mu.Lock()
	s.program = p
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.program = nil
		s.mu.Unlock()
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
