// Package tui is the interactive terminal chat: a scrolling transcript of the
// current conversation, a typing indicator, and an input line.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/artem13815/legalassist/pkg/chat"
)

const (
	headerHeight   = 1
	footerHeight   = 3
	defaultTimeout = 2 * time.Minute
)

// replyMsg carries a finished answer back to the update loop.
type replyMsg struct {
	conversationID string
	content        string
}

type Model struct {
	session *chat.Session
	asker   chat.Asker
	timeout time.Duration
	log     *zap.Logger

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	ready    bool
	width    int
	// requests in flight; more than one is allowed
	pending int
}

func New(session *chat.Session, asker chat.Asker, timeout time.Duration, log *zap.Logger) Model {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "Ask a legal question..."
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = statusStyle

	return Model{
		session: session,
		asker:   asker,
		timeout: timeout,
		log:     log,
		input:   ti,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := msg.Height - headerHeight - footerHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlN:
			m.session.NewConversation()
			m.refresh()
			return m, nil
		case tea.KeyTab:
			m.switchConversation(1)
			return m, nil
		case tea.KeyShiftTab:
			m.switchConversation(-1)
			return m, nil
		case tea.KeyEnter:
			sent, ok := m.session.Submit(m.input.Value())
			if !ok {
				return m, nil
			}
			m.input.Reset()
			m.pending++
			m.refresh()
			return m, m.ask(m.session.Current().ID, sent.Content)
		}

	case replyMsg:
		if m.pending > 0 {
			m.pending--
		}
		if _, ok := m.session.Deliver(msg.conversationID, msg.content); !ok {
			m.log.Warn("reply for unknown conversation", zap.String("conversation_id", msg.conversationID))
		}
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
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ask runs one relay call off the update loop.
func (m Model) ask(conversationID, question string) tea.Cmd {
	asker, timeout, log := m.asker, m.timeout, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return replyMsg{
			conversationID: conversationID,
			content:        chat.Reply(ctx, asker, question, log),
		}
	}
}

// switchConversation moves step places through the list (newest first),
// wrapping at either end.
func (m *Model) switchConversation(step int) {
	convs := m.session.Conversations()
	if len(convs) < 2 {
		return
	}
	cur := 0
	for i, c := range convs {
		if c.ID == m.session.Current().ID {
			cur = i
			break
		}
	}
	next := ((cur+step)%len(convs) + len(convs)) % len(convs)
	m.session.Select(convs[next].ID)
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderConversation(m.session.Current(), m.width))
	m.viewport.GotoBottom()
}

// position is the 1-based index of the current conversation.
func (m Model) position() int {
	for i, c := range m.session.Conversations() {
		if c.ID == m.session.Current().ID {
			return i + 1
		}
	}
	return 0
}

func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}
	conv := m.session.Current()
	header := titleStyle.Render(conv.Title) + " " +
		statusStyle.Render(fmt.Sprintf("(%d of %d)", m.position(), len(m.session.Conversations())))

	status := ""
	if m.pending > 0 {
		status = m.spinner.View() + " Assistant is typing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		statusStyle.Render(status),
		m.input.View(),
		helpStyle.Render("enter send • ctrl+n new conversation • tab/shift+tab switch • esc quit"),
	)
}
