package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/artem13815/legalassist/pkg/answer"
	"github.com/artem13815/legalassist/pkg/chat"
)

var (
	brand           = lipgloss.Color("#1E88E5")
	muted           = lipgloss.Color("#78909C")
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(brand)
	userLabelStyle  = lipgloss.NewStyle().Bold(true)
	botLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(brand)
	stepStyle       = lipgloss.NewStyle()
	disclaimerStyle = lipgloss.NewStyle().Italic(true).Foreground(muted)
	statusStyle     = lipgloss.NewStyle().Foreground(muted)
	helpStyle       = lipgloss.NewStyle().Faint(true)
)

func wrap(s lipgloss.Style, width int) lipgloss.Style {
	if width > 0 {
		return s.Width(width)
	}
	return s
}

// RenderAnswer lays out assistant text one step per line with the disclaimer
// set apart. Text without numbered steps is shown as it is.
func RenderAnswer(text string, width int) string {
	f, ok := answer.Parse(text)
	if !ok || len(f.Steps) == 0 {
		return wrap(stepStyle, width).Render(text)
	}
	lines := make([]string, 0, len(f.Steps)+1)
	for _, step := range f.Steps {
		lines = append(lines, wrap(stepStyle, width).Render(step))
	}
	if f.Disclaimer != "" {
		lines = append(lines, wrap(disclaimerStyle, width).Render(f.Disclaimer))
	}
	return strings.Join(lines, "\n")
}

func renderConversation(c *chat.Conversation, width int) string {
	var sb strings.Builder
	for i, msg := range c.Messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		stamp := msg.Timestamp.Format("15:04")
		if msg.Role == chat.RoleUser {
			sb.WriteString(userLabelStyle.Render("You") + " " + statusStyle.Render(stamp) + "\n")
			sb.WriteString(wrap(stepStyle, width).Render(msg.Content))
			continue
		}
		sb.WriteString(botLabelStyle.Render("Assistant") + " " + statusStyle.Render(stamp) + "\n")
		sb.WriteString(RenderAnswer(msg.Content, width))
	}
	return sb.String()
}
