package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/toasts/internal/core/styles"
)

const toastWidth = 44

// renderToasts renders the visible elements stacked vertically, oldest at
// the top.
func renderToasts(toasts []toast) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	d := t.displayed

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.TitleColor))
	messageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(d.MessageColor))
	boxStyle := styles.ToastStyle.Width(toastWidth)
	if t.hiding {
		titleStyle = titleStyle.Faint(true)
		messageStyle = messageStyle.Faint(true)
		boxStyle = boxStyle.Faint(true)
	}

	header := titleStyle.Render(d.Title)
	if d.Icon != "" {
		header = d.Icon + " " + header
	}

	lines := []string{header}
	if d.Message != "" {
		lines = append(lines, messageStyle.Render(d.Message))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// overlay places the toast stack in the lower-right corner of an area of
// width x height below background.
func overlay(background, toasts string, width, height int) string {
	if width <= 0 || height <= 0 {
		if toasts == "" {
			return background
		}
		return lipgloss.JoinVertical(lipgloss.Left, background, toasts)
	}

	area := max(height-lipgloss.Height(background), 0)
	placed := lipgloss.Place(width, area, lipgloss.Right, lipgloss.Bottom, toasts)
	return lipgloss.JoinVertical(lipgloss.Left, background, placed)
}
