// Package tui implements the interactive notification demo: a bubbletea
// program that hosts a notify.Sink and draws toasts in the lower-right
// corner of the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hay-kot/toasts/internal/core/faults"
	"github.com/hay-kot/toasts/internal/core/notify"
	"github.com/hay-kot/toasts/internal/core/styles"
)

const (
	demoDuration  = 5 * time.Second
	demoEditColor = "#9ece6a"
)

// uploadError is the error raised by the demo panic and async actions.
type uploadError struct {
	file string
}

func (e uploadError) Error() string { return "could not upload " + e.file }
func (e uploadError) Name() string  { return "UploadError" }

type statusMsg string

// Options configures the demo model.
type Options struct {
	API        notify.API
	Hub        *faults.Hub
	Logger     zerolog.Logger
	MaxVisible int
}

// Model is the demo's bubbletea model.
type Model struct {
	ctx    context.Context
	api    notify.API
	hub    *faults.Hub
	log    zerolog.Logger
	board  *Board
	keys   keyMap
	help   help.Model
	width  int
	height int

	created int
	status  string
}

func New(ctx context.Context, opts Options) Model {
	return Model{
		ctx:   ctx,
		api:   opts.API,
		hub:   opts.Hub,
		log:   opts.Logger,
		board: NewBoard(opts.MaxVisible),
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case renderMsg:
		m.board.Render(msg.id, msg.displayed)
	case updateFieldMsg:
		m.board.UpdateField(msg.id, msg.field, msg.value)
	case hideMsg:
		m.board.Hide(msg.id)
	case detachMsg:
		m.board.Detach(msg.id)
	case statusMsg:
		m.status = string(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.New):
		m.created++
		id, err := m.api.Create(notify.Info{
			Title:    notify.Set(fmt.Sprintf("Notification #%d", m.created)),
			Message:  notify.Set("Created at " + time.Now().Format(time.TimeOnly)),
			Icon:     notify.Set(styles.IconBell),
			Duration: notify.Set(demoDuration),
		})
		m.status = result("created", id, err)
	case key.Matches(msg, m.keys.Edit):
		id, ok := m.board.Newest()
		if !ok {
			m.status = "nothing to edit"
			break
		}
		found, err := m.api.Edit(id, notify.Info{
			Message:    notify.Set("Edited at " + time.Now().Format(time.TimeOnly)),
			TitleColor: notify.Set(demoEditColor),
			Icon:       notify.Clear[string](),
			Duration:   notify.Set(demoDuration),
		})
		m.status = lookupResult("edited", id, found, err)
	case key.Matches(msg, m.keys.Delete):
		id, ok := m.board.Newest()
		if !ok {
			m.status = "nothing to delete"
			break
		}
		found, err := m.api.Delete(id)
		m.status = lookupResult("deleted", id, found, err)
	case key.Matches(msg, m.keys.Panic):
		hub := m.hub
		return m, func() tea.Msg {
			hub.Guard(func() { panic(uploadError{file: "report.pdf"}) })
			return statusMsg("panic recovered")
		}
	case key.Matches(msg, m.keys.Async):
		m.hub.Go(m.ctx, "upload", func(context.Context) error {
			return fmt.Errorf("upload avatar.png: %w", errors.New("connection reset by peer"))
		})
		m.status = "async task started"
	case key.Matches(msg, m.keys.Log):
		m.log.Error().Str("cmp", "storage").Err(errors.New("disk quota exceeded")).Msg("write failed")
		m.status = "error logged"
	}
	return m, nil
}

func result(action string, id notify.ID, err error) string {
	if err != nil {
		return action + " failed: " + err.Error()
	}
	return fmt.Sprintf("%s %s", action, id)
}

func lookupResult(action string, id notify.ID, found bool, err error) string {
	if err == nil && !found {
		return fmt.Sprintf("%s: %s is gone", action, id)
	}
	return result(action, id, err)
}

func (m Model) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.HeaderStyle.Render(styles.IconBell+" toasts demo"),
		styles.StatusStyle.Render(fmt.Sprintf("%d on screen  %s", m.board.Len(), m.status)),
		styles.StatusStyle.Render(m.help.View(m.keys)),
	)

	return overlay(header, renderToasts(m.board.Visible()), m.width, m.height)
}
