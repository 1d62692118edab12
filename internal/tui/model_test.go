package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/toasts/internal/core/config"
	"github.com/hay-kot/toasts/internal/core/faults"
	"github.com/hay-kot/toasts/internal/core/notify"
	"github.com/hay-kot/toasts/internal/core/notify/notifytest"
	"github.com/hay-kot/toasts/internal/plugins/notifications"
	"github.com/hay-kot/toasts/pkg/tuitest"
)

type demo struct {
	model Model
	sink  *Sink
	clock *notifytest.FakeClock
	hub   *faults.Hub
}

func newDemo(t *testing.T) *demo {
	t.Helper()

	d := &demo{
		sink:  NewSink(),
		clock: notifytest.NewFakeClock(),
		hub:   faults.NewHub(),
	}

	plugin := notifications.New(config.DefaultConfig(), d.hub, d.sink,
		notify.WithClock(d.clock),
		notify.WithAllocator(notify.NewSequenceAllocator()),
		notify.WithLogger(zerolog.Nop()),
	)
	ctx := context.Background()
	require.NoError(t, plugin.Load(ctx))
	require.NoError(t, plugin.Start(ctx))
	t.Cleanup(func() { _ = plugin.Close() })

	logger := zerolog.New(zerolog.MultiLevelWriter(io.Discard, d.hub.LogWriter()))
	d.model = New(ctx, Options{API: plugin.API(), Hub: d.hub, Logger: logger, MaxVisible: 3})
	return d
}

func (d *demo) send(msg tea.Msg) tea.Cmd {
	next, cmd := d.model.Update(msg)
	d.model = next.(Model)
	return cmd
}

func (d *demo) press(r rune) tea.Cmd {
	return d.send(tuitest.KeyPress(r))
}

// pump delivers queued sink messages the way Sink.Forward would.
func (d *demo) pump() {
	for _, msg := range d.sink.Drain() {
		d.send(msg)
	}
}

func (d *demo) titles() []string {
	var out []string
	for _, t := range d.model.board.toasts {
		out = append(out, t.displayed.Title)
	}
	return out
}

func TestModel_create(t *testing.T) {
	d := newDemo(t)

	d.press('n')
	assert.Equal(t, "created 00000001", d.model.status)
	assert.Zero(t, d.model.board.Len(), "nothing drawn until the sink message arrives")

	d.pump()
	require.Equal(t, []string{"Notification #1"}, d.titles())
	assert.Contains(t, tuitest.StripANSI(d.model.View()), "Notification #1")
}

func TestModel_expiry_then_detach(t *testing.T) {
	d := newDemo(t)
	d.press('n')
	d.pump()

	d.clock.Advance(demoDuration)
	d.pump()
	require.Equal(t, 1, d.model.board.Len())
	assert.True(t, d.model.board.toasts[0].hiding)

	_, ok := d.model.board.Newest()
	assert.False(t, ok, "hiding toasts are not editable")

	d.clock.Advance(notify.DefaultGracePeriod)
	d.pump()
	assert.Zero(t, d.model.board.Len())
}

func TestModel_edit_newest(t *testing.T) {
	d := newDemo(t)
	d.press('n')
	d.press('n')
	d.pump()

	d.press('e')
	d.pump()
	assert.Equal(t, "edited 00000002", d.model.status)

	edited := d.model.board.toasts[1].displayed
	assert.Equal(t, demoEditColor, edited.TitleColor)
	assert.Empty(t, edited.Icon)
	assert.Contains(t, edited.Message, "Edited at")

	first := d.model.board.toasts[0].displayed
	assert.Equal(t, notify.DefaultColor, first.TitleColor)
}

func TestModel_edit_rearms_expiry(t *testing.T) {
	d := newDemo(t)
	d.press('n')
	d.pump()

	d.clock.Advance(4 * time.Second)
	d.press('e')
	d.clock.Advance(4 * time.Second)
	d.pump()
	assert.False(t, d.model.board.toasts[0].hiding)

	d.clock.Advance(time.Second)
	d.pump()
	assert.True(t, d.model.board.toasts[0].hiding)
}

func TestModel_delete_newest(t *testing.T) {
	d := newDemo(t)
	d.press('n')
	d.press('n')
	d.pump()

	d.press('d')
	d.pump()
	assert.Equal(t, "deleted 00000002", d.model.status)
	assert.True(t, d.model.board.toasts[1].hiding)

	id, ok := d.model.board.Newest()
	require.True(t, ok)
	assert.Equal(t, notify.ID(1), id)
}

func TestModel_nothing_to_act_on(t *testing.T) {
	d := newDemo(t)

	d.press('e')
	assert.Equal(t, "nothing to edit", d.model.status)
	d.press('d')
	assert.Equal(t, "nothing to delete", d.model.status)
}

func TestModel_panic_is_reported(t *testing.T) {
	d := newDemo(t)

	cmd := d.press('p')
	require.NotNil(t, cmd)
	d.send(cmd())
	d.pump()

	assert.Equal(t, "panic recovered", d.model.status)
	assert.Equal(t, []string{"Error: UploadError"}, d.titles())
	assert.Equal(t, "could not upload report.pdf", d.model.board.toasts[0].displayed.Message)
	assert.Equal(t, "#f51212", d.model.board.toasts[0].displayed.TitleColor)
}

func TestModel_async_failure_is_reported(t *testing.T) {
	d := newDemo(t)

	d.press('a')
	d.hub.Wait()
	d.pump()

	assert.Equal(t, []string{"Async error: upload"}, d.titles())
	assert.Equal(t, "upload avatar.png: connection reset by peer", d.model.board.toasts[0].displayed.Message)
}

func TestModel_error_log_is_reported(t *testing.T) {
	d := newDemo(t)

	d.press('l')
	d.pump()

	assert.Equal(t, []string{"Critical error: storage"}, d.titles())
	assert.Equal(t, "disk quota exceeded", d.model.board.toasts[0].displayed.Message)
}

func TestModel_max_visible(t *testing.T) {
	d := newDemo(t)
	for range 4 {
		d.press('n')
	}
	d.pump()

	assert.Equal(t, 4, d.model.board.Len())
	visible := d.model.board.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, "Notification #2", visible[0].displayed.Title)

	view := tuitest.StripANSI(d.model.View())
	assert.NotContains(t, view, "Notification #1")
	assert.Contains(t, view, "Notification #4")
}

func TestModel_view_places_toasts_bottom_right(t *testing.T) {
	d := newDemo(t)
	d.send(tuitest.WindowSize(100, 30))
	d.press('n')
	d.pump()

	lines := strings.Split(tuitest.StripANSI(d.model.View()), "\n")
	require.NotEmpty(t, lines)

	last := -1
	for i, line := range lines {
		if strings.Contains(line, "Notification #1") {
			last = i
		}
	}
	require.GreaterOrEqual(t, last, 0)
	assert.Greater(t, last, 20, "toast is drawn near the bottom")
}

func TestModel_quit(t *testing.T) {
	d := newDemo(t)

	cmd := d.press('q')
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	cmd = d.send(tuitest.KeyCtrlC())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
