package tuitest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \nline  \n\n"
	assert.Equal(t, "bold\nline", StripANSI(in))
}

func TestKeyPress(t *testing.T) {
	msg, ok := KeyPress('n').(tea.KeyMsg)
	assert.True(t, ok)
	assert.Equal(t, "n", msg.String())
	assert.Equal(t, "ctrl+c", KeyCtrlC().(tea.KeyMsg).String())
}
