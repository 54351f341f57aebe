// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/keymap"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/styles"
	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

// State represents the current activity for display.
type State string

const (
	StateReady     State = "ready"
	StateThinking  State = "thinking"
	StateUploading State = "uploading"
	StateError     State = "error"
)

// Bar displays backend connectivity, current activity and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	backend domain.BackendStatus
	message string
	percent int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:  s,
		keymap:  km,
		state:   StateReady,
		backend: domain.StatusChecking,
		width:   80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (b *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := b.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders connectivity and activity.
func (b *Bar) renderLeft() string {
	conn := b.renderBackend()

	switch b.state {
	case StateThinking:
		return conn + "  " + b.styles.Muted.Render("Thinking...")
	case StateUploading:
		return conn + "  " + b.styles.Muted.Render(fmt.Sprintf("Uploading... %d%%", b.percent))
	case StateError:
		if b.message != "" {
			return conn + "  " + b.styles.Error.Render(b.message)
		}
		return conn + "  " + b.styles.Error.Render("Error")
	case StateReady:
		if b.message != "" {
			return conn + "  " + b.styles.Muted.Render(b.message)
		}
	}
	return conn
}

// renderBackend renders the connectivity indicator.
func (b *Bar) renderBackend() string {
	switch b.backend {
	case domain.StatusOnline:
		return b.styles.Success.Render("● online")
	case domain.StatusOffline:
		return b.styles.Error.Render("● offline")
	default:
		return b.styles.Warning.Render("● checking")
	}
}

// renderRight renders keybinding hints.
func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current activity state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current activity state.
func (b *Bar) State() State {
	return b.state
}

// SetBackend sets the backend connectivity indicator.
func (b *Bar) SetBackend(status domain.BackendStatus) {
	b.backend = status
}

// Backend returns the displayed connectivity status.
func (b *Bar) Backend() domain.BackendStatus {
	return b.backend
}

// SetMessage sets a custom message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetPercent sets the upload progress percentage.
func (b *Bar) SetPercent(percent int) {
	b.percent = percent
}

// Percent returns the upload progress percentage.
func (b *Bar) Percent() int {
	return b.percent
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}

// Clear resets the status bar to the ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
	b.percent = 0
}
