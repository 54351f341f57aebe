// Package transcript renders the conversation history for the TUI.
package transcript

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/styles"
	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

// Log displays conversation entries oldest-first, pinned to the newest
// entry unless the user scrolls up.
type Log struct {
	styles  *styles.Styles
	entries []domain.ConversationEntry
	offset  int
	pinned  bool
	width   int
	height  int
}

// NewLog creates a new transcript component.
func NewLog(s *styles.Styles) *Log {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Log{
		styles: s,
		pinned: true,
		width:  80,
		height: 16,
	}
}

// Init initialises the transcript.
func (l *Log) Init() tea.Cmd {
	return nil
}

// Update handles transcript messages.
func (l *Log) Update(_ tea.Msg) (*Log, tea.Cmd) {
	// Log is passive, updated via Set methods
	return l, nil
}

// SetEntries replaces the displayed entries. While pinned, the view
// follows the newest entry.
func (l *Log) SetEntries(entries []domain.ConversationEntry) {
	l.entries = entries
	if l.pinned {
		l.scrollToBottom()
	}
}

// Entries returns the displayed entries.
func (l *Log) Entries() []domain.ConversationEntry {
	return l.entries
}

// ScrollUp moves one line back in history and unpins the view.
func (l *Log) ScrollUp() {
	if l.offset > 0 {
		l.offset--
		l.pinned = false
	}
}

// ScrollDown moves one line forward, re-pinning at the bottom.
func (l *Log) ScrollDown() {
	lines := l.renderLines()
	if l.offset < l.maxOffset(lines) {
		l.offset++
	}
	if l.offset == l.maxOffset(lines) {
		l.pinned = true
	}
}

// View renders the visible window of the transcript.
func (l *Log) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render("Ask a question to get started, or press ctrl+u to upload a document.")
	}

	lines := l.renderLines()
	start := l.offset
	if start > l.maxOffset(lines) {
		start = l.maxOffset(lines)
	}
	end := start + l.height
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

// renderLines flattens the entries into styled display lines.
func (l *Log) renderLines() []string {
	var lines []string
	for _, entry := range l.entries {
		lines = append(lines, l.renderEntry(entry)...)
		lines = append(lines, "")
	}
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (l *Log) renderEntry(entry domain.ConversationEntry) []string {
	wrap := l.styles.Normal.Width(l.width)

	switch entry.Kind {
	case domain.EntryUser:
		label := l.styles.User.Render("You")
		return append([]string{label}, strings.Split(wrap.Render(entry.Content), "\n")...)

	case domain.EntryAssistant:
		label := l.styles.Subtitle.Render("OpenSquare")
		lines := append([]string{label}, strings.Split(wrap.Render(entry.Content), "\n")...)
		for _, src := range entry.Sources {
			citation := l.styles.Citation.Render("  └ " + src.Title + " (" + src.Organization + ")")
			lines = append(lines, citation)
		}
		return lines

	case domain.EntryError:
		return strings.Split(l.styles.Error.Width(l.width).Render(entry.Content), "\n")

	case domain.EntrySuccess:
		return strings.Split(l.styles.Success.Width(l.width).Render(entry.Content), "\n")
	}

	return strings.Split(wrap.Render(entry.Content), "\n")
}

// maxOffset is the first line index from which the remaining lines fit
// the viewport.
func (l *Log) maxOffset(lines []string) int {
	if len(lines) <= l.height {
		return 0
	}
	return len(lines) - l.height
}

// scrollToBottom pins the view to the newest entry.
func (l *Log) scrollToBottom() {
	l.offset = l.maxOffset(l.renderLines())
	l.pinned = true
}

// SetDimensions sets the viewport size.
func (l *Log) SetDimensions(width, height int) {
	if width > 0 {
		l.width = width
	}
	if height > 0 {
		l.height = height
	}
	if l.pinned {
		l.scrollToBottom()
	}
}

// Width returns the current width.
func (l *Log) Width() int {
	return l.width
}

// Height returns the current height.
func (l *Log) Height() int {
	return l.height
}
