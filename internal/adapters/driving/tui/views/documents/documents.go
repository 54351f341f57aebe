// Package documents provides the catalog browser view for the TUI.
package documents

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/keymap"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/messages"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/styles"
	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driving"
)

// View lists the cached document catalog.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	documentService driving.DocumentService
	ctx             context.Context

	docs       []domain.Document
	selected   int
	refreshing bool
	err        error
	width      int
	height     int
	ready      bool
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the cached catalog and triggers a silent refresh.
func (v *View) Init() tea.Cmd {
	v.docs = v.documentService.Documents()
	v.clampSelection()
	return v.refresh()
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsRefreshed:
		v.refreshing = false
		// Refresh failures keep the stale cache on screen.
		v.err = msg.Err
		v.docs = v.documentService.Documents()
		v.clampSelection()
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewChat}
		}
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.moveUp()
		return v, nil
	case tea.KeyDown:
		v.moveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.moveUp()
		return v, nil
	case "j":
		v.moveDown()
		return v, nil
	case "r":
		if v.refreshing {
			return v, nil
		}
		return v, v.refresh()
	}

	return v, nil
}

// refresh reloads the catalog from the backend.
func (v *View) refresh() tea.Cmd {
	v.refreshing = true
	return func() tea.Msg {
		err := v.documentService.Refresh(v.ctx)
		return messages.DocumentsRefreshed{
			Count: len(v.documentService.Documents()),
			Err:   err,
		}
	}
}

func (v *View) moveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

func (v *View) moveDown() {
	if v.selected < len(v.docs)-1 {
		v.selected++
	}
}

func (v *View) clampSelection() {
	if v.selected >= len(v.docs) {
		v.selected = len(v.docs) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

// View renders the documents view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Document Library"),
		"",
	}

	switch {
	case v.refreshing && len(v.docs) == 0:
		sections = append(sections, v.styles.Muted.Render("Loading catalog..."))
	case len(v.docs) == 0:
		sections = append(sections, v.styles.Muted.Render("No documents yet. Upload one with ctrl+u in the chat view."))
	default:
		sections = append(sections, v.renderList()...)
	}

	if v.err != nil {
		sections = append(sections, "",
			v.styles.Warning.Render("Refresh failed, showing cached catalog."))
	}

	sections = append(sections, "", v.renderHints())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderList renders the catalog rows with the selection highlighted.
func (v *View) renderList() []string {
	lines := make([]string, 0, len(v.docs))
	for i, doc := range v.docs {
		row := fmt.Sprintf("%s  %s | %s | %d", doc.Title, doc.Organization, doc.DocType, doc.Year)
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+row))
			continue
		}
		lines = append(lines, v.styles.Normal.Render("  "+row))
	}
	return lines
}

// renderHints renders keybinding hints.
func (v *View) renderHints() string {
	hints := ""
	for i, binding := range v.keymap.DocumentsHelp() {
		h := binding.Help()
		if i > 0 {
			hints += " | "
		}
		hints += fmt.Sprintf("%s: %s", h.Key, h.Desc)
	}
	return v.styles.Muted.Render(hints)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Documents returns the displayed catalog.
func (v *View) Documents() []domain.Document {
	return v.docs
}

// Selected returns the index of the highlighted row.
func (v *View) Selected() int {
	return v.selected
}

// Refreshing returns whether a refresh is in flight.
func (v *View) Refreshing() bool {
	return v.refreshing
}

// Err returns the last refresh error, if any.
func (v *View) Err() error {
	return v.err
}
