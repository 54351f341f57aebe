// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/styles"
)

// Mode selects what the prompt is asking for.
type Mode int

const (
	// ModeQuestion accepts a question for the backend.
	ModeQuestion Mode = iota
	// ModeUploadPath accepts a path to a document to upload.
	ModeUploadPath
)

// PromptInput wraps a bubbles textinput that doubles as the question
// prompt and the upload path prompt.
type PromptInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	mode      Mode
	width     int
}

// NewPromptInput creates a new prompt input component.
func NewPromptInput(s *styles.Styles) *PromptInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask a question about the documents..."
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &PromptInput{
		textinput: ti,
		styles:    s,
		mode:      ModeQuestion,
		width:     50,
	}
}

// Init initialises the prompt input.
func (p *PromptInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PromptInput) Update(msg tea.Msg) (*PromptInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the prompt input.
func (p *PromptInput) View() string {
	label := p.styles.Title.Render(p.label())
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

func (p *PromptInput) label() string {
	if p.mode == ModeUploadPath {
		return "Upload: "
	}
	return "Ask: "
}

// SetMode switches the prompt between question and upload path entry,
// clearing the current value.
func (p *PromptInput) SetMode(mode Mode) {
	p.mode = mode
	p.textinput.Reset()
	if mode == ModeUploadPath {
		p.textinput.Placeholder = "Path to a pdf, xlsx, xls or csv file..."
		return
	}
	p.textinput.Placeholder = "Ask a question about the documents..."
}

// Mode returns the current prompt mode.
func (p *PromptInput) Mode() Mode {
	return p.mode
}

// Value returns the current input value.
func (p *PromptInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PromptInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *PromptInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PromptInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PromptInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PromptInput) SetWidth(width int) {
	p.width = width
	// Account for label and padding
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PromptInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *PromptInput) Reset() {
	p.textinput.Reset()
}
