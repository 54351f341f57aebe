// Package chat provides the conversational view for the TUI.
package chat

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/components/input"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/components/status"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/components/transcript"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/keymap"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/messages"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/styles"
	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driving"
)

// View is the main conversation view with prompt, transcript and
// status bar.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.PromptInput
	transcript *transcript.Log
	statusbar  *status.Bar

	chatService   driving.ChatService
	conversation  driving.ConversationReader
	uploadService driving.UploadService
	ctx           context.Context

	backend   domain.BackendStatus
	uploading bool
	width     int
	height    int
	ready     bool
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chatService driving.ChatService,
	conversation driving.ConversationReader,
	uploadService driving.UploadService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewPromptInput(s),
		transcript:    transcript.NewLog(s),
		statusbar:     status.NewBar(s, km),
		chatService:   chatService,
		conversation:  conversation,
		uploadService: uploadService,
		ctx:           context.Background(),
		backend:       domain.StatusChecking,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.HealthChecked:
		v.backend = msg.Status
		v.statusbar.SetBackend(msg.Status)
		return v, nil

	case messages.ChatCompleted:
		v.syncTranscript()
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.Clear()
		return v, nil

	case messages.UploadStarted:
		v.uploading = true
		v.statusbar.SetState(status.StateUploading)
		v.statusbar.SetPercent(0)
		return v, pumpTransfer(msg.Events)

	case messages.UploadProgressed:
		return v.handleUploadProgressed(msg)

	case messages.UploadFinished:
		v.uploading = false
		v.syncTranscript()
		v.statusbar.Clear()
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		// Esc cancels upload path entry, otherwise it is ignored here.
		if v.input.Mode() == input.ModeUploadPath {
			v.input.SetMode(input.ModeQuestion)
		}
		return v, nil

	case msg.Type == tea.KeyEnter:
		return v.submit()

	case keymap.Matches(msg.String(), v.keymap.Upload):
		if v.input.Mode() == input.ModeQuestion {
			v.input.SetMode(input.ModeUploadPath)
		}
		return v, nil

	case msg.Type == tea.KeyUp:
		v.transcript.ScrollUp()
		return v, nil

	case msg.Type == tea.KeyDown:
		v.transcript.ScrollDown()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit dispatches the prompt content as a question or upload path.
func (v *View) submit() (*View, tea.Cmd) {
	value := strings.TrimSpace(v.input.Value())
	if value == "" {
		return v, nil
	}

	// An unreachable backend disables dispatch; everything typed so far
	// stays in the prompt.
	if !v.backend.Dispatchable() {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage("Backend is offline. Check the connection and try again.")
		return v, nil
	}

	if v.input.Mode() == input.ModeUploadPath {
		if v.uploading {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage("An upload is already in progress.")
			return v, nil
		}
		v.input.SetMode(input.ModeQuestion)
		return v, v.startUpload(value)
	}

	question := v.input.Value()
	v.input.Reset()
	v.statusbar.SetState(status.StateThinking)
	return v, v.ask(question)
}

// ask dispatches the question. The user entry lands in the transcript
// before the request goes out.
func (v *View) ask(question string) tea.Cmd {
	return func() tea.Msg {
		return messages.ChatCompleted{Err: v.chatService.Send(v.ctx, question)}
	}
}

// startUpload begins a transfer and hands its event stream to Update.
func (v *View) startUpload(path string) tea.Cmd {
	return func() tea.Msg {
		events, err := v.uploadService.Upload(v.ctx, path)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.UploadStarted{Events: events}
	}
}

// handleUploadProgressed applies one transfer event and keeps pumping.
func (v *View) handleUploadProgressed(msg messages.UploadProgressed) (*View, tea.Cmd) {
	switch msg.Event.Status {
	case domain.TransferInProgress:
		v.statusbar.SetState(status.StateUploading)
		v.statusbar.SetPercent(msg.Event.Percent)
	case domain.TransferSucceeded, domain.TransferFailed:
		v.syncTranscript()
	}
	return v, pumpTransfer(msg.Events)
}

// pumpTransfer waits for the next transfer event.
func pumpTransfer(events <-chan domain.TransferEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return messages.UploadFinished{}
		}
		return messages.UploadProgressed{Event: ev, Events: events}
	}
}

// syncTranscript pulls the latest conversation entries.
func (v *View) syncTranscript() {
	v.transcript.SetEntries(v.conversation.Entries())
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("OpenSquare"),
		"",
		v.transcript.View(),
		"",
		v.input.View(),
		"",
		v.statusbar.View(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.transcript.SetDimensions(width, height-8) // Reserve space for header, prompt, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Backend returns the connectivity status shown in the status bar.
func (v *View) Backend() domain.BackendStatus {
	return v.backend
}

// Uploading returns whether a transfer is displayed as in flight.
func (v *View) Uploading() bool {
	return v.uploading
}

// Transcript returns the rendered conversation entries.
func (v *View) Transcript() []domain.ConversationEntry {
	return v.transcript.Entries()
}

// InputMode returns the current prompt mode.
func (v *View) InputMode() input.Mode {
	return v.input.Mode()
}

// SetInputValue sets the prompt content (for testing).
func (v *View) SetInputValue(value string) {
	v.input.SetValue(value)
}
