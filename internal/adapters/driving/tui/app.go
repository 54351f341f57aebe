package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/keymap"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/messages"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/styles"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/views/chat"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/tui/views/documents"
)

// healthInterval is how often the backend is probed while the TUI runs.
const healthInterval = 10 * time.Second

// healthTick schedules the next periodic probe.
type healthTick struct{}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// chatView is the conversational view.
	chatView *chat.View

	// documentsView is the catalog browser view.
	documentsView *documents.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	chatView := chat.NewView(s, km, ports.Chat, ports.Conversation, ports.Uploads)
	documentsView := documents.NewView(s, km, ports.Documents)

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		chatView:      chatView,
		documentsView: documentsView,
		currentView:   messages.ViewChat,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.documentsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It probes the backend and warms the catalog cache on startup.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("OpenSquare"),
		a.chatView.Init(),
		a.probeHealth(),
		a.warmCatalog(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Toggle the catalog from anywhere
		if keymap.Matches(msg.String(), a.keymap.Documents) {
			if a.currentView == messages.ViewDocuments {
				a.currentView = messages.ViewChat
				return a, nil
			}
			a.currentView = messages.ViewDocuments
			return a, a.documentsView.Init()
		}

		// Help view swallows everything except esc
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewChat
			}
			return a, nil
		}

		if keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}

		// Forward key messages to the active view
		if a.currentView == messages.ViewDocuments {
			a.documentsView, cmd = a.documentsView.Update(msg)
			return a, cmd
		}
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case healthTick:
		return a, a.probeHealth()

	case messages.HealthChecked:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, tea.Batch(cmd, a.scheduleHealthTick())

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewDocuments {
			return a, a.documentsView.Init()
		}
		return a, nil

	case messages.DocumentsRefreshed:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.ChatCompleted, messages.UploadStarted,
		messages.UploadProgressed, messages.UploadFinished:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	if a.currentView == messages.ViewDocuments {
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd
	}
	a.chatView, cmd = a.chatView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.chatView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Chat:
  (type)      Enter a question
  enter       Send question
  ctrl+u      Upload a document
  ↑/↓         Scroll the conversation

Documents:
  ctrl+d      Toggle catalog view
  j/k, ↑/↓    Navigate documents
  r           Refresh catalog
  esc         Back to chat

Global:
  ctrl+h      This help
  ctrl+c      Quit

[esc] back to chat`
}

// probeHealth checks backend connectivity.
func (a *App) probeHealth() tea.Cmd {
	return func() tea.Msg {
		status := a.ports.Health.Probe(a.ctx)
		return messages.HealthChecked{Status: status, Report: a.ports.Health.Report()}
	}
}

// scheduleHealthTick arms the next periodic probe.
func (a *App) scheduleHealthTick() tea.Cmd {
	return tea.Tick(healthInterval, func(time.Time) tea.Msg {
		return healthTick{}
	})
}

// warmCatalog refreshes the document cache in the background.
func (a *App) warmCatalog() tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Documents.Refresh(a.ctx)
		return messages.DocumentsRefreshed{
			Count: len(a.ports.Documents.Documents()),
			Err:   err,
		}
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.chatView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
}
