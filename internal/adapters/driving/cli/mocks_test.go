package cli

import (
	"context"
	"sync"
	"time"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

// mockConversation is an in-memory driving.ConversationReader.
type mockConversation struct {
	entries []domain.ConversationEntry
}

func (m *mockConversation) Entries() []domain.ConversationEntry {
	return append([]domain.ConversationEntry(nil), m.entries...)
}

func (m *mockConversation) Len() int {
	return len(m.entries)
}

// mockChat records queries and appends a canned reply to the
// conversation, mirroring the real orchestrator's behaviour.
type mockChat struct {
	conv    *mockConversation
	reply   domain.ConversationEntry
	sendErr error
	sent    []string
}

func (m *mockChat) Send(_ context.Context, query string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, query)
	m.conv.entries = append(m.conv.entries,
		domain.ConversationEntry{Kind: domain.EntryUser, Content: query},
		m.reply,
	)
	return nil
}

func (m *mockChat) Loading() bool { return false }

// mockDocuments is an in-memory driving.DocumentService.
type mockDocuments struct {
	docs       []domain.Document
	refreshErr error
	seedErr    error
	seedCalls  int
}

func (m *mockDocuments) Refresh(_ context.Context) error {
	return m.refreshErr
}

func (m *mockDocuments) Documents() []domain.Document {
	return append([]domain.Document(nil), m.docs...)
}

func (m *mockDocuments) Seed(_ context.Context) error {
	m.seedCalls++
	return m.seedErr
}

// mockUploads replays a scripted event stream.
type mockUploads struct {
	events    []domain.TransferEvent
	uploadErr error
	paths     []string
	metadata  domain.UploadMetadata
}

func (m *mockUploads) Upload(_ context.Context, path string) (<-chan domain.TransferEvent, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.paths = append(m.paths, path)

	ch := make(chan domain.TransferEvent, len(m.events)+1)
	for _, ev := range m.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func (m *mockUploads) Active() (domain.UploadTransfer, bool) {
	return domain.UploadTransfer{}, false
}

func (m *mockUploads) SetDefaultMetadata(meta domain.UploadMetadata) {
	m.metadata = meta
}

// mockHealth reports a fixed status.
type mockHealth struct {
	status domain.BackendStatus
	report *domain.HealthReport
}

func (m *mockHealth) Probe(_ context.Context) domain.BackendStatus { return m.status }
func (m *mockHealth) Status() domain.BackendStatus                 { return m.status }
func (m *mockHealth) Report() *domain.HealthReport                 { return m.report }
func (m *mockHealth) Watch(_ context.Context, _ time.Duration)     {}

// mockConfig is an in-memory driven.ConfigStore.
type mockConfig struct {
	mu   sync.Mutex
	data map[string]any
}

func newMockConfig() *mockConfig {
	return &mockConfig{data: make(map[string]any)}
}

func (m *mockConfig) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *mockConfig) GetString(key string) string {
	val, _ := m.Get(key)
	s, _ := val.(string)
	return s
}

func (m *mockConfig) GetInt(key string) int {
	val, _ := m.Get(key)
	n, _ := val.(int)
	return n
}

func (m *mockConfig) GetBool(key string) bool {
	val, _ := m.Get(key)
	b, _ := val.(bool)
	return b
}

func (m *mockConfig) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockConfig) Save() error { return nil }
func (m *mockConfig) Load() error { return nil }

// testServices bundles the mocks wired by setupTestServices.
type testServices struct {
	conv      *mockConversation
	chat      *mockChat
	documents *mockDocuments
	uploads   *mockUploads
	health    *mockHealth
	config    *mockConfig
}

// setupTestServices installs default mocks and returns them with a
// cleanup restoring the previous wiring.
func setupTestServices() (*testServices, func()) {
	prev := Services{
		Chat:         chatService,
		Conversation: conversation,
		Documents:    documentService,
		Uploads:      uploadService,
		Health:       healthService,
		Config:       configStore,
		Watcher:      folderWatcher,
	}

	conv := &mockConversation{}
	mocks := &testServices{
		conv: conv,
		chat: &mockChat{
			conv: conv,
			reply: domain.ConversationEntry{
				Kind:    domain.EntryAssistant,
				Content: "The health sector received 12% of the budget.",
				Sources: []domain.Citation{
					{Title: "National Budget 2024", Organization: "Ministry of Finance"},
				},
			},
		},
		documents: &mockDocuments{
			docs: []domain.Document{
				{ID: "doc-1", Title: "National Budget 2024", Organization: "Ministry of Finance", DocType: "Budget", Year: 2024},
				{ID: "doc-2", Title: "Education Statistics", Organization: "Ministry of Education", DocType: "Report", Year: 2023},
			},
		},
		uploads: &mockUploads{
			events: []domain.TransferEvent{
				{Percent: 50, Status: domain.TransferInProgress},
				{Percent: 100, Status: domain.TransferSucceeded},
			},
		},
		health: &mockHealth{
			status: domain.StatusOnline,
			report: &domain.HealthReport{
				Status:   "success",
				Services: map[string]string{"api": "online", "search": "online"},
			},
		},
		config: newMockConfig(),
	}

	SetServices(Services{
		Chat:         mocks.chat,
		Conversation: mocks.conv,
		Documents:    mocks.documents,
		Uploads:      mocks.uploads,
		Health:       mocks.health,
		Config:       mocks.config,
	})

	return mocks, func() {
		SetServices(prev)
	}
}
