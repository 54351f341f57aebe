package tui

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrMissingConversation is returned when the conversation reader is not provided.
var ErrMissingConversation = errors.New("tui: conversation reader is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrMissingUploadService is returned when the upload service is not provided.
var ErrMissingUploadService = errors.New("tui: upload service is required")

// ErrMissingHealthService is returned when the health service is not provided.
var ErrMissingHealthService = errors.New("tui: health service is required")
