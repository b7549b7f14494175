package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"github.com/uber/embedded-lsp/src/elsp/internal/errors"
	"github.com/uber/embedded-lsp/src/elsp/model"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// SessionToModel maps a Session entity to its model equivalent.
func SessionToModel(f *entity.Session) *model.Session {
	return &model.Session{
		UUID:             f.UUID,
		InitializeParams: f.InitializeParams,
		Conn:             f.Conn,
		WorkspaceRoot:    f.WorkspaceRoot,
		Initialized:      f.Initialized,
		ShuttingDown:     f.ShuttingDown,
	}
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(f *model.Session) (*entity.Session, error) {
	return &entity.Session{
		UUID:             f.UUID,
		InitializeParams: f.InitializeParams,
		Conn:             f.Conn,
		WorkspaceRoot:    f.WorkspaceRoot,
		Initialized:      f.Initialized,
		ShuttingDown:     f.ShuttingDown,
	}, nil
}

// UUIDToSession initializes a new Session entity with the assigned uuid and connection.
func UUIDToSession(u uuid.UUID, c *jsonrpc2.Conn) *entity.Session {
	return &entity.Session{
		UUID: u,
		Conn: c,
	}
}

// ContextToSessionUUID extracts the UUID from a context
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}

// SourceScriptToModel maps a SourceScript entity to its model equivalent.
func SourceScriptToModel(s *entity.SourceScript) *model.SourceScript {
	return &model.SourceScript{
		URI:            s.URI,
		LanguageID:     string(s.LanguageID),
		Snapshot:       s.Snapshot,
		Version:        s.Version,
		Generation:     s.Generation,
		Root:           s.Root,
		LanguagePlugin: s.LanguagePlugin,
	}
}

// ModelToSourceScript maps a model SourceScript to its entity equivalent.
func ModelToSourceScript(m *model.SourceScript) *entity.SourceScript {
	return &entity.SourceScript{
		URI:            m.URI,
		LanguageID:     protocol.LanguageIdentifier(m.LanguageID),
		Snapshot:       m.Snapshot,
		Version:        m.Version,
		Generation:     m.Generation,
		Root:           m.Root,
		LanguagePlugin: m.LanguagePlugin,
	}
}
