// Package model contains the repository layer representations of entities.
package model

import (
	"github.com/gofrs/uuid"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Session is the repository layer model for an individual IDE session.
type Session struct {
	UUID             uuid.UUID
	InitializeParams *protocol.InitializeParams
	Conn             *jsonrpc2.Conn
	WorkspaceRoot    string
	Initialized      bool
	ShuttingDown     bool
}

// SourceScript is the repository layer model for an open source file.
type SourceScript struct {
	URI            uri.URI
	LanguageID     string
	Snapshot       entity.Snapshot
	Version        int32
	Generation     uint64
	Root           *entity.VirtualCode
	LanguagePlugin string
}
