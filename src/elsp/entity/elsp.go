// Package entity contains the domain types of the embedded language server.
package entity

import (
	"slices"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// Session entity representing a single IDE session.
type Session struct {
	UUID             uuid.UUID                  `json:"uuid" zap:"uuid"`
	InitializeParams *protocol.InitializeParams `json:"-" zap:"-"`
	Conn             *jsonrpc2.Conn             `json:"-" zap:"-"`
	WorkspaceRoot    string                     `json:"workspaceRoot" zap:"workspaceRoot"`
	Initialized      bool                       `json:"initialized" zap:"initialized"`
	ShuttingDown     bool                       `json:"shuttingDown" zap:"shuttingDown"`
}

// Settings are the user-editable, per-workspace settings read from the settings file.
type Settings struct {
	// DisabledPlugins lists service plugin names that must not be invoked.
	DisabledPlugins []string `yaml:"disabledPlugins"`
	// Diagnostics toggles publishing of diagnostics.
	Diagnostics DiagnosticSettings `yaml:"diagnostics"`
	// Completion configures completion behaviour.
	Completion CompletionSettings `yaml:"completion"`
}

// PluginDisabled reports whether the service plugin with the given name is turned off.
func (s Settings) PluginDisabled(name string) bool {
	return slices.Contains(s.DisabledPlugins, name)
}

// DiagnosticSettings configures diagnostic publishing.
type DiagnosticSettings struct {
	Disabled     bool `yaml:"disabled"`
	SemanticOnly bool `yaml:"semanticOnly"`
}

// CompletionSettings configures completion.
type CompletionSettings struct {
	// IgnoreTriggerCharacters invokes every plugin regardless of its declared trigger characters.
	IgnoreTriggerCharacters bool `yaml:"ignoreTriggerCharacters"`
}
