package entity

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// DiagnosticData records where a diagnostic came from so follow-up requests can reach the same plugin.
type DiagnosticData struct {
	// URI is the document the originating plugin saw, generated or source.
	URI uri.URI `json:"uri"`
	// Version is the version of that document when the diagnostic was produced.
	Version int32 `json:"version"`
	// PluginIndex is the registration index of the originating plugin.
	PluginIndex int `json:"pluginIndex"`
	// IsFormat marks diagnostics produced by formatting checks.
	IsFormat bool `json:"isFormat,omitempty"`
	// Original is the diagnostic as the plugin returned it, in its own coordinates.
	Original protocol.Diagnostic `json:"original"`
}

// CodeActionData is stamped on code actions so they can be resolved by the plugin that produced them.
type CodeActionData struct {
	URI         uri.URI `json:"uri"`
	Version     int32   `json:"version"`
	PluginIndex int     `json:"pluginIndex"`
	Original    any     `json:"original,omitempty"`
}

// CompletionData is stamped on completion items so they can be resolved by the plugin that produced them.
type CompletionData struct {
	URI         uri.URI `json:"uri"`
	EmbeddedURI uri.URI `json:"embeddedUri,omitempty"`
	PluginIndex int     `json:"pluginIndex"`
	Original    any     `json:"original,omitempty"`
}
