package mapper

import (
	"errors"

	"go.lsp.dev/protocol"
)

// InitializeResultAppendCodeActionProvider appends a CodeActionProvider into an existing InitializeResult, adding to existing values if present or initializing an entry if not yet present.
func InitializeResultAppendCodeActionProvider(initResult *protocol.InitializeResult, newOptions *protocol.CodeActionOptions) error {
	if initResult.Capabilities.CodeActionProvider == nil {
		initResult.Capabilities.CodeActionProvider = newOptions
		return nil
	}

	currentCodeActionOptions, ok := initResult.Capabilities.CodeActionProvider.(*protocol.CodeActionOptions)
	if !ok {
		return errors.New("CodeActionProvider does not match expected type of *protocol.CodeActionOptions")
	}

	currentCodeActionOptions.CodeActionKinds = appendMissing(currentCodeActionOptions.CodeActionKinds, newOptions.CodeActionKinds)
	if newOptions.ResolveProvider {
		currentCodeActionOptions.ResolveProvider = true
	}

	initResult.Capabilities.CodeActionProvider = currentCodeActionOptions
	return nil
}

// InitializeResultAppendCompletionProvider appends a CompletionProvider into an existing InitializeResult.
// Trigger characters are merged, and the resolve provider is enabled if any plugin enables it.
func InitializeResultAppendCompletionProvider(initResult *protocol.InitializeResult, newOptions *protocol.CompletionOptions) {
	if initResult.Capabilities.CompletionProvider == nil {
		initResult.Capabilities.CompletionProvider = &protocol.CompletionOptions{}
	}

	current := initResult.Capabilities.CompletionProvider
	current.TriggerCharacters = appendMissing(current.TriggerCharacters, newOptions.TriggerCharacters)
	if newOptions.ResolveProvider {
		current.ResolveProvider = true
	}
}

// InitializeResultAppendSignatureHelpProvider appends a SignatureHelpProvider into an existing InitializeResult, merging trigger characters.
func InitializeResultAppendSignatureHelpProvider(initResult *protocol.InitializeResult, newOptions *protocol.SignatureHelpOptions) {
	if initResult.Capabilities.SignatureHelpProvider == nil {
		initResult.Capabilities.SignatureHelpProvider = &protocol.SignatureHelpOptions{}
	}

	current := initResult.Capabilities.SignatureHelpProvider
	current.TriggerCharacters = appendMissing(current.TriggerCharacters, newOptions.TriggerCharacters)
	current.RetriggerCharacters = appendMissing(current.RetriggerCharacters, newOptions.RetriggerCharacters)
}

// InitializeResultEnsureRenameProvider ensures the rename provider capability is set.
// If enablePrepareProvider is true in at least one call across all plugins, then the final result for PrepareProvider will be true.
func InitializeResultEnsureRenameProvider(initResult *protocol.InitializeResult, enablePrepareProvider bool) error {
	if initResult.Capabilities.RenameProvider == nil {
		initResult.Capabilities.RenameProvider = &protocol.RenameOptions{}
	}

	renameOptions, ok := initResult.Capabilities.RenameProvider.(*protocol.RenameOptions)
	if !ok {
		return errors.New("RenameProvider does not match expected type of *protocol.RenameOptions")
	}
	if enablePrepareProvider {
		renameOptions.PrepareProvider = true
	}
	return nil
}

// InitializeResultEnsureExperimental sets a key of the experimental capabilities, initializing them if not yet present.
func InitializeResultEnsureExperimental(initResult *protocol.InitializeResult, key string, value any) error {
	if initResult.Capabilities.Experimental == nil {
		initResult.Capabilities.Experimental = map[string]any{}
	}

	experimental, ok := initResult.Capabilities.Experimental.(map[string]any)
	if !ok {
		return errors.New("Experimental does not match expected type of map[string]any")
	}
	experimental[key] = value
	return nil
}

// appendMissing adds the values that are not already present, preserving the order of both lists.
func appendMissing[T comparable](current []T, values []T) []T {
	if len(values) == 0 {
		return current
	}

	seen := make(map[T]struct{}, len(current))
	for _, v := range current {
		seen[v] = struct{}{}
	}
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			current = append(current, v)
		}
	}
	return current
}
