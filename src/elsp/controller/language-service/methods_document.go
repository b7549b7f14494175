package languageservice

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

func (c *controller) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s, err := c.docSync.DidOpen(ctx, params)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}
	c.validate(ctx, s.URI)
	return nil
}

func (c *controller) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	s, err := c.docSync.DidChange(ctx, params)
	if err != nil {
		return fmt.Errorf("changing document: %w", err)
	}
	c.validate(ctx, s.URI)
	return nil
}

func (c *controller) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s, err := c.docSync.DidSave(ctx, params)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	c.validate(ctx, s.URI)
	return nil
}

func (c *controller) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	if _, err := c.docSync.DidClose(ctx, params); err != nil {
		return fmt.Errorf("closing document: %w", err)
	}
	return c.diagnostics.Forget(ctx, params.TextDocument.URI)
}

// validate recomputes the diagnostics of a document once the current request has returned.
func (c *controller) validate(ctx context.Context, u uri.URI) {
	plugins := c.diagnosticPlugins(ctx)
	c.runInBackground(ctx, "diagnostics", func(ctx context.Context) error {
		return c.diagnostics.Validate(ctx, u, plugins)
	})
}
