package languageservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/embedded-lsp/src/elsp/controller/diagnostics"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/mock/gomock"
)

const _plainURI = uri.URI("file:///notes.txt")

func TestDocumentSync(t *testing.T) {
	f := newFixture(t, entity.LanguageServiceConfig{})
	f.register(t, newPlugin("hover", hoverOnly(), protocol.MethodTextDocumentHover))

	var validated []uri.URI
	f.diagnostics.EXPECT().Validate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, u uri.URI, plugins diagnostics.Plugins) error {
		validated = append(validated, u)
		return nil
	}).Times(3)

	require.NoError(t, f.controller.DidOpen(f.ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: _plainURI, LanguageID: "plaintext", Version: 1, Text: "hello"},
	}))
	f.controller.background.Wait()

	require.NoError(t, f.controller.DidChange(f.ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: _plainURI}, Version: 2},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "hello world"}},
	}))
	f.controller.background.Wait()

	require.NoError(t, f.controller.DidSave(f.ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: _plainURI},
	}))
	f.controller.background.Wait()
	assert.Equal(t, []uri.URI{_plainURI, _plainURI, _plainURI}, validated)

	s, err := f.scripts.Get(f.ctx, _plainURI)
	require.NoError(t, err)
	assert.Equal(t, "hello world", s.Snapshot.GetText(0, s.Snapshot.GetLength()))

	f.diagnostics.EXPECT().Forget(gomock.Any(), _plainURI).Return(nil)
	require.NoError(t, f.controller.DidClose(f.ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: _plainURI},
	}))
	_, err = f.scripts.Get(f.ctx, _plainURI)
	assert.Error(t, err)
}

func TestDocumentSyncErrors(t *testing.T) {
	f := newFixture(t, entity.LanguageServiceConfig{})

	err := f.controller.DidChange(f.ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: _plainURI}, Version: 2},
	})
	assert.Error(t, err)

	err = f.controller.DidSave(f.ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: _plainURI},
	})
	assert.Error(t, err)

	err = f.controller.DidClose(f.ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: _plainURI},
	})
	assert.Error(t, err, "diagnostics are kept for documents that were never opened")
}

func TestValidationFailureIsLogged(t *testing.T) {
	f := newFixture(t, entity.LanguageServiceConfig{})

	f.diagnostics.EXPECT().Validate(gomock.Any(), _plainURI, gomock.Any()).Return(errors.New("sample"))
	require.NoError(t, f.controller.DidOpen(f.ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: _plainURI, Version: 1, Text: "hello"},
	}))
	f.controller.background.Wait()
	assert.Equal(t, 1, f.logs.FilterMessage("background work failed").Len())
}
