package languageservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/embedded-lsp/idl/mock/jsonrpc2mock"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/mock/gomock"
)

func hoverOnly() *serviceplugin.Methods {
	return &serviceplugin.Methods{
		ProvideHover: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.Hover, error) {
			return nil, nil
		},
	}
}

func TestInitialize(t *testing.T) {
	t.Run("capabilities follow registered plugins", func(t *testing.T) {
		f := newFixture(t, entity.LanguageServiceConfig{})

		script := &serviceplugin.Methods{
			ProvideHover:           hoverOnly().ProvideHover,
			ProvideDefinition:      func(context.Context, *textdocument.TextDocument, protocol.Position) ([]protocol.LocationLink, error) { return nil, nil },
			ProvideCompletionItems: func(context.Context, *textdocument.TextDocument, protocol.Position, *protocol.CompletionContext) (*protocol.CompletionList, error) { return nil, nil },
			ResolveCompletionItem:  func(context.Context, *protocol.CompletionItem) (*protocol.CompletionItem, error) { return nil, nil },
			ProvideRenameRange:     func(context.Context, *textdocument.TextDocument, protocol.Position) (*protocol.Range, error) { return nil, nil },
			ProvideRenameEdits:     func(context.Context, *textdocument.TextDocument, protocol.Position, string) (*entity.WorkspaceEdit, error) { return nil, nil },
			ProvideInlayHints:      func(context.Context, *textdocument.TextDocument, protocol.Range) ([]entity.InlayHint, error) { return nil, nil },
		}
		style := &serviceplugin.Methods{
			ProvideCompletionItems: script.ProvideCompletionItems,
			ProvideSignatureHelp:   func(context.Context, *textdocument.TextDocument, protocol.Position, *protocol.SignatureHelpContext) (*protocol.SignatureHelp, error) { return nil, nil },
			ProvideCodeActions:     func(context.Context, *textdocument.TextDocument, protocol.Range, protocol.CodeActionContext) ([]entity.CodeAction, error) { return nil, nil },
			ProvideDocumentLinks:   func(context.Context, *textdocument.TextDocument) ([]protocol.DocumentLink, error) { return nil, nil },
			ProvideFormattingEdits: func(context.Context, *textdocument.TextDocument, protocol.Range, protocol.FormattingOptions) ([]protocol.TextEdit, error) { return nil, nil },
		}
		scriptPlugin := newPlugin("script", script,
			protocol.MethodTextDocumentHover,
			protocol.MethodTextDocumentDefinition,
			protocol.MethodTextDocumentCompletion,
			protocol.MethodCompletionItemResolve,
			protocol.MethodTextDocumentRename,
			protocol.MethodTextDocumentPrepareRename,
			serviceplugin.MethodTextDocumentInlayHint,
		)
		scriptPlugin.info.TriggerCharacters = []string{"."}
		stylePlugin := newPlugin("style", style,
			protocol.MethodTextDocumentCompletion,
			protocol.MethodTextDocumentSignatureHelp,
			protocol.MethodTextDocumentCodeAction,
			protocol.MethodTextDocumentDocumentLink,
			protocol.MethodTextDocumentRangeFormatting,
		)
		stylePlugin.info.TriggerCharacters = []string{".", ":"}
		stylePlugin.info.SignatureTriggerCharacters = []string{"("}

		result := f.register(t, scriptPlugin, stylePlugin)
		capabilities := result.Capabilities

		assert.Equal(t, "Embedded Language Server", result.ServerInfo.Name)
		assert.Equal(t, true, capabilities.HoverProvider)
		assert.Equal(t, true, capabilities.DefinitionProvider)
		assert.Equal(t, true, capabilities.DocumentRangeFormattingProvider)
		assert.Nil(t, capabilities.ReferencesProvider)
		assert.Nil(t, capabilities.DocumentFormattingProvider, "formatting is registered per method")

		require.NotNil(t, capabilities.CompletionProvider)
		assert.Equal(t, []string{".", ":"}, capabilities.CompletionProvider.TriggerCharacters)
		assert.True(t, capabilities.CompletionProvider.ResolveProvider)
		require.NotNil(t, capabilities.SignatureHelpProvider)
		assert.Equal(t, []string{"("}, capabilities.SignatureHelpProvider.TriggerCharacters)
		assert.Equal(t, &protocol.RenameOptions{PrepareProvider: true}, capabilities.RenameProvider)
		assert.Equal(t, &protocol.CodeActionOptions{}, capabilities.CodeActionProvider)
		assert.NotNil(t, capabilities.DocumentLinkProvider)
		assert.Equal(t, map[string]any{"inlayHintProvider": true}, capabilities.Experimental)

		s, err := f.sessions.GetFromContext(f.ctx)
		require.NoError(t, err)
		assert.NotNil(t, s.InitializeParams)
	})

	t.Run("disabled plugins are not advertised", func(t *testing.T) {
		f := newFixture(t, entity.LanguageServiceConfig{})
		f.settings.DisabledPlugins = []string{"hover"}

		result := f.register(t, newPlugin("hover", hoverOnly(), protocol.MethodTextDocumentHover))
		assert.Nil(t, result.Capabilities.HoverProvider)
	})

	t.Run("settings failure is reported to the client", func(t *testing.T) {
		f := newFixture(t, entity.LanguageServiceConfig{})
		f.settingsErr = errors.New("yaml: line 1: did not find expected node content")
		f.gateway.EXPECT().LogMessage(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, params *protocol.LogMessageParams) error {
			assert.Equal(t, protocol.MessageTypeWarning, params.Type)
			assert.Contains(t, params.Message, "did not find expected node content")
			return errors.New("client gone")
		})

		_, err := f.controller.Initialize(f.ctx, &protocol.InitializeParams{RootURI: "file:///home/user/app"})
		require.NoError(t, err)
		assert.Equal(t, 1, f.logs.FilterMessageSnippet("loading workspace settings").Len())
		assert.Equal(t, 1, f.logs.FilterMessageSnippet("client gone").Len())
	})

	t.Run("invalid plugin", func(t *testing.T) {
		f := newFixture(t, entity.LanguageServiceConfig{})
		f.controller.pluginsAll = []serviceplugin.Plugin{newPlugin("hover", &serviceplugin.Methods{}, protocol.MethodTextDocumentHover)}

		_, err := f.controller.Initialize(f.ctx, &protocol.InitializeParams{})
		assert.Error(t, err)
	})

	t.Run("missing session", func(t *testing.T) {
		f := newFixture(t, entity.LanguageServiceConfig{})
		_, err := f.controller.Initialize(context.WithValue(context.Background(), entity.SessionContextKey, f.id.String()), &protocol.InitializeParams{})
		assert.Error(t, err)
	})
}

func TestWorkspaceRoot(t *testing.T) {
	tests := []struct {
		name   string
		params protocol.InitializeParams
		want   string
	}{
		{
			name: "first file workspace folder",
			params: protocol.InitializeParams{
				WorkspaceFolders: []protocol.WorkspaceFolder{
					{URI: "untitled:Untitled-1", Name: "scratch"},
					{URI: "file:///home/user/app", Name: "app"},
				},
				RootURI: "file:///home/user/other",
			},
			want: "/home/user/app",
		},
		{
			name: "root uri",
			params: protocol.InitializeParams{
				RootURI:  "file:///home/user/other",
				RootPath: "/ignored",
			},
			want: "/home/user/other",
		},
		{
			name:   "root path",
			params: protocol.InitializeParams{RootPath: "/home/user/legacy"},
			want:   "/home/user/legacy",
		},
		{
			name: "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workspaceRoot(&tt.params))
		})
	}
}

func TestInitialized(t *testing.T) {
	f := newFixture(t, entity.LanguageServiceConfig{})

	f.gateway.EXPECT().ShowMessage(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, params *protocol.ShowMessageParams) error {
		assert.Equal(t, protocol.MessageTypeInfo, params.Type)
		return errors.New("sample")
	})
	require.NoError(t, f.controller.Initialized(f.ctx, &protocol.InitializedParams{}), "message failures are only logged")

	s, err := f.sessions.GetFromContext(f.ctx)
	require.NoError(t, err)
	assert.True(t, s.Initialized)
}

func TestShutdown(t *testing.T) {
	f := newFixture(t, entity.LanguageServiceConfig{})

	require.NoError(t, f.controller.Shutdown(f.ctx))
	s, err := f.sessions.GetFromContext(f.ctx)
	require.NoError(t, err)
	assert.True(t, s.ShuttingDown)

	assert.Error(t, f.controller.Shutdown(context.Background()))
}

func TestExit(t *testing.T) {
	t.Run("full shutdown enabled", func(t *testing.T) {
		f := newFixture(t, entity.LanguageServiceConfig{})
		require.NoError(t, f.controller.refreshIdleTimer(f.ctx))

		done := make(chan struct{})
		f.shutdowner.EXPECT().Shutdown().DoAndReturn(func(...fx.ShutdownOption) error {
			close(done)
			return nil
		})
		require.NoError(t, f.controller.RequestFullShutdown(f.ctx))
		require.NoError(t, f.controller.Exit(f.ctx))
		<-done

		count, err := f.sessions.Count(f.ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "sessions are left to the shutdown hooks")
	})

	t.Run("full shutdown disabled", func(t *testing.T) {
		f := newFixture(t, entity.LanguageServiceConfig{})
		f.register(t, newPlugin("hover", hoverOnly(), protocol.MethodTextDocumentHover))
		require.NoError(t, f.controller.refreshIdleTimer(f.ctx))

		f.diagnostics.EXPECT().EndSession(gomock.Any(), f.id).Return(nil)
		f.gateway.EXPECT().DeregisterClient(gomock.Any(), f.id).Return(nil)

		require.NoError(t, f.controller.Exit(f.ctx))

		count, err := f.sessions.Count(f.ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, f.controller.plugins(f.ctx, protocol.MethodTextDocumentHover))
		assert.Equal(t, int64(1), f.counter("testing.language_service.sessions_ended+"))
	})
}

func TestRequestFullShutdown(t *testing.T) {
	c := controller{}

	// fullShutdown is set to true
	assert.False(t, c.fullShutdown)
	c.RequestFullShutdown(context.Background())
	assert.True(t, c.fullShutdown)

	// Duplicate calls have no effect
	c.RequestFullShutdown(context.Background())
	assert.True(t, c.fullShutdown)
}

func TestInitSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	var conn jsonrpc2.Conn = jsonrpc2mock.NewMockConn(ctrl)

	t.Run("value set successfully", func(t *testing.T) {
		f := newFixture(t, entity.LanguageServiceConfig{})
		f.gateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), &conn).Return(nil)

		id, err := f.controller.InitSession(f.ctx, &conn)
		require.NoError(t, err)

		s, err := f.sessions.Get(f.ctx, id)
		require.NoError(t, err)
		assert.Same(t, &conn, s.Conn)
		assert.Equal(t, int64(1), f.counter("testing.language_service.sessions_started+"))
	})

	t.Run("client registration error", func(t *testing.T) {
		f := newFixture(t, entity.LanguageServiceConfig{})
		f.gateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("sample"))

		_, err := f.controller.InitSession(f.ctx, &conn)
		assert.Error(t, err)

		count, err := f.sessions.Count(f.ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestEndSession(t *testing.T) {
	f := newFixture(t, entity.LanguageServiceConfig{})

	f.diagnostics.EXPECT().EndSession(gomock.Any(), f.id).Return(errors.New("diagnostics"))
	f.gateway.EXPECT().DeregisterClient(gomock.Any(), f.id).Return(errors.New("gateway"))

	require.NoError(t, f.controller.EndSession(f.ctx, f.id), "cleanup failures are only logged")
	assert.Equal(t, 1, f.logs.FilterMessage("diagnostics").Len())
	assert.Equal(t, 1, f.logs.FilterMessage("gateway").Len())

	_, err := f.sessions.Get(f.ctx, f.id)
	assert.Error(t, err)
}

func TestIdleShutdown(t *testing.T) {
	f := newFixture(t, entity.LanguageServiceConfig{})
	f.controller.idleTimeoutMinutes = time.Hour
	f.gateway.EXPECT().DeregisterClient(gomock.Any(), gomock.Any()).Return(nil)
	f.diagnostics.EXPECT().EndSession(gomock.Any(), gomock.Any()).Return(nil)

	// The first refresh arms the timer before any connection.
	require.NoError(t, f.controller.refreshIdleTimer(f.ctx))

	// An active session keeps the timer stopped.
	require.NoError(t, f.controller.refreshIdleTimer(f.ctx))
	assert.False(t, f.controller.idleTimer.Stop())

	done := make(chan struct{})
	f.shutdowner.EXPECT().Shutdown().DoAndReturn(func(...fx.ShutdownOption) error {
		close(done)
		return nil
	})
	f.controller.idleTimeoutMinutes = time.Millisecond
	require.NoError(t, f.controller.EndSession(f.ctx, f.id))
	<-done
	assert.Equal(t, 1, f.logs.FilterMessage("Shutdown signal received.").Len())
}
