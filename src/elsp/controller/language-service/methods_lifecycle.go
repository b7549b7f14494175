package languageservice

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/multierr"
)

// Initialize will store information about a new connection and perform any setup needed.
func (c *controller) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s, err := c.sessions.Update(ctx, func(s *entity.Session) error {
		s.InitializeParams = params
		s.WorkspaceRoot = workspaceRoot(params)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating session state: %w", err)
	}

	if s.WorkspaceRoot != "" {
		if err := c.settings.Load(ctx, s.WorkspaceRoot); err != nil {
			c.logger.Warnf("loading workspace settings: %s", err)
			if err := c.ideGateway.LogMessage(ctx, &protocol.LogMessageParams{
				Message: fmt.Sprintf("Workspace settings were not loaded, defaults apply: %s", err),
				Type:    protocol.MessageTypeWarning,
			}); err != nil {
				c.logger.Warnf("logging settings failure to client: %s", err)
			}
		}
	}

	if err := c.registerSessionPlugins(ctx); err != nil {
		return nil, fmt.Errorf("registering session plugins: %w", err)
	}

	result := &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{
			Name: "Embedded Language Server",
		},
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindIncremental,
				Save: &protocol.SaveOptions{
					IncludeText: true,
				},
			},
		},
	}
	if err := c.appendCapabilities(ctx, result); err != nil {
		return nil, fmt.Errorf("computing capabilities: %w", err)
	}
	return result, nil
}

// appendCapabilities advertises the features implemented by at least one registered plugin.
func (c *controller) appendCapabilities(ctx context.Context, result *protocol.InitializeResult) error {
	has := func(method string) bool {
		return len(c.plugins(ctx, method)) > 0
	}
	capabilities := &result.Capabilities

	for method, provider := range map[string]*any{
		protocol.MethodTextDocumentDefinition:                &capabilities.DefinitionProvider,
		protocol.MethodTextDocumentTypeDefinition:            &capabilities.TypeDefinitionProvider,
		protocol.MethodTextDocumentImplementation:            &capabilities.ImplementationProvider,
		protocol.MethodTextDocumentReferences:                &capabilities.ReferencesProvider,
		protocol.MethodTextDocumentDocumentHighlight:         &capabilities.DocumentHighlightProvider,
		serviceplugin.MethodTextDocumentPrepareCallHierarchy: &capabilities.CallHierarchyProvider,
		protocol.MethodTextDocumentHover:                     &capabilities.HoverProvider,
		serviceplugin.MethodTextDocumentLinkedEditingRange:   &capabilities.LinkedEditingRangeProvider,
		serviceplugin.MethodTextDocumentMoniker:              &capabilities.MonikerProvider,
		protocol.MethodTextDocumentDocumentSymbol:            &capabilities.DocumentSymbolProvider,
		protocol.MethodTextDocumentFoldingRange:              &capabilities.FoldingRangeProvider,
		serviceplugin.MethodTextDocumentSelectionRange:            &capabilities.SelectionRangeProvider,
		protocol.MethodTextDocumentDocumentColor:             &capabilities.ColorProvider,
		protocol.MethodTextDocumentFormatting:                &capabilities.DocumentFormattingProvider,
		protocol.MethodTextDocumentRangeFormatting:           &capabilities.DocumentRangeFormattingProvider,
	} {
		if has(method) {
			*provider = true
		}
	}

	if has(protocol.MethodTextDocumentDocumentLink) {
		capabilities.DocumentLinkProvider = &protocol.DocumentLinkOptions{}
	}

	var err error
	if has(protocol.MethodTextDocumentRename) {
		err = multierr.Append(err, mapper.InitializeResultEnsureRenameProvider(result, has(protocol.MethodTextDocumentPrepareRename)))
	}
	if has(serviceplugin.MethodTextDocumentInlayHint) {
		err = multierr.Append(err, mapper.InitializeResultEnsureExperimental(result, "inlayHintProvider", true))
	}

	resolveCompletion := has(protocol.MethodCompletionItemResolve)
	for _, p := range c.plugins(ctx, protocol.MethodTextDocumentCompletion) {
		mapper.InitializeResultAppendCompletionProvider(result, &protocol.CompletionOptions{
			TriggerCharacters: p.Info.TriggerCharacters,
			ResolveProvider:   resolveCompletion,
		})
	}
	for _, p := range c.plugins(ctx, protocol.MethodTextDocumentSignatureHelp) {
		mapper.InitializeResultAppendSignatureHelpProvider(result, &protocol.SignatureHelpOptions{
			TriggerCharacters: p.Info.SignatureTriggerCharacters,
		})
	}
	resolveCodeAction := has(serviceplugin.MethodCodeActionResolve)
	for range c.plugins(ctx, protocol.MethodTextDocumentCodeAction) {
		err = multierr.Append(err, mapper.InitializeResultAppendCodeActionProvider(result, &protocol.CodeActionOptions{
			ResolveProvider: resolveCodeAction,
		}))
	}
	return err
}

// workspaceRoot picks the local directory of the first workspace folder, falling back to the root URI.
func workspaceRoot(params *protocol.InitializeParams) string {
	for _, folder := range params.WorkspaceFolders {
		if isFileURI(folder.URI) {
			return uri.URI(folder.URI).Filename()
		}
	}
	if isFileURI(string(params.RootURI)) {
		return params.RootURI.Filename()
	}
	return params.RootPath
}

func isFileURI(u string) bool {
	return strings.HasPrefix(u, uri.FileScheme+"://")
}

// Initialized handles any actions that need to occur immediately after initialization.
func (c *controller) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	if _, err := c.sessions.Update(ctx, func(s *entity.Session) error {
		s.Initialized = true
		return nil
	}); err != nil {
		return fmt.Errorf("updating session state: %w", err)
	}

	if err := c.ideGateway.ShowMessage(ctx, &protocol.ShowMessageParams{
		Message: "Connection to Embedded Language Server is now initialized.",
		Type:    protocol.MessageTypeInfo,
	}); err != nil {
		c.logger.Warnf("showing initialized message: %s", err)
	}
	return nil
}

// Shutdown is sent just before Exit to indicate that the session will exit.
func (c *controller) Shutdown(ctx context.Context) error {
	if _, err := c.sessions.Update(ctx, func(s *entity.Session) error {
		s.ShuttingDown = true
		return nil
	}); err != nil {
		return fmt.Errorf("updating session state: %w", err)
	}
	return nil
}

// Exit will be used to either clean up from an individual connection, or shutdown the whole server.
func (c *controller) Exit(ctx context.Context) error {
	if c.fullShutdown {
		// Zero out the timer to trigger immediate shutdown.
		c.idleTimerMu.Lock()
		if c.idleTimer != nil {
			c.idleTimer.Reset(0)
		}
		c.idleTimerMu.Unlock()
		return nil
	}

	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("error during session exit: %w", err)
	}
	return c.EndSession(ctx, s.UUID)
}

// RequestFullShutdown will set the controller to treat subsequent Shutdown and Exit requests as requests to exit the entire process.
func (c *controller) RequestFullShutdown(ctx context.Context) error {
	c.fullShutdown = true
	return nil
}

// InitSession creates a new empty session and returns its UUID.
func (c *controller) InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error) {
	defer c.refreshIdleTimer(ctx)

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	if err := c.ideGateway.RegisterClient(ctx, id, conn); err != nil {
		return uuid.Nil, err
	}
	if err := c.sessions.Set(ctx, mapper.UUIDToSession(id, conn)); err != nil {
		return uuid.Nil, err
	}

	c.stats.Counter("sessions_started").Inc(1)
	return id, nil
}

// EndSession includes any cleanup at the end of the session, during or after the last JSON-RPC request.
func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	defer c.refreshIdleTimer(ctx)

	err := multierr.Combine(
		c.docSync.EndSession(ctx, id),
		c.diagnostics.EndSession(ctx, id),
		c.settings.EndSession(ctx, id),
		c.ideGateway.DeregisterClient(ctx, id),
	)
	for _, e := range multierr.Errors(err) {
		c.logger.Error(e)
	}

	c.pluginMethodsMu.Lock()
	delete(c.pluginMethods, id)
	c.pluginMethodsMu.Unlock()

	c.stats.Counter("sessions_ended").Inc(1)
	return c.sessions.Delete(ctx, id)
}

// refreshIdleTimer ensures that the service shuts down after a defined inactivity period with no connections.
func (c *controller) refreshIdleTimer(ctx context.Context) error {
	c.idleTimerMu.Lock()
	defer c.idleTimerMu.Unlock()

	// First call starts the timer and leaves it running prior to first connection.
	if c.idleTimer == nil {
		c.idleTimer = time.AfterFunc(c.idleTimeoutMinutes, c.idleShutdown)
		return nil
	}

	// Subsequent calls stop the timer and restart it only if no connections are active.
	currentSessions, err := c.sessions.Count(ctx)
	if err != nil {
		return fmt.Errorf("error resetting timeout: %w", err)
	}

	c.idleTimer.Stop()
	if currentSessions == 0 {
		c.idleTimer.Reset(c.idleTimeoutMinutes)
	}
	return nil
}

func (c *controller) idleShutdown() {
	c.logger.Info("Shutdown signal received.")
	if err := c.shutdowner.Shutdown(); err != nil {
		os.Exit(1)
	}
}
