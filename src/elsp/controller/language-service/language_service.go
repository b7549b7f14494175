// Package languageservice implements the language features of the embedded language server on top of
// service plugins that only ever see generated documents.
package languageservice

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/controller/diagnostics"
	docsync "github.com/uber/embedded-lsp/src/elsp/controller/doc-sync"
	"github.com/uber/embedded-lsp/src/elsp/controller/dispatcher"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	linkedcode "github.com/uber/embedded-lsp/src/elsp/controller/linked-code"
	"github.com/uber/embedded-lsp/src/elsp/controller/settings"
	workspaceedit "github.com/uber/embedded-lsp/src/elsp/controller/workspace-edit"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	ideclient "github.com/uber/embedded-lsp/src/elsp/gateway/ide-client"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"github.com/uber/embedded-lsp/src/elsp/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "language-service"

	// Configuration keys
	_idleTimeoutMinutesKey = "idleTimeoutMinutes"

	_contextTimeoutBackground = 10 * time.Minute
)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// LSP Methods defined per protocol.
	Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error)
	Initialized(ctx context.Context, params *protocol.InitializedParams) error
	Shutdown(ctx context.Context) error
	Exit(ctx context.Context) error

	// Document related methods.
	DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error
	DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error
	DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error
	DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error

	// Navigation.
	Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.LocationLink, error)
	TypeDefinition(ctx context.Context, params *protocol.TypeDefinitionParams) ([]protocol.LocationLink, error)
	Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.LocationLink, error)
	References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error)
	DocumentHighlight(ctx context.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error)
	PrepareCallHierarchy(ctx context.Context, params *protocol.CallHierarchyPrepareParams) ([]protocol.CallHierarchyItem, error)

	// Rename.
	PrepareRename(ctx context.Context, params *protocol.PrepareRenameParams) (*protocol.Range, error)
	Rename(ctx context.Context, params *protocol.RenameParams) (*entity.WorkspaceEdit, error)

	// Information at a position.
	Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error)
	Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error)
	CompletionResolve(ctx context.Context, item *protocol.CompletionItem) (*protocol.CompletionItem, error)
	SignatureHelp(ctx context.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error)
	LinkedEditingRange(ctx context.Context, params *protocol.LinkedEditingRangeParams) (*protocol.LinkedEditingRanges, error)
	Moniker(ctx context.Context, params *protocol.MonikerParams) ([]protocol.Moniker, error)

	// Whole document.
	DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]protocol.DocumentSymbol, error)
	FoldingRange(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error)
	SelectionRange(ctx context.Context, params *protocol.SelectionRangeParams) ([]protocol.SelectionRange, error)
	DocumentLink(ctx context.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error)
	DocumentColor(ctx context.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error)

	// Ranges of a document.
	CodeAction(ctx context.Context, params *protocol.CodeActionParams) ([]entity.CodeAction, error)
	CodeActionResolve(ctx context.Context, action *entity.CodeAction) (*entity.CodeAction, error)
	Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error)
	RangeFormatting(ctx context.Context, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error)
	InlayHint(ctx context.Context, params *entity.InlayHintParams) ([]entity.InlayHint, error)

	// Custom methods for use within this service.
	RequestFullShutdown(ctx context.Context) error
	InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, uuid uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner fx.Shutdowner
	Lifecycle  fx.Lifecycle
	Sessions   session.Repository
	IdeGateway ideclient.Gateway
	Config     config.Provider
	Logger     *zap.SugaredLogger
	Stats      tally.Scope

	Dispatcher  *dispatcher.Dispatcher
	Resolver    *linkedcode.Resolver
	Edits       *workspaceedit.Transformer
	DocSync     docsync.Controller
	Diagnostics diagnostics.Controller
	Settings    settings.Controller

	ServicePlugins []serviceplugin.Plugin `group:"service_plugins"`
}

type controller struct {
	sessions   session.Repository
	shutdowner fx.Shutdowner
	ideGateway ideclient.Gateway
	logger     *zap.SugaredLogger
	stats      tally.Scope
	cfg        entity.LanguageServiceConfig

	dispatcher  *dispatcher.Dispatcher
	documents   documents.Cache
	resolver    *linkedcode.Resolver
	edits       *workspaceedit.Transformer
	docSync     docsync.Controller
	diagnostics diagnostics.Controller
	settings    settings.Controller
	pluginsAll  []serviceplugin.Plugin

	pluginMethodsMu sync.RWMutex
	pluginMethods   map[uuid.UUID]serviceplugin.RuntimePrioritizedMethods

	fullShutdown       bool
	idleTimer          *time.Timer
	idleTimerMu        sync.Mutex
	idleTimeoutMinutes time.Duration

	background       sync.WaitGroup
	backgroundCtx    context.Context
	cancelBackground context.CancelFunc
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	var timeoutMinutesRaw int64
	if err := p.Config.Get(_idleTimeoutMinutesKey).Populate(&timeoutMinutesRaw); err != nil || timeoutMinutesRaw == 0 {
		return nil, fmt.Errorf("unable to get idle timeout from config: %w", err)
	}
	var cfg entity.LanguageServiceConfig
	if err := p.Config.Get(entity.LanguageServiceConfigKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("unable to get language service config: %w", err)
	}

	backgroundCtx, cancel := context.WithCancel(context.Background())
	c := &controller{
		sessions:   p.Sessions,
		shutdowner: p.Shutdowner,
		ideGateway: p.IdeGateway,
		logger:     p.Logger.With("controller", _nameKey),
		stats:      p.Stats.SubScope("language_service"),
		cfg:        cfg,

		dispatcher:  p.Dispatcher,
		documents:   p.Dispatcher.Documents(),
		resolver:    p.Resolver,
		edits:       p.Edits,
		docSync:     p.DocSync,
		diagnostics: p.Diagnostics,
		settings:    p.Settings,
		pluginsAll:  p.ServicePlugins,

		pluginMethods:      make(map[uuid.UUID]serviceplugin.RuntimePrioritizedMethods),
		idleTimeoutMinutes: time.Duration(timeoutMinutesRaw) * time.Minute,

		backgroundCtx:    backgroundCtx,
		cancelBackground: cancel,
	}

	p.Settings.Subscribe(c.settingsChanged)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.refreshIdleTimer(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			c.stop()
			return nil
		},
	})
	return c, nil
}

// registerSessionPlugins collects the startup info of every service plugin and prioritizes their methods for this session.
func (c *controller) registerSessionPlugins(ctx context.Context) error {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	infos := make([]serviceplugin.PluginInfo, 0, len(c.pluginsAll))
	for _, plugin := range c.pluginsAll {
		if plugin == nil {
			continue
		}
		info, err := plugin.StartupInfo(ctx)
		if err != nil {
			return fmt.Errorf("getting plugin startup info: %w", err)
		}
		c.logger.Infow("plugin registration", "plugin", info.NameKey, "methods", len(info.Priorities))
		infos = append(infos, info)
	}

	methods, err := mapper.PluginInfoToRuntimePrioritizedMethods(infos)
	if err != nil {
		return fmt.Errorf("prioritizing plugin methods: %w", err)
	}

	c.pluginMethodsMu.Lock()
	defer c.pluginMethodsMu.Unlock()
	c.pluginMethods[id] = methods
	return nil
}

// plugins returns the plugins implementing method for the session in execution order,
// leaving out plugins disabled in the workspace settings.
func (c *controller) plugins(ctx context.Context, method string) []serviceplugin.Registered {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil
	}

	c.pluginMethodsMu.RLock()
	registered := c.pluginMethods[id][method]
	c.pluginMethodsMu.RUnlock()
	if len(registered) == 0 {
		return nil
	}

	settings := c.settings.Get(ctx)
	if len(settings.DisabledPlugins) == 0 {
		return registered
	}
	return slices.DeleteFunc(slices.Clone(registered), func(p serviceplugin.Registered) bool {
		return settings.PluginDisabled(p.Name())
	})
}

// plugin returns the plugin with the given registration index if it implements method.
func (c *controller) plugin(ctx context.Context, method string, index int) (serviceplugin.Registered, bool) {
	for _, p := range c.plugins(ctx, method) {
		if p.Index == index {
			return p, true
		}
	}
	return serviceplugin.Registered{}, false
}

func (c *controller) diagnosticPlugins(ctx context.Context) diagnostics.Plugins {
	return diagnostics.Plugins{
		Syntactic: c.plugins(ctx, serviceplugin.MethodSyntacticDiagnostics),
		Semantic:  c.plugins(ctx, serviceplugin.MethodSemanticDiagnostics),
	}
}

// runInBackground runs fn for the session of ctx after the current request returns.
// Background work is cancelled when the service stops.
func (c *controller) runInBackground(ctx context.Context, name string, fn func(ctx context.Context) error) {
	bgCtx := context.WithValue(c.backgroundCtx, entity.SessionContextKey, ctx.Value(entity.SessionContextKey))

	c.background.Add(1)
	go func() {
		defer c.background.Done()

		bgCtx, cancel := context.WithTimeout(bgCtx, _contextTimeoutBackground)
		defer cancel()
		if err := fn(bgCtx); err != nil {
			c.logger.Warnw("background work failed", "work", name, "error", err)
		}
	}()
}

// settingsChanged revalidates every open document of the session whose settings were reloaded.
func (c *controller) settingsChanged(ctx context.Context) {
	c.diagnostics.Invalidate(ctx)
	c.runInBackground(ctx, "workspace diagnostics", func(ctx context.Context) error {
		return c.diagnostics.ValidateWorkspace(ctx, c.diagnosticPlugins(ctx))
	})
}

func (c *controller) stop() {
	c.cancelBackground()
	c.background.Wait()

	c.idleTimerMu.Lock()
	defer c.idleTimerMu.Unlock()
	if c.idleTimer != nil {
		c.idleTimer.Stop()
	}
}
