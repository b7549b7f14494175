package diagnostics

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/controller/dispatcher"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	"github.com/uber/embedded-lsp/src/elsp/controller/settings"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	ideclient "github.com/uber/embedded-lsp/src/elsp/gateway/ide-client"
	"github.com/uber/embedded-lsp/src/elsp/internal/clock"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"github.com/uber/embedded-lsp/src/elsp/repository/script"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	_nameKey = "diagnostics"

	_titleWorkspaceProgress = "Checking open documents"
)

type phase int

const (
	_phaseSyntactic phase = iota
	_phaseSemantic
	_phaseCount
)

// Plugins lists, per phase, the plugins producing diagnostics in execution order.
type Plugins struct {
	Syntactic []serviceplugin.Registered
	Semantic  []serviceplugin.Registered
}

// Controller computes, caches, and publishes the diagnostics of open source documents.
type Controller interface {
	// Validate recomputes the diagnostics of the source document u and publishes them as they become available.
	Validate(ctx context.Context, u uri.URI, plugins Plugins) error
	// ValidateWorkspace validates every open document of the session. A newer sweep supersedes a running one.
	ValidateWorkspace(ctx context.Context, plugins Plugins) error
	// Forget drops the cached state of a closed document and clears its published diagnostics.
	Forget(ctx context.Context, u uri.URI) error
	// Invalidate drops every cached result of the session and aborts runs in flight.
	Invalidate(ctx context.Context)
	// EndSession drops all state of a session.
	EndSession(ctx context.Context, id uuid.UUID) error
}

// Params are inbound parameters to initialize a new diagnostics controller.
type Params struct {
	fx.In

	Dispatcher *dispatcher.Dispatcher
	Scripts    script.Repository
	Settings   settings.Controller
	IdeGateway ideclient.Gateway
	Clock      clock.Clock
	Config     config.Provider
	Logger     *zap.SugaredLogger
	Stats      tally.Scope
}

type phaseRecord struct {
	snapshot    entity.Snapshot
	document    *textdocument.TextDocument
	diagnostics []protocol.Diagnostic
}

// pluginKey addresses the diagnostics one plugin produced for one generated document.
type pluginKey struct {
	uri   uri.URI
	index int
}

type pluginEntry struct {
	version     int32
	diagnostics []protocol.Diagnostic
}

type documentState struct {
	generation uint64
	phases     [_phaseCount]*phaseRecord
	plugins    map[pluginKey]pluginEntry
}

// run identifies one validation of a document. Its results are stored only while it is still current.
type run struct {
	id    uuid.UUID
	uri   uri.URI
	state *documentState
	gen   uint64
}

type sessionState struct {
	documents map[uri.URI]*documentState
	sweep     uint64
}

type controller struct {
	dispatcher *dispatcher.Dispatcher
	documents  documents.Cache
	scripts    script.Repository
	settings   settings.Controller
	ideGateway ideclient.Gateway
	clock      clock.Clock
	logger     *zap.SugaredLogger
	stats      tally.Scope

	concurrency   int
	yieldInterval time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionState
}

// New creates a new diagnostics controller.
func New(p Params) (Controller, error) {
	cfg := entity.LanguageServiceConfig{}
	if err := p.Config.Get(entity.LanguageServiceConfigKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting configuration for %q: %w", entity.LanguageServiceConfigKey, err)
	}

	return &controller{
		dispatcher:    p.Dispatcher,
		documents:     p.Dispatcher.Documents(),
		scripts:       p.Scripts,
		settings:      p.Settings,
		ideGateway:    p.IdeGateway,
		clock:         p.Clock,
		logger:        p.Logger.With("controller", _nameKey),
		stats:         p.Stats.SubScope(_nameKey),
		concurrency:   max(cfg.WorkspaceDiagnostics.Concurrency, 1),
		yieldInterval: time.Duration(cfg.WorkspaceDiagnostics.YieldIntervalMillis) * time.Millisecond,
		sessions:      make(map[uuid.UUID]*sessionState),
	}, nil
}

func (c *controller) Validate(ctx context.Context, u uri.URI, plugins Plugins) error {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return err
	}

	s, _, err := c.documents.Resolve(ctx, u)
	if err != nil {
		return err
	}
	doc := c.documents.SourceDocument(s)
	userSettings := c.settings.Get(ctx)

	state, gen := c.begin(id, s, doc)
	r := run{id: id, uri: s.URI, state: state, gen: gen}

	if userSettings.Diagnostics.Disabled {
		c.clearPhases(r)
		return c.publish(ctx, s, nil)
	}

	var syntactic []protocol.Diagnostic
	if !userSettings.Diagnostics.SemanticOnly {
		syntactic = c.compute(ctx, s, r, _phaseSyntactic, plugins.Syntactic)
	}
	published, ok := c.store(r, _phaseSyntactic, s, doc, syntactic)
	if !ok {
		return nil
	}
	if !userSettings.Diagnostics.SemanticOnly {
		if err := c.publish(ctx, s, published); err != nil {
			return err
		}
	}

	if ctx.Err() != nil {
		return nil
	}

	semantic := c.compute(ctx, s, r, _phaseSemantic, plugins.Semantic)
	if published, ok = c.store(r, _phaseSemantic, s, doc, semantic); !ok {
		return nil
	}
	return c.publish(ctx, s, published)
}

func (c *controller) ValidateWorkspace(ctx context.Context, plugins Plugins) error {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return err
	}

	scripts, err := c.scripts.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	session := c.sessionLocked(id)
	session.sweep++
	sweep := session.sweep
	c.mu.Unlock()

	done := c.beginProgress(ctx, len(scripts))
	defer done()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, s := range scripts {
		if !c.sweepCurrent(id, sweep) {
			c.stats.Counter("sweeps_superseded").Inc(1)
			break
		}
		g.Go(func() error {
			if i > 0 {
				if err := c.clock.Wait(gCtx, c.yieldInterval); err != nil {
					return err
				}
			}
			if !c.sweepCurrent(id, sweep) {
				return nil
			}
			if err := c.Validate(gCtx, s.URI, plugins); err != nil {
				c.logger.Warnw(fmt.Sprintf("validating document failed: %s", err), "uri", s.URI)
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *controller) Forget(ctx context.Context, u uri.URI) error {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if session, ok := c.sessions[id]; ok {
		if state, ok := session.documents[u]; ok {
			state.generation++
			delete(session.documents, u)
		}
	}
	c.mu.Unlock()

	return c.ideGateway.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         u,
		Diagnostics: []protocol.Diagnostic{},
	})
}

func (c *controller) Invalidate(ctx context.Context) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	session, ok := c.sessions[id]
	if !ok {
		return
	}
	for _, state := range session.documents {
		state.generation++
		state.phases = [_phaseCount]*phaseRecord{}
		clear(state.plugins)
	}
	session.sweep++
	c.stats.Counter("invalidations").Inc(1)
}

func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if session, ok := c.sessions[id]; ok {
		for _, state := range session.documents {
			state.generation++
		}
	}
	delete(c.sessions, id)
	return nil
}

// begin starts a new run for the document and relocates the cached results of earlier runs onto its snapshot.
// If any cached diagnostic cannot be relocated, the results of every phase are dropped.
func (c *controller) begin(id uuid.UUID, s *entity.SourceScript, doc *textdocument.TextDocument) (*documentState, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session := c.sessionLocked(id)
	state, ok := session.documents[s.URI]
	if !ok {
		state = &documentState{plugins: make(map[pluginKey]pluginEntry)}
		session.documents[s.URI] = state
	}
	state.generation++

	var relocated [_phaseCount]*phaseRecord
	for i, record := range state.phases {
		if record == nil {
			continue
		}
		diagnostics, ok := relocate(record, s.Snapshot, doc)
		if !ok {
			c.stats.Counter("relocation_misses").Inc(1)
			state.phases = [_phaseCount]*phaseRecord{}
			return state, state.generation
		}
		relocated[i] = &phaseRecord{snapshot: s.Snapshot, document: doc, diagnostics: diagnostics}
	}
	for _, record := range relocated {
		if record != nil {
			c.stats.Counter("relocation_hits").Inc(1)
		}
	}
	state.phases = relocated
	return state, state.generation
}

// relocate moves the diagnostics of a record onto the given snapshot, failing if any of them cannot be moved.
func relocate(record *phaseRecord, snapshot entity.Snapshot, doc *textdocument.TextDocument) ([]protocol.Diagnostic, bool) {
	if record.snapshot == snapshot {
		return record.diagnostics, true
	}
	change := snapshot.GetChangeRange(record.snapshot)
	if change == nil {
		return nil, false
	}

	changed := protocol.Range{
		Start: record.document.PositionAt(change.Span.Start),
		End:   record.document.PositionAt(change.Span.End()),
	}
	newEnd := doc.PositionAt(change.NewEnd())

	relocated := make([]protocol.Diagnostic, 0, len(record.diagnostics))
	for _, d := range record.diagnostics {
		r, ok := UpdateRange(d.Range, changed, newEnd)
		if !ok {
			return nil, false
		}
		d.Range = r
		relocated = append(relocated, d)
	}
	return relocated, true
}

// compute runs one phase over every generated document of the script and returns source diagnostics.
func (c *controller) compute(ctx context.Context, s *entity.SourceScript, r run, p phase, plugins []serviceplugin.Registered) []protocol.Diagnostic {
	if len(plugins) == 0 {
		return nil
	}

	method := serviceplugin.MethodSyntacticDiagnostics
	if p == _phaseSemantic {
		method = serviceplugin.MethodSemanticDiagnostics
	}

	result, err := dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[struct{}, []protocol.Diagnostic]{
		Method:  method,
		URI:     s.URI,
		Plugins: plugins,
		Gate: func(plugin serviceplugin.Registered) bool {
			implemented, _ := plugin.Methods().Implements(method)
			return implemented
		},
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, _ struct{}) ([]protocol.Diagnostic, bool, error) {
			if p == _phaseSemantic {
				raw, err := plugin.Methods().ProvideSemanticDiagnostics(ctx, doc)
				if err != nil {
					return nil, false, err
				}
				return stamp(raw, doc, plugin.Index), true, nil
			}
			return c.syntactic(ctx, r, plugin, doc)
		},
		TranslateResult: func(diagnostics []protocol.Diagnostic, m *documents.Map) ([]protocol.Diagnostic, bool) {
			return c.toSource(ctx, diagnostics, m), true
		},
		Combine: func(results [][]protocol.Diagnostic) []protocol.Diagnostic {
			return slices.Concat(results...)
		},
	})
	if err != nil {
		c.logger.Warnw(fmt.Sprintf("computing %s failed: %s", method, err), "uri", s.URI)
		return nil
	}
	return result
}

// syntactic returns the stamped diagnostics of one plugin for one generated document, reusing them while the document version is unchanged.
func (c *controller) syntactic(ctx context.Context, r run, plugin serviceplugin.Registered, doc *textdocument.TextDocument) ([]protocol.Diagnostic, bool, error) {
	key := pluginKey{uri: doc.URI, index: plugin.Index}

	c.mu.Lock()
	entry, ok := r.state.plugins[key]
	c.mu.Unlock()
	if ok && entry.version == doc.Version {
		c.stats.Counter("plugin_cache_hits").Inc(1)
		return entry.diagnostics, true, nil
	}

	raw, err := plugin.Methods().ProvideDiagnostics(ctx, doc)
	if err != nil {
		return nil, false, err
	}
	stamped := stamp(raw, doc, plugin.Index)

	c.mu.Lock()
	if c.currentLocked(r) {
		r.state.plugins[key] = pluginEntry{version: doc.Version, diagnostics: stamped}
	}
	c.mu.Unlock()
	return stamped, true, nil
}

// stamp records the provenance of each diagnostic in its Data field.
func stamp(raw []protocol.Diagnostic, doc *textdocument.TextDocument, pluginIndex int) []protocol.Diagnostic {
	stamped := make([]protocol.Diagnostic, 0, len(raw))
	for _, d := range raw {
		original := d
		d.Data = entity.DiagnosticData{
			URI:         doc.URI,
			Version:     doc.Version,
			PluginIndex: pluginIndex,
			Original:    original,
		}
		stamped = append(stamped, d)
	}
	return stamped
}

// toSource translates diagnostics of a generated document into the source document, dropping those that cannot be reported there.
func (c *controller) toSource(ctx context.Context, diagnostics []protocol.Diagnostic, m *documents.Map) []protocol.Diagnostic {
	translated := make([]protocol.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		code := diagnosticCode(d.Code)
		filter := func(info entity.CodeInformation) bool {
			if !info.Enabled(entity.FeatureDiagnostics) {
				return false
			}
			return info.ShouldReportDiagnostic == nil || info.ShouldReportDiagnostic(code)
		}

		r, ok := m.ToSourceRange(d.Range, true, filter)
		if !ok {
			continue
		}
		d.Range = r

		if len(d.RelatedInformation) > 0 {
			related := make([]protocol.DiagnosticRelatedInformation, 0, len(d.RelatedInformation))
			for _, info := range d.RelatedInformation {
				if loc, ok := c.toSourceLocation(ctx, info.Location); ok {
					info.Location = loc
					related = append(related, info)
				}
			}
			d.RelatedInformation = related
		}
		translated = append(translated, d)
	}
	return translated
}

// toSourceLocation translates a location that may point into any generated document.
func (c *controller) toSourceLocation(ctx context.Context, loc protocol.Location) (protocol.Location, bool) {
	if !mapper.IsEmbeddedURI(loc.URI) {
		return loc, true
	}
	u, r, ok := c.documents.SourceRange(ctx, loc.URI, loc.Range, true, entity.FeatureFilter(entity.FeatureDiagnostics))
	return protocol.Location{URI: u, Range: r}, ok
}

// store saves the result of a phase if the run is still the latest for the document, and returns
// the diagnostics of every phase known so far.
func (c *controller) store(r run, p phase, s *entity.SourceScript, doc *textdocument.TextDocument, diagnostics []protocol.Diagnostic) ([]protocol.Diagnostic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(r) {
		c.stats.Counter("superseded").Inc(1)
		return nil, false
	}
	r.state.phases[p] = &phaseRecord{snapshot: s.Snapshot, document: doc, diagnostics: diagnostics}

	var all []protocol.Diagnostic
	for _, record := range r.state.phases {
		if record != nil {
			all = append(all, record.diagnostics...)
		}
	}
	return all, true
}

func (c *controller) clearPhases(r run) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentLocked(r) {
		r.state.phases = [_phaseCount]*phaseRecord{}
	}
}

func (c *controller) currentLocked(r run) bool {
	session, ok := c.sessions[r.id]
	if !ok {
		return false
	}
	return session.documents[r.uri] == r.state && r.state.generation == r.gen
}

func (c *controller) sweepCurrent(id uuid.UUID, sweep uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	session, ok := c.sessions[id]
	return ok && session.sweep == sweep
}

func (c *controller) sessionLocked(id uuid.UUID) *sessionState {
	session, ok := c.sessions[id]
	if !ok {
		session = &sessionState{documents: make(map[uri.URI]*documentState)}
		c.sessions[id] = session
	}
	return session
}

func (c *controller) publish(ctx context.Context, s *entity.SourceScript, diagnostics []protocol.Diagnostic) error {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	params := &protocol.PublishDiagnosticsParams{
		URI:         s.URI,
		Diagnostics: diagnostics,
	}
	if version, err := safecast.Conv[uint32](s.Version); err == nil {
		params.Version = version
	}

	c.stats.Counter("published").Inc(int64(len(diagnostics)))
	if err := c.ideGateway.PublishDiagnostics(ctx, params); err != nil {
		c.logger.Errorf("Error publishing diagnostics for %s: %s", s.URI, err)
		return err
	}
	return nil
}

// beginProgress reports the sweep to the IDE. Progress failures never fail the sweep.
func (c *controller) beginProgress(ctx context.Context, total int) (done func()) {
	tokenID, err := uuid.NewV4()
	if err != nil {
		return func() {}
	}
	token := protocol.NewProgressToken(tokenID.String())
	if err := c.ideGateway.WorkDoneProgressCreate(ctx, &protocol.WorkDoneProgressCreateParams{Token: *token}); err != nil {
		c.logger.Debugf("Workspace diagnostics progress unavailable: %s", err)
		return func() {}
	}
	_ = c.ideGateway.Progress(ctx, &protocol.ProgressParams{
		Token: *token,
		Value: &protocol.WorkDoneProgressBegin{
			Kind:    protocol.WorkDoneProgressKindBegin,
			Title:   _titleWorkspaceProgress,
			Message: fmt.Sprintf("%d documents", total),
		},
	})
	return func() {
		_ = c.ideGateway.Progress(ctx, &protocol.ProgressParams{
			Token: *token,
			Value: &protocol.WorkDoneProgressEnd{Kind: protocol.WorkDoneProgressKindEnd},
		})
	}
}

func diagnosticCode(code any) string {
	if code == nil {
		return ""
	}
	return fmt.Sprint(code)
}

