package docsync

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	elsperrors "github.com/uber/embedded-lsp/src/elsp/internal/errors"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	textsnapshot "github.com/uber/embedded-lsp/src/elsp/internal/text-snapshot"
	"github.com/uber/embedded-lsp/src/elsp/repository/script"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_nameKey        = "doc-sync"
	_maxFileSizeKey = "maxFileSizeBytes"

	_errEmbedding = "generating code for %q with %q: %w"
)

// Controller keeps the source scripts of every session in sync with the editor buffers.
// Every method that changes a script returns the script as stored, with its new generation.
type Controller interface {
	// DidOpen stores a newly opened document and generates its code.
	DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) (*entity.SourceScript, error)
	// DidChange applies incremental changes and regenerates the code.
	DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) (*entity.SourceScript, error)
	// DidSave reconciles the buffer with the saved text, if the client sent it.
	DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) (*entity.SourceScript, error)
	// DidClose drops the document and every cache row derived from it. It returns the closed script, or nil.
	DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) (*entity.SourceScript, error)
	// EndSession drops every document of the session.
	EndSession(ctx context.Context, id uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Scripts         script.Repository
	Documents       documents.Cache
	LanguagePlugins []entity.LanguagePlugin `group:"language_plugins"`
	Config          config.Provider
	Logger          *zap.SugaredLogger
	Stats           tally.Scope
}

type controller struct {
	scripts          script.Repository
	documents        documents.Cache
	plugins          []entity.LanguagePlugin
	logger           *zap.SugaredLogger
	stats            tally.Scope
	maxFileSizeBytes int64
}

// New creates a new controller for document sync.
func New(p Params) (Controller, error) {
	var maxFileSizeBytes int64
	if err := p.Config.Get(_maxFileSizeKey).Populate(&maxFileSizeBytes); err != nil {
		return nil, fmt.Errorf("unable to get maximum file size from config: %w", err)
	}

	return &controller{
		scripts:          p.Scripts,
		documents:        p.Documents,
		plugins:          p.LanguagePlugins,
		logger:           p.Logger.With("controller", _nameKey),
		stats:            p.Stats.SubScope("doc_sync"),
		maxFileSizeBytes: maxFileSizeBytes,
	}, nil
}

func (c *controller) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) (*entity.SourceScript, error) {
	item := params.TextDocument
	s := &entity.SourceScript{
		URI:        item.URI,
		LanguageID: item.LanguageID,
		Snapshot:   textsnapshot.New(item.Text),
		Version:    item.Version,
	}
	if s.LanguageID == "" {
		s.LanguageID = c.languageID(item.URI)
	}

	if err := c.validateSize(item.URI, item.Text); err != nil {
		// Oversized documents stay open without generated code so that the editor's requests still resolve.
		c.logger.Warnf("not generating code: %v", err)
	} else {
		c.create(ctx, s)
	}

	c.stats.Counter("opened").Inc(1)
	return c.store(ctx, s)
}

func (c *controller) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) (*entity.SourceScript, error) {
	prev, err := c.scripts.Get(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	if params.TextDocument.Version <= prev.Version {
		c.stats.Counter("outdated_changes").Inc(1)
		return nil, &elsperrors.DocumentOutdatedError{
			URI:      prev.URI,
			Current:  prev.Version,
			Received: params.TextDocument.Version,
		}
	}

	snapshot, err := applyContentChanges(prev, params.ContentChanges)
	if err != nil {
		return nil, fmt.Errorf("adding changes to document: %w", err)
	}

	c.stats.Counter("changes").Inc(int64(len(params.ContentChanges)))
	return c.replace(ctx, prev, snapshot, params.TextDocument.Version)
}

func (c *controller) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) (*entity.SourceScript, error) {
	prev, err := c.scripts.Get(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	if params.Text == "" || params.Text == prev.Snapshot.GetText(0, prev.Snapshot.GetLength()) {
		return prev, nil
	}

	// Document text should already be updated by didChange, but this reconciles it in case something got out of sync.
	c.stats.Counter("save_reconciled").Inc(1)
	return c.replace(ctx, prev, textsnapshot.New(params.Text), prev.Version)
}

func (c *controller) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) (*entity.SourceScript, error) {
	s, err := c.scripts.Delete(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	c.documents.EvictAll(params.TextDocument.URI)
	return s, nil
}

func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	sessionCtx := context.WithValue(ctx, entity.SessionContextKey, id)
	scripts, err := c.scripts.List(sessionCtx)
	if err != nil {
		return err
	}
	for _, s := range scripts {
		c.documents.EvictAll(s.URI)
	}
	return c.scripts.DeleteSession(ctx, id)
}

// replace stores a new snapshot of prev, regenerating its code from the previous tree where possible.
func (c *controller) replace(ctx context.Context, prev *entity.SourceScript, snapshot *textsnapshot.Snapshot, version int32) (*entity.SourceScript, error) {
	s := &entity.SourceScript{
		URI:        prev.URI,
		LanguageID: prev.LanguageID,
		Snapshot:   snapshot,
		Version:    version,
	}

	if err := c.validateSize(s.URI, snapshot.String()); err != nil {
		c.logger.Warnf("dropping generated code: %v", err)
	} else if !c.update(ctx, prev, s) {
		c.create(ctx, s)
	}
	return c.store(ctx, s)
}

// store saves the script and evicts the cache rows of the generation it replaces.
func (c *controller) store(ctx context.Context, s *entity.SourceScript) (*entity.SourceScript, error) {
	prev, err := c.scripts.Set(ctx, s)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		c.documents.Evict(prev.URI, prev.Generation)
	}
	return s, nil
}

// create asks each language plugin in turn to generate code, keeping the first tree produced.
func (c *controller) create(ctx context.Context, s *entity.SourceScript) {
	var errs error
	for _, plugin := range c.plugins {
		if _, ok := plugin.GetLanguageID(s.URI); !ok {
			continue
		}
		root, err := plugin.CreateVirtualCode(ctx, s.URI, s.LanguageID, s.Snapshot)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf(_errEmbedding, s.URI, plugin.Name(), err))
			continue
		}
		if root != nil {
			s.Root, s.LanguagePlugin = root, plugin.Name()
			break
		}
	}
	c.embeddingFailed(errs)
}

// update regenerates code with the plugin that produced the previous tree. It reports false if that is not possible.
func (c *controller) update(ctx context.Context, prev, s *entity.SourceScript) bool {
	if prev.Root == nil {
		return false
	}
	for _, plugin := range c.plugins {
		if plugin.Name() != prev.LanguagePlugin {
			continue
		}
		root, err := plugin.UpdateVirtualCode(ctx, s.URI, prev.Root, s.Snapshot)
		if err != nil {
			c.embeddingFailed(fmt.Errorf(_errEmbedding, s.URI, plugin.Name(), err))
			return false
		}
		if root == nil {
			return false
		}
		s.Root, s.LanguagePlugin = root, plugin.Name()
		return true
	}
	return false
}

func (c *controller) embeddingFailed(err error) {
	for _, e := range multierr.Errors(err) {
		c.logger.Error(e)
		c.stats.Counter("embedding_errors").Inc(1)
	}
}

func (c *controller) languageID(u uri.URI) protocol.LanguageIdentifier {
	for _, plugin := range c.plugins {
		if id, ok := plugin.GetLanguageID(u); ok {
			return id
		}
	}
	return ""
}

func (c *controller) validateSize(u uri.URI, text string) error {
	if c.maxFileSizeBytes <= 0 {
		return nil
	}
	size := int64(len(text))
	if size > c.maxFileSizeBytes {
		return &elsperrors.DocumentSizeLimitError{URI: u, Size: size, Limit: c.maxFileSizeBytes}
	}
	return nil
}

// applyContentChanges applies the changes in order, each against the text produced by the previous one.
// A change without a range replaces the whole text.
func applyContentChanges(s *entity.SourceScript, changes []protocol.TextDocumentContentChangeEvent) (*textsnapshot.Snapshot, error) {
	snapshot, ok := s.Snapshot.(*textsnapshot.Snapshot)
	if !ok {
		snapshot = textsnapshot.New(s.Snapshot.GetText(0, s.Snapshot.GetLength()))
	}
	for _, change := range changes {
		if change.Range == nil {
			snapshot = snapshot.Apply(0, snapshot.GetLength(), change.Text)
			continue
		}
		doc := textdocument.New(s.URI, s.LanguageID, s.Version, snapshot)
		start, end, err := doc.RangeOffsets(*change.Range)
		if err != nil {
			return nil, fmt.Errorf("unable to apply changes: %w", err)
		}
		snapshot = snapshot.Apply(start, end, change.Text)
	}
	return snapshot, nil
}
