package documents

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"github.com/uber/embedded-lsp/src/elsp/internal/sourcemap"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"github.com/uber/embedded-lsp/src/elsp/repository/script"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "documents"

	_errUnknownCode = "no generated code %q in %q"
)

// Cache memoizes document handles and maps for source script snapshots.
// Rows are keyed by the owning script's URI and generation and live until evicted.
type Cache interface {
	// Resolve returns the script addressed by u and, for embedded URIs, the generated code node.
	Resolve(ctx context.Context, u uri.URI) (*entity.SourceScript, *entity.VirtualCode, error)
	// Document returns the handle addressed by u, which may be a source or an embedded URI.
	Document(ctx context.Context, u uri.URI) (*textdocument.TextDocument, error)
	// SourceDocument returns the handle over the script's current snapshot.
	SourceDocument(s *entity.SourceScript) *textdocument.TextDocument
	// VirtualDocument returns the handle over a generated code node, addressed by its embedded URI.
	VirtualDocument(s *entity.SourceScript, code *entity.VirtualCode) *textdocument.TextDocument
	// GetMap returns the map between the script and one of its generated code nodes.
	GetMap(s *entity.SourceScript, code *entity.VirtualCode) *Map
	// GetAssociatedMap returns the map between a generated code node of s and another script it refers to.
	GetAssociatedMap(s *entity.SourceScript, code *entity.VirtualCode, target *entity.SourceScript) (*Map, bool)
	// SourceRange translates a range of the generated document addressed by u into the script that
	// owns it, and otherwise into the first open script the generated code is associated with.
	SourceRange(ctx context.Context, u uri.URI, r protocol.Range, fallbackToAnyMatch bool, filter entity.CodeFilter) (uri.URI, protocol.Range, bool)
	// GetLinkedMap returns the linked code map of a generated code node, false if it has no linked code.
	GetLinkedMap(s *entity.SourceScript, code *entity.VirtualCode) (*LinkedMap, bool)
	// Evict drops every row owned by the given generation of u.
	Evict(u uri.URI, generation uint64)
	// EvictAll drops every row owned by u, including embedded document versions.
	EvictAll(u uri.URI)
}

// Params are inbound parameters to initialize a new cache.
type Params struct {
	fx.In

	Scripts script.Repository
	Logger  *zap.SugaredLogger
	Stats   tally.Scope
}

type docKey struct {
	codeID string
}

type associatedKey struct {
	codeID     string
	target     uri.URI
	generation uint64
}

type generationRows struct {
	docs       map[docKey]*textdocument.TextDocument
	maps       map[string]*Map
	linked     map[string]*LinkedMap
	associated map[associatedKey]*Map
}

func newGenerationRows() *generationRows {
	return &generationRows{
		docs:       make(map[docKey]*textdocument.TextDocument),
		maps:       make(map[string]*Map),
		linked:     make(map[string]*LinkedMap),
		associated: make(map[associatedKey]*Map),
	}
}

// embeddedVersion tracks the editor-visible version of one embedded document across generations.
type embeddedVersion struct {
	snapshot entity.Snapshot
	version  int32
}

type cache struct {
	scripts script.Repository
	logger  *zap.SugaredLogger
	stats   tally.Scope

	mu       sync.Mutex
	rows     map[uri.URI]map[uint64]*generationRows
	versions map[uri.URI]map[string]*embeddedVersion
}

// New creates a new document cache.
func New(p Params) Cache {
	return &cache{
		scripts:  p.Scripts,
		logger:   p.Logger.With("controller", _nameKey),
		stats:    p.Stats.SubScope(_nameKey),
		rows:     make(map[uri.URI]map[uint64]*generationRows),
		versions: make(map[uri.URI]map[string]*embeddedVersion),
	}
}

func (c *cache) Resolve(ctx context.Context, u uri.URI) (*entity.SourceScript, *entity.VirtualCode, error) {
	source, codeID, embedded := mapper.EmbeddedURIToSource(u)
	if !embedded {
		s, err := c.scripts.Get(ctx, u)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}

	s, err := c.scripts.Get(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	code, ok := s.Root.Find(codeID)
	if !ok {
		return nil, nil, fmt.Errorf(_errUnknownCode, codeID, source)
	}
	return s, code, nil
}

func (c *cache) Document(ctx context.Context, u uri.URI) (*textdocument.TextDocument, error) {
	s, code, err := c.Resolve(ctx, u)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return c.SourceDocument(s), nil
	}
	return c.VirtualDocument(s, code), nil
}

func (c *cache) SourceDocument(s *entity.SourceScript) *textdocument.TextDocument {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sourceDocumentLocked(s)
}

func (c *cache) VirtualDocument(s *entity.SourceScript, code *entity.VirtualCode) *textdocument.TextDocument {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.virtualDocumentLocked(s, code)
}

func (c *cache) GetMap(s *entity.SourceScript, code *entity.VirtualCode) *Map {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := c.rowsLocked(s.URI, s.Generation)
	if m, ok := rows.maps[code.ID]; ok {
		c.stats.Counter("map_hits").Inc(1)
		return m
	}
	c.stats.Counter("map_misses").Inc(1)

	m := NewMap(sourcemap.New(code.Mappings), c.sourceDocumentLocked(s), c.virtualDocumentLocked(s, code))
	rows.maps[code.ID] = m
	return m
}

func (c *cache) GetAssociatedMap(s *entity.SourceScript, code *entity.VirtualCode, target *entity.SourceScript) (*Map, bool) {
	mappings, ok := code.AssociatedMappings[target.URI]
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rows := c.rowsLocked(s.URI, s.Generation)
	key := associatedKey{codeID: code.ID, target: target.URI, generation: target.Generation}
	if m, ok := rows.associated[key]; ok {
		return m, true
	}
	m := NewMap(sourcemap.New(mappings), c.sourceDocumentLocked(target), c.virtualDocumentLocked(s, code))
	rows.associated[key] = m
	return m, true
}

func (c *cache) SourceRange(ctx context.Context, u uri.URI, r protocol.Range, fallbackToAnyMatch bool, filter entity.CodeFilter) (uri.URI, protocol.Range, bool) {
	s, code, err := c.Resolve(ctx, u)
	if err != nil || code == nil {
		return "", protocol.Range{}, false
	}
	if found, ok := c.GetMap(s, code).ToSourceRange(r, fallbackToAnyMatch, filter); ok {
		return s.URI, found, true
	}

	targets := make([]uri.URI, 0, len(code.AssociatedMappings))
	for target := range code.AssociatedMappings {
		targets = append(targets, target)
	}
	slices.Sort(targets)
	for _, target := range targets {
		t, err := c.scripts.Get(ctx, target)
		if err != nil {
			continue
		}
		m, ok := c.GetAssociatedMap(s, code, t)
		if !ok {
			continue
		}
		if found, ok := m.ToSourceRange(r, fallbackToAnyMatch, filter); ok {
			c.stats.Counter("associated_hits").Inc(1)
			return t.URI, found, true
		}
	}
	return "", protocol.Range{}, false
}

func (c *cache) GetLinkedMap(s *entity.SourceScript, code *entity.VirtualCode) (*LinkedMap, bool) {
	if len(code.LinkedCodeMappings) == 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rows := c.rowsLocked(s.URI, s.Generation)
	if m, ok := rows.linked[code.ID]; ok {
		return m, true
	}
	m := &LinkedMap{
		LinkedMap: sourcemap.NewLinkedMap(code.LinkedCodeMappings),
		Document:  c.virtualDocumentLocked(s, code),
	}
	rows.linked[code.ID] = m
	return m, true
}

func (c *cache) Evict(u uri.URI, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.rows[u], generation)
	if len(c.rows[u]) == 0 {
		delete(c.rows, u)
	}
	c.evictAssociatedLocked(u, func(g uint64) bool { return g == generation })
}

func (c *cache) EvictAll(u uri.URI) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.rows, u)
	delete(c.versions, u)
	c.evictAssociatedLocked(u, func(uint64) bool { return true })
}

func (c *cache) evictAssociatedLocked(target uri.URI, match func(uint64) bool) {
	for _, byGeneration := range c.rows {
		for _, rows := range byGeneration {
			for key := range rows.associated {
				if key.target == target && match(key.generation) {
					delete(rows.associated, key)
				}
			}
		}
	}
}

func (c *cache) rowsLocked(u uri.URI, generation uint64) *generationRows {
	byGeneration, ok := c.rows[u]
	if !ok {
		byGeneration = make(map[uint64]*generationRows)
		c.rows[u] = byGeneration
	}
	rows, ok := byGeneration[generation]
	if !ok {
		rows = newGenerationRows()
		byGeneration[generation] = rows
	}
	return rows
}

func (c *cache) sourceDocumentLocked(s *entity.SourceScript) *textdocument.TextDocument {
	rows := c.rowsLocked(s.URI, s.Generation)
	key := docKey{}
	if doc, ok := rows.docs[key]; ok {
		return doc
	}
	doc := textdocument.New(s.URI, s.LanguageID, s.Version, s.Snapshot)
	rows.docs[key] = doc
	return doc
}

func (c *cache) virtualDocumentLocked(s *entity.SourceScript, code *entity.VirtualCode) *textdocument.TextDocument {
	rows := c.rowsLocked(s.URI, s.Generation)
	key := docKey{codeID: code.ID}
	if doc, ok := rows.docs[key]; ok {
		return doc
	}
	doc := textdocument.New(mapper.SourceToEmbeddedURI(s.URI, code.ID), code.LanguageID, c.embeddedVersionLocked(s.URI, code), code.Snapshot)
	rows.docs[key] = doc
	return doc
}

// embeddedVersionLocked returns a version that changes only when the node's snapshot changes.
func (c *cache) embeddedVersionLocked(u uri.URI, code *entity.VirtualCode) int32 {
	byCode, ok := c.versions[u]
	if !ok {
		byCode = make(map[string]*embeddedVersion)
		c.versions[u] = byCode
	}
	v, ok := byCode[code.ID]
	if !ok {
		v = &embeddedVersion{}
		byCode[code.ID] = v
	}
	if v.snapshot != code.Snapshot {
		v.snapshot = code.Snapshot
		v.version++
	}
	return v.version
}
