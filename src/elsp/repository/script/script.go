package script

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"github.com/uber/embedded-lsp/src/elsp/internal/errors"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"github.com/uber/embedded-lsp/src/elsp/model"
	"go.lsp.dev/uri"
)

// Repository stores the open source scripts of every session.
// All methods resolve the session from the session UUID carried in the context.
type Repository interface {
	// Get returns the script open at the given URI.
	Get(ctx context.Context, u uri.URI) (*entity.SourceScript, error)
	// Set stores the script, assigning it a fresh generation. The previously stored script for the
	// same URI is returned, or nil if there was none.
	Set(ctx context.Context, s *entity.SourceScript) (previous *entity.SourceScript, err error)
	// Delete removes the script and returns it, or nil if nothing was stored.
	Delete(ctx context.Context, u uri.URI) (*entity.SourceScript, error)
	// List returns every script of the session.
	List(ctx context.Context) ([]*entity.SourceScript, error)
	// DeleteSession drops every script of the given session.
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	mu         sync.Mutex
	memstore   map[uuid.UUID]map[uri.URI]*model.SourceScript
	generation atomic.Uint64
	stats      tally.Scope
}

// New returns a repository of source scripts.
func New(stats tally.Scope) Repository {
	return &repository{
		memstore: make(map[uuid.UUID]map[uri.URI]*model.SourceScript),
		stats:    stats,
	}
}

func (r *repository) Get(ctx context.Context, u uri.URI) (*entity.SourceScript, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.memstore[id][u]
	if !ok {
		return nil, &errors.ScriptNotFoundError{URI: u}
	}
	return mapper.ModelToSourceScript(m), nil
}

func (r *repository) Set(ctx context.Context, s *entity.SourceScript) (*entity.SourceScript, error) {
	if s == nil {
		return nil, errors.New("can't save nil script")
	}
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	scripts, ok := r.memstore[id]
	if !ok {
		scripts = make(map[uri.URI]*model.SourceScript)
		r.memstore[id] = scripts
	}

	s.Generation = r.generation.Add(1)
	var previous *entity.SourceScript
	if m, ok := scripts[s.URI]; ok {
		previous = mapper.ModelToSourceScript(m)
	}
	scripts[s.URI] = mapper.SourceScriptToModel(s)
	r.updateGauge()
	return previous, nil
}

func (r *repository) Delete(ctx context.Context, u uri.URI) (*entity.SourceScript, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.memstore[id][u]
	if !ok {
		return nil, nil
	}
	delete(r.memstore[id], u)
	r.updateGauge()
	return mapper.ModelToSourceScript(m), nil
}

func (r *repository) List(ctx context.Context) ([]*entity.SourceScript, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entity.SourceScript, 0, len(r.memstore[id]))
	for _, m := range r.memstore[id] {
		result = append(result, mapper.ModelToSourceScript(m))
	}
	return result, nil
}

func (r *repository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.memstore, id)
	r.updateGauge()
	return nil
}

func (r *repository) updateGauge() {
	total := 0
	for _, scripts := range r.memstore {
		total += len(scripts)
	}
	r.stats.Gauge("open_scripts").Update(float64(total))
}
