package session

import (
	"context"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"github.com/uber/embedded-lsp/src/elsp/internal/errors"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"github.com/uber/embedded-lsp/src/elsp/model"
)

// Repository keeps the state of every connected editor session.
type Repository interface {
	// Get returns the session with the given id.
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	// GetFromContext returns the session whose UUID is carried by ctx.
	GetFromContext(ctx context.Context) (*entity.Session, error)
	// Set stores s, replacing any session with the same UUID.
	Set(ctx context.Context, s *entity.Session) error
	// Update applies fn to the session carried by ctx and stores the result.
	// Nothing is stored when fn returns an error.
	Update(ctx context.Context, fn func(*entity.Session) error) (*entity.Session, error)
	// Delete drops the session with the given id.
	Delete(ctx context.Context, id uuid.UUID) error
	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

type repository struct {
	mu       sync.Mutex
	memstore map[uuid.UUID]*model.Session
	active   tally.Gauge
}

// New returns an in-memory session repository.
func New(stats tally.Scope) Repository {
	return &repository{
		memstore: make(map[uuid.UUID]*model.Session),
		active:   stats.SubScope("sessions").Gauge("active"),
	}
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.memstore[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	return mapper.ModelToSession(m)
}

func (r *repository) GetFromContext(ctx context.Context) (*entity.Session, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *repository) Set(ctx context.Context, s *entity.Session) error {
	if s == nil {
		return errors.New("can't save nil session")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.memstore[s.UUID] = mapper.SessionToModel(s)
	r.active.Update(float64(len(r.memstore)))
	return nil
}

func (r *repository) Update(ctx context.Context, fn func(*entity.Session) error) (*entity.Session, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.memstore[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	s, err := mapper.ModelToSession(m)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	// The UUID is the key and cannot be changed by fn.
	s.UUID = id
	r.memstore[id] = mapper.SessionToModel(s)
	return s, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.memstore, id)
	r.active.Update(float64(len(r.memstore)))
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.memstore), nil
}
