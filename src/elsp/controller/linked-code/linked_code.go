package linkedcode

import (
	"context"

	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "linked-code"

// Target is a position in a source or generated document.
type Target struct {
	URI      uri.URI
	Position protocol.Position
	// Mirrored is set for targets reached through linked code rather than by the original request.
	Mirrored bool
}

type visitKey struct {
	uri      uri.URI
	position protocol.Position
}

func (t Target) key() visitKey {
	return visitKey{uri: t.URI, position: t.Position}
}

// Params are inbound parameters to initialize a new resolver.
type Params struct {
	fx.In

	Documents documents.Cache
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

// Resolver follows results through the linked code of generated documents.
type Resolver struct {
	documents documents.Cache
	logger    *zap.SugaredLogger
	stats     tally.Scope
}

// New creates a new resolver.
func New(p Params) *Resolver {
	return &Resolver{
		documents: p.Documents,
		logger:    p.Logger.With("controller", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
	}
}

// LinkedPositions returns the positions mirroring t that the filter allows.
func (r *Resolver) LinkedPositions(ctx context.Context, t Target, filter entity.CodeFilter) []protocol.Position {
	s, code, err := r.documents.Resolve(ctx, t.URI)
	if err != nil || code == nil {
		return nil
	}
	m, ok := r.documents.GetLinkedMap(s, code)
	if !ok {
		return nil
	}
	var result []protocol.Position
	for pos := range m.GetLinkedPositions(t.Position, filter) {
		result = append(result, pos)
	}
	return result
}

// Resolve calls call at start and at every unvisited mirror of the locations it returns.
// A location with a mirror that has not been visited yet is expanded instead of emitted, so only
// leaves are reported. Results are deduplicated by location and results without a location are
// always emitted. Each target is called at most once, so cycles terminate.
func Resolve[R any](
	ctx context.Context,
	r *Resolver,
	start Target,
	filter entity.CodeFilter,
	call func(ctx context.Context, t Target) []R,
	location func(R) (Target, bool),
) []R {
	visited := map[visitKey]struct{}{start.key(): {}}
	emitted := make(map[visitKey]struct{})
	queue := []Target{start}

	var result []R
	for len(queue) > 0 {
		if ctx.Err() != nil {
			break
		}
		t := queue[0]
		queue = queue[1:]

		for _, res := range call(ctx, t) {
			loc, ok := location(res)
			if !ok {
				result = append(result, res)
				continue
			}
			visited[loc.key()] = struct{}{}

			expanded := false
			for _, pos := range r.LinkedPositions(ctx, loc, filter) {
				next := Target{URI: loc.URI, Position: pos, Mirrored: true}
				if _, seen := visited[next.key()]; seen {
					continue
				}
				visited[next.key()] = struct{}{}
				queue = append(queue, next)
				expanded = true
			}
			if expanded {
				r.stats.Counter("mirrors_followed").Inc(1)
				continue
			}
			if _, dup := emitted[loc.key()]; dup {
				continue
			}
			emitted[loc.key()] = struct{}{}
			result = append(result, res)
		}
	}
	return result
}
