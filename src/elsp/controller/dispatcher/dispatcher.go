package dispatcher

import (
	"context"
	"fmt"
	"iter"

	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "dispatcher"

	_errPluginReturnedError = "plugin %q returned error for %s: %s"
	_errPluginPanicked      = "panic: %v"
)

// Request describes one feature request in source coordinates.
type Request[A, R any] struct {
	// Method is the LSP method name, used for logging and metrics.
	Method string
	// URI is the source document the request targets.
	URI uri.URI
	// Plugins are invoked in order for every translated argument.
	Plugins []serviceplugin.Registered
	// Arg is the seed argument in source coordinates.
	Arg A
	// Translate yields the generated-coordinate arguments for one generated document.
	// A nil Translate passes Arg through unchanged.
	Translate func(arg A, m *documents.Map) iter.Seq[A]
	// Gate, if set, skips plugins that must not see this request.
	Gate func(plugin serviceplugin.Registered) bool
	// Worker invokes one plugin. It reports false when the plugin has no contribution.
	Worker func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, arg A) (R, bool, error)
	// TranslateResult maps a result back to source coordinates. A nil TranslateResult keeps results as they are.
	TranslateResult func(result R, m *documents.Map) (R, bool)
	// Combine merges all results. With a nil Combine the first usable result is returned
	// and the remaining plugins are not invoked.
	Combine func(results []R) R
}

// Params are inbound parameters to initialize a new dispatcher.
type Params struct {
	fx.In

	Documents documents.Cache
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

// Dispatcher fans requests out over the generated code of a source script and its plugins.
type Dispatcher struct {
	documents documents.Cache
	logger    *zap.SugaredLogger
	stats     tally.Scope
}

// New creates a new dispatcher.
func New(p Params) *Dispatcher {
	return &Dispatcher{
		documents: p.Documents,
		logger:    p.Logger.With("controller", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
	}
}

// Documents returns the document cache the dispatcher resolves scripts with.
func (d *Dispatcher) Documents() documents.Cache {
	return d.documents
}

// Maps yields the map of every generated node of the script that maps to it, depth first.
// A script without generated code yields a single identity map over its own document.
func (d *Dispatcher) Maps(ctx context.Context, s *entity.SourceScript) iter.Seq[*documents.Map] {
	return func(yield func(*documents.Map) bool) {
		if s.Root == nil {
			if ctx.Err() == nil {
				yield(documents.IdentityMap(d.documents.SourceDocument(s)))
			}
			return
		}
		for code := range s.Root.All() {
			if ctx.Err() != nil {
				return
			}
			if len(code.Mappings) == 0 {
				continue
			}
			if !yield(d.documents.GetMap(s, code)) {
				return
			}
		}
	}
}

// Run executes the request. Plugin failures never fail the request, and cancellation returns
// whatever was accumulated so far with a nil error.
func Run[A, R any](ctx context.Context, d *Dispatcher, req Request[A, R]) (R, error) {
	var zero R

	s, _, err := d.documents.Resolve(ctx, req.URI)
	if err != nil {
		return zero, err
	}

	var results []R
	for m := range d.Maps(ctx, s) {
		for arg := range translateArg(req, m) {
			for _, plugin := range req.Plugins {
				if ctx.Err() != nil {
					d.stats.Tagged(map[string]string{"method": req.Method}).Counter("cancelled").Inc(1)
					return finish(req, results), nil
				}
				if req.Gate != nil && !req.Gate(plugin) {
					continue
				}

				result, ok := Call(ctx, d, req.Method, plugin, m.GeneratedDocument, func(ctx context.Context) (R, bool, error) {
					return req.Worker(ctx, plugin, m.GeneratedDocument, arg)
				})
				if !ok {
					continue
				}
				if req.TranslateResult != nil {
					if result, ok = req.TranslateResult(result, m); !ok {
						continue
					}
				}
				if req.Combine == nil {
					return result, nil
				}
				results = append(results, result)
			}
		}
	}

	if ctx.Err() != nil {
		d.stats.Tagged(map[string]string{"method": req.Method}).Counter("cancelled").Inc(1)
	}
	return finish(req, results), nil
}

// Call invokes a single plugin worker, converting errors and panics into no contribution.
func Call[R any](ctx context.Context, d *Dispatcher, method string, plugin serviceplugin.Registered, doc *textdocument.TextDocument, fn func(ctx context.Context) (R, bool, error)) (result R, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			var zero R
			result, ok = zero, false
			d.pluginFailed(method, plugin, doc, fmt.Errorf(_errPluginPanicked, r))
		}
	}()

	result, ok, err := fn(ctx)
	if err != nil {
		d.pluginFailed(method, plugin, doc, err)
		var zero R
		return zero, false
	}
	return result, ok
}

func (d *Dispatcher) pluginFailed(method string, plugin serviceplugin.Registered, doc *textdocument.TextDocument, err error) {
	d.logger.Errorw(fmt.Sprintf(_errPluginReturnedError, plugin.Name(), method, err), "uri", doc.URI)
	d.stats.Tagged(map[string]string{"plugin": plugin.Name(), "method": method}).Counter("plugin_errors").Inc(1)
}

func translateArg[A, R any](req Request[A, R], m *documents.Map) iter.Seq[A] {
	if req.Translate == nil {
		return func(yield func(A) bool) {
			yield(req.Arg)
		}
	}
	return req.Translate(req.Arg, m)
}

func finish[A, R any](req Request[A, R], results []R) R {
	if req.Combine == nil {
		var zero R
		return zero
	}
	return req.Combine(results)
}
