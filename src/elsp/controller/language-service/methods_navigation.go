package languageservice

import (
	"context"

	"github.com/uber/embedded-lsp/src/elsp/controller/dispatcher"
	linkedcode "github.com/uber/embedded-lsp/src/elsp/controller/linked-code"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"go.lsp.dev/protocol"
)

// positionProvider calls one plugin at a position of the document it sees.
type positionProvider[R any] func(ctx context.Context, m *serviceplugin.Methods, doc *textdocument.TextDocument, arg positionArg) ([]R, error)

// positionCall returns the call function of a mirror resolution. Targets of the original request are
// in source coordinates and reach the plugins through every generated document. Mirrored targets already
// point into a generated document and reach the plugins unchanged.
func positionCall[R any](c *controller, method string, filter entity.CodeFilter, provide positionProvider[R]) func(ctx context.Context, t linkedcode.Target) []hit[R] {
	plugins := func(ctx context.Context) []serviceplugin.Registered {
		return c.plugins(ctx, method)
	}
	worker := func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, arg positionArg) ([]hit[R], bool, error) {
		results, err := provide(ctx, plugin.Methods(), doc, arg)
		if err != nil || len(results) == 0 {
			return nil, false, err
		}
		hits := make([]hit[R], 0, len(results))
		for _, r := range results {
			hits = append(hits, hit[R]{value: r, uri: doc.URI})
		}
		return hits, true, nil
	}

	return func(ctx context.Context, t linkedcode.Target) []hit[R] {
		if !t.Mirrored {
			result, err := dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[positionArg, []hit[R]]{
				Method:    method,
				URI:       t.URI,
				Plugins:   plugins(ctx),
				Arg:       positionArg{pos: t.Position},
				Translate: atPositions(filter),
				Worker:    worker,
				Combine:   concat[hit[R]],
			})
			if err != nil {
				c.logger.Debugw("request target is not open", "method", method, "uri", t.URI, "error", err)
			}
			return result
		}

		doc, err := c.documents.Document(ctx, t.URI)
		if err != nil {
			return nil
		}
		var result []hit[R]
		for _, plugin := range plugins(ctx) {
			if ctx.Err() != nil {
				break
			}
			hits, ok := dispatcher.Call(ctx, c.dispatcher, method, plugin, doc, func(ctx context.Context) ([]hit[R], bool, error) {
				return worker(ctx, plugin, doc, positionArg{pos: t.Position, mirrored: true})
			})
			if ok {
				result = append(result, hits...)
			}
		}
		return result
	}
}

func (c *controller) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.LocationLink, error) {
	return c.locationLinks(ctx, protocol.MethodTextDocumentDefinition, params.TextDocumentPositionParams, entity.FeatureDefinition,
		func(m *serviceplugin.Methods) func(context.Context, *textdocument.TextDocument, protocol.Position) ([]protocol.LocationLink, error) {
			return m.ProvideDefinition
		})
}

func (c *controller) TypeDefinition(ctx context.Context, params *protocol.TypeDefinitionParams) ([]protocol.LocationLink, error) {
	return c.locationLinks(ctx, protocol.MethodTextDocumentTypeDefinition, params.TextDocumentPositionParams, entity.FeatureTypeDefinition,
		func(m *serviceplugin.Methods) func(context.Context, *textdocument.TextDocument, protocol.Position) ([]protocol.LocationLink, error) {
			return m.ProvideTypeDefinition
		})
}

func (c *controller) Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.LocationLink, error) {
	return c.locationLinks(ctx, protocol.MethodTextDocumentImplementation, params.TextDocumentPositionParams, entity.FeatureImplementation,
		func(m *serviceplugin.Methods) func(context.Context, *textdocument.TextDocument, protocol.Position) ([]protocol.LocationLink, error) {
			return m.ProvideImplementation
		})
}

// locationLinks resolves declarations through mirrored code and reports only the final targets, each
// with the origin selection range of the original request.
func (c *controller) locationLinks(
	ctx context.Context,
	method string,
	params protocol.TextDocumentPositionParams,
	feature entity.Feature,
	provider func(*serviceplugin.Methods) func(context.Context, *textdocument.TextDocument, protocol.Position) ([]protocol.LocationLink, error),
) ([]protocol.LocationLink, error) {
	if _, _, err := c.documents.Resolve(ctx, params.TextDocument.URI); err != nil {
		return nil, err
	}

	filter := entity.FeatureFilter(feature)
	call := positionCall(c, method, filter, func(ctx context.Context, m *serviceplugin.Methods, doc *textdocument.TextDocument, arg positionArg) ([]protocol.LocationLink, error) {
		return provider(m)(ctx, doc, arg.pos)
	})

	// The origin comes from the request position, even when its own results are replaced by mirrors.
	var origin *protocol.Range
	resolve := func(ctx context.Context, t linkedcode.Target) []hit[protocol.LocationLink] {
		hits := call(ctx, t)
		for _, h := range hits {
			if t.Mirrored || origin != nil || h.value.OriginSelectionRange == nil {
				continue
			}
			if _, r, ok := c.toSourceRange(ctx, h.uri, *h.value.OriginSelectionRange, filter); ok {
				origin = &r
			}
		}
		return hits
	}
	hits := linkedcode.Resolve(ctx, c.resolver,
		linkedcode.Target{URI: params.TextDocument.URI, Position: params.Position},
		filter,
		resolve,
		func(h hit[protocol.LocationLink]) (linkedcode.Target, bool) {
			return linkedcode.Target{URI: h.value.TargetURI, Position: h.value.TargetSelectionRange.Start}, true
		},
	)

	result := make([]protocol.LocationLink, 0, len(hits))
	for _, h := range hits {
		link := h.value
		u, target, ok := c.toSourceRange(ctx, link.TargetURI, link.TargetRange, entity.FilterAll)
		if !ok {
			continue
		}
		_, selection, ok := c.toSourceRange(ctx, link.TargetURI, link.TargetSelectionRange, entity.FilterAll)
		if !ok {
			selection = target
		}
		link.TargetURI, link.TargetRange, link.TargetSelectionRange = u, target, selection
		link.OriginSelectionRange = origin
		result = append(result, link)
	}

	c.stats.Tagged(map[string]string{"method": method}).Counter("results").Inc(int64(len(result)))
	return result, nil
}

func (c *controller) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	if _, _, err := c.documents.Resolve(ctx, params.TextDocument.URI); err != nil {
		return nil, err
	}

	filter := entity.FeatureFilter(entity.FeatureReferences)
	call := positionCall(c, protocol.MethodTextDocumentReferences, filter, func(ctx context.Context, m *serviceplugin.Methods, doc *textdocument.TextDocument, arg positionArg) ([]protocol.Location, error) {
		return m.ProvideReferences(ctx, doc, arg.pos, params.Context.IncludeDeclaration)
	})
	hits := linkedcode.Resolve(ctx, c.resolver,
		linkedcode.Target{URI: params.TextDocument.URI, Position: params.Position},
		filter,
		call,
		func(h hit[protocol.Location]) (linkedcode.Target, bool) {
			return linkedcode.Target{URI: h.value.URI, Position: h.value.Range.Start}, true
		},
	)

	seen := make(map[protocol.Location]struct{}, len(hits))
	result := make([]protocol.Location, 0, len(hits))
	for _, h := range hits {
		loc, ok := c.toSourceLocation(ctx, h.value, entity.FilterAll)
		if !ok {
			continue
		}
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		result = append(result, loc)
	}
	return result, nil
}

func (c *controller) DocumentHighlight(ctx context.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	if _, _, err := c.documents.Resolve(ctx, params.TextDocument.URI); err != nil {
		return nil, err
	}

	filter := entity.FeatureFilter(entity.FeatureHighlights)
	call := positionCall(c, protocol.MethodTextDocumentDocumentHighlight, filter, func(ctx context.Context, m *serviceplugin.Methods, doc *textdocument.TextDocument, arg positionArg) ([]protocol.DocumentHighlight, error) {
		return m.ProvideDocumentHighlights(ctx, doc, arg.pos)
	})
	hits := linkedcode.Resolve(ctx, c.resolver,
		linkedcode.Target{URI: params.TextDocument.URI, Position: params.Position},
		filter,
		call,
		func(h hit[protocol.DocumentHighlight]) (linkedcode.Target, bool) {
			return linkedcode.Target{URI: h.uri, Position: h.value.Range.Start}, true
		},
	)

	seen := make(map[protocol.Range]struct{}, len(hits))
	result := make([]protocol.DocumentHighlight, 0, len(hits))
	for _, h := range hits {
		u, r, ok := c.toSourceRange(ctx, h.uri, h.value.Range, filter)
		if !ok || u != params.TextDocument.URI {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		result = append(result, protocol.DocumentHighlight{Range: r, Kind: h.value.Kind})
	}
	return result, nil
}

func (c *controller) PrepareCallHierarchy(ctx context.Context, params *protocol.CallHierarchyPrepareParams) ([]protocol.CallHierarchyItem, error) {
	method := serviceplugin.MethodTextDocumentPrepareCallHierarchy
	items, err := dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[positionArg, []protocol.CallHierarchyItem]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       positionArg{pos: params.Position},
		Translate: atPositions(entity.FeatureFilter(entity.FeatureCallHierarchy)),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, arg positionArg) ([]protocol.CallHierarchyItem, bool, error) {
			items, err := plugin.Methods().ProvideCallHierarchyItems(ctx, doc, arg.pos)
			return items, len(items) > 0, err
		},
		Combine: concat[protocol.CallHierarchyItem],
	})
	if err != nil {
		return nil, err
	}

	result := make([]protocol.CallHierarchyItem, 0, len(items))
	for _, item := range items {
		u, r, ok := c.toSourceRange(ctx, item.URI, item.Range, entity.FilterAll)
		if !ok {
			continue
		}
		_, selection, ok := c.toSourceRange(ctx, item.URI, item.SelectionRange, entity.FilterAll)
		if !ok {
			selection = r
		}
		item.URI, item.Range, item.SelectionRange = u, r, selection
		result = append(result, item)
	}
	return result, nil
}
