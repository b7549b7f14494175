package languageservice

import (
	"context"
	"iter"
	"math"

	"github.com/uber/embedded-lsp/src/elsp/controller/dispatcher"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/protocol"
)

func (c *controller) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]protocol.DocumentSymbol, error) {
	method := protocol.MethodTextDocumentDocumentSymbol
	filter := entity.FeatureFilter(entity.FeatureSymbols)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[struct{}, []protocol.DocumentSymbol]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Translate: ifMapped[struct{}](filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, _ struct{}) ([]protocol.DocumentSymbol, bool, error) {
			symbols, err := plugin.Methods().ProvideDocumentSymbols(ctx, doc)
			return symbols, len(symbols) > 0, err
		},
		TranslateResult: func(symbols []protocol.DocumentSymbol, m *documents.Map) ([]protocol.DocumentSymbol, bool) {
			translated := symbolsToSource(symbols, m, filter)
			return translated, len(translated) > 0
		},
		Combine: concat[protocol.DocumentSymbol],
	})
}

// symbolsToSource translates a symbol tree. Symbols outside the mapped code are dropped with their children.
func symbolsToSource(symbols []protocol.DocumentSymbol, m *documents.Map, filter entity.CodeFilter) []protocol.DocumentSymbol {
	if m.IsIdentity() {
		return symbols
	}
	result := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, symbol := range symbols {
		r, ok := m.ToSourceRange(symbol.Range, true, filter)
		if !ok {
			continue
		}
		selection, ok := m.ToSourceRange(symbol.SelectionRange, false, filter)
		if !ok {
			selection = protocol.Range{Start: r.Start, End: r.Start}
		}
		symbol.Range, symbol.SelectionRange = r, selection
		symbol.Children = symbolsToSource(symbol.Children, m, filter)
		result = append(result, symbol)
	}
	return result
}

func (c *controller) FoldingRange(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	method := protocol.MethodTextDocumentFoldingRange
	filter := entity.FeatureFilter(entity.FeatureFoldingRanges)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[struct{}, []protocol.FoldingRange]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Translate: ifMapped[struct{}](filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, _ struct{}) ([]protocol.FoldingRange, bool, error) {
			ranges, err := plugin.Methods().ProvideFoldingRanges(ctx, doc)
			return ranges, len(ranges) > 0, err
		},
		TranslateResult: func(ranges []protocol.FoldingRange, m *documents.Map) ([]protocol.FoldingRange, bool) {
			if m.IsIdentity() {
				return ranges, true
			}
			translated := make([]protocol.FoldingRange, 0, len(ranges))
			for _, fold := range ranges {
				r, ok := m.FindOverlapSourceRange(protocol.Range{
					Start: protocol.Position{Line: fold.StartLine, Character: fold.StartCharacter},
					End:   protocol.Position{Line: fold.EndLine, Character: math.MaxUint32},
				}, filter)
				if !ok || r.Start.Line >= r.End.Line {
					continue
				}
				translated = append(translated, protocol.FoldingRange{
					StartLine: r.Start.Line,
					EndLine:   r.End.Line,
					Kind:      fold.Kind,
				})
			}
			return translated, len(translated) > 0
		},
		Combine: concat[protocol.FoldingRange],
	})
}

func (c *controller) SelectionRange(ctx context.Context, params *protocol.SelectionRangeParams) ([]protocol.SelectionRange, error) {
	method := serviceplugin.MethodTextDocumentSelectionRange
	filter := entity.FeatureFilter(entity.FeatureSelectionRanges)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[[]protocol.Position, []protocol.SelectionRange]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       params.Positions,
		Translate: allPositions(filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, positions []protocol.Position) ([]protocol.SelectionRange, bool, error) {
			ranges, err := plugin.Methods().ProvideSelectionRanges(ctx, doc, positions)
			return ranges, len(ranges) > 0, err
		},
		TranslateResult: func(ranges []protocol.SelectionRange, m *documents.Map) ([]protocol.SelectionRange, bool) {
			if m.IsIdentity() {
				return ranges, true
			}
			translated := make([]protocol.SelectionRange, 0, len(ranges))
			for i := range ranges {
				selection, ok := selectionToSource(&ranges[i], m, filter)
				if !ok {
					return nil, false
				}
				translated = append(translated, *selection)
			}
			return translated, true
		},
	})
}

// allPositions translates every position of a selection range request, or none if any is unmapped.
func allPositions(filter entity.CodeFilter) func([]protocol.Position, *documents.Map) iter.Seq[[]protocol.Position] {
	return func(positions []protocol.Position, m *documents.Map) iter.Seq[[]protocol.Position] {
		return func(yield func([]protocol.Position) bool) {
			translated := make([]protocol.Position, 0, len(positions))
			for _, pos := range positions {
				found, ok := m.ToGeneratedPosition(pos, filter)
				if !ok {
					return
				}
				translated = append(translated, found)
			}
			yield(translated)
		}
	}
}

// selectionToSource translates a selection range and its parents, cutting the chain at the first parent
// that leaves the mapped code.
func selectionToSource(selection *protocol.SelectionRange, m *documents.Map, filter entity.CodeFilter) (*protocol.SelectionRange, bool) {
	r, ok := m.ToSourceRange(selection.Range, false, filter)
	if !ok {
		return nil, false
	}
	result := &protocol.SelectionRange{Range: r}
	if selection.Parent != nil {
		if parent, ok := selectionToSource(selection.Parent, m, filter); ok {
			result.Parent = parent
		}
	}
	return result, true
}

func (c *controller) DocumentLink(ctx context.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	method := protocol.MethodTextDocumentDocumentLink
	filter := entity.FeatureFilter(entity.FeatureDocumentLinks)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[struct{}, []protocol.DocumentLink]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Translate: ifMapped[struct{}](filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, _ struct{}) ([]protocol.DocumentLink, bool, error) {
			links, err := plugin.Methods().ProvideDocumentLinks(ctx, doc)
			return links, len(links) > 0, err
		},
		TranslateResult: func(links []protocol.DocumentLink, m *documents.Map) ([]protocol.DocumentLink, bool) {
			translated := make([]protocol.DocumentLink, 0, len(links))
			for _, link := range links {
				r, ok := m.ToSourceRange(link.Range, false, filter)
				if !ok {
					continue
				}
				link.Range = r
				if source, _, ok := mapper.EmbeddedURIToSource(link.Target); ok {
					link.Target = source
				}
				translated = append(translated, link)
			}
			return translated, len(translated) > 0
		},
		Combine: concat[protocol.DocumentLink],
	})
}

func (c *controller) DocumentColor(ctx context.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	method := protocol.MethodTextDocumentDocumentColor
	filter := entity.FeatureFilter(entity.FeatureColors)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[struct{}, []protocol.ColorInformation]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Translate: ifMapped[struct{}](filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, _ struct{}) ([]protocol.ColorInformation, bool, error) {
			colors, err := plugin.Methods().ProvideDocumentColors(ctx, doc)
			return colors, len(colors) > 0, err
		},
		TranslateResult: func(colors []protocol.ColorInformation, m *documents.Map) ([]protocol.ColorInformation, bool) {
			translated := make([]protocol.ColorInformation, 0, len(colors))
			for _, color := range colors {
				if r, ok := m.ToSourceRange(color.Range, false, filter); ok {
					color.Range = r
					translated = append(translated, color)
				}
			}
			return translated, len(translated) > 0
		},
		Combine: concat[protocol.ColorInformation],
	})
}
