package languageservice

import (
	"context"
	"slices"
	"strings"

	"github.com/uber/embedded-lsp/src/elsp/controller/dispatcher"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/protocol"
)

const _hoverSeparator = "\n\n---\n\n"

func (c *controller) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	method := protocol.MethodTextDocumentHover
	filter := entity.FeatureFilter(entity.FeatureHover)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[positionArg, *protocol.Hover]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       positionArg{pos: params.Position},
		Translate: atPositions(filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, arg positionArg) (*protocol.Hover, bool, error) {
			hover, err := plugin.Methods().ProvideHover(ctx, doc, arg.pos)
			return hover, hover != nil && hover.Contents.Value != "", err
		},
		TranslateResult: func(hover *protocol.Hover, m *documents.Map) (*protocol.Hover, bool) {
			if hover.Range != nil {
				if r, ok := m.ToSourceRange(*hover.Range, false, filter); ok {
					hover.Range = &r
				} else {
					hover.Range = nil
				}
			}
			return hover, true
		},
		Combine: combineHovers,
	})
}

// combineHovers joins the contents of every hover as markdown sections.
func combineHovers(hovers []*protocol.Hover) *protocol.Hover {
	switch len(hovers) {
	case 0:
		return nil
	case 1:
		return hovers[0]
	}

	sections := make([]string, 0, len(hovers))
	result := &protocol.Hover{}
	for _, hover := range hovers {
		sections = append(sections, hover.Contents.Value)
		if result.Range == nil {
			result.Range = hover.Range
		}
	}
	result.Contents = protocol.MarkupContent{
		Kind:  protocol.Markdown,
		Value: strings.Join(sections, _hoverSeparator),
	}
	return result
}

func (c *controller) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	method := protocol.MethodTextDocumentCompletion
	filter := entity.FeatureFilter(entity.FeatureCompletion)
	ignoreTriggers := c.settings.Get(ctx).Completion.IgnoreTriggerCharacters

	list, err := dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[positionArg, *protocol.CompletionList]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       positionArg{pos: params.Position},
		Translate: atPositions(filter),
		Gate: func(plugin serviceplugin.Registered) bool {
			completion := params.Context
			if ignoreTriggers || completion == nil || completion.TriggerKind != protocol.CompletionTriggerKindTriggerCharacter {
				return true
			}
			return slices.Contains(plugin.Info.TriggerCharacters, completion.TriggerCharacter)
		},
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, arg positionArg) (*protocol.CompletionList, bool, error) {
			list, err := plugin.Methods().ProvideCompletionItems(ctx, doc, arg.pos, params.Context)
			if err != nil || list == nil {
				return nil, false, err
			}
			for i := range list.Items {
				data := entity.CompletionData{
					URI:         params.TextDocument.URI,
					PluginIndex: plugin.Index,
					Original:    list.Items[i].Data,
				}
				if doc.URI != params.TextDocument.URI {
					data.EmbeddedURI = doc.URI
				}
				list.Items[i].Data = data
			}
			return list, true, nil
		},
		TranslateResult: func(list *protocol.CompletionList, m *documents.Map) (*protocol.CompletionList, bool) {
			if m.IsIdentity() {
				return list, true
			}
			items := list.Items[:0]
			for _, item := range list.Items {
				if item.TextEdit != nil {
					r, ok := m.ToSourceRange(item.TextEdit.Range, false, filter)
					if !ok {
						continue
					}
					item.TextEdit = &protocol.TextEdit{Range: r, NewText: item.TextEdit.NewText}
				}
				item.AdditionalTextEdits = c.toSourceEdits(m, item.AdditionalTextEdits, entity.FilterAll)
				items = append(items, item)
			}
			list.Items = items
			return list, true
		},
		Combine: combineCompletions,
	})
	if err != nil {
		return nil, err
	}
	c.stats.Counter("completion_items").Inc(int64(len(list.Items)))
	return list, nil
}

func combineCompletions(lists []*protocol.CompletionList) *protocol.CompletionList {
	result := &protocol.CompletionList{Items: []protocol.CompletionItem{}}
	for _, list := range lists {
		result.IsIncomplete = result.IsIncomplete || list.IsIncomplete
		result.Items = append(result.Items, list.Items...)
	}
	return result
}

// CompletionResolve routes an item back to the plugin that produced it, in the document that plugin saw.
func (c *controller) CompletionResolve(ctx context.Context, item *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	method := protocol.MethodCompletionItemResolve
	data, ok := decodeData[entity.CompletionData](item.Data)
	if !ok {
		return item, nil
	}
	plugin, ok := c.plugin(ctx, method, data.PluginIndex)
	if !ok {
		return item, nil
	}

	docURI := data.URI
	if data.EmbeddedURI != "" {
		docURI = data.EmbeddedURI
	}
	doc, err := c.documents.Document(ctx, docURI)
	if err != nil {
		return item, nil
	}

	request := *item
	request.Data = data.Original
	resolved, ok := dispatcher.Call(ctx, c.dispatcher, method, plugin, doc, func(ctx context.Context) (*protocol.CompletionItem, bool, error) {
		resolved, err := plugin.Methods().ResolveCompletionItem(ctx, &request)
		return resolved, resolved != nil, err
	})
	if !ok {
		return item, nil
	}

	if mapper.IsEmbeddedURI(docURI) {
		if m, ok := c.mapOf(ctx, docURI); ok {
			c.resolvedEditsToSource(resolved, item, m)
		}
	}
	resolved.Data = item.Data
	return resolved, nil
}

// resolvedEditsToSource translates the edits a plugin added while resolving an item. Edits the item
// already carried are in source coordinates and kept as they are.
func (c *controller) resolvedEditsToSource(resolved, incoming *protocol.CompletionItem, m *documents.Map) {
	filter := entity.FeatureFilter(entity.FeatureCompletion)
	if resolved.TextEdit != nil && (incoming.TextEdit == nil || *resolved.TextEdit != *incoming.TextEdit) {
		if r, ok := m.ToSourceRange(resolved.TextEdit.Range, false, filter); ok {
			resolved.TextEdit = &protocol.TextEdit{Range: r, NewText: resolved.TextEdit.NewText}
		} else {
			resolved.TextEdit = incoming.TextEdit
		}
	}

	edits := make([]protocol.TextEdit, 0, len(resolved.AdditionalTextEdits))
	for _, edit := range resolved.AdditionalTextEdits {
		if slices.Contains(incoming.AdditionalTextEdits, edit) {
			edits = append(edits, edit)
			continue
		}
		edits = append(edits, c.toSourceEdits(m, []protocol.TextEdit{edit}, entity.FilterAll)...)
	}
	resolved.AdditionalTextEdits = edits
}

func (c *controller) SignatureHelp(ctx context.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	method := protocol.MethodTextDocumentSignatureHelp
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[positionArg, *protocol.SignatureHelp]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       positionArg{pos: params.Position},
		Translate: atPositions(entity.FeatureFilter(entity.FeatureSignatureHelp)),
		Gate: func(plugin serviceplugin.Registered) bool {
			signature := params.Context
			if signature == nil || signature.TriggerKind != protocol.SignatureHelpTriggerKindTriggerCharacter {
				return true
			}
			return slices.Contains(plugin.Info.SignatureTriggerCharacters, signature.TriggerCharacter)
		},
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, arg positionArg) (*protocol.SignatureHelp, bool, error) {
			help, err := plugin.Methods().ProvideSignatureHelp(ctx, doc, arg.pos, params.Context)
			return help, help != nil && len(help.Signatures) > 0, err
		},
	})
}

func (c *controller) LinkedEditingRange(ctx context.Context, params *protocol.LinkedEditingRangeParams) (*protocol.LinkedEditingRanges, error) {
	method := serviceplugin.MethodTextDocumentLinkedEditingRange
	filter := entity.FeatureFilter(entity.FeatureLinkedEditingRanges)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[positionArg, *protocol.LinkedEditingRanges]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       positionArg{pos: params.Position},
		Translate: atPositions(filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, arg positionArg) (*protocol.LinkedEditingRanges, bool, error) {
			ranges, err := plugin.Methods().ProvideLinkedEditingRange(ctx, doc, arg.pos)
			return ranges, ranges != nil && len(ranges.Ranges) > 0, err
		},
		TranslateResult: func(ranges *protocol.LinkedEditingRanges, m *documents.Map) (*protocol.LinkedEditingRanges, bool) {
			translated := make([]protocol.Range, 0, len(ranges.Ranges))
			for _, r := range ranges.Ranges {
				if found, ok := m.ToSourceRange(r, false, filter); ok {
					translated = append(translated, found)
				}
			}
			ranges.Ranges = translated
			return ranges, len(translated) > 0
		},
	})
}

func (c *controller) Moniker(ctx context.Context, params *protocol.MonikerParams) ([]protocol.Moniker, error) {
	method := serviceplugin.MethodTextDocumentMoniker
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[positionArg, []protocol.Moniker]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       positionArg{pos: params.Position},
		Translate: atPositions(entity.FeatureFilter(entity.FeatureMoniker)),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, arg positionArg) ([]protocol.Moniker, bool, error) {
			monikers, err := plugin.Methods().ProvideMoniker(ctx, doc, arg.pos)
			return monikers, len(monikers) > 0, err
		},
		Combine: concat[protocol.Moniker],
	})
}
