package languageservice

import (
	"context"
	"iter"

	"github.com/uber/embedded-lsp/src/elsp/controller/dispatcher"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	workspaceedit "github.com/uber/embedded-lsp/src/elsp/controller/workspace-edit"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

func (c *controller) CodeAction(ctx context.Context, params *protocol.CodeActionParams) ([]entity.CodeAction, error) {
	method := protocol.MethodTextDocumentCodeAction
	filter := entity.FeatureFilter(entity.FeatureCodeActions)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[protocol.Range, []entity.CodeAction]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       params.Range,
		Translate: c.codeActionRange(filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, r protocol.Range) ([]entity.CodeAction, bool, error) {
			actionContext := params.Context
			actionContext.Diagnostics = diagnosticsOf(params.Context.Diagnostics, doc)
			actions, err := plugin.Methods().ProvideCodeActions(ctx, doc, r, actionContext)
			if err != nil || len(actions) == 0 {
				return nil, false, err
			}
			for i := range actions {
				actions[i].Data = entity.CodeActionData{
					URI:         doc.URI,
					Version:     doc.Version,
					PluginIndex: plugin.Index,
					Original:    actions[i].Data,
				}
			}
			return actions, true, nil
		},
		TranslateResult: func(actions []entity.CodeAction, m *documents.Map) ([]entity.CodeAction, bool) {
			translated := make([]entity.CodeAction, 0, len(actions))
			for _, action := range actions {
				if action, ok := c.codeActionToSource(ctx, action, params.Context.Diagnostics); ok {
					translated = append(translated, action)
				}
			}
			return translated, len(translated) > 0
		},
		Combine: concat[entity.CodeAction],
	})
}

// codeActionRange yields the generated range of a source selection, approximating when the selection
// spans the edge of a mapped segment.
func (c *controller) codeActionRange(filter entity.CodeFilter) func(protocol.Range, *documents.Map) iter.Seq[protocol.Range] {
	return func(r protocol.Range, m *documents.Map) iter.Seq[protocol.Range] {
		return func(yield func(protocol.Range) bool) {
			if found, ok := m.ToGeneratedRange(r, c.cfg.RangeFallback, filter); ok {
				yield(found)
				return
			}
			if found, ok := m.FindOverlapGeneratedRange(r, filter); ok {
				yield(found)
			}
		}
	}
}

// diagnosticsOf restores the diagnostics a plugin produced for doc from the source diagnostics of a request.
func diagnosticsOf(diagnostics []protocol.Diagnostic, doc *textdocument.TextDocument) []protocol.Diagnostic {
	result := make([]protocol.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		data, ok := decodeData[entity.DiagnosticData](d.Data)
		if !ok || data.URI != doc.URI {
			continue
		}
		result = append(result, data.Original)
	}
	return result
}

// codeActionToSource rewrites the edit of an action into source documents and points its diagnostics at
// the source diagnostics of the request. Actions left with nothing to do are dropped.
func (c *controller) codeActionToSource(ctx context.Context, action entity.CodeAction, requested []protocol.Diagnostic) (entity.CodeAction, bool) {
	if action.Edit != nil {
		edit, ok := c.edits.Transform(ctx, action.Edit, workspaceedit.ModeCodeAction)
		if !ok && action.Command == nil {
			return entity.CodeAction{}, false
		}
		action.Edit = edit
	}

	if len(action.Diagnostics) > 0 {
		diagnostics := make([]protocol.Diagnostic, 0, len(action.Diagnostics))
		for _, d := range action.Diagnostics {
			for _, source := range requested {
				data, ok := decodeData[entity.DiagnosticData](source.Data)
				if ok && data.Original.Range == d.Range && data.Original.Message == d.Message {
					diagnostics = append(diagnostics, source)
					break
				}
			}
		}
		action.Diagnostics = diagnostics
	}
	return action, true
}

// CodeActionResolve routes an action back to the plugin that produced it.
func (c *controller) CodeActionResolve(ctx context.Context, action *entity.CodeAction) (*entity.CodeAction, error) {
	method := serviceplugin.MethodCodeActionResolve
	data, ok := decodeData[entity.CodeActionData](action.Data)
	if !ok {
		return action, nil
	}
	plugin, ok := c.plugin(ctx, method, data.PluginIndex)
	if !ok {
		return action, nil
	}
	doc, err := c.documents.Document(ctx, data.URI)
	if err != nil {
		return action, nil
	}
	if doc.Version != data.Version {
		c.logger.Debugw("resolving code action of an outdated document", "uri", data.URI, "version", data.Version, "current", doc.Version)
	}

	request := *action
	request.Data = data.Original
	resolved, ok := dispatcher.Call(ctx, c.dispatcher, method, plugin, doc, func(ctx context.Context) (*entity.CodeAction, bool, error) {
		resolved, err := plugin.Methods().ResolveCodeAction(ctx, &request)
		return resolved, resolved != nil, err
	})
	if !ok {
		return action, nil
	}

	if resolved.Edit != nil && resolved.Edit != action.Edit {
		resolved.Edit, _ = c.edits.Transform(ctx, resolved.Edit, workspaceedit.ModeCodeAction)
	}
	resolved.Data = action.Data
	return resolved, nil
}

func (c *controller) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	return c.format(ctx, protocol.MethodTextDocumentFormatting, params.TextDocument.URI, wholeDocument(), params.Options)
}

func (c *controller) RangeFormatting(ctx context.Context, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	return c.format(ctx, protocol.MethodTextDocumentRangeFormatting, params.TextDocument.URI, params.Range, params.Options)
}

// format asks the plugins to format the part of every generated document that overlaps the selection.
func (c *controller) format(ctx context.Context, method string, u uri.URI, r protocol.Range, options protocol.FormattingOptions) ([]protocol.TextEdit, error) {
	filter := entity.FeatureFilter(entity.FeatureFormatting)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[protocol.Range, []protocol.TextEdit]{
		Method:    method,
		URI:       u,
		Plugins:   c.plugins(ctx, method),
		Arg:       r,
		Translate: atOverlap(filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, r protocol.Range) ([]protocol.TextEdit, bool, error) {
			edits, err := plugin.Methods().ProvideFormattingEdits(ctx, doc, r, options)
			return edits, len(edits) > 0, err
		},
		TranslateResult: func(edits []protocol.TextEdit, m *documents.Map) ([]protocol.TextEdit, bool) {
			translated := c.toSourceEdits(m, edits, filter)
			return translated, len(translated) > 0
		},
		Combine: concat[protocol.TextEdit],
	})
}

func (c *controller) InlayHint(ctx context.Context, params *entity.InlayHintParams) ([]entity.InlayHint, error) {
	method := serviceplugin.MethodTextDocumentInlayHint
	filter := entity.FeatureFilter(entity.FeatureInlayHints)
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[protocol.Range, []entity.InlayHint]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       params.Range,
		Translate: atOverlap(filter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, r protocol.Range) ([]entity.InlayHint, bool, error) {
			hints, err := plugin.Methods().ProvideInlayHints(ctx, doc, r)
			return hints, len(hints) > 0, err
		},
		TranslateResult: func(hints []entity.InlayHint, m *documents.Map) ([]entity.InlayHint, bool) {
			translated := make([]entity.InlayHint, 0, len(hints))
			for _, hint := range hints {
				pos, ok := m.ToSourcePosition(hint.Position, filter)
				if !ok {
					continue
				}
				hint.Position = pos
				hint.TextEdits = c.toSourceEdits(m, hint.TextEdits, filter)
				translated = append(translated, hint)
			}
			return translated, len(translated) > 0
		},
		Combine: concat[entity.InlayHint],
	})
}
