package languageservice

import (
	"context"

	"github.com/uber/embedded-lsp/src/elsp/controller/dispatcher"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	linkedcode "github.com/uber/embedded-lsp/src/elsp/controller/linked-code"
	workspaceedit "github.com/uber/embedded-lsp/src/elsp/controller/workspace-edit"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// renamePart is a single text edit of a rename result, or everything else the result carries.
type renamePart struct {
	uri       uri.URI
	edit      *protocol.TextEdit
	version   *int32
	versioned bool

	rest *entity.WorkspaceEdit
}

func (c *controller) PrepareRename(ctx context.Context, params *protocol.PrepareRenameParams) (*protocol.Range, error) {
	method := protocol.MethodTextDocumentPrepareRename
	return dispatcher.Run(ctx, c.dispatcher, dispatcher.Request[positionArg, *protocol.Range]{
		Method:    method,
		URI:       params.TextDocument.URI,
		Plugins:   c.plugins(ctx, method),
		Arg:       positionArg{pos: params.Position},
		Translate: atPositions(entity.RenameFilter),
		Worker: func(ctx context.Context, plugin serviceplugin.Registered, doc *textdocument.TextDocument, arg positionArg) (*protocol.Range, bool, error) {
			r, err := plugin.Methods().ProvideRenameRange(ctx, doc, arg.pos)
			return r, r != nil, err
		},
		TranslateResult: func(r *protocol.Range, m *documents.Map) (*protocol.Range, bool) {
			found, ok := m.ToSourceRange(*r, false, entity.RenameFilter)
			return &found, ok
		},
	})
}

// Rename collects the edits of every plugin, follows them through mirrored code so every copy of a
// renamed symbol changes together, and rewrites the result into source documents.
func (c *controller) Rename(ctx context.Context, params *protocol.RenameParams) (*entity.WorkspaceEdit, error) {
	if _, _, err := c.documents.Resolve(ctx, params.TextDocument.URI); err != nil {
		return nil, err
	}

	// Mirrored positions reuse the name resolved at the request position.
	newName := params.NewName
	call := positionCall(c, protocol.MethodTextDocumentRename, entity.RenameFilter, func(ctx context.Context, m *serviceplugin.Methods, doc *textdocument.TextDocument, arg positionArg) ([]renamePart, error) {
		if !arg.mirrored {
			newName = arg.info.ResolveNewName(params.NewName)
		}
		edit, err := m.ProvideRenameEdits(ctx, doc, arg.pos, newName)
		if err != nil || edit == nil {
			return nil, err
		}
		return splitEdit(edit), nil
	})
	hits := linkedcode.Resolve(ctx, c.resolver,
		linkedcode.Target{URI: params.TextDocument.URI, Position: params.Position},
		entity.RenameFilter,
		call,
		func(h hit[renamePart]) (linkedcode.Target, bool) {
			if h.value.edit == nil {
				return linkedcode.Target{}, false
			}
			return linkedcode.Target{URI: h.value.uri, Position: h.value.edit.Range.Start}, true
		},
	)
	if len(hits) == 0 {
		return nil, nil
	}

	parts := make([]renamePart, 0, len(hits))
	for _, h := range hits {
		parts = append(parts, h.value)
	}
	edit, ok := c.edits.Transform(ctx, joinEdit(parts), workspaceedit.ModeRename)
	if !ok {
		return nil, nil
	}
	return workspaceedit.Merge(edit), nil
}

// splitEdit breaks a workspace edit into its text edits, so each can be followed through mirrored code.
func splitEdit(edit *entity.WorkspaceEdit) []renamePart {
	var parts []renamePart
	for u, edits := range edit.Changes {
		for i := range edits {
			parts = append(parts, renamePart{uri: u, edit: &edits[i]})
		}
	}

	rest := &entity.WorkspaceEdit{ChangeAnnotations: edit.ChangeAnnotations}
	for _, change := range edit.DocumentChanges {
		if change.TextDocumentEdit == nil {
			rest.DocumentChanges = append(rest.DocumentChanges, change)
			continue
		}
		id := change.TextDocumentEdit.TextDocument
		for i := range change.TextDocumentEdit.Edits {
			parts = append(parts, renamePart{
				uri:       id.URI,
				edit:      &change.TextDocumentEdit.Edits[i],
				version:   id.Version,
				versioned: true,
			})
		}
	}
	if !rest.IsEmpty() {
		parts = append(parts, renamePart{rest: rest})
	}
	return parts
}

// joinEdit rebuilds one workspace edit from parts. Text edits are reported as document changes when
// any plugin used document changes, so that file operations keep their order relative to them.
func joinEdit(parts []renamePart) *entity.WorkspaceEdit {
	useDocumentChanges := false
	for _, p := range parts {
		if p.versioned || (p.rest != nil && len(p.rest.DocumentChanges) > 0) {
			useDocumentChanges = true
			break
		}
	}

	result := &entity.WorkspaceEdit{}
	var order []uri.URI
	edits := make(map[uri.URI]*protocol.TextDocumentEdit)
	for _, p := range parts {
		if p.edit == nil {
			continue
		}
		doc, ok := edits[p.uri]
		if !ok {
			doc = &protocol.TextDocumentEdit{
				TextDocument: protocol.OptionalVersionedTextDocumentIdentifier{
					TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: p.uri},
					Version:                p.version,
				},
			}
			edits[p.uri] = doc
			order = append(order, p.uri)
		}
		doc.Edits = append(doc.Edits, *p.edit)
	}

	for _, u := range order {
		if useDocumentChanges {
			result.DocumentChanges = append(result.DocumentChanges, entity.DocumentChange{TextDocumentEdit: edits[u]})
			continue
		}
		if result.Changes == nil {
			result.Changes = make(map[uri.URI][]protocol.TextEdit)
		}
		result.Changes[u] = edits[u].Edits
	}

	for _, p := range parts {
		if p.rest == nil {
			continue
		}
		result.DocumentChanges = append(result.DocumentChanges, p.rest.DocumentChanges...)
		for id, annotation := range p.rest.ChangeAnnotations {
			if result.ChangeAnnotations == nil {
				result.ChangeAnnotations = make(map[string]entity.ChangeAnnotation)
			}
			if _, ok := result.ChangeAnnotations[id]; !ok {
				result.ChangeAnnotations[id] = annotation
			}
		}
	}
	return result
}
