package workspaceedit

import (
	"context"
	"slices"

	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "workspace-edit"

// Mode selects the mapping segments an edit may be translated through.
type Mode int

const (
	// ModeDefault translates through every segment.
	ModeDefault Mode = iota
	// ModeRename translates through rename-enabled segments and reshapes the new text.
	ModeRename
	// ModeCodeAction translates through segments that enable code actions.
	ModeCodeAction
)

func (m Mode) filter() entity.CodeFilter {
	switch m {
	case ModeRename:
		return entity.RenameFilter
	case ModeCodeAction:
		return entity.FeatureFilter(entity.FeatureCodeActions)
	}
	return entity.FilterAll
}

// Params are inbound parameters to initialize a new transformer.
type Params struct {
	fx.In

	Documents documents.Cache
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

// Transformer rewrites workspace edits produced against generated documents into edits of their source documents.
type Transformer struct {
	documents documents.Cache
	logger    *zap.SugaredLogger
	stats     tally.Scope
}

// New creates a new transformer.
func New(p Params) *Transformer {
	return &Transformer{
		documents: p.Documents,
		logger:    p.Logger.With("controller", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
	}
}

// Transform translates every edit of a generated document into its source document.
// Edits of documents that are not generated are kept unchanged. An edit whose range has no
// translation is dropped on its own, and every edit of a generated document that is no longer
// open is dropped. It reports false when nothing is left to apply.
func (t *Transformer) Transform(ctx context.Context, edit *entity.WorkspaceEdit, mode Mode) (*entity.WorkspaceEdit, bool) {
	if edit == nil {
		return nil, false
	}

	result := &entity.WorkspaceEdit{}
	for u, edits := range edit.Changes {
		target, translated, ok := t.translateEdits(ctx, u, edits, mode)
		if !ok {
			continue
		}
		if result.Changes == nil {
			result.Changes = make(map[uri.URI][]protocol.TextEdit)
		}
		result.Changes[target] = append(result.Changes[target], translated...)
	}

	for _, change := range edit.DocumentChanges {
		translated, ok := t.translateDocumentChange(ctx, change, mode)
		if !ok {
			continue
		}
		result.DocumentChanges = append(result.DocumentChanges, translated)
	}

	if len(edit.ChangeAnnotations) > 0 {
		result.ChangeAnnotations = make(map[string]entity.ChangeAnnotation, len(edit.ChangeAnnotations))
		for id, annotation := range edit.ChangeAnnotations {
			result.ChangeAnnotations[id] = annotation
		}
	}

	if result.IsEmpty() {
		return nil, false
	}
	return result, true
}

func (t *Transformer) translateDocumentChange(ctx context.Context, change entity.DocumentChange, mode Mode) (entity.DocumentChange, bool) {
	switch {
	case change.TextDocumentEdit != nil:
		return t.translateTextDocumentEdit(ctx, change.TextDocumentEdit, mode)
	case change.CreateFile != nil:
		op := *change.CreateFile
		op.URI = sourceURI(op.URI)
		return entity.DocumentChange{CreateFile: &op}, true
	case change.RenameFile != nil:
		op := *change.RenameFile
		op.OldURI = sourceURI(op.OldURI)
		op.NewURI = sourceURI(op.NewURI)
		return entity.DocumentChange{RenameFile: &op}, true
	case change.DeleteFile != nil:
		op := *change.DeleteFile
		op.URI = sourceURI(op.URI)
		return entity.DocumentChange{DeleteFile: &op}, true
	}
	return entity.DocumentChange{}, false
}

func (t *Transformer) translateTextDocumentEdit(ctx context.Context, edit *protocol.TextDocumentEdit, mode Mode) (entity.DocumentChange, bool) {
	u := edit.TextDocument.URI
	if !mapper.IsEmbeddedURI(u) {
		out := *edit
		out.Edits = slices.Clone(edit.Edits)
		return entity.DocumentChange{TextDocumentEdit: &out}, true
	}

	s, code, err := t.documents.Resolve(ctx, u)
	if err != nil {
		t.documentDropped(u, err)
		return entity.DocumentChange{}, false
	}
	m := t.documents.GetMap(s, code)
	translated := t.translateWithMap(m, edit.Edits, mode)
	if len(translated) == 0 {
		return entity.DocumentChange{}, false
	}

	out := protocol.TextDocumentEdit{
		TextDocument: edit.TextDocument,
		Edits:        translated,
	}
	out.TextDocument.URI = s.URI
	if out.TextDocument.Version != nil {
		version := m.SourceDocument.Version
		out.TextDocument.Version = &version
	}
	return entity.DocumentChange{TextDocumentEdit: &out}, true
}

// translateEdits returns the document the edits apply to and the edits in its coordinates.
func (t *Transformer) translateEdits(ctx context.Context, u uri.URI, edits []protocol.TextEdit, mode Mode) (uri.URI, []protocol.TextEdit, bool) {
	if !mapper.IsEmbeddedURI(u) {
		return u, slices.Clone(edits), true
	}

	s, code, err := t.documents.Resolve(ctx, u)
	if err != nil {
		t.documentDropped(u, err)
		return "", nil, false
	}
	translated := t.translateWithMap(t.documents.GetMap(s, code), edits, mode)
	if len(translated) == 0 {
		return "", nil, false
	}
	return s.URI, translated, true
}

func (t *Transformer) translateWithMap(m *documents.Map, edits []protocol.TextEdit, mode Mode) []protocol.TextEdit {
	var result []protocol.TextEdit
	for _, edit := range edits {
		r, mapping, ok := firstSourceRange(m, edit.Range, mode.filter())
		if !ok {
			t.stats.Counter("edits_dropped").Inc(1)
			t.logger.Debugw("dropping edit without a source range", "uri", m.GeneratedDocument.URI, "range", edit.Range)
			continue
		}
		newText := edit.NewText
		if mode == ModeRename {
			newText = mapping.Data.ResolveEditText(newText)
		}
		result = append(result, protocol.TextEdit{Range: r, NewText: newText})
	}
	return result
}

func firstSourceRange(m *documents.Map, r protocol.Range, filter entity.CodeFilter) (protocol.Range, entity.CodeMapping, bool) {
	for found, mapping := range m.ToSourceRanges(r, false, filter) {
		return found, mapping, true
	}
	return protocol.Range{}, entity.CodeMapping{}, false
}

func (t *Transformer) documentDropped(u uri.URI, err error) {
	t.stats.Counter("documents_dropped").Inc(1)
	t.logger.Debugw("dropping edits of a closed document", "uri", u, "error", err)
}

func sourceURI(u uri.URI) uri.URI {
	if source, _, ok := mapper.EmbeddedURIToSource(u); ok {
		return source
	}
	return u
}

// Merge combines edits into one. Text edits of the same document are concatenated in argument
// order with identical edits kept once, unless a file operation on that document lies between them.
// File operations are always kept.
func Merge(edits ...*entity.WorkspaceEdit) *entity.WorkspaceEdit {
	var result *entity.WorkspaceEdit
	textEdits := make(map[uri.URI]*protocol.TextDocumentEdit)

	for _, edit := range edits {
		if edit == nil {
			continue
		}
		if result == nil {
			result = &entity.WorkspaceEdit{}
		}

		for u, changes := range edit.Changes {
			if result.Changes == nil {
				result.Changes = make(map[uri.URI][]protocol.TextEdit)
			}
			result.Changes[u] = appendUnique(result.Changes[u], changes...)
		}

		for _, change := range edit.DocumentChanges {
			if change.TextDocumentEdit == nil {
				for _, u := range fileOperationURIs(change) {
					delete(textEdits, u)
				}
				result.DocumentChanges = append(result.DocumentChanges, change)
				continue
			}
			u := change.TextDocumentEdit.TextDocument.URI
			if existing, ok := textEdits[u]; ok {
				existing.Edits = appendUnique(existing.Edits, change.TextDocumentEdit.Edits...)
				continue
			}
			merged := *change.TextDocumentEdit
			merged.Edits = appendUnique(nil, change.TextDocumentEdit.Edits...)
			textEdits[u] = &merged
			result.DocumentChanges = append(result.DocumentChanges, entity.DocumentChange{TextDocumentEdit: &merged})
		}

		for id, annotation := range edit.ChangeAnnotations {
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

func fileOperationURIs(change entity.DocumentChange) []uri.URI {
	switch {
	case change.CreateFile != nil:
		return []uri.URI{change.CreateFile.URI}
	case change.RenameFile != nil:
		return []uri.URI{change.RenameFile.OldURI, change.RenameFile.NewURI}
	case change.DeleteFile != nil:
		return []uri.URI{change.DeleteFile.URI}
	}
	return nil
}

func appendUnique(dst []protocol.TextEdit, edits ...protocol.TextEdit) []protocol.TextEdit {
	for _, edit := range edits {
		if !slices.Contains(dst, edit) {
			dst = append(dst, edit)
		}
	}
	return dst
}
