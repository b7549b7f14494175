package serviceplugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"go.lsp.dev/protocol"
)

func fullMethods(name string) *Methods {
	return &Methods{
		PluginNameKey: name,
		ProvideDefinition: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.LocationLink, error) {
			return nil, nil
		},
		ProvideTypeDefinition: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.LocationLink, error) {
			return nil, nil
		},
		ProvideImplementation: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.LocationLink, error) {
			return nil, nil
		},
		ProvideReferences: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position, includeDeclaration bool) ([]protocol.Location, error) {
			return nil, nil
		},
		ProvideDocumentHighlights: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.DocumentHighlight, error) {
			return nil, nil
		},
		ProvideCallHierarchyItems: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.CallHierarchyItem, error) {
			return nil, nil
		},
		ProvideRenameRange: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.Range, error) {
			return nil, nil
		},
		ProvideRenameEdits: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position, newName string) (*entity.WorkspaceEdit, error) {
			return nil, nil
		},
		ProvideHover: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.Hover, error) {
			return nil, nil
		},
		ProvideCompletionItems: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position, completionContext *protocol.CompletionContext) (*protocol.CompletionList, error) {
			return nil, nil
		},
		ResolveCompletionItem: func(ctx context.Context, item *protocol.CompletionItem) (*protocol.CompletionItem, error) {
			return item, nil
		},
		ProvideSignatureHelp: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position, signatureContext *protocol.SignatureHelpContext) (*protocol.SignatureHelp, error) {
			return nil, nil
		},
		ProvideLinkedEditingRange: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.LinkedEditingRanges, error) {
			return nil, nil
		},
		ProvideMoniker: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.Moniker, error) {
			return nil, nil
		},
		ProvideDiagnostics: func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.Diagnostic, error) {
			return nil, nil
		},
		ProvideSemanticDiagnostics: func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.Diagnostic, error) {
			return nil, nil
		},
		ProvideDocumentSymbols: func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.DocumentSymbol, error) {
			return nil, nil
		},
		ProvideFoldingRanges: func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.FoldingRange, error) {
			return nil, nil
		},
		ProvideDocumentLinks: func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.DocumentLink, error) {
			return nil, nil
		},
		ProvideDocumentColors: func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.ColorInformation, error) {
			return nil, nil
		},
		ProvideSelectionRanges: func(ctx context.Context, doc *textdocument.TextDocument, positions []protocol.Position) ([]protocol.SelectionRange, error) {
			return nil, nil
		},
		ProvideCodeActions: func(ctx context.Context, doc *textdocument.TextDocument, rng protocol.Range, codeActionContext protocol.CodeActionContext) ([]entity.CodeAction, error) {
			return nil, nil
		},
		ResolveCodeAction: func(ctx context.Context, action *entity.CodeAction) (*entity.CodeAction, error) {
			return action, nil
		},
		ProvideFormattingEdits: func(ctx context.Context, doc *textdocument.TextDocument, rng protocol.Range, options protocol.FormattingOptions) ([]protocol.TextEdit, error) {
			return nil, nil
		},
		ProvideInlayHints: func(ctx context.Context, doc *textdocument.TextDocument, rng protocol.Range) ([]entity.InlayHint, error) {
			return nil, nil
		},
	}
}

var _allMethods = []string{
	protocol.MethodTextDocumentDefinition,
	protocol.MethodTextDocumentTypeDefinition,
	protocol.MethodTextDocumentImplementation,
	protocol.MethodTextDocumentReferences,
	protocol.MethodTextDocumentDocumentHighlight,
	MethodTextDocumentPrepareCallHierarchy,
	protocol.MethodTextDocumentPrepareRename,
	protocol.MethodTextDocumentRename,
	protocol.MethodTextDocumentHover,
	protocol.MethodTextDocumentCompletion,
	protocol.MethodCompletionItemResolve,
	protocol.MethodTextDocumentSignatureHelp,
	MethodTextDocumentLinkedEditingRange,
	MethodTextDocumentMoniker,
	MethodSyntacticDiagnostics,
	MethodSemanticDiagnostics,
	protocol.MethodTextDocumentDocumentSymbol,
	protocol.MethodTextDocumentFoldingRange,
	protocol.MethodTextDocumentDocumentLink,
	protocol.MethodTextDocumentDocumentColor,
	MethodTextDocumentSelectionRange,
	protocol.MethodTextDocumentCodeAction,
	MethodCodeActionResolve,
	protocol.MethodTextDocumentFormatting,
	protocol.MethodTextDocumentRangeFormatting,
	MethodTextDocumentInlayHint,
}

func TestValidate(t *testing.T) {
	allPriorities := make(map[string]Priority, len(_allMethods))
	for _, method := range _allMethods {
		allPriorities[method] = PriorityRegular
	}

	tests := []struct {
		name       string
		priorities map[string]Priority
		methods    *Methods
		nameKey    string
		wantErr    bool
	}{
		{
			name:       "valid info",
			priorities: allPriorities,
			methods:    fullMethods("sample-plugin"),
			nameKey:    "sample-plugin",
		},
		{
			name:    "missing priorities",
			methods: fullMethods("sample-plugin"),
			nameKey: "sample-plugin",
			wantErr: true,
		},
		{
			name:       "missing methods",
			priorities: allPriorities,
			nameKey:    "sample-plugin",
			wantErr:    true,
		},
		{
			name:       "missing name",
			priorities: allPriorities,
			methods:    fullMethods(""),
			wantErr:    true,
		},
		{
			name:       "mismatched name",
			priorities: allPriorities,
			methods:    fullMethods("other-plugin"),
			nameKey:    "sample-plugin",
			wantErr:    true,
		},
		{
			name:       "unrecognized method",
			priorities: map[string]Priority{"textDocument/unknown": PriorityHigh},
			methods:    fullMethods("sample-plugin"),
			nameKey:    "sample-plugin",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := PluginInfo{
				Priorities: tt.priorities,
				Methods:    tt.methods,
				NameKey:    tt.nameKey,
			}
			err := info.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("missing implementations", func(t *testing.T) {
		for _, method := range _allMethods {
			info := PluginInfo{
				Priorities: map[string]Priority{method: PriorityHigh},
				Methods:    &Methods{PluginNameKey: "sample-plugin"},
				NameKey:    "sample-plugin",
			}
			assert.Error(t, info.Validate(), method)
		}
	})
}

func TestImplements(t *testing.T) {
	methods := &Methods{
		ProvideHover: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.Hover, error) {
			return nil, nil
		},
	}

	implemented, known := methods.Implements(protocol.MethodTextDocumentHover)
	assert.True(t, implemented)
	assert.True(t, known)

	implemented, known = methods.Implements(protocol.MethodTextDocumentDefinition)
	assert.False(t, implemented)
	assert.True(t, known)

	implemented, known = methods.Implements("workspace/unknown")
	assert.False(t, implemented)
	assert.False(t, known)
}
