// Package serviceplugin defines the contract between the language service and the plugins that
// implement language features against generated documents.
package serviceplugin

import (
	"context"
	"fmt"

	"github.com/uber/embedded-lsp/src/elsp/entity"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"go.lsp.dev/protocol"
	"go.uber.org/multierr"
)

const (
	_errorUnrecognizedMethod = "%q included in priority config, but is not a recognized method. Method name must be a valid LSP method. If the method is new, ensure that serviceplugin.Implements is updated."
	_errorMissingMethod      = "%q is included in the priority configuration, but is nil in Methods"
	_errorMissingField       = "missing %q field for this plugin"
)

// Methods without a constant in the protocol package, or outside of LSP.
const (
	MethodTextDocumentInlayHint            = "textDocument/inlayHint"
	MethodTextDocumentLinkedEditingRange   = "textDocument/linkedEditingRange"
	MethodTextDocumentMoniker              = "textDocument/moniker"
	MethodTextDocumentPrepareCallHierarchy = "textDocument/prepareCallHierarchy"
	MethodTextDocumentSelectionRange       = "textDocument/selectionRange"
	MethodCodeActionResolve                = "codeAction/resolve"

	// MethodSyntacticDiagnostics produces diagnostics that depend only on the document itself.
	MethodSyntacticDiagnostics = "elsp/syntacticDiagnostics"
	// MethodSemanticDiagnostics produces diagnostics that may depend on other documents.
	MethodSemanticDiagnostics = "elsp/semanticDiagnostics"
)

// Priority represents the ranked priority in which a plugin method will be run for a given method.
type Priority int64

const (
	// PriorityHigh for plugin methods that should be run in the highest priority group.
	PriorityHigh Priority = iota
	// PriorityRegular for plugins methods that should be run with regular priority.
	PriorityRegular
)

// Plugin defines a plugin which contributes a portion of language server functionality.
type Plugin interface {
	StartupInfo(ctx context.Context) (PluginInfo, error)
}

// Methods defines the feature providers a plugin may implement. Every provider works in the
// coordinates of the document it is given, which is usually a generated document.
type Methods struct {
	// PluginNameKey identifies the name of the plugin that provides these method implementations.
	PluginNameKey string

	// Navigation.
	ProvideDefinition         func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.LocationLink, error)
	ProvideTypeDefinition     func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.LocationLink, error)
	ProvideImplementation     func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.LocationLink, error)
	ProvideReferences         func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position, includeDeclaration bool) ([]protocol.Location, error)
	ProvideDocumentHighlights func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.DocumentHighlight, error)
	ProvideCallHierarchyItems func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.CallHierarchyItem, error)

	// Rename.
	ProvideRenameRange func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.Range, error)
	ProvideRenameEdits func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position, newName string) (*entity.WorkspaceEdit, error)

	// Information at a position.
	ProvideHover              func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.Hover, error)
	ProvideCompletionItems    func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position, completionContext *protocol.CompletionContext) (*protocol.CompletionList, error)
	ResolveCompletionItem     func(ctx context.Context, item *protocol.CompletionItem) (*protocol.CompletionItem, error)
	ProvideSignatureHelp      func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position, signatureContext *protocol.SignatureHelpContext) (*protocol.SignatureHelp, error)
	ProvideLinkedEditingRange func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.LinkedEditingRanges, error)
	ProvideMoniker            func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) ([]protocol.Moniker, error)

	// Whole document.
	ProvideDiagnostics         func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.Diagnostic, error)
	ProvideSemanticDiagnostics func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.Diagnostic, error)
	ProvideDocumentSymbols     func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.DocumentSymbol, error)
	ProvideFoldingRanges       func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.FoldingRange, error)
	ProvideDocumentLinks       func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.DocumentLink, error)
	ProvideDocumentColors      func(ctx context.Context, doc *textdocument.TextDocument) ([]protocol.ColorInformation, error)
	ProvideSelectionRanges     func(ctx context.Context, doc *textdocument.TextDocument, positions []protocol.Position) ([]protocol.SelectionRange, error)

	// Ranges of a document.
	ProvideCodeActions     func(ctx context.Context, doc *textdocument.TextDocument, rng protocol.Range, codeActionContext protocol.CodeActionContext) ([]entity.CodeAction, error)
	ResolveCodeAction      func(ctx context.Context, action *entity.CodeAction) (*entity.CodeAction, error)
	ProvideFormattingEdits func(ctx context.Context, doc *textdocument.TextDocument, rng protocol.Range, options protocol.FormattingOptions) ([]protocol.TextEdit, error)
	ProvideInlayHints      func(ctx context.Context, doc *textdocument.TextDocument, rng protocol.Range) ([]entity.InlayHint, error)
}

// PluginInfo provides both prioritization for each method, as well as access to call each method implemented by this plugin.
type PluginInfo struct {
	Priorities map[string]Priority
	Methods    *Methods
	NameKey    string

	// TriggerCharacters gate completion requests that were triggered by typing a character.
	TriggerCharacters []string
	// SignatureTriggerCharacters gate signature help requests that were triggered by typing a character.
	SignatureTriggerCharacters []string
}

// Validate provides runtime validation that the a Plugin implementation returns valid PluginInfo.
func (m *PluginInfo) Validate() error {
	// Required fields.
	if len(m.Priorities) == 0 {
		return fmt.Errorf(_errorMissingField, "Priorities")
	} else if m.Methods == nil {
		return fmt.Errorf(_errorMissingField, "Methods")
	} else if m.NameKey == "" {
		return fmt.Errorf(_errorMissingField, "NameKey")
	} else if m.Methods.PluginNameKey != m.NameKey {
		return fmt.Errorf(_errorMissingField, "Methods.PluginNameKey")
	}

	// Each configuration key must have a matching entry in Methods.
	var err error
	for key := range m.Priorities {
		implemented, known := m.Methods.Implements(key)
		if !known {
			err = multierr.Append(err, fmt.Errorf(_errorUnrecognizedMethod, key))
		} else if !implemented {
			err = multierr.Append(err, fmt.Errorf(_errorMissingMethod, key))
		}
	}
	return err
}

// Implements reports whether the provider for method is set, and whether method is known at all.
func (m *Methods) Implements(method string) (implemented bool, known bool) {
	switch method {
	case protocol.MethodTextDocumentDefinition:
		return m.ProvideDefinition != nil, true
	case protocol.MethodTextDocumentTypeDefinition:
		return m.ProvideTypeDefinition != nil, true
	case protocol.MethodTextDocumentImplementation:
		return m.ProvideImplementation != nil, true
	case protocol.MethodTextDocumentReferences:
		return m.ProvideReferences != nil, true
	case protocol.MethodTextDocumentDocumentHighlight:
		return m.ProvideDocumentHighlights != nil, true
	case MethodTextDocumentPrepareCallHierarchy:
		return m.ProvideCallHierarchyItems != nil, true
	case protocol.MethodTextDocumentPrepareRename:
		return m.ProvideRenameRange != nil, true
	case protocol.MethodTextDocumentRename:
		return m.ProvideRenameEdits != nil, true
	case protocol.MethodTextDocumentHover:
		return m.ProvideHover != nil, true
	case protocol.MethodTextDocumentCompletion:
		return m.ProvideCompletionItems != nil, true
	case protocol.MethodCompletionItemResolve:
		return m.ResolveCompletionItem != nil, true
	case protocol.MethodTextDocumentSignatureHelp:
		return m.ProvideSignatureHelp != nil, true
	case MethodTextDocumentLinkedEditingRange:
		return m.ProvideLinkedEditingRange != nil, true
	case MethodTextDocumentMoniker:
		return m.ProvideMoniker != nil, true
	case MethodSyntacticDiagnostics:
		return m.ProvideDiagnostics != nil, true
	case MethodSemanticDiagnostics:
		return m.ProvideSemanticDiagnostics != nil, true
	case protocol.MethodTextDocumentDocumentSymbol:
		return m.ProvideDocumentSymbols != nil, true
	case protocol.MethodTextDocumentFoldingRange:
		return m.ProvideFoldingRanges != nil, true
	case protocol.MethodTextDocumentDocumentLink:
		return m.ProvideDocumentLinks != nil, true
	case protocol.MethodTextDocumentDocumentColor:
		return m.ProvideDocumentColors != nil, true
	case MethodTextDocumentSelectionRange:
		return m.ProvideSelectionRanges != nil, true
	case protocol.MethodTextDocumentCodeAction:
		return m.ProvideCodeActions != nil, true
	case MethodCodeActionResolve:
		return m.ResolveCodeAction != nil, true
	case protocol.MethodTextDocumentFormatting, protocol.MethodTextDocumentRangeFormatting:
		return m.ProvideFormattingEdits != nil, true
	case MethodTextDocumentInlayHint:
		return m.ProvideInlayHints != nil, true
	}
	return false, false
}

// Registered is a validated plugin together with its stable registration index.
type Registered struct {
	Index    int
	Priority Priority
	Info     PluginInfo
}

// Name returns the plugin name.
func (r Registered) Name() string {
	return r.Info.NameKey
}

// Methods returns the plugin's providers.
func (r Registered) Methods() *Methods {
	return r.Info.Methods
}

// RuntimePrioritizedMethods lists, per method, the plugins implementing it in execution order.
type RuntimePrioritizedMethods map[string][]Registered
