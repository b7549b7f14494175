package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/uber/embedded-lsp/src/elsp/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// requestTo decodes the parameters of a jsonrpc2.Request into a new T.
func requestTo[T any](req jsonrpc2.Request) (*T, error) {
	var params T
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToInitializeParams maps the parameters from a jsonrpc2.Request into protocol.InitializeParams.
func RequestToInitializeParams(req jsonrpc2.Request) (*protocol.InitializeParams, error) {
	return requestTo[protocol.InitializeParams](req)
}

// RequestToInitializedParams maps the parameters from a jsonrpc2.Request into protocol.InitializedParams.
func RequestToInitializedParams(req jsonrpc2.Request) (*protocol.InitializedParams, error) {
	return requestTo[protocol.InitializedParams](req)
}

// RequestToDidOpenTextDocumentParams maps the parameters from a jsonrpc2.Request into protocol.DidOpenTextDocumentParams.
func RequestToDidOpenTextDocumentParams(req jsonrpc2.Request) (*protocol.DidOpenTextDocumentParams, error) {
	return requestTo[protocol.DidOpenTextDocumentParams](req)
}

// RequestToDidChangeTextDocumentParams maps the parameters from a jsonrpc2.Request into protocol.DidChangeTextDocumentParams.
func RequestToDidChangeTextDocumentParams(req jsonrpc2.Request) (*protocol.DidChangeTextDocumentParams, error) {
	return requestTo[protocol.DidChangeTextDocumentParams](req)
}

// RequestToDidSaveTextDocumentParams maps the parameters from a jsonrpc2.Request into protocol.DidSaveTextDocumentParams.
func RequestToDidSaveTextDocumentParams(req jsonrpc2.Request) (*protocol.DidSaveTextDocumentParams, error) {
	return requestTo[protocol.DidSaveTextDocumentParams](req)
}

// RequestToDidCloseTextDocumentParams maps the parameters from a jsonrpc2.Request into protocol.DidCloseTextDocumentParams.
func RequestToDidCloseTextDocumentParams(req jsonrpc2.Request) (*protocol.DidCloseTextDocumentParams, error) {
	return requestTo[protocol.DidCloseTextDocumentParams](req)
}

// RequestToDefinitionParams maps the parameters from a jsonrpc2.Request into protocol.DefinitionParams.
func RequestToDefinitionParams(req jsonrpc2.Request) (*protocol.DefinitionParams, error) {
	return requestTo[protocol.DefinitionParams](req)
}

// RequestToTypeDefinitionParams maps the parameters from a jsonrpc2.Request into protocol.TypeDefinitionParams.
func RequestToTypeDefinitionParams(req jsonrpc2.Request) (*protocol.TypeDefinitionParams, error) {
	return requestTo[protocol.TypeDefinitionParams](req)
}

// RequestToImplementationParams maps the parameters from a jsonrpc2.Request into protocol.ImplementationParams.
func RequestToImplementationParams(req jsonrpc2.Request) (*protocol.ImplementationParams, error) {
	return requestTo[protocol.ImplementationParams](req)
}

// RequestToReferencesParams maps the parameters from a jsonrpc2.Request into protocol.ReferenceParams.
func RequestToReferencesParams(req jsonrpc2.Request) (*protocol.ReferenceParams, error) {
	return requestTo[protocol.ReferenceParams](req)
}

// RequestToDocumentHighlightParams maps the parameters from a jsonrpc2.Request into protocol.DocumentHighlightParams.
func RequestToDocumentHighlightParams(req jsonrpc2.Request) (*protocol.DocumentHighlightParams, error) {
	return requestTo[protocol.DocumentHighlightParams](req)
}

// RequestToCallHierarchyPrepareParams maps the parameters from a jsonrpc2.Request into protocol.CallHierarchyPrepareParams.
func RequestToCallHierarchyPrepareParams(req jsonrpc2.Request) (*protocol.CallHierarchyPrepareParams, error) {
	return requestTo[protocol.CallHierarchyPrepareParams](req)
}

// RequestToPrepareRenameParams maps the parameters from a jsonrpc2.Request into protocol.PrepareRenameParams.
func RequestToPrepareRenameParams(req jsonrpc2.Request) (*protocol.PrepareRenameParams, error) {
	return requestTo[protocol.PrepareRenameParams](req)
}

// RequestToRenameParams maps the parameters from a jsonrpc2.Request into protocol.RenameParams.
func RequestToRenameParams(req jsonrpc2.Request) (*protocol.RenameParams, error) {
	return requestTo[protocol.RenameParams](req)
}

// RequestToHoverParams maps the parameters from a jsonrpc2.Request into protocol.HoverParams.
func RequestToHoverParams(req jsonrpc2.Request) (*protocol.HoverParams, error) {
	return requestTo[protocol.HoverParams](req)
}

// RequestToCompletionParams maps the parameters from a jsonrpc2.Request into protocol.CompletionParams.
func RequestToCompletionParams(req jsonrpc2.Request) (*protocol.CompletionParams, error) {
	return requestTo[protocol.CompletionParams](req)
}

// RequestToCompletionItem maps the parameters of a completionItem/resolve request into protocol.CompletionItem.
func RequestToCompletionItem(req jsonrpc2.Request) (*protocol.CompletionItem, error) {
	return requestTo[protocol.CompletionItem](req)
}

// RequestToSignatureHelpParams maps the parameters from a jsonrpc2.Request into protocol.SignatureHelpParams.
func RequestToSignatureHelpParams(req jsonrpc2.Request) (*protocol.SignatureHelpParams, error) {
	return requestTo[protocol.SignatureHelpParams](req)
}

// RequestToLinkedEditingRangeParams maps the parameters from a jsonrpc2.Request into protocol.LinkedEditingRangeParams.
func RequestToLinkedEditingRangeParams(req jsonrpc2.Request) (*protocol.LinkedEditingRangeParams, error) {
	return requestTo[protocol.LinkedEditingRangeParams](req)
}

// RequestToMonikerParams maps the parameters from a jsonrpc2.Request into protocol.MonikerParams.
func RequestToMonikerParams(req jsonrpc2.Request) (*protocol.MonikerParams, error) {
	return requestTo[protocol.MonikerParams](req)
}

// RequestToDocumentSymbolParams maps the parameters from a jsonrpc2.Request into protocol.DocumentSymbolParams.
func RequestToDocumentSymbolParams(req jsonrpc2.Request) (*protocol.DocumentSymbolParams, error) {
	return requestTo[protocol.DocumentSymbolParams](req)
}

// RequestToFoldingRangeParams maps the parameters from a jsonrpc2.Request into protocol.FoldingRangeParams.
func RequestToFoldingRangeParams(req jsonrpc2.Request) (*protocol.FoldingRangeParams, error) {
	return requestTo[protocol.FoldingRangeParams](req)
}

// RequestToSelectionRangeParams maps the parameters from a jsonrpc2.Request into protocol.SelectionRangeParams.
func RequestToSelectionRangeParams(req jsonrpc2.Request) (*protocol.SelectionRangeParams, error) {
	return requestTo[protocol.SelectionRangeParams](req)
}

// RequestToDocumentLinkParams maps the parameters from a jsonrpc2.Request into protocol.DocumentLinkParams.
func RequestToDocumentLinkParams(req jsonrpc2.Request) (*protocol.DocumentLinkParams, error) {
	return requestTo[protocol.DocumentLinkParams](req)
}

// RequestToDocumentColorParams maps the parameters from a jsonrpc2.Request into protocol.DocumentColorParams.
func RequestToDocumentColorParams(req jsonrpc2.Request) (*protocol.DocumentColorParams, error) {
	return requestTo[protocol.DocumentColorParams](req)
}

// RequestToCodeActionParams maps the parameters from a jsonrpc2.Request into protocol.CodeActionParams.
func RequestToCodeActionParams(req jsonrpc2.Request) (*protocol.CodeActionParams, error) {
	return requestTo[protocol.CodeActionParams](req)
}

// RequestToCodeAction maps the parameters of a codeAction/resolve request into entity.CodeAction.
func RequestToCodeAction(req jsonrpc2.Request) (*entity.CodeAction, error) {
	return requestTo[entity.CodeAction](req)
}

// RequestToDocumentFormattingParams maps the parameters from a jsonrpc2.Request into protocol.DocumentFormattingParams.
func RequestToDocumentFormattingParams(req jsonrpc2.Request) (*protocol.DocumentFormattingParams, error) {
	return requestTo[protocol.DocumentFormattingParams](req)
}

// RequestToDocumentRangeFormattingParams maps the parameters from a jsonrpc2.Request into protocol.DocumentRangeFormattingParams.
func RequestToDocumentRangeFormattingParams(req jsonrpc2.Request) (*protocol.DocumentRangeFormattingParams, error) {
	return requestTo[protocol.DocumentRangeFormattingParams](req)
}

// RequestToInlayHintParams maps the parameters from a jsonrpc2.Request into entity.InlayHintParams.
func RequestToInlayHintParams(req jsonrpc2.Request) (*entity.InlayHintParams, error) {
	return requestTo[entity.InlayHintParams](req)
}

func wrapErrParse(err error) error {
	return fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err)
}
