package languageserver

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	controller "github.com/uber/embedded-lsp/src/elsp/controller/language-service"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// MethodRequestFullShutdown directs the server to shut down on the next JSON-RPC 'exit' method call.
const MethodRequestFullShutdown = "elsp/requestFullShutdown"

type jsonRPCRouter struct {
	ctrl   controller.Controller
	uuid   uuid.UUID
	logger *zap.SugaredLogger
	stats  tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	switch req.Method() {
	// Lifecycle related methods.
	case protocol.MethodInitialize:
		return r.Initialize(ctx, reply, req)

	case protocol.MethodInitialized:
		return r.Initialized(ctx, reply, req)

	case protocol.MethodShutdown:
		return r.Shutdown(ctx, reply, req)

	case protocol.MethodExit:
		return r.Exit(ctx, reply, req)

	case MethodRequestFullShutdown:
		return r.RequestFullShutdown(ctx, reply, req)

	// Document related methods.
	case protocol.MethodTextDocumentDidOpen:
		return r.DidOpen(ctx, reply, req)

	case protocol.MethodTextDocumentDidChange:
		return r.DidChange(ctx, reply, req)

	case protocol.MethodTextDocumentDidSave:
		return r.DidSave(ctx, reply, req)

	case protocol.MethodTextDocumentDidClose:
		return r.DidClose(ctx, reply, req)

	// Navigation.
	case protocol.MethodTextDocumentDefinition:
		return r.Definition(ctx, reply, req)

	case protocol.MethodTextDocumentTypeDefinition:
		return r.TypeDefinition(ctx, reply, req)

	case protocol.MethodTextDocumentImplementation:
		return r.Implementation(ctx, reply, req)

	case protocol.MethodTextDocumentReferences:
		return r.References(ctx, reply, req)

	case protocol.MethodTextDocumentDocumentHighlight:
		return r.DocumentHighlight(ctx, reply, req)

	case serviceplugin.MethodTextDocumentPrepareCallHierarchy:
		return r.PrepareCallHierarchy(ctx, reply, req)

	case protocol.MethodTextDocumentPrepareRename:
		return r.PrepareRename(ctx, reply, req)

	case protocol.MethodTextDocumentRename:
		return r.Rename(ctx, reply, req)

	// Information at a position.
	case protocol.MethodTextDocumentHover:
		return r.Hover(ctx, reply, req)

	case protocol.MethodTextDocumentCompletion:
		return r.Completion(ctx, reply, req)

	case protocol.MethodCompletionItemResolve:
		return r.CompletionResolve(ctx, reply, req)

	case protocol.MethodTextDocumentSignatureHelp:
		return r.SignatureHelp(ctx, reply, req)

	case serviceplugin.MethodTextDocumentLinkedEditingRange:
		return r.LinkedEditingRange(ctx, reply, req)

	case serviceplugin.MethodTextDocumentMoniker:
		return r.Moniker(ctx, reply, req)

	// Whole document.
	case protocol.MethodTextDocumentDocumentSymbol:
		return r.DocumentSymbol(ctx, reply, req)

	case protocol.MethodTextDocumentFoldingRange:
		return r.FoldingRange(ctx, reply, req)

	case serviceplugin.MethodTextDocumentSelectionRange:
		return r.SelectionRange(ctx, reply, req)

	case protocol.MethodTextDocumentDocumentLink:
		return r.DocumentLink(ctx, reply, req)

	case protocol.MethodTextDocumentDocumentColor:
		return r.DocumentColor(ctx, reply, req)

	// Edits.
	case protocol.MethodTextDocumentCodeAction:
		return r.CodeAction(ctx, reply, req)

	case serviceplugin.MethodCodeActionResolve:
		return r.CodeActionResolve(ctx, reply, req)

	case protocol.MethodTextDocumentFormatting:
		return r.Formatting(ctx, reply, req)

	case protocol.MethodTextDocumentRangeFormatting:
		return r.RangeFormatting(ctx, reply, req)

	case serviceplugin.MethodTextDocumentInlayHint:
		return r.InlayHint(ctx, reply, req)

	default:
		r.stats.Counter("method_not_found").Inc(1)
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
