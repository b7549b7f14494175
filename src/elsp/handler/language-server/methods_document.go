package languageserver

import (
	"context"

	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/jsonrpc2"
)

// DidOpen is sent when a document is opened in the editor.
func (r *jsonRPCRouter) DidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDidOpenTextDocumentParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.ctrl.DidOpen(ctx, params)
	return reply(ctx, nil, err)
}

// DidChange is sent when the contents of an open document change.
func (r *jsonRPCRouter) DidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDidChangeTextDocumentParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.ctrl.DidChange(ctx, params)
	return reply(ctx, nil, err)
}

// DidSave is sent when an open document is saved.
func (r *jsonRPCRouter) DidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDidSaveTextDocumentParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.ctrl.DidSave(ctx, params)
	return reply(ctx, nil, err)
}

// DidClose is sent when a document is closed in the editor.
func (r *jsonRPCRouter) DidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDidCloseTextDocumentParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.ctrl.DidClose(ctx, params)
	return reply(ctx, nil, err)
}
