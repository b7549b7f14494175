package languageserver

import (
	"context"

	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) DocumentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDocumentSymbolParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.DocumentSymbol(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) FoldingRange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToFoldingRangeParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.FoldingRange(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) SelectionRange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSelectionRangeParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.SelectionRange(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) DocumentLink(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDocumentLinkParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.DocumentLink(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) DocumentColor(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDocumentColorParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.DocumentColor(ctx, params)
	return reply(ctx, result, err)
}
