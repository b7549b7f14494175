package languageserver

import (
	"context"

	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) CodeAction(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToCodeActionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.CodeAction(ctx, params)
	return reply(ctx, result, err)
}

// CodeActionResolve computes the edit of a code action previously returned by CodeAction.
func (r *jsonRPCRouter) CodeActionResolve(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	action, err := mapper.RequestToCodeAction(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.CodeActionResolve(ctx, action)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) Formatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDocumentFormattingParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.Formatting(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) RangeFormatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDocumentRangeFormattingParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.RangeFormatting(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) InlayHint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToInlayHintParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.InlayHint(ctx, params)
	return reply(ctx, result, err)
}
