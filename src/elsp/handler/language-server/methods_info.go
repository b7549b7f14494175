package languageserver

import (
	"context"

	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) Hover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToHoverParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.Hover(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) Completion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToCompletionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.Completion(ctx, params)
	return reply(ctx, result, err)
}

// CompletionResolve fills in the details of a completion item previously returned by Completion.
func (r *jsonRPCRouter) CompletionResolve(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	item, err := mapper.RequestToCompletionItem(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.CompletionResolve(ctx, item)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) SignatureHelp(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSignatureHelpParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.SignatureHelp(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) LinkedEditingRange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToLinkedEditingRangeParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.LinkedEditingRange(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) Moniker(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToMonikerParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.Moniker(ctx, params)
	return reply(ctx, result, err)
}
