package languageserver

import (
	"context"

	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) Definition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDefinitionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.Definition(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) TypeDefinition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToTypeDefinitionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.TypeDefinition(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) Implementation(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToImplementationParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.Implementation(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) References(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToReferencesParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.References(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) DocumentHighlight(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDocumentHighlightParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.DocumentHighlight(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) PrepareCallHierarchy(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToCallHierarchyPrepareParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.PrepareCallHierarchy(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) PrepareRename(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPrepareRenameParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.PrepareRename(ctx, params)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) Rename(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToRenameParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.ctrl.Rename(ctx, params)
	return reply(ctx, result, err)
}
