package factory

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// PluginInfoValid is a factory for PluginInfo that passes validation.
func PluginInfoValid(id int) serviceplugin.PluginInfo {
	sampleHoverFunc := func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.Hover, error) {
		return nil, nil
	}
	return serviceplugin.PluginInfo{
		Priorities: map[string]serviceplugin.Priority{
			protocol.MethodTextDocumentHover: serviceplugin.PriorityRegular,
		},
		Methods: &serviceplugin.Methods{
			PluginNameKey: fmt.Sprintf("test-plugin-%v", id),

			ProvideHover: sampleHoverFunc,
		},
		NameKey: fmt.Sprintf("test-plugin-%v", id),
	}
}

// PluginInfoInvalid is a factory for PluginInfo that fails validation.
func PluginInfoInvalid(id int) serviceplugin.PluginInfo {
	return serviceplugin.PluginInfo{
		Priorities: map[string]serviceplugin.Priority{
			protocol.MethodTextDocumentHover: serviceplugin.PriorityHigh,
		},
		Methods: &serviceplugin.Methods{},
		NameKey: fmt.Sprintf("test-plugin-%v", id),
	}
}
