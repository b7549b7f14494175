package gateway

import (
	ideclient "github.com/uber/embedded-lsp/src/elsp/gateway/ide-client"
	"go.uber.org/fx"
)

// Module provides the outbound clients of the language server.
var Module = fx.Options(
	fx.Provide(ideclient.New),
)
