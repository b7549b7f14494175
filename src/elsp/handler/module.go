package handler

import (
	controller "github.com/uber/embedded-lsp/src/elsp/controller"
	languageservice "github.com/uber/embedded-lsp/src/elsp/controller/language-service"
	languageserver "github.com/uber/embedded-lsp/src/elsp/handler/language-server"
	"github.com/uber/embedded-lsp/src/elsp/repository/script"
	"github.com/uber/embedded-lsp/src/elsp/repository/session"
	"go.uber.org/fx"
)

// Module provides the language server's JSON-RPC handler into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(script.New),
	fx.Provide(languageserver.New),
	fx.Invoke(func(h languageserver.Handler) {}),
	fx.Invoke(func(c languageservice.Controller) {}),
)
