package controller

import (
	"github.com/uber/embedded-lsp/src/elsp/controller/diagnostics"
	"github.com/uber/embedded-lsp/src/elsp/controller/dispatcher"
	docsync "github.com/uber/embedded-lsp/src/elsp/controller/doc-sync"
	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	languageservice "github.com/uber/embedded-lsp/src/elsp/controller/language-service"
	linkedcode "github.com/uber/embedded-lsp/src/elsp/controller/linked-code"
	"github.com/uber/embedded-lsp/src/elsp/controller/settings"
	workspaceedit "github.com/uber/embedded-lsp/src/elsp/controller/workspace-edit"
	"go.uber.org/fx"
)

// Module provides every controller of the language server.
var Module = fx.Options(
	fx.Provide(languageservice.New),
	fx.Provide(documents.New),
	fx.Provide(dispatcher.New),
	fx.Provide(linkedcode.New),
	fx.Provide(workspaceedit.New),
	fx.Provide(docsync.New),
	fx.Provide(diagnostics.New),
	fx.Provide(settings.New),
)
