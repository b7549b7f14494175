package app

import (
	"context"
	"time"

	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/gateway"
	"github.com/uber/embedded-lsp/src/elsp/handler"
	"github.com/uber/embedded-lsp/src/elsp/internal/clock"
	"github.com/uber/embedded-lsp/src/elsp/internal/core"
	"github.com/uber/embedded-lsp/src/elsp/internal/fs"
	"github.com/uber/embedded-lsp/src/elsp/internal/jsonrpcfx"
	"github.com/uber/embedded-lsp/src/elsp/internal/serverinfofile"
	"go.uber.org/fx"
)

const _metricsInterval = time.Second

// Module defines the embedded language server application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	serverinfofile.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(clock.New),
	fx.Provide(newRootScope),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{Environment: EnvLocal}
	}),
)

func newRootScope(lc fx.Lifecycle, env Context) tally.Scope {
	rs, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix: "elsp",
		Tags: map[string]string{
			"service":     "embedded-lsp",
			"environment": env.Environment,
		},
	}, _metricsInterval)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closer.Close()
		},
	})

	return rs
}
