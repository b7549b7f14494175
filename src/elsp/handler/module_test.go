package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"
	ideclient "github.com/uber/embedded-lsp/src/elsp/gateway/ide-client"
	"github.com/uber/embedded-lsp/src/elsp/internal/clock"
	"github.com/uber/embedded-lsp/src/elsp/internal/fs"
	"github.com/uber/embedded-lsp/src/elsp/internal/jsonrpcfx"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestModule(t *testing.T) {
	err := fx.ValidateApp(
		Module,
		fx.Provide(
			func() config.Provider { return nil },
			func() *zap.SugaredLogger { return zap.NewNop().Sugar() },
			func() tally.Scope { return tally.NoopScope },
			func() jsonrpcfx.JSONRPCModule { return nil },
			func() ideclient.Gateway { return nil },
			func() clock.Clock { return nil },
			func() fs.ElspFS { return nil },
		),
	)
	assert.NoError(t, err)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
