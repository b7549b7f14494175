package jsonrpcfx

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/idl/mock/jsonrpc2mock"
	"github.com/uber/embedded-lsp/src/elsp/internal/serverinfofile/serverinfofilemock"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var _configs = map[string]string{
	"valid": `
jsonrpc:
  address: 127.0.0.1:0`,
	"missingKey": `
jsonrpc:
  other: value`,
	"missingValue": `
jsonrpc:
  address:`,
	"formatProblem": `
jsonrpc:
  address:
    key: val`,
}

func newConfigProvider(t *testing.T, configKey string) config.Provider {
	provider, err := config.NewYAML(config.Source(strings.NewReader(_configs[configKey])))
	require.NoError(t, err)
	return provider
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		params  func(t *testing.T) Params
		wantErr bool
	}{
		{
			name:    "missing required params",
			params:  func(t *testing.T) Params { return Params{} },
			wantErr: true,
		},
		{
			name: "invalid config",
			params: func(t *testing.T) Params {
				return Params{
					Lifecycle: fxtest.NewLifecycle(t),
					Config:    newConfigProvider(t, "missingKey"),
					Stats:     tally.NoopScope,
				}
			},
			wantErr: true,
		},
		{
			name: "all required params are present",
			params: func(t *testing.T) Params {
				return Params{
					Lifecycle: fxtest.NewLifecycle(t),
					Config:    newConfigProvider(t, "valid"),
					Logger:    zap.NewNop().Sugar(),
					Stats:     tally.NoopScope,
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params(t))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterConnectionManager(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := module{}

	mockConnectionManager := NewMockConnectionManager(ctrl)

	// first call should return no error
	err := m.RegisterConnectionManager(mockConnectionManager)
	assert.NoError(t, err)

	// duplicate call should return error
	err = m.RegisterConnectionManager(mockConnectionManager)
	assert.Error(t, err)
}

func TestServeStream(t *testing.T) {
	ctx := context.Background()
	id, err := uuid.NewV4()
	require.NoError(t, err)

	tests := []struct {
		name     string
		register bool
		setup    func(ctrl *gomock.Controller, mgr *MockConnectionManager, conn *jsonrpc2mock.MockConn)
		wantErr  bool
	}{
		{
			name:    "no connection manager registered",
			wantErr: true,
		},
		{
			name:     "failed NewConnection",
			register: true,
			setup: func(ctrl *gomock.Controller, mgr *MockConnectionManager, conn *jsonrpc2mock.MockConn) {
				mgr.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(nil, errors.New("sample error"))
			},
			wantErr: true,
		},
		{
			name:     "successful NewConnection",
			register: true,
			setup: func(ctrl *gomock.Controller, mgr *MockConnectionManager, conn *jsonrpc2mock.MockConn) {
				router := NewMockRouter(ctrl)
				router.EXPECT().UUID().Return(id).AnyTimes()
				mgr.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(router, nil)
				mgr.EXPECT().RemoveConnection(ctx, id)

				done := make(chan struct{})
				close(done)
				conn.EXPECT().Go(gomock.Any(), gomock.Any())
				conn.EXPECT().Done().Return(done)
				conn.EXPECT().Err().Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mgr := NewMockConnectionManager(ctrl)
			conn := jsonrpc2mock.NewMockConn(ctrl)
			m := module{logger: zap.NewNop().Sugar(), stats: tally.NewTestScope("testing", nil)}
			if tt.register {
				require.NoError(t, m.RegisterConnectionManager(mgr))
			}
			if tt.setup != nil {
				tt.setup(ctrl, mgr, conn)
			}

			err := m.ServeStream(ctx, conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	m := module{logger: zap.NewNop().Sugar()}
	assert.Error(t, m.setup())

	m = module{Address: "127.0.0.1:0"}
	require.NoError(t, m.setup())
	assert.NoError(t, m.ln.Close())
}

func TestProcessConfig(t *testing.T) {
	tests := []struct {
		name        string
		configKey   string
		wantErr     bool
		errorString string
	}{
		{
			name:      "valid configuration",
			configKey: "valid",
		},
		{
			name:        "missing address key",
			configKey:   "missingKey",
			wantErr:     true,
			errorString: "missing field \"jsonrpc.address\" in config",
		},
		{
			name:        "missing address value",
			configKey:   "missingValue",
			wantErr:     true,
			errorString: "missing field \"jsonrpc.address\" in config",
		},
		{
			name:        "incorrectly formatted entry",
			configKey:   "formatProblem",
			wantErr:     true,
			errorString: "getting config field \"jsonrpc.address\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := module{logger: zap.NewNop().Sugar()}
			err := m.processConfig(newConfigProvider(t, tt.configKey))
			if tt.wantErr {
				assert.ErrorContains(t, err, tt.errorString)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "127.0.0.1:0", m.Address)
			}
		})
	}
}

func TestOnStartWithoutAddress(t *testing.T) {
	m := module{logger: zap.NewNop().Sugar()}
	assert.Error(t, m.OnStart(context.Background()))
	assert.NoError(t, m.OnStop(context.Background()))
}

func TestOnStartPublishError(t *testing.T) {
	ctrl := gomock.NewController(t)
	infoFile := serverinfofilemock.NewMockServerInfoFile(ctrl)
	infoFile.EXPECT().UpdateField(_outputKey, gomock.Any()).Return(errors.New("read-only"))

	m := module{
		Address:        "127.0.0.1:0",
		logger:         zap.NewNop().Sugar(),
		serverInfoFile: infoFile,
	}
	assert.Error(t, m.OnStart(context.Background()))
	assert.NoError(t, m.OnStop(context.Background()))
}

func TestServeRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	id, err := uuid.NewV4()
	require.NoError(t, err)

	var address string
	infoFile := serverinfofilemock.NewMockServerInfoFile(ctrl)
	infoFile.EXPECT().UpdateField(_outputKey, gomock.Any()).DoAndReturn(func(key, value string) error {
		address = value
		return nil
	})

	lc := fxtest.NewLifecycle(t)
	mod, err := New(Params{
		Config:         newConfigProvider(t, "valid"),
		Lifecycle:      lc,
		Logger:         zap.NewNop().Sugar(),
		Stats:          tally.NoopScope,
		ServerInfoFile: infoFile,
	})
	require.NoError(t, err)

	router := NewMockRouter(ctrl)
	router.EXPECT().UUID().Return(id).AnyTimes()
	router.EXPECT().HandleReq(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
			assert.Equal(t, "elsp/ping", req.Method())
			return reply(ctx, "pong", nil)
		})

	removed := make(chan struct{})
	mgr := NewMockConnectionManager(ctrl)
	mgr.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(router, nil)
	mgr.EXPECT().RemoveConnection(gomock.Any(), id).Do(func(context.Context, uuid.UUID) { close(removed) })
	require.NoError(t, mod.RegisterConnectionManager(mgr))

	lc.RequireStart()
	require.NotEmpty(t, address)

	netConn, err := net.Dial("tcp", address)
	require.NoError(t, err)
	client := jsonrpc2.NewConn(jsonrpc2.NewStream(netConn))
	client.Go(ctx, jsonrpc2.MethodNotFoundHandler)

	var result string
	_, err = client.Call(ctx, "elsp/ping", nil, &result)
	require.NoError(t, err)
	assert.Equal(t, "pong", result)

	require.NoError(t, client.Close())
	select {
	case <-removed:
	case <-time.After(5 * time.Second):
		require.Fail(t, "connection was not removed")
	}

	lc.RequireStop()
}
