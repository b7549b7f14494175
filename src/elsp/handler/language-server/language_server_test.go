package languageserver

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/idl/mock/jsonrpc2mock"
	"github.com/uber/embedded-lsp/src/elsp/controller/language-service/languageservicemock"
	"github.com/uber/embedded-lsp/src/elsp/factory"
	elsperrors "github.com/uber/embedded-lsp/src/elsp/internal/errors"
	"github.com/uber/embedded-lsp/src/elsp/internal/jsonrpcfx/jsonrpcfxmock"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		registerErr error
		wantErr     bool
	}{
		{
			name: "registered",
		},
		{
			name:        "duplicate connection manager",
			registerErr: errors.New("cannot register a duplicate connection manager"),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jsonRPCMock := jsonrpcfxmock.NewMockJSONRPCModule(ctrl)
			jsonRPCMock.EXPECT().RegisterConnectionManager(gomock.Any()).Return(tt.registerErr)

			c := languageservicemock.NewMockController(ctrl)
			h, err := New(c, jsonRPCMock, zap.NewNop().Sugar(), tally.NewTestScope("testing", nil))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, h)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, h)
			}
		})
	}
}

func TestNewConnection(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	c := languageservicemock.NewMockController(ctrl)
	h := handler{
		ctrl:   c,
		logger: zap.NewNop().Sugar(),
		stats:  tally.NewTestScope("testing", nil),
	}

	var conn jsonrpc2.Conn = jsonrpc2mock.NewMockConn(ctrl)

	t.Run("create success", func(t *testing.T) {
		id := factory.UUID()
		c.EXPECT().InitSession(gomock.Any(), &conn).Return(id, nil)
		router, err := h.NewConnection(ctx, &conn)
		require.NoError(t, err)
		assert.IsType(t, &jsonRPCRouter{}, router)
		assert.Equal(t, id, router.UUID())
	})

	t.Run("create failure", func(t *testing.T) {
		c.EXPECT().InitSession(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("error"))
		_, err := h.NewConnection(ctx, &conn)
		assert.Error(t, err)
	})
}

func TestRemoveConnection(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		endErr     error
		wantWarned bool
	}{
		{
			name: "session ended",
		},
		{
			name:   "session already ended",
			endErr: &elsperrors.UUIDNotFoundError{},
		},
		{
			name:       "session end failed",
			endErr:     errors.New("plugin failed to close"),
			wantWarned: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			core, logs := observer.New(zapcore.WarnLevel)

			id := factory.UUID()
			c := languageservicemock.NewMockController(ctrl)
			c.EXPECT().EndSession(gomock.Any(), id).DoAndReturn(func(ctx context.Context, got uuid.UUID) error {
				resultID, err := mapper.ContextToSessionUUID(ctx)
				assert.NoError(t, err)
				assert.Equal(t, got, resultID)
				return tt.endErr
			})

			h := handler{ctrl: c, logger: zap.New(core).Sugar(), stats: tally.NoopScope}
			h.RemoveConnection(ctx, id)
			assert.Equal(t, tt.wantWarned, logs.Len() == 1)
		})
	}
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newMockReplier() jsonrpc2.Replier {
	return func(ctx context.Context, result interface{}, err error) error {
		return err
	}
}
