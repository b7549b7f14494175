package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"github.com/uber/embedded-lsp/src/elsp/factory"
	"github.com/uber/embedded-lsp/src/elsp/internal/fs"
	"github.com/uber/embedded-lsp/src/elsp/internal/fs/fsmock"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newController(t *testing.T, elspFS fs.ElspFS, cfg map[string]any) *controller {
	provider, err := config.NewStaticProvider(cfg)
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	c, err := New(Params{
		Config:    provider,
		FS:        elspFS,
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NewTestScope("testing", make(map[string]string)),
		Lifecycle: lc,
	})
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(func() { lc.RequireStop() })
	return c.(*controller)
}

func sessionCtx() context.Context {
	return context.WithValue(context.Background(), entity.SessionContextKey, factory.UUID())
}

func TestNew(t *testing.T) {
	t.Run("default settings file", func(t *testing.T) {
		c := newController(t, fs.New(), map[string]any{})
		assert.Equal(t, entity.DefaultSettingsFile, c.file)
	})

	t.Run("configured settings file", func(t *testing.T) {
		c := newController(t, fs.New(), map[string]any{
			entity.LanguageServiceConfigKey: map[string]any{
				"diagnostics": map[string]any{"settingsFile": "custom.yaml"},
			},
		})
		assert.Equal(t, "custom.yaml", c.file)
	})

	t.Run("invalid config", func(t *testing.T) {
		provider, err := config.NewStaticProvider(map[string]any{
			entity.LanguageServiceConfigKey: "not a map",
		})
		require.NoError(t, err)
		_, err = New(Params{
			Config:    provider,
			FS:        fs.New(),
			Logger:    zap.NewNop().Sugar(),
			Stats:     tally.NoopScope,
			Lifecycle: fxtest.NewLifecycle(t),
		})
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	const root = "/workspace"
	path := filepath.Join(root, entity.DefaultSettingsFile)

	tests := []struct {
		name     string
		setup    func(m *fsmock.MockElspFS)
		expected entity.Settings
		wantErr  bool
	}{
		{
			name: "missing file",
			setup: func(m *fsmock.MockElspFS) {
				m.EXPECT().FileExists(path).Return(false, nil)
			},
			expected: entity.Settings{},
		},
		{
			name: "empty file",
			setup: func(m *fsmock.MockElspFS) {
				m.EXPECT().FileExists(path).Return(true, nil)
				m.EXPECT().ReadFile(path).Return([]byte("\n  \n"), nil)
			},
			expected: entity.Settings{},
		},
		{
			name: "valid file",
			setup: func(m *fsmock.MockElspFS) {
				m.EXPECT().FileExists(path).Return(true, nil)
				m.EXPECT().ReadFile(path).Return([]byte("disabledPlugins: [css]\ndiagnostics:\n  semanticOnly: true\ncompletion:\n  ignoreTriggerCharacters: true\n"), nil)
			},
			expected: entity.Settings{
				DisabledPlugins: []string{"css"},
				Diagnostics:     entity.DiagnosticSettings{SemanticOnly: true},
				Completion:      entity.CompletionSettings{IgnoreTriggerCharacters: true},
			},
		},
		{
			name: "malformed file",
			setup: func(m *fsmock.MockElspFS) {
				m.EXPECT().FileExists(path).Return(true, nil)
				m.EXPECT().ReadFile(path).Return([]byte("disabledPlugins: {"), nil)
			},
			expected: entity.Settings{},
			wantErr:  true,
		},
		{
			name: "read failure",
			setup: func(m *fsmock.MockElspFS) {
				m.EXPECT().FileExists(path).Return(true, nil)
				m.EXPECT().ReadFile(path).Return(nil, errors.New("permission denied"))
			},
			expected: entity.Settings{},
			wantErr:  true,
		},
		{
			name: "stat failure",
			setup: func(m *fsmock.MockElspFS) {
				m.EXPECT().FileExists(path).Return(false, errors.New("io error"))
			},
			expected: entity.Settings{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := fsmock.NewMockElspFS(ctrl)
			tt.setup(m)
			m.EXPECT().DirExists(filepath.Dir(path)).Return(false, nil)

			c := newController(t, m, map[string]any{})
	
			ctx := sessionCtx()
			err := c.Load(ctx, root)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, c.Get(ctx))
		})
	}

	t.Run("no session", func(t *testing.T) {
		c := newController(t, fs.New(), map[string]any{})
		assert.Error(t, c.Load(context.Background(), root))
		assert.Equal(t, entity.Settings{}, c.Get(context.Background()))
	})
}

func TestEndSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := fsmock.NewMockElspFS(ctrl)
	m.EXPECT().FileExists(gomock.Any()).Return(true, nil)
	m.EXPECT().ReadFile(gomock.Any()).Return([]byte("diagnostics:\n  disabled: true\n"), nil)
	m.EXPECT().DirExists(gomock.Any()).Return(false, nil)

	c := newController(t, m, map[string]any{})

	ctx := sessionCtx()
	require.NoError(t, c.Load(ctx, "/workspace"))
	assert.True(t, c.Get(ctx).Diagnostics.Disabled)

	id, err := mapper.ContextToSessionUUID(ctx)
	require.NoError(t, err)
	require.NoError(t, c.EndSession(ctx, id))
	assert.False(t, c.Get(ctx).Diagnostics.Disabled)
}

func TestReload(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".elsp")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	file := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(file, []byte("disabledPlugins: [a]\n"), 0o644))

	c := newController(t, fs.New(), map[string]any{})

	notified := make(chan context.Context, 4)
	c.Subscribe(func(ctx context.Context) {
		notified <- ctx
	})

	ctx := sessionCtx()
	require.NoError(t, c.Load(ctx, root))
	assert.Equal(t, []string{"a"}, c.Get(ctx).DisabledPlugins)

	require.NoError(t, os.WriteFile(file, []byte("disabledPlugins: [b]\n"), 0o644))

	select {
	case got := <-notified:
		assert.Equal(t, ctx.Value(entity.SessionContextKey), got.Value(entity.SessionContextKey))
	case <-time.After(5 * time.Second):
		t.Fatal("listener was not notified")
	}
	assert.Equal(t, []string{"b"}, c.Get(ctx).DisabledPlugins)
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := fsmock.NewMockElspFS(ctrl)
	m.EXPECT().FileExists("/w/s.yaml").Return(true, nil).Times(2)
	gomock.InOrder(
		m.EXPECT().ReadFile("/w/s.yaml").Return([]byte("disabledPlugins: [a]"), nil),
		m.EXPECT().ReadFile("/w/s.yaml").Return([]byte("disabledPlugins: {"), nil),
	)
	m.EXPECT().DirExists("/w").Return(false, nil)

	c := newController(t, m, map[string]any{
		entity.LanguageServiceConfigKey: map[string]any{
			"diagnostics": map[string]any{"settingsFile": "/w/s.yaml"},
		},
	})

	called := false
	c.Subscribe(func(context.Context) { called = true })

	ctx := sessionCtx()
	require.NoError(t, c.Load(ctx, "/ignored"))
	c.reload("/w/s.yaml")

	assert.False(t, called)
	assert.Equal(t, []string{"a"}, c.Get(ctx).DisabledPlugins)
	counter, ok := c.stats.(tally.TestScope).Snapshot().Counters()["testing.settings.reload_failures+"]
	require.True(t, ok)
	assert.Equal(t, int64(1), counter.Value())
}
