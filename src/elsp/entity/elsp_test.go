package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"
)

func TestSettingsPluginDisabled(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		plugin   string
		expected bool
	}{
		{
			name:     "no plugins disabled",
			settings: Settings{},
			plugin:   "typescript",
		},
		{
			name:     "listed plugin",
			settings: Settings{DisabledPlugins: []string{"css", "typescript"}},
			plugin:   "typescript",
			expected: true,
		},
		{
			name:     "unlisted plugin",
			settings: Settings{DisabledPlugins: []string{"css"}},
			plugin:   "typescript",
		},
		{
			name:     "names are case sensitive",
			settings: Settings{DisabledPlugins: []string{"TypeScript"}},
			plugin:   "typescript",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.PluginDisabled(tt.plugin))
		})
	}
}

func TestSettingsYAML(t *testing.T) {
	data := `
disabledPlugins: [emmet]
diagnostics:
  semanticOnly: true
completion:
  ignoreTriggerCharacters: true
`
	var s Settings
	require.NoError(t, yaml.Unmarshal([]byte(data), &s))
	assert.Equal(t, Settings{
		DisabledPlugins: []string{"emmet"},
		Diagnostics:     DiagnosticSettings{SemanticOnly: true},
		Completion:      CompletionSettings{IgnoreTriggerCharacters: true},
	}, s)
	assert.True(t, s.PluginDisabled("emmet"))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
