package mapper

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"go.lsp.dev/protocol"
)

func TestPluginInfoToRuntimePrioritizedMethods(t *testing.T) {
	methodExamples := make([]*serviceplugin.Methods, 3)
	for i := 0; i < 3; i++ {
		methodExamples[i] = &serviceplugin.Methods{
			PluginNameKey: fmt.Sprintf("test-plugin-%v", i),
			ProvideHover: func(ctx context.Context, doc *textdocument.TextDocument, pos protocol.Position) (*protocol.Hover, error) {
				return nil, nil
			},
		}
	}

	t.Run("valid plugins", func(t *testing.T) {
		allPluginInfo := []serviceplugin.PluginInfo{
			{
				Priorities: map[string]serviceplugin.Priority{
					protocol.MethodTextDocumentHover: serviceplugin.PriorityRegular,
				},
				Methods: methodExamples[0],
				NameKey: methodExamples[0].PluginNameKey,
			},
			{
				Priorities: map[string]serviceplugin.Priority{
					protocol.MethodTextDocumentHover: serviceplugin.PriorityRegular,
				},
				Methods: methodExamples[1],
				NameKey: methodExamples[1].PluginNameKey,
			},
			{
				Priorities: map[string]serviceplugin.Priority{
					protocol.MethodTextDocumentHover: serviceplugin.PriorityHigh,
				},
				Methods: methodExamples[2],
				NameKey: methodExamples[2].PluginNameKey,
			},
		}

		result, err := PluginInfoToRuntimePrioritizedMethods(allPluginInfo)
		require.NoError(t, err)

		hover := result[protocol.MethodTextDocumentHover]
		require.Len(t, hover, 3)
		assert.Equal(t, []string{"test-plugin-2", "test-plugin-0", "test-plugin-1"}, []string{hover[0].Name(), hover[1].Name(), hover[2].Name()})
		assert.Equal(t, []int{2, 0, 1}, []int{hover[0].Index, hover[1].Index, hover[2].Index})
		assert.Same(t, methodExamples[2], hover[0].Methods())
		assert.Empty(t, result[protocol.MethodTextDocumentDefinition])
	})

	t.Run("validation failure", func(t *testing.T) {
		allPluginInfo := []serviceplugin.PluginInfo{
			{
				Priorities: map[string]serviceplugin.Priority{
					protocol.MethodTextDocumentHover: serviceplugin.PriorityRegular,
				},
			},
			{
				Priorities: map[string]serviceplugin.Priority{
					protocol.MethodTextDocumentHover: serviceplugin.PriorityHigh,
				},
				Methods: methodExamples[2],
			},
		}

		_, err := PluginInfoToRuntimePrioritizedMethods(allPluginInfo)
		assert.Error(t, err)
	})
}
