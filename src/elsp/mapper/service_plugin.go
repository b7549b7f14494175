package mapper

import (
	"fmt"
	"sort"

	serviceplugin "github.com/uber/embedded-lsp/src/elsp/entity/service-plugin"
)

// PluginInfoToRuntimePrioritizedMethods maps all PluginInfo from running plugins, into a prioritized list of plugins to run per method.
// The position of each PluginInfo in allPluginInfo becomes its registration index, which breaks ties within a priority.
func PluginInfoToRuntimePrioritizedMethods(allPluginInfo []serviceplugin.PluginInfo) (serviceplugin.RuntimePrioritizedMethods, error) {
	result := make(serviceplugin.RuntimePrioritizedMethods)

	for i, pluginInfo := range allPluginInfo {
		if err := pluginInfo.Validate(); err != nil {
			return nil, fmt.Errorf("error validating plugin configuration for %q: %w", pluginInfo.NameKey, err)
		}

		for method, priority := range pluginInfo.Priorities {
			result[method] = append(result[method], serviceplugin.Registered{
				Index:    i,
				Priority: priority,
				Info:     pluginInfo,
			})
		}
	}

	for _, plugins := range result {
		sort.SliceStable(plugins, func(p, q int) bool {
			if plugins[p].Priority != plugins[q].Priority {
				return plugins[p].Priority < plugins[q].Priority
			}
			return plugins[p].Index < plugins[q].Index
		})
	}

	return result, nil
}
