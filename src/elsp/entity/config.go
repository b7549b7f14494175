package entity

// LanguageServiceConfigKey is the key that contains language service configuration.
const LanguageServiceConfigKey = "languageService"

// DefaultSettingsFile is the workspace-relative settings file used when none is configured.
const DefaultSettingsFile = ".elsp/settings.yaml"

// LanguageServiceConfig configures the language service.
type LanguageServiceConfig struct {
	WorkspaceDiagnostics WorkspaceDiagnosticsConfig `yaml:"workspaceDiagnostics"`
	Diagnostics          DiagnosticsConfig          `yaml:"diagnostics"`
	// RangeFallback lets range translation pair any start with any later end when no segment covers both.
	RangeFallback bool `yaml:"rangeFallback"`
}

// WorkspaceDiagnosticsConfig configures the sweep that validates every open document.
type WorkspaceDiagnosticsConfig struct {
	// Concurrency bounds the documents validated at once. Values below one mean sequential.
	Concurrency int `yaml:"concurrency"`
	// YieldIntervalMillis is the pause between documents.
	YieldIntervalMillis int `yaml:"yieldIntervalMillis"`
}

// DiagnosticsConfig configures diagnostics.
type DiagnosticsConfig struct {
	// SettingsFile is the settings file path relative to the workspace root.
	SettingsFile string `yaml:"settingsFile"`
}
