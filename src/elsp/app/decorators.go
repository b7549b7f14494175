package app

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/uber/embedded-lsp/src/elsp/internal/core"
	"github.com/uber/embedded-lsp/src/elsp/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
)

// Context describes where the server is running.
type Context struct {
	Environment string `yaml:"environment"`
}

const (
	// EnvLocal is a server started on a developer machine by an editor extension.
	EnvLocal = "local"
	// EnvDevelopment is a server run from a checkout while working on the server itself.
	EnvDevelopment = "development"

	_envElspEnvironment = "ELSP_ENVIRONMENT"
)

// decorateEnvContext takes the environment from ELSP_ENVIRONMENT when it names a known one.
func decorateEnvContext(env Context) Context {
	switch os.Getenv(_envElspEnvironment) {
	case EnvDevelopment:
		env.Environment = EnvDevelopment
	case EnvLocal:
		env.Environment = EnvLocal
	}
	if env.Environment == "" {
		env.Environment = EnvLocal
	}
	return env
}

// DecorateConfigParams is the set of dependencies required to decorate the config.Provider.
type DecorateConfigParams struct {
	fx.In

	Cfg config.Provider
	FS  fs.ElspFS
}

// decorateConfigProvider prepares the host for the loaded configuration before anything reads it.
func decorateConfigProvider(p DecorateConfigParams) (config.Provider, error) {
	if err := createLogDirs(p.Cfg, p.FS); err != nil {
		return nil, fmt.Errorf("preparing log outputs: %w", err)
	}
	return p.Cfg, nil
}

// createLogDirs creates the parent directory of every file log output.
func createLogDirs(cfg config.Provider, fsys fs.ElspFS) error {
	var logging core.LoggingConfig
	if err := cfg.Get("logging").Populate(&logging); err != nil {
		return fmt.Errorf("loading logging config: %w", err)
	}

	for _, output := range logging.OutputPaths {
		path, ok := outputFile(output)
		if !ok {
			continue
		}
		if err := fsys.MkdirAll(filepath.Dir(path)); err != nil {
			return fmt.Errorf("creating directory for %q: %w", output, err)
		}
	}
	return nil
}

// outputFile returns the file path behind a zap output path, or false for the standard streams
// and non-file sinks.
func outputFile(output string) (string, bool) {
	switch output {
	case "", "stdout", "stderr":
		return "", false
	}
	u, err := url.Parse(output)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return output, true
	}
	if u.Scheme == "file" {
		return u.Path, true
	}
	return "", false
}
