// Package serverinfofile publishes how editor extensions can reach a running server.
package serverinfofile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyInfoFile = "serverInfoFile"
	_pidKey            = "pid"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ServerInfoFile holds the connection details of this process as a flat JSON object on disk.
type ServerInfoFile interface {
	UpdateField(key string, value string) error
}

type module struct {
	path   string
	logger *zap.SugaredLogger

	mu     sync.Mutex
	fields map[string]string
}

// Params define values to be used by ServerInfoFile.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

// New creates a ServerInfoFile. Without a configured path the fields are only kept in memory.
func New(p Params) (ServerInfoFile, error) {
	m := &module{
		logger: p.Logger,
		fields: map[string]string{_pidKey: strconv.Itoa(os.Getpid())},
	}
	if err := p.Config.Get(_configKeyInfoFile).Populate(&m.path); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyInfoFile, err)
	}

	p.Lifecycle.Append(fx.Hook{OnStop: m.onStop})
	return m, nil
}

// UpdateField records a value and rewrites the file, so readers never observe a partial write.
func (m *module) UpdateField(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fields[key] = value
	if m.path == "" {
		return nil
	}

	contents, err := json.Marshal(m.fields)
	if err != nil {
		return fmt.Errorf("marshalling server info: %w", err)
	}
	if err := writeReplace(m.path, contents); err != nil {
		return fmt.Errorf("writing server info: %w", err)
	}
	m.logger.Infow("server info saved", "file", m.path, key, value)
	return nil
}

func (m *module) onStop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.path == "" {
		return nil
	}
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// writeReplace writes contents next to path and renames it into place.
func writeReplace(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
