package settings

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"github.com/uber/embedded-lsp/src/elsp/internal/fs"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	_nameKey         = "settings"
	_debounceTimeout = 50 * time.Millisecond

	_errReadSettings  = "reading settings file %q: %w"
	_errParseSettings = "parsing settings file %q: %w"
)

// Listener is notified after the settings of a session changed. The context carries the session UUID.
type Listener func(ctx context.Context)

// Controller loads the per-workspace settings file of each session and watches it for changes.
type Controller interface {
	// Load reads the settings of the session in ctx from its workspace and starts watching the file.
	Load(ctx context.Context, workspaceRoot string) error
	// Get returns the current settings of the session in ctx, or the zero settings.
	Get(ctx context.Context) entity.Settings
	// Subscribe registers a listener for settings changes.
	Subscribe(l Listener)
	// EndSession forgets the settings of a session.
	EndSession(ctx context.Context, id uuid.UUID) error
}

// Params are inbound parameters to initialize a new settings controller.
type Params struct {
	fx.In

	Config    config.Provider
	FS        fs.ElspFS
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Lifecycle fx.Lifecycle
}

type sessionSettings struct {
	path     string
	settings entity.Settings
}

type controller struct {
	file   string
	fs     fs.ElspFS
	logger *zap.SugaredLogger
	stats  tally.Scope

	mu        sync.Mutex
	sessions  map[uuid.UUID]*sessionSettings
	listeners []Listener

	watcher        *fsnotify.Watcher
	once           sync.Once
	watchCloser    chan struct{}
	watchDone      chan struct{}
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex
}

// New creates a new settings controller.
func New(p Params) (Controller, error) {
	cfg := entity.LanguageServiceConfig{}
	if err := p.Config.Get(entity.LanguageServiceConfigKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting configuration for %q: %w", entity.LanguageServiceConfigKey, err)
	}
	file := cfg.Diagnostics.SettingsFile
	if file == "" {
		file = entity.DefaultSettingsFile
	}

	c := &controller{
		file:           file,
		fs:             p.FS,
		logger:         p.Logger.With("controller", _nameKey),
		stats:          p.Stats.SubScope(_nameKey),
		sessions:       make(map[uuid.UUID]*sessionSettings),
		watchCloser:    make(chan struct{}),
		watchDone:      make(chan struct{}),
		debounceTimers: make(map[string]*time.Timer),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.logger.Warnf("File watcher unavailable, settings changes will not be picked up: %v", err)
	} else {
		c.watcher = watcher
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.close()
		},
	})
	return c, nil
}

func (c *controller) Load(ctx context.Context, workspaceRoot string) error {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return err
	}

	path := c.file
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspaceRoot, path)
	}

	settings, err := c.read(path)
	c.mu.Lock()
	c.sessions[id] = &sessionSettings{path: path, settings: settings}
	c.mu.Unlock()

	c.watch(path)
	return err
}

func (c *controller) Get(ctx context.Context) entity.Settings {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return entity.Settings{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[id]; ok {
		return s.settings
	}
	return entity.Settings{}
}

func (c *controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}

// read returns the zero settings when the file does not exist.
func (c *controller) read(path string) (entity.Settings, error) {
	settings := entity.Settings{}
	exists, err := c.fs.FileExists(path)
	if err != nil {
		return settings, fmt.Errorf(_errReadSettings, path, err)
	}
	if !exists {
		return settings, nil
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf(_errReadSettings, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return settings, nil
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return entity.Settings{}, fmt.Errorf(_errParseSettings, path, err)
	}
	return settings, nil
}

func (c *controller) watch(path string) {
	if c.watcher == nil {
		return
	}

	dir := filepath.Dir(path)
	exists, err := c.fs.DirExists(dir)
	if err != nil || !exists {
		c.logger.Infof("Settings directory %q does not exist, not watching it", dir)
		return
	}
	if err := c.watcher.Add(dir); err != nil {
		c.logger.Warnf("Failed to watch settings directory %q: %v", dir, err)
		return
	}

	c.once.Do(func() {
		go c.handleChanges()
	})
}

func (c *controller) handleChanges() {
	defer close(c.watchDone)
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			c.handleDebounce(event)
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warnf("Failure in settings watcher: %v", err)
		case <-c.watchCloser:
			return
		}
	}
}

// handleDebounce coalesces bursts of events for one file into a single reload.
func (c *controller) handleDebounce(event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if !c.isWatched(name) {
		return
	}

	c.debounceMu.Lock()
	defer c.debounceMu.Unlock()

	if timer, exists := c.debounceTimers[name]; exists {
		timer.Stop()
	}
	c.debounceTimers[name] = time.AfterFunc(_debounceTimeout, func() {
		c.debounceMu.Lock()
		delete(c.debounceTimers, name)
		c.debounceMu.Unlock()

		c.reload(name)
	})
}

func (c *controller) isWatched(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.sessions {
		if filepath.Clean(s.path) == path {
			return true
		}
	}
	return false
}

// reload rereads a settings file and notifies listeners for every session using it.
func (c *controller) reload(path string) {
	settings, err := c.read(path)
	if err != nil {
		c.logger.Warnf("Keeping previous settings: %v", err)
		c.stats.Counter("reload_failures").Inc(1)
		return
	}
	c.stats.Counter("reloads").Inc(1)

	c.mu.Lock()
	var changed []uuid.UUID
	for id, s := range c.sessions {
		if filepath.Clean(s.path) == path {
			s.settings = settings
			changed = append(changed, id)
		}
	}
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, id := range changed {
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
		for _, l := range listeners {
			l(ctx)
		}
	}
}

func (c *controller) close() error {
	c.debounceMu.Lock()
	for _, timer := range c.debounceTimers {
		timer.Stop()
	}
	c.debounceTimers = make(map[string]*time.Timer)
	c.debounceMu.Unlock()

	if c.watcher == nil {
		return nil
	}

	// Consumes the once so a later Load cannot start the loop after close.
	started := true
	c.once.Do(func() { started = false })
	close(c.watchCloser)
	err := c.watcher.Close()
	if started {
		<-c.watchDone
	}
	return err
}
