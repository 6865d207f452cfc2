package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDebounce is how long the watcher waits for writes to settle.
const ReloadDebounce = 250 * time.Millisecond

// Watcher reloads the configuration when its file changes.
type Watcher struct {
	configPath string
	overrides  []string
	flags      func(*AppConfig) error
	debounce   time.Duration
	logf       func(string, ...any)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	started bool
	done    chan struct{}
	updates chan *AppConfig
}

// NewWatcher watches configPath, or the default config files when empty.
// Overrides are re-applied on every reload.
func NewWatcher(configPath string, overrides []string, logf func(string, ...any)) *Watcher {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Watcher{
		configPath: configPath,
		overrides:  append([]string(nil), overrides...),
		debounce:   ReloadDebounce,
		logf:       logf,
		done:       make(chan struct{}),
		updates:    make(chan *AppConfig, 1),
	}
}

// SetFlags registers the command-line flag layer. It runs on every reload
// between the file and the overrides, matching startup precedence.
func (w *Watcher) SetFlags(fn func(*AppConfig) error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flags = fn
}

// Updates delivers the latest configuration after a change. Unread values
// are replaced by newer ones.
func (w *Watcher) Updates() <-chan *AppConfig {
	return w.updates
}

// Start begins watching. The config directory must exist.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	dir := ConfigDir()
	if w.configPath != "" {
		path, err := ResolveConfigPath(w.configPath)
		if err != nil {
			return err
		}
		w.configPath = path
		dir = filepath.Dir(path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return err
	}
	w.watcher = watcher
	w.started = true
	go w.run()
	return nil
}

// Stop ends watching.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.started = false
	close(w.done)
	if w.timer != nil {
		w.timer.Stop()
	}
	_ = w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logf("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(name string) bool {
	if w.configPath != "" {
		return filepath.Clean(name) == w.configPath
	}
	switch filepath.Base(name) {
	case "config.yaml", "config.yml", "config.toml":
		return true
	}
	return false
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadConfig(w.configPath)
	if err != nil {
		w.logf("config reload failed: %v", err)
		return
	}
	w.mu.Lock()
	flags := w.flags
	w.mu.Unlock()
	if flags != nil {
		if err := flags(cfg); err != nil {
			w.logf("config flags failed: %v", err)
			return
		}
	}
	if cfg, err = ApplyCLIOverrides(cfg, w.overrides); err != nil {
		w.logf("config overrides failed: %v", err)
		return
	}
	w.logf("config reloaded")

	select {
	case <-w.done:
		return
	default:
	}
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	default:
	}
}
