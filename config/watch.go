package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a watcher waits after the last file event
// before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher
}

// NewWatcher starts watching path. It watches the parent directory so that
// editors which replace the file on save are still seen.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}
	return &Watcher{path: abs, debounce: debounce, fw: fw}, nil
}

// Run delivers a freshly loaded config, or the load error, to onChange after
// each burst of writes. It blocks until ctx is done and then closes the
// watcher.
func (w *Watcher) Run(ctx context.Context, onChange func(AppConfig, error)) {
	defer w.fw.Close()

	debounce := time.NewTimer(w.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			onChange(AppConfig{}, fmt.Errorf("watch config: %w", err))

		case <-debounce.C:
			cfg, err := Load(w.path)
			if err == nil {
				ApplyEnv(&cfg)
				err = cfg.Validate()
			}
			onChange(cfg, err)
		}
	}
}

// Watch is NewWatcher followed by Run.
func Watch(ctx context.Context, path string, onChange func(AppConfig, error)) error {
	w, err := NewWatcher(path, DefaultDebounce)
	if err != nil {
		return err
	}
	w.Run(ctx, onChange)
	return nil
}
