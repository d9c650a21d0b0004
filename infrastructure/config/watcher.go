package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/haggle-go/domain/config"
	"github.com/felixgeelhaar/haggle-go/infrastructure/logging"
)

// Watcher reloads the experiment configuration when the file changes.
// Reloads apply between sessions; a running negotiation keeps the policy it
// started with.
type Watcher struct {
	path     string
	loader   *Loader
	onChange func(*config.ExperimentConfig)

	// debounce coalesces the write bursts editors produce on save.
	debounce time.Duration

	mu      sync.RWMutex
	current *config.ExperimentConfig

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher loads the file once and prepares watching. onChange may be nil.
func NewWatcher(path string, loader *Loader, onChange func(*config.ExperimentConfig)) (*Watcher, error) {
	if loader == nil {
		loader = NewLoader()
	}

	cfg, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:     path,
		loader:   loader,
		onChange: onChange,
		debounce: 200 * time.Millisecond,
		current:  cfg,
		done:     make(chan struct{}),
	}, nil
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() *config.ExperimentConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start begins watching until the context is cancelled. A reload that fails
// to parse or validate is logged and discarded; the previous configuration
// stays active.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fw

	// Watch the directory: editors replace files on save, which drops a
	// watch registered on the file itself.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return err
	}

	go w.loop(ctx)
	return nil
}

// Done is closed when the watch loop has stopped.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer func() { _ = w.watcher.Close() }()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn().
				Add(logging.Component("config")).
				Add(logging.ErrorField(err)).
				Msg("config watch error")
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.loader.LoadFile(w.path)
	if err != nil {
		logging.Warn().
			Add(logging.Component("config")).
			Add(logging.Str("path", w.path)).
			Add(logging.ErrorField(err)).
			Msg("config reload rejected, keeping previous")
		return
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	logging.Info().
		Add(logging.Component("config")).
		Add(logging.Str("path", w.path)).
		Msg("config reloaded")

	if w.onChange != nil {
		w.onChange(cfg)
	}
}
