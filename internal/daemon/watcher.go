package daemon

import (
	"fmt"
	"mirro/internal/logger"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher observes a source tree and emits one trigger once filesystem events
// have settled for the debounce delay, coalescing event bursts into a single
// mirror pass.
type Watcher struct {
	fw        *fsnotify.Watcher
	triggerCh chan struct{}
	doneCh    chan struct{}
	excludes  []string
	delay     time.Duration
}

func NewWatcher(delay time.Duration, excludes []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		fw:        fw,
		triggerCh: make(chan struct{}, 1),
		doneCh:    make(chan struct{}),
		excludes:  excludes,
		delay:     delay,
	}, nil
}

func (w *Watcher) Watch(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if _, err := os.Stat(absDir); err != nil {
		return fmt.Errorf("source directory not found: %w", err)
	}

	if err := w.addRecursive(absDir); err != nil {
		return err
	}

	go w.run()

	logger.Log.Info("watcher started",
		zap.String("dir", absDir))
	return nil
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if w.excluded(path) {
				return filepath.SkipDir
			}

			if err := w.fw.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			logger.Log.Debug("watching directory",
				zap.String("path", path))
		}

		return nil
	})
}

func (w *Watcher) run() {
	defer close(w.triggerCh)

	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-w.doneCh:
			logger.Log.Info("watcher stopping")
			return

		case fsEvent, ok := <-w.fw.Events:
			if !ok {
				return
			}

			if w.excluded(fsEvent.Name) {
				continue
			}

			if fsEvent.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(fsEvent.Name); err == nil && info.IsDir() {
					if err := w.fw.Add(fsEvent.Name); err != nil {
						logger.Log.Warn("failed to watch new directory",
							zap.String("path", fsEvent.Name),
							zap.Error(err))
					}
				}
			}

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.delay)

		case <-timer.C:
			select {
			case w.triggerCh <- struct{}{}:
			default:
				// A trigger is already pending; the next pass covers this burst.
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}

			logger.Log.Error("watcher error",
				zap.Error(err))
		}
	}
}

func (w *Watcher) Triggers() <-chan struct{} {
	return w.triggerCh
}

func (w *Watcher) Stop() {
	close(w.doneCh)
	_ = w.fw.Close()
}

func (w *Watcher) excluded(path string) bool {
	for _, pattern := range w.excludes {
		if strings.Contains(path, pattern) {
			return true
		}
	}

	return false
}
