package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce batches the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// Watch reloads the goals file at path whenever it changes and passes each
// successfully parsed File to onChange. Parse failures are logged and the
// previous settings stay in effect. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file so editors that save
// by rename keep triggering reloads.
func Watch(ctx context.Context, path string, log *zap.Logger, onChange func(File)) error {
	if log == nil {
		log = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create goals watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve goals file: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log.Info("watching goals file", zap.String("path", abs))

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("goals watcher error", zap.Error(err))
		case <-timer.C:
			f, err := LoadFile(abs)
			if err != nil {
				log.Warn("goals file reload failed", zap.String("path", abs), zap.Error(err))
				continue
			}
			log.Info("goals file reloaded", zap.String("path", abs))
			onChange(f)
		}
	}
}
