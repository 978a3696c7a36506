// Package watch triggers a rescan callback when dose report files
// change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/clinphys/rdsr-cli/internal/logger"
)

// Watcher observes a folder tree and invokes onChange when report
// files are created, written, removed or renamed. A rate limiter
// coalesces event bursts (a modality pushing a study writes many
// files in quick succession) into fewer rescans.
type Watcher struct {
	root     string
	onChange func()
	limiter  *rate.Limiter
}

// New creates a watcher over root. minInterval bounds how often
// onChange may fire; zero or negative disables throttling.
func New(root string, minInterval rate.Limit, onChange func()) *Watcher {
	if minInterval <= 0 {
		minInterval = rate.Inf
	}
	return &Watcher{
		root:     root,
		onChange: onChange,
		limiter:  rate.NewLimiter(minInterval, 1),
	}
}

// Run blocks until ctx is cancelled, dispatching onChange for
// relevant filesystem events. New subdirectories are added to the
// watch as they appear.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, w.root); err != nil {
		return err
	}

	logger.Info("watching %s", w.root)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// A created directory needs watching before files land in it.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fw.Add(event.Name); err != nil {
				logger.Warn("cannot watch %s: %v", event.Name, err)
			}
			return
		}
	}

	if !w.limiter.Allow() {
		logger.Debug("change in %s throttled", event.Name)
		return
	}
	logger.Debug("change in %s, rescanning", event.Name)
	w.onChange()
}

// addTree registers root and every subdirectory with the watcher.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}
