package catalog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/routelab/skillrouter/pkg/logger"
)

// Watcher reloads the catalog file into a Store whenever it changes on
// disk. Reloads are whole-file: a failed load keeps the previous snapshot.
type Watcher struct {
	path    string
	store   *Store
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the directory containing path. Watching the
// directory instead of the file survives editors that replace the file on
// save.
func NewWatcher(path string, store *Store) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create catalog watcher")
	}

	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, errors.Wrapf(err, "failed to watch catalog directory %s", filepath.Dir(path))
	}

	return &Watcher{path: path, store: store, watcher: fsWatcher}, nil
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	log := logger.G(ctx).WithField("catalog", w.path)

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

			cat, err := Load(w.path)
			if err != nil {
				log.WithError(err).Warn("catalog reload failed, keeping previous snapshot")
				continue
			}
			w.store.Swap(cat)
			log.WithField("skills", len(cat.Skills)).Info("catalog reloaded")
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("catalog watcher error")
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
