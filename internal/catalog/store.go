// ABOUTME: Concurrency-safe catalog store serving immutable snapshots.
// ABOUTME: Optionally reloads a catalog directory when files change.
package catalog

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// reloadDelay coalesces bursts of file events into one reload.
const reloadDelay = 200 * time.Millisecond

// Store holds the current catalog. Readers get a copy, so a snapshot stays
// stable for the duration of one plan generation.
type Store struct {
	dir string
	log logrus.FieldLogger

	mu        sync.RWMutex
	exercises []models.Exercise
}

// NewStore loads the seed catalog plus any overlay files in dir. An empty dir
// serves the seed alone. A nil log discards messages.
func NewStore(dir string, log logrus.FieldLogger) (*Store, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	s := &Store{dir: dir, log: log}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the catalog from the seed and the overlay directory. On
// error the previous catalog is kept.
func (s *Store) Reload() error {
	exercises, err := Seed()
	if err != nil {
		return err
	}
	if s.dir != "" {
		overlay, err := LoadDir(s.dir)
		if err != nil {
			return fmt.Errorf("load catalog dir: %w", err)
		}
		exercises = Merge(exercises, overlay)
	}

	s.mu.Lock()
	s.exercises = exercises
	s.mu.Unlock()

	s.log.Debugf("catalog loaded: %d exercises", len(exercises))
	return nil
}

// Exercises returns a snapshot of the catalog.
func (s *Store) Exercises(ctx context.Context) ([]models.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Exercise(nil), s.exercises...), nil
}

// Get looks up one exercise by id.
func (s *Store) Get(id string) (models.Exercise, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ex := range s.exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// Len returns the number of exercises in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exercises)
}

// Watch reloads the catalog whenever a catalog file anywhere under the overlay
// directory changes. Directories created while watching are watched too. It blocks until ctx is cancelled. Without a directory it returns
// immediately.
func (s *Store) Watch(ctx context.Context) error {
	if s.dir == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := watchTree(w, s.dir); err != nil {
		return err
	}
	s.log.Infof("watching catalog dir %s", s.dir)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event) && !s.newDir(w, event) {
				continue
			}
			s.log.Debugf("catalog event %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := s.Reload(); err != nil {
				s.log.Warnf("catalog reload failed, keeping previous catalog: %v", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warnf("catalog watcher: %v", err)
		}
	}
}

func (s *Store) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(s.dir, event.Name)
	if err != nil {
		return false
	}
	return IsCatalogFile(rel)
}

// newDir watches a directory created under the overlay directory. It reports
// true so the reload picks up files moved in with it.
func (s *Store) newDir(w *fsnotify.Watcher, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := watchTree(w, event.Name); err != nil {
		s.log.Warnf("catalog watcher: %v", err)
	}
	return true
}

// watchTree adds root and every directory below it, since fsnotify only
// reports events for direct children of a watched directory.
func watchTree(w *fsnotify.Watcher, root string) error {
	if err := w.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return doublestar.GlobWalk(os.DirFS(root), "**", func(path string, d fs.DirEntry) error {
		if path == "." || d == nil || !d.IsDir() {
			return nil
		}
		dir := filepath.Join(root, filepath.FromSlash(path))
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		return nil
	}, doublestar.WithNoFollow())
}
