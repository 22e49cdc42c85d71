package services

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// PhotoService serves crew photo bytes when building outbound sync
// commands. Reads are cached; a directory watcher invalidates entries
// when photo files change on disk.
type PhotoService struct {
	Root string

	mu      sync.RWMutex
	cache   map[string][]byte
	watcher *fsnotify.Watcher
}

func NewPhotoService(root string) *PhotoService {
	s := &PhotoService{
		Root:  root,
		cache: make(map[string][]byte),
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("[Photo] watcher unavailable, serving uncached invalidation: %v", err)
		return s
	}
	if err := w.Add(root); err != nil {
		log.Printf("[Photo] cannot watch %s: %v", root, err)
		w.Close()
		return s
	}
	s.watcher = w
	go s.watch()
	return s
}

func (s *PhotoService) watch() {
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.mu.Lock()
				delete(s.cache, filepath.Base(ev.Name))
				s.mu.Unlock()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Photo] watch error: %v", err)
		}
	}
}

// FetchImageBytes reads a crew photo by path. Only the base name is
// honored; the photo repository is flat.
func (s *PhotoService) FetchImageBytes(path string) ([]byte, error) {
	name := filepath.Base(path)

	s.mu.RLock()
	data, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return data, nil
	}

	data, err := os.ReadFile(filepath.Join(s.Root, name))
	if err != nil {
		return nil, errors.Wrapf(err, "read photo %s", name)
	}

	s.mu.Lock()
	s.cache[name] = data
	s.mu.Unlock()
	return data, nil
}

func (s *PhotoService) Close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
}
