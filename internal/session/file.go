package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const stateFileName = "session.json"

var _ Store = (*FileStore)(nil)

// state is the on-disk session shape.
type state struct {
	Identity      string    `json:"identity"`
	EstablishedAt time.Time `json:"established_at"`
}

// FileStore persists the session identity as a small JSON state file.
// The file is shared by every findash process of the same user, so a
// login or logout in one terminal is visible to the others.
type FileStore struct {
	logger *slog.Logger
	dir    string
	mu     sync.Mutex
}

// NewFileStore creates a session store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("session state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &FileStore{
		dir:    dir,
		logger: slog.Default().With("component", "session"),
	}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, stateFileName)
}

// IsAuthenticated implements Store.
func (s *FileStore) IsAuthenticated() bool {
	return s.Identity() != ""
}

// Identity implements Store.
func (s *FileStore) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read session state", "error", err)
		}
		return ""
	}
	return st.Identity
}

// Establish implements Store.
func (s *FileStore) Establish(identity string) error {
	if identity == "" {
		return fmt.Errorf("identity cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := state{
		Identity:      identity,
		EstablishedAt: time.Now(),
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}

	s.logger.Debug("session established", "state_file", s.path())
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session state: %w", err)
	}

	s.logger.Debug("session cleared", "state_file", s.path())
	return nil
}

// Watch implements Store. It watches the state directory rather than the
// file itself so removes and re-creates keep being observed.
func (s *FileStore) Watch(onChange func()) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch state directory: %w", err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != stateFileName {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("session watcher error", "error", err)
			}
		}
	}()

	return func() { _ = watcher.Close() }, nil
}

func (s *FileStore) load() (*state, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil, err
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("corrupt session state: %w", err)
	}
	return &st, nil
}
