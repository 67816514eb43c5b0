// Package prefs persists per-user preferences as one YAML document per user.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mew228/Flowstate/internal/core/ports"
)

// FileStore serializes access per user. Different users never share a file,
// so they never wait on each other.
type FileStore struct {
	dir   string
	locks sync.Map // userID -> *sync.Mutex
}

var _ ports.PreferencesRepository = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load returns the zero Preferences when nothing was saved for userID yet.
func (s *FileStore) Load(_ context.Context, userID string) (ports.Preferences, error) {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	return s.read(userID)
}

func (s *FileStore) Save(_ context.Context, userID string, prefs ports.Preferences) error {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	return s.write(userID, prefs)
}

// Update holds the user's lock from read to write, so concurrent updates for
// one user apply in sequence instead of overwriting each other.
func (s *FileStore) Update(ctx context.Context, userID string, fn func(ports.Preferences) (ports.Preferences, error)) (ports.Preferences, error) {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ports.Preferences{}, err
	}

	current, err := s.read(userID)
	if err != nil {
		return ports.Preferences{}, err
	}
	next, err := fn(current)
	if err != nil {
		return ports.Preferences{}, err
	}
	if err := s.write(userID, next); err != nil {
		return ports.Preferences{}, err
	}
	return next, nil
}

func (s *FileStore) lock(userID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, new(sync.Mutex))
	return mu.(*sync.Mutex)
}

func (s *FileStore) read(userID string) (ports.Preferences, error) {
	data, err := os.ReadFile(s.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return ports.Preferences{}, nil
	}
	if err != nil {
		return ports.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}

	var prefs ports.Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return ports.Preferences{}, fmt.Errorf("parse preferences: %w", err)
	}
	return prefs, nil
}

func (s *FileStore) write(userID string, prefs ports.Preferences) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	target := s.path(userID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}

// path maps userID to a stable file name that is safe on any filesystem.
func (s *FileStore) path(userID string) string {
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte(userID)).String()
	return filepath.Join(s.dir, name+".yaml")
}

// Ping checks that the preferences directory exists and is writable.
func (s *FileStore) Ping(_ context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("write preferences dir: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
