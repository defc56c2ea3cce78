package bridge

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var validBridgeID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// BlobStore keeps one JSON envelope per bridge id as a file on disk.
// Writes replace the record wholesale; there is no partial-field update at
// this level of the protocol.
type BlobStore struct {
	mu  sync.Mutex
	dir string
}

// NewBlobStore creates the storage directory if needed.
func NewBlobStore(dir string) (*BlobStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("bridge: storage directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("bridge: ensure storage directory: %w", err)
	}
	return &BlobStore{dir: dir}, nil
}

// Put replaces the stored envelope for id, atomically.
func (s *BlobStore) Put(id string, data []byte) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Get returns the stored envelope for id, or os.ErrNotExist.
func (s *BlobStore) Get(id string) ([]byte, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.ReadFile(path)
}

func (s *BlobStore) path(id string) (string, error) {
	if !validBridgeID.MatchString(id) {
		return "", fmt.Errorf("bridge: invalid bridge id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}
