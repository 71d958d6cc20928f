package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// storedCart is the on-disk format: a single "cart" key holding the ordered
// item sequence.
type storedCart struct {
	Cart []Item `json:"cart"`
}

// FileStore mirrors the cart to a JSON file on disk. It is a durable mirror,
// not a second writer: the controller persists after every mutation and
// rehydrates once at startup. Concurrent processes sharing the same file are
// not reconciled (last writer wins).
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the conventional cart mirror location
// (~/.schoolpos/cart.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".schoolpos", "cart.json"), nil
}

// Save serializes the full item sequence to disk.
func (s *FileStore) Save(items []Item) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating cart directory: %w", err)
	}

	data, err := json.MarshalIndent(storedCart{Cart: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling cart: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing cart: %w", err)
	}
	return nil
}

// Load deserializes the persisted item sequence. A missing or malformed
// file yields an empty cart rather than an error.
func (s *FileStore) Load() []Item {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var stored storedCart
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil
	}
	return stored.Cart
}
