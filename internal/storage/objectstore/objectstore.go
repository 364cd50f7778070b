// Package objectstore provides the photo-upload collaborator: binary
// objects go in, public URLs come out.
package objectstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the interface for object storage backends. Implementations
// persist the object under a generated key and return a public URL the
// frontend can render directly.
type Store interface {
	// Put stores data and returns its public URL. ext is the file
	// extension including the dot (".jpg"); an empty ext is allowed.
	Put(ctx context.Context, ext string, data []byte) (string, error)
}

// Ensure LocalStore implements Store
var _ Store = (*LocalStore)(nil)

// LocalStore writes objects to a local directory served by the HTTP
// server under baseURL. Suitable for single-node deployments; swap in a
// bucket-backed Store for anything else.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the upload directory if needed. baseURL is the
// public prefix the server mounts the directory on, e.g.
// "http://localhost:8080/uploads".
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Put writes the object under a fresh UUID name and returns its URL.
func (s *LocalStore) Put(ctx context.Context, ext string, data []byte) (string, error) {
	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
