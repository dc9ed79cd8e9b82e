// Package persistence stores layout documents on disk: a JSON file store
// with atomic writes, a change watcher, and a sqlite-backed layout library
// under the sqlite subpackage.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docktree/docktree/internal/logging"
	"github.com/docktree/docktree/pkg/dock"
)

const (
	fileStoreDirPerm  = 0o750
	fileStoreFilePerm = 0o600
)

// FileStore reads and writes layout documents as pretty-printed JSON files.
type FileStore struct{}

// NewFileStore creates a file store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Save writes the document to path. The write goes through a temp file in
// the same directory followed by a rename, so a failed save never truncates
// an existing layout.
func (s *FileStore) Save(ctx context.Context, path string, doc dock.Document) error {
	log := logging.FromContext(ctx)

	if path == "" {
		return fmt.Errorf("layout path cannot be empty")
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid layout: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, fileStoreDirPerm); err != nil {
		return fmt.Errorf("create layout directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp layout file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write layout: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp layout file: %w", err)
	}
	if err := os.Chmod(tmpName, fileStoreFilePerm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod layout file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace layout file: %w", err)
	}

	log.Debug().Str("path", path).Int("records", len(doc)).Msg("layout saved")
	return nil
}

// Load reads and decodes the document at path.
func (s *FileStore) Load(ctx context.Context, path string) (dock.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}

	var doc dock.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode layout file %s: %w", path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("path", path).
		Int("records", len(doc)).
		Msg("layout loaded")
	return doc, nil
}
