package docstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore reads and writes the clinic document as one JSON file. The
// whole document is the unit of atomicity: Save writes a temp file in
// the same directory and renames it over the old one, so a failed save
// leaves the prior document unchanged on disk.
//
// Mutating callers go through Mutate, which holds a process-wide mutex
// for the full load-transform-save span. Reads go through View and are
// not serialized; they see the last-saved snapshot.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load parses the persisted document. A missing file materializes an
// empty document with all known collections and persists it.
func (s *FileStore) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := NewDocument()
		if werr := s.write(doc); werr != nil {
			return nil, werr
		}
		return doc, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}
	doc.ensure()
	return doc, nil
}

// Save serializes and overwrites the persisted document in full.
func (s *FileStore) Save(doc *Document) error {
	return s.write(doc)
}

// Mutate runs one load-transform-save cycle under the writer mutex.
// If fn returns an error nothing is written and the on-disk document
// is untouched.
func (s *FileStore) Mutate(fn func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(doc)
}

// View runs fn against a freshly loaded snapshot without taking the
// writer mutex.
func (s *FileStore) View(fn func(*Document) error) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *FileStore) write(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".clinic-db-*.json")
	if err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StoreError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StoreError{Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StoreError{Op: "save", Err: err}
	}
	return nil
}
