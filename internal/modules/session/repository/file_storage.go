package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"
)

// FileStorage implements VisitRepository using the file system
type FileStorage struct {
	path string
	mu   sync.Mutex
}

type visitRecord struct {
	Count int64 `json:"count"`
}

// NewFileStorage creates a new file-based visit counter
func NewFileStorage(basePath string) (VisitRepository, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create data directory").Wrap(err)
	}

	return &FileStorage{path: filepath.Join(basePath, "visits.json")}, nil
}

func (s *FileStorage) Increment() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.read()
	if err != nil {
		return 0, err
	}

	record.Count++
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return 0, oops.With("path", s.path, "context", "failed to marshal visit count").Wrap(err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return 0, oops.With("path", s.path, "context", "failed to write visit count").Wrap(err)
	}

	return record.Count, nil
}

func (s *FileStorage) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.read()
	if err != nil {
		return 0, err
	}
	return record.Count, nil
}

func (s *FileStorage) read() (*visitRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &visitRecord{}, nil
		}
		return nil, oops.With("path", s.path, "context", "failed to read visit count").Wrap(err)
	}

	var record visitRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, oops.With("path", s.path, "context", "failed to unmarshal visit count").Wrap(err)
	}
	return &record, nil
}
