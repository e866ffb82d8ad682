package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FileSlot stores the payload as one JSON file. The local counterpart of
// browser-persisted storage: cheap, durable across restarts, and safe to
// lose.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot backed by <dir>/<name>.json, creating dir as
// needed.
func NewFileSlot(dir, name string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSlot{path: filepath.Join(dir, name+".json")}, nil
}

func (s *FileSlot) Read(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	// Write-then-rename so a crash mid-write cannot corrupt the slot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileSlot) Delete(ctx context.Context) error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
