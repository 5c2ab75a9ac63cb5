package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"launchpool/internal/model"
)

type snapshotRecord struct {
	Pools     []model.PoolSnapshot `json:"pools"`
	UpdatedAt string               `json:"updated_at"`
}

// SnapshotFile persists the full pool set to a local JSON file, written
// atomically via tmp-file rename.
type SnapshotFile struct {
	path string
}

func NewSnapshotFile(path string) *SnapshotFile {
	return &SnapshotFile{path: path}
}

// Load reads the persisted pool set. The second return is false when no
// snapshot exists yet.
func (s *SnapshotFile) Load() ([]model.PoolSnapshot, bool, error) {
	if s == nil || s.path == "" {
		return nil, false, nil
	}

	stat, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stat snapshot: %w", err)
	}
	if stat.IsDir() {
		return nil, false, fmt.Errorf("snapshot path is a directory")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}

	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("parse snapshot: %w", err)
	}

	return rec.Pools, true, nil
}

// Save writes the full pool set, replacing any previous snapshot.
func (s *SnapshotFile) Save(pools []model.PoolSnapshot) error {
	if s == nil || s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	rec := snapshotRecord{
		Pools:     pools,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}

	return nil
}
