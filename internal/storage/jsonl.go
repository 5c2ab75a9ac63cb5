package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"launchpool/internal/model"
)

// JSONLJournal appends pool events to a JSONL file.
type JSONLJournal struct {
	path string
	mu   sync.Mutex
}

func NewJSONLJournal(path string) *JSONLJournal {
	return &JSONLJournal{path: path}
}

// PutEventBatch appends a batch of pool events as JSON lines.
func (j *JSONLJournal) PutEventBatch(events []model.PoolEvent) error {
	if len(events) == 0 {
		return nil
	}

	dir := filepath.Dir(j.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create journal dir: %w", err)
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, event := range events {
		line, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal pool event: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write pool event: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush journal: %w", err)
	}

	return nil
}
