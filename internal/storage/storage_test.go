package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"launchpool/internal/model"
)

func TestJSONLJournalAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	journal := NewJSONLJournal(path)

	first := model.PoolEvent{Type: model.EventPoolCreated, PoolID: "0x01", Remaining: 1000}
	second := model.PoolEvent{Type: model.EventParticipation, PoolID: "0x01", Actor: "0x09", Amount: 50, Remaining: 950}

	if err := journal.PutEventBatch([]model.PoolEvent{first}); err != nil {
		t.Fatalf("append first batch: %v", err)
	}
	if err := journal.PutEventBatch([]model.PoolEvent{second}); err != nil {
		t.Fatalf("append second batch: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer file.Close()

	var events []model.PoolEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event model.PoolEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("parse line: %v", err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan journal: %v", err)
	}

	want := []model.PoolEvent{first, second}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("journal mismatch: %+v != %+v", events, want)
	}
}

func TestJSONLJournalEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	journal := NewJSONLJournal(path)

	if err := journal.PutEventBatch(nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty batch created journal file")
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.json")
	snapshot := NewSnapshotFile(path)

	if _, ok, err := snapshot.Load(); err != nil || ok {
		t.Fatalf("missing snapshot returned ok=%v err=%v", ok, err)
	}

	pools := []model.PoolSnapshot{
		{
			PoolID: common.HexToAddress("0x0000000000000000000000000000000000000042"),
			Pool: model.Pool{
				Authority:           common.HexToAddress("0x0000000000000000000000000000000000000003"),
				TotalAllocation:     1000,
				RemainingAllocation: 950,
				UnitPrice:           5,
				MinAllocation:       10,
				MaxAllocation:       200,
				StartTime:           1000,
				EndTime:             2000,
			},
		},
	}

	if err := snapshot.Save(pools); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	loaded, ok, err := snapshot.Load()
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if !ok {
		t.Fatalf("saved snapshot not found")
	}
	if !reflect.DeepEqual(loaded, pools) {
		t.Fatalf("snapshot mismatch: %+v != %+v", loaded, pools)
	}

	// A second save replaces the previous set.
	pools[0].RemainingAllocation = 900
	if err := snapshot.Save(pools); err != nil {
		t.Fatalf("save updated snapshot: %v", err)
	}
	loaded, _, err = snapshot.Load()
	if err != nil {
		t.Fatalf("reload snapshot: %v", err)
	}
	if loaded[0].RemainingAllocation != 900 {
		t.Fatalf("reloaded remaining %d, want 900", loaded[0].RemainingAllocation)
	}
}
