package postgres

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"launchpool/internal/model"
)

// stubRow feeds canned column values to Scan without a live database.
type stubRow struct {
	values []interface{}
}

func (r stubRow) Scan(dest ...interface{}) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan arity %d, want %d", len(dest), len(r.values))
	}
	for i, value := range r.values {
		switch d := dest[i].(type) {
		case *string:
			*d = value.(string)
		case *int64:
			*d = value.(int64)
		case *bool:
			*d = value.(bool)
		default:
			return fmt.Errorf("unsupported scan destination %T", dest[i])
		}
	}
	return nil
}

type errRow struct {
	err error
}

func (r errRow) Scan(...interface{}) error {
	return r.err
}

func TestScanPoolRoundTrip(t *testing.T) {
	want := model.PoolSnapshot{
		PoolID: common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		Pool: model.Pool{
			Authority:           common.HexToAddress("0x0000000000000000000000000000000000000001"),
			AssetID:             common.HexToAddress("0x0000000000000000000000000000000000000002"),
			VaultID:             common.HexToAddress("0x0000000000000000000000000000000000000003"),
			TreasuryID:          common.HexToAddress("0x0000000000000000000000000000000000000004"),
			TotalAllocation:     1000,
			RemainingAllocation: 400,
			UnitPrice:           5,
			MinAllocation:       10,
			MaxAllocation:       200,
			StartTime:           1000,
			EndTime:             2000,
			Paused:              true,
			Finalized:           false,
		},
	}

	row := stubRow{values: []interface{}{
		want.PoolID.Hex(),
		want.Authority.Hex(),
		want.AssetID.Hex(),
		want.VaultID.Hex(),
		want.TreasuryID.Hex(),
		int64(want.TotalAllocation),
		int64(want.RemainingAllocation),
		int64(want.UnitPrice),
		int64(want.MinAllocation),
		int64(want.MaxAllocation),
		want.StartTime,
		want.EndTime,
		want.Paused,
		want.Finalized,
	}}

	got, err := scanPool(row)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scanned snapshot mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestScanPoolPropagatesError(t *testing.T) {
	wantErr := errors.New("no rows")
	if _, err := scanPool(errRow{err: wantErr}); !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want %v", err, wantErr)
	}
}

func TestPoolQueryShape(t *testing.T) {
	columns := strings.Split(poolColumns, ",")
	for i := range columns {
		columns[i] = strings.TrimSpace(columns[i])
	}
	if len(columns) != 14 {
		t.Fatalf("poolColumns lists %d columns, want 14", len(columns))
	}

	// scanPool must consume exactly one destination per selected column.
	row := stubRow{values: make([]interface{}, len(columns)+1)}
	if _, err := scanPool(row); err == nil || !strings.Contains(err.Error(), "scan arity") {
		t.Fatalf("scanPool arity does not match poolColumns: %v", err)
	}

	placeholders := regexp.MustCompile(`\$\d+`).FindAllString(upsertPoolSQL, -1)
	seen := make(map[string]bool, len(placeholders))
	for _, p := range placeholders {
		if seen[p] {
			t.Fatalf("placeholder %s bound twice in upsert", p)
		}
		seen[p] = true
	}
	if len(seen) != 14 {
		t.Fatalf("upsert binds %d placeholders, want 14", len(seen))
	}
	for i := 1; i <= 14; i++ {
		if !seen[fmt.Sprintf("$%d", i)] {
			t.Fatalf("upsert is missing placeholder $%d", i)
		}
	}

	for _, column := range columns {
		if !strings.Contains(upsertPoolSQL, column) {
			t.Fatalf("upsert does not insert column %q", column)
		}
	}
	for _, mutable := range []string{"remaining_allocation", "paused", "finalized"} {
		if !strings.Contains(upsertPoolSQL, mutable+" = EXCLUDED."+mutable) {
			t.Fatalf("upsert does not carry %s on conflict", mutable)
		}
	}
}
