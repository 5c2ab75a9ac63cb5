package engine

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestDerivePoolIDDeterministic(t *testing.T) {
	asset := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	first := DerivePoolID(asset)
	second := DerivePoolID(asset)
	if first != second {
		t.Fatalf("pool id not deterministic: %s != %s", first.Hex(), second.Hex())
	}

	other := DerivePoolID(common.HexToAddress("0x00000000000000000000000000000000000000ab"))
	if first == other {
		t.Fatalf("distinct assets derived the same pool id %s", first.Hex())
	}
}

func TestDeriveVaultIDDomainSeparated(t *testing.T) {
	asset := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	poolID := DerivePoolID(asset)
	vaultID := DeriveVaultID(poolID)

	if vaultID == poolID {
		t.Fatalf("vault id equals pool id %s", poolID.Hex())
	}
	if vaultID != DeriveVaultID(poolID) {
		t.Fatalf("vault id not deterministic")
	}

	// The vault namespace must not collide with the pool namespace even for
	// the same input bytes.
	if DeriveVaultID(asset) == DerivePoolID(asset) {
		t.Fatalf("pool and vault derivations collide for identical input")
	}
}
