package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Domain-separation seeds for address derivation. A pool id depends only on
// the sale asset, a vault id only on its pool, so creation is idempotent per
// asset and the two namespaces can never collide.
const (
	poolSeed  = "pool"
	vaultSeed = "token_vault"
)

// DerivePoolID computes the pool identifier for a sale asset.
func DerivePoolID(assetID common.Address) common.Address {
	hash := crypto.Keccak256([]byte(poolSeed), assetID.Bytes())
	return common.BytesToAddress(hash[12:])
}

// DeriveVaultID computes the escrow vault identifier for a pool.
func DeriveVaultID(poolID common.Address) common.Address {
	hash := crypto.Keccak256([]byte(vaultSeed), poolID.Bytes())
	return common.BytesToAddress(hash[12:])
}
