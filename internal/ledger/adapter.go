package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Adapter is the boundary to the external transactional ledger that holds the
// actual accounts and value. The engine calls through it inside each
// operation's critical section; an adapter error aborts the operation with no
// counter change.
type Adapter interface {
	// AccountExists reports whether an account is known to the external ledger.
	AccountExists(ctx context.Context, account common.Address) (bool, error)

	// TransferProceeds moves payment units (participant to treasury).
	TransferProceeds(ctx context.Context, from, to common.Address, amount uint64) error

	// TransferAsset moves sale-asset units (authority to vault at creation,
	// vault to participant on purchase, vault to authority at finalize).
	TransferAsset(ctx context.Context, from, to common.Address, amount uint64) error
}
