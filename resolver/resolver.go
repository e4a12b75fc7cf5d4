// Package resolver implements the witness-confirmation oracle boundary
// (spec.md §3's WitnessResolver): given a witness transaction id, report
// whether and how deeply it has confirmed, grounded on the
// ResolveWitness trait and its electrum/esplora/mempool/any
// implementations.
package resolver

import (
	"context"

	"github.com/btcsuite/btcd/wire"

	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

// WitnessStatus is the outcome of resolving one witness id: either it
// has never been seen (Unresolved), or it was found along with the
// transaction body and its current ordinal (Resolved).
type WitnessStatus struct {
	Resolved bool
	Tx       *wire.MsgTx
	Ord      witness.WitnessOrd
}

// Unresolved is the zero WitnessStatus meaning the witness id has never
// been observed by the backing indexer.
var Unresolved = WitnessStatus{}

// Resolved builds a WitnessStatus reporting tx found with ordinal ord
// (Tentative when it is not yet in a block).
func Resolved(tx *wire.MsgTx, ord witness.WitnessOrd) WitnessStatus {
	return WitnessStatus{Resolved: true, Tx: tx, Ord: ord}
}

// Resolver is the narrow interface every concrete backend (Electrum,
// Esplora, mempool.space, or the AnyResolver composite) implements.
// Grounded structurally on chainntfs/chainntfs.go's ChainNotifier
// interface shape — a small surface an engine depends on without caring
// which concrete backend serves it.
type Resolver interface {
	// CheckChainNet verifies the backing service actually serves the
	// chain/network this engine expects, failing fast rather than
	// silently validating against the wrong chain.
	CheckChainNet(ctx context.Context, net ChainNet) error
	// ResolveWitness looks up txid's current confirmation status.
	ResolveWitness(ctx context.Context, txid seal.Txid) (WitnessStatus, error)
}
