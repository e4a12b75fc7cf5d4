package resolver

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/wire"

	"github.com/lnp-bp/rgbcore/rgblog"
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

// AnyResolver wraps any concrete Resolver (Electrum, Esplora, or
// mempool.space) behind a consignment-transaction cache: witnesses whose
// transaction body arrived inside a received consignment resolve as
// Tentative without ever reaching the network, letting validation proceed
// against data the sender already vouched for. Grounded on any.rs's
// AnyResolver.
type AnyResolver struct {
	inner Resolver

	// StrictMode, when true, disables the consignment-tx cache shortcut
	// entirely: every witness is resolved against inner regardless of
	// whether its transaction arrived in a consignment. Not present in
	// the Rust original (any.rs always consults consignment_txes first);
	// added because skipping network resolution for sender-supplied
	// transactions weakens this engine's guarantee that a witness is
	// actually broadcast, and some callers (anything accepting
	// untrusted consignments) need to insist on always checking.
	StrictMode bool

	mu              sync.RWMutex
	consignmentTxes map[seal.Txid]*wire.MsgTx
}

// NewAnyResolver wraps inner with an initially empty consignment-tx cache.
func NewAnyResolver(inner Resolver) *AnyResolver {
	return &AnyResolver{inner: inner, consignmentTxes: make(map[seal.Txid]*wire.MsgTx)}
}

// AddConsignmentTx records tx (keyed by its own txid) as a transaction
// whose body was received inside a consignment, letting ResolveWitness
// short-circuit to it under non-strict mode. Grounded on any.rs's
// add_consignment_txes, narrowed to one transaction at a time since this
// engine's consignment container type lives outside this package's scope.
func (a *AnyResolver) AddConsignmentTx(tx *wire.MsgTx) {
	txid := tx.TxHash()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.consignmentTxes[seal.Txid(txid)] = tx
}

// CheckChainNet delegates to the wrapped resolver.
func (a *AnyResolver) CheckChainNet(ctx context.Context, net ChainNet) error {
	return a.inner.CheckChainNet(ctx, net)
}

// ResolveWitness returns the cached consignment transaction for witnessID
// as Tentative when one is known and StrictMode is off; otherwise it
// delegates to the wrapped resolver, grounded on any.rs's resolve_witness.
func (a *AnyResolver) ResolveWitness(ctx context.Context, witnessID seal.Txid) (WitnessStatus, error) {
	if !a.StrictMode {
		a.mu.RLock()
		tx, ok := a.consignmentTxes[witnessID]
		a.mu.RUnlock()
		if ok {
			rgblog.Resolver().Debugf("resolving %s from consignment cache, skipping network lookup", witnessID)
			return Resolved(tx, witness.Tentative), nil
		}
	}
	return a.inner.ResolveWitness(ctx, witnessID)
}
