package stash

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/lnp-bp/rgbcore/seal"
)

// TapretCommitment is a (mpc_root, nonce) pair describing how an MPC
// commitment was tweaked into a witness transaction's taproot output,
// grounded on memory.rs's TapretCommitment projection.
type TapretCommitment struct {
	MpcRoot chainhash.Hash
	Nonce   uint8
}

// Taprets projects every tapret-flavored witness in the stash to its
// (Txid, TapretCommitment) pair, the acceleration structure a consignment
// sender needs to locate which of its own transactions carry a given
// commitment root. Grounded on memory.rs's MemStash::taprets.
func (m *Mem) Taprets() map[seal.Txid]TapretCommitment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[seal.Txid]TapretCommitment)
	for txid, w := range m.witnesses {
		nonce, ok := w.DbcProof.IsTapret()
		if !ok {
			continue
		}
		out[txid] = TapretCommitment{MpcRoot: w.MerkleBlock.Root, Nonce: nonce}
	}
	return out
}
