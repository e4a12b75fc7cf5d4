package witness

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/lnp-bp/rgbcore/seal"
)

// PubWitness is the publication anchor for a transition bundle: either a
// bare txid (the witness tx is known to exist but its body is confidential
// to this participant) or a full transaction (a reveal of the same
// object). Equality and ordering are defined only over the txid; the
// transaction body is never structurally compared, matching
// anchors.rs's PubWitness Eq/Ord impls.
type PubWitness struct {
	txid seal.Txid
	tx   *wire.MsgTx // nil unless revealed
}

// PubWitnessFromTxid constructs a concealed PubWitness carrying only a txid.
func PubWitnessFromTxid(txid seal.Txid) PubWitness {
	return PubWitness{txid: txid}
}

// PubWitnessFromTx constructs a revealed PubWitness carrying a full
// transaction. The txid is derived from tx.
func PubWitnessFromTx(tx *wire.MsgTx) PubWitness {
	return PubWitness{txid: tx.TxHash(), tx: tx}
}

// Txid returns the witness transaction's identifier, the only field that
// participates in equality and ordering.
func (w PubWitness) Txid() seal.Txid { return w.txid }

// Tx returns the revealed transaction body and true, or (nil, false) if w
// is still concealed.
func (w PubWitness) Tx() (*wire.MsgTx, bool) { return w.tx, w.tx != nil }

// IsRevealed reports whether w carries a full transaction body.
func (w PubWitness) IsRevealed() bool { return w.tx != nil }

// Equal compares two PubWitness values by txid only, per anchors.rs.
func (w PubWitness) Equal(other PubWitness) bool { return w.txid == other.txid }

// Compare orders two PubWitness values by txid only.
func (w PubWitness) Compare(other PubWitness) int {
	return compareHash(w.txid, other.txid)
}

// Less reports whether w orders strictly before other.
func (w PubWitness) Less(other PubWitness) bool { return w.Compare(other) < 0 }

func compareHash(a, b seal.Txid) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
